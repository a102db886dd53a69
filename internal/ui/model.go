package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/keptlist/kept/internal/state"
	"github.com/keptlist/kept/internal/store"
)

// inputMode tracks what the shared text input is being used for.
type inputMode int

const (
	modeList inputMode = iota
	modeAdd
	modeEdit
	modeSearch
)

// todoItem adapts a todo to a list item. The category name is resolved at
// sync time so the delegate does not need store access.
type todoItem struct {
	todo     state.Todo
	category string
}

func (i todoItem) Title() string       { return i.todo.Title }
func (i todoItem) Description() string { return "" }
func (i todoItem) FilterValue() string { return i.todo.Title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(todoItem)
	if !ok {
		return
	}

	box := mutedStyle.Render(boxUnchecked)
	text := it.todo.Title
	if it.todo.Completed {
		box = successStyle.Render(boxChecked)
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s", box, text)
	if it.category != "" {
		line += " " + mutedStyle.Render("("+it.category+")")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

// tuiModel is the bubbletea model for the todo list.
type tuiModel struct {
	store    *store.Store
	list     list.Model
	input    textinput.Model
	mode     inputMode
	inputErr string
	width    int
	height   int
}

func newTUIModel(s *store.Store) *tuiModel {
	l := list.New(nil, itemDelegate{}, 80, 24)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.SetStatusBarItemName("todo", "todos")
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.AdditionalShortHelpKeys = extraKeys
	l.AdditionalFullHelpKeys = extraKeys

	input := textinput.New()
	input.Prompt = "> "
	input.CharLimit = 200

	m := &tuiModel{
		store: s,
		list:  l,
		input: input,
	}
	m.syncList()
	return m
}

func extraKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		key.NewBinding(key.WithKeys("J", "K"), key.WithHelp("J/K", "move")),
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "status")),
		key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	}
}

// Init resumes an inline edit left over from a previous session.
func (m *tuiModel) Init() tea.Cmd {
	if id := m.store.EditingTodoID(); id != "" {
		if todo, ok := m.findTodo(id); ok {
			m.startEdit(todo)
			return textinput.Blink
		}
		m.store.CancelEditing()
	}
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.layout()
		return m, nil
	}

	if m.mode != modeList {
		return m.updateInput(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case " ":
			if todo, ok := m.selected(); ok {
				m.store.ToggleTodo(todo.ID)
				m.syncList()
			}
			return m, nil
		case "d":
			if todo, ok := m.selected(); ok {
				m.store.DeleteTodo(todo.ID)
				m.syncList()
			}
			return m, nil
		case "a":
			m.openInput(modeAdd, "", "New todo title...")
			return m, textinput.Blink
		case "e":
			if todo, ok := m.selected(); ok {
				m.startEdit(todo)
				return m, textinput.Blink
			}
			return m, nil
		case "c":
			if todo, ok := m.selected(); ok {
				m.store.AssignCategory(todo.ID, m.nextCategory(todo.CategoryID))
				m.syncList()
			}
			return m, nil
		case "J":
			m.moveSelected(1)
			return m, nil
		case "K":
			m.moveSelected(-1)
			return m, nil
		case "tab":
			m.store.SetFilterStatus(nextStatus(m.store.Filter().Status))
			m.syncList()
			return m, nil
		case "f":
			m.cycleCategoryFilter()
			return m, nil
		case "/":
			m.openInput(modeSearch, m.store.Filter().Search, "Search titles...")
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *tuiModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.submitInput()
			return m, nil
		case "esc":
			if m.mode == modeEdit {
				m.store.CancelEditing()
			}
			m.closeInput()
			m.syncList()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *tuiModel) submitInput() {
	text := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeAdd:
		if text == "" {
			m.inputErr = "Title cannot be empty"
			return
		}
		// New todos pick up the active category filter so they stay visible.
		categoryID := ""
		if f := m.store.Filter(); f.CategoryID != state.AllCategories {
			categoryID = f.CategoryID
		}
		m.store.AddTodo(text, categoryID)
	case modeEdit:
		if text == "" {
			m.inputErr = "Title cannot be empty"
			return
		}
		m.store.EditTodoTitle(m.store.EditingTodoID(), text)
	case modeSearch:
		m.store.SetFilterSearch(text)
	}
	m.closeInput()
	m.syncList()
}

func (m *tuiModel) View() string {
	content := m.list.View()
	if m.mode != modeList {
		label := ""
		switch m.mode {
		case modeAdd:
			label = "Add todo"
		case modeEdit:
			label = "Edit todo"
		case modeSearch:
			label = "Search"
		}
		if m.inputErr != "" {
			label += "  " + errorStyle.Render(m.inputErr)
		}
		content += "\n" + inputBarStyle.Render(label+"\n"+m.input.View())
	}
	return content
}

// syncList rebuilds the visible items from the store, keeping the cursor
// near its previous position.
func (m *tuiModel) syncList() {
	names := categoryNames(m.store.Categories())
	todos := m.store.VisibleTodos()
	items := make([]list.Item, 0, len(todos))
	for _, todo := range todos {
		category := ""
		if todo.CategoryID != state.UncategorizedID {
			category = names[todo.CategoryID]
		}
		items = append(items, todoItem{todo: todo, category: category})
	}

	index := m.list.Index()
	m.list.SetItems(items)
	if index >= len(items) {
		index = len(items) - 1
	}
	if index < 0 {
		index = 0
	}
	m.list.Select(index)
	m.list.Title = m.titleLine()
}

func (m *tuiModel) titleLine() string {
	todos := m.store.Todos()
	done := 0
	for _, t := range todos {
		if t.Completed {
			done++
		}
	}
	title := fmt.Sprintf("kept  %s %d  %s %d",
		successStyle.Render(boxChecked), done,
		pendingStyle.Render(boxUnchecked), len(todos)-done,
	)
	if line := m.filterLine(); line != "" {
		title += "  " + mutedStyle.Render(line)
	}
	return title
}

func (m *tuiModel) filterLine() string {
	f := m.store.Filter()
	parts := make([]string, 0, 3)
	if f.Status != state.StatusAll {
		parts = append(parts, string(f.Status))
	}
	if f.CategoryID != state.AllCategories {
		name := categoryNames(m.store.Categories())[f.CategoryID]
		if name == "" {
			name = f.CategoryID
		}
		parts = append(parts, name)
	}
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("%q", f.Search))
	}
	if len(parts) == 0 {
		return ""
	}
	return "filter: " + strings.Join(parts, " ")
}

func (m *tuiModel) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}
	height := m.height - 1
	if m.mode != modeList {
		height -= 4
	}
	if height < 1 {
		height = 1
	}
	m.list.SetSize(m.width-2, height)
}

func (m *tuiModel) openInput(mode inputMode, value, placeholder string) {
	m.mode = mode
	m.inputErr = ""
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.input.Placeholder = placeholder
	m.input.Focus()
	m.layout()
}

func (m *tuiModel) startEdit(todo state.Todo) {
	m.store.StartEditing(todo.ID)
	m.openInput(modeEdit, todo.Title, "Edit todo title...")
}

func (m *tuiModel) closeInput() {
	m.mode = modeList
	m.inputErr = ""
	m.input.SetValue("")
	m.input.Blur()
	m.layout()
}

func (m *tuiModel) selected() (state.Todo, bool) {
	item, ok := m.list.SelectedItem().(todoItem)
	if !ok {
		return state.Todo{}, false
	}
	return item.todo, true
}

func (m *tuiModel) findTodo(id string) (state.Todo, bool) {
	for _, todo := range m.store.Todos() {
		if todo.ID == id {
			return todo, true
		}
	}
	return state.Todo{}, false
}

// moveSelected reorders within the full list, so it only runs when no
// filter narrows the view.
func (m *tuiModel) moveSelected(delta int) {
	f := m.store.Filter()
	if f.Status != state.StatusAll || f.CategoryID != state.AllCategories || f.Search != "" {
		return
	}
	todo, ok := m.selected()
	if !ok {
		return
	}
	target := m.list.Index() + delta
	m.store.MoveTodo(todo.ID, target)
	m.syncList()
	if target >= 0 && target < len(m.list.Items()) {
		m.list.Select(target)
	}
}

// nextCategory cycles the assignment through all categories in order.
func (m *tuiModel) nextCategory(current string) string {
	cats := m.store.Categories()
	if len(cats) == 0 {
		return current
	}
	for i, c := range cats {
		if c.ID == current {
			return cats[(i+1)%len(cats)].ID
		}
	}
	return cats[0].ID
}

// cycleCategoryFilter steps the filter through all, then each category in
// order, then back to all.
func (m *tuiModel) cycleCategoryFilter() {
	cats := m.store.Categories()
	current := m.store.Filter().CategoryID
	next := state.AllCategories
	if current == state.AllCategories {
		if len(cats) > 0 {
			next = cats[0].ID
		}
	} else {
		for i, c := range cats {
			if c.ID == current && i+1 < len(cats) {
				next = cats[i+1].ID
				break
			}
		}
	}
	m.store.SetFilterCategory(next)
	m.syncList()
}

func nextStatus(s state.Status) state.Status {
	switch s {
	case state.StatusAll:
		return state.StatusActive
	case state.StatusActive:
		return state.StatusCompleted
	default:
		return state.StatusAll
	}
}

func categoryNames(cats []state.Category) map[string]string {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names
}
