package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keptlist/kept/internal/state"
	"github.com/keptlist/kept/internal/storage"
	"github.com/keptlist/kept/internal/store"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := store.New(storage.New(path))
	if err != nil {
		t.Fatalf("store.New failed: %v", err)
	}
	return s
}

func testModel(t *testing.T, s *store.Store) *tuiModel {
	t.Helper()
	m := newTUIModel(s)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func press(m *tuiModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestAddFlow(t *testing.T) {
	s := testStore(t)
	m := testModel(t, s)

	press(m, "a")
	if m.mode != modeAdd {
		t.Fatalf("mode: got %v, want %v", m.mode, modeAdd)
	}
	press(m, "Buy milk", "enter")

	todos := s.Todos()
	if len(todos) != 1 {
		t.Fatalf("todos: got %d, want 1", len(todos))
	}
	if todos[0].Title != "Buy milk" {
		t.Errorf("Title: got %q, want %q", todos[0].Title, "Buy milk")
	}
	if m.mode != modeList {
		t.Errorf("mode after submit: got %v, want %v", m.mode, modeList)
	}
	if len(m.list.Items()) != 1 {
		t.Errorf("list items: got %d, want 1", len(m.list.Items()))
	}
}

func TestAddEmptyKeepsInputOpen(t *testing.T) {
	s := testStore(t)
	m := testModel(t, s)

	press(m, "a", "enter")

	if m.mode != modeAdd {
		t.Errorf("mode: got %v, want %v", m.mode, modeAdd)
	}
	if m.inputErr == "" {
		t.Error("expected an input error for an empty title")
	}
	if len(s.Todos()) != 0 {
		t.Errorf("todos: got %d, want 0", len(s.Todos()))
	}
}

func TestAddUnderCategoryFilter(t *testing.T) {
	s := testStore(t)
	s.AddCategory("Work")
	work := s.Categories()[1]
	s.SetFilterCategory(work.ID)
	m := testModel(t, s)

	press(m, "a", "Write report", "enter")

	todos := s.Todos()
	if len(todos) != 1 {
		t.Fatalf("todos: got %d, want 1", len(todos))
	}
	if todos[0].CategoryID != work.ID {
		t.Errorf("CategoryID: got %q, want %q", todos[0].CategoryID, work.ID)
	}
}

func TestToggleAndDelete(t *testing.T) {
	s := testStore(t)
	s.AddTodo("Buy milk", "")
	s.AddTodo("Call plumber", "")
	m := testModel(t, s)

	press(m, " ")
	if todos := s.Todos(); !todos[0].Completed {
		t.Error("expected first todo completed after toggle")
	}

	press(m, "d")
	todos := s.Todos()
	if len(todos) != 1 {
		t.Fatalf("todos after delete: got %d, want 1", len(todos))
	}
	if todos[0].Title != "Call plumber" {
		t.Errorf("remaining todo: got %q, want %q", todos[0].Title, "Call plumber")
	}
}

func TestEditFlow(t *testing.T) {
	s := testStore(t)
	s.AddTodo("Buy milk", "")
	id := s.Todos()[0].ID
	m := testModel(t, s)

	press(m, "e")
	if got := s.EditingTodoID(); got != id {
		t.Fatalf("EditingTodoID: got %q, want %q", got, id)
	}
	if m.input.Value() != "Buy milk" {
		t.Errorf("input prefill: got %q, want %q", m.input.Value(), "Buy milk")
	}

	m.input.SetValue("Buy oat milk")
	press(m, "enter")

	if got := s.Todos()[0].Title; got != "Buy oat milk" {
		t.Errorf("Title: got %q, want %q", got, "Buy oat milk")
	}
	if got := s.EditingTodoID(); got != "" {
		t.Errorf("EditingTodoID after submit: got %q, want empty", got)
	}
}

func TestEditEscCancels(t *testing.T) {
	s := testStore(t)
	s.AddTodo("Buy milk", "")
	m := testModel(t, s)

	press(m, "e")
	m.input.SetValue("scrapped")
	press(m, "esc")

	if got := s.Todos()[0].Title; got != "Buy milk" {
		t.Errorf("Title: got %q, want %q", got, "Buy milk")
	}
	if got := s.EditingTodoID(); got != "" {
		t.Errorf("EditingTodoID after cancel: got %q, want empty", got)
	}
	if m.mode != modeList {
		t.Errorf("mode: got %v, want %v", m.mode, modeList)
	}
}

func TestResumesEditingOnStart(t *testing.T) {
	s := testStore(t)
	s.AddTodo("Buy milk", "")
	s.StartEditing(s.Todos()[0].ID)

	m := testModel(t, s)
	m.Init()

	if m.mode != modeEdit {
		t.Fatalf("mode: got %v, want %v", m.mode, modeEdit)
	}
	if m.input.Value() != "Buy milk" {
		t.Errorf("input prefill: got %q, want %q", m.input.Value(), "Buy milk")
	}
}

func TestSearchFlow(t *testing.T) {
	s := testStore(t)
	s.AddTodo("Buy milk", "")
	s.AddTodo("Write report", "")
	m := testModel(t, s)

	press(m, "/", "milk", "enter")

	if got := s.Filter().Search; got != "milk" {
		t.Errorf("Search: got %q, want %q", got, "milk")
	}
	if got := len(m.list.Items()); got != 1 {
		t.Errorf("visible items: got %d, want 1", got)
	}

	// An empty search clears the filter.
	press(m, "/")
	m.input.SetValue("")
	press(m, "enter")
	if got := s.Filter().Search; got != "" {
		t.Errorf("Search after clear: got %q, want empty", got)
	}
}

func TestStatusFilterCycles(t *testing.T) {
	s := testStore(t)
	m := testModel(t, s)

	want := []state.Status{state.StatusActive, state.StatusCompleted, state.StatusAll}
	for _, status := range want {
		press(m, "tab")
		if got := s.Filter().Status; got != status {
			t.Errorf("Status: got %q, want %q", got, status)
		}
	}
}

func TestCategoryFilterCycles(t *testing.T) {
	s := testStore(t)
	s.AddCategory("Work")
	work := s.Categories()[1]
	m := testModel(t, s)

	press(m, "f")
	if got := s.Filter().CategoryID; got != state.UncategorizedID {
		t.Errorf("CategoryID: got %q, want %q", got, state.UncategorizedID)
	}
	press(m, "f")
	if got := s.Filter().CategoryID; got != work.ID {
		t.Errorf("CategoryID: got %q, want %q", got, work.ID)
	}
	press(m, "f")
	if got := s.Filter().CategoryID; got != state.AllCategories {
		t.Errorf("CategoryID: got %q, want %q", got, state.AllCategories)
	}
}

func TestMoveSelected(t *testing.T) {
	s := testStore(t)
	s.AddTodo("A", "")
	s.AddTodo("B", "")
	s.AddTodo("C", "")
	m := testModel(t, s)

	press(m, "J")
	if got := titles(s); got != "B,A,C" {
		t.Errorf("after J: got %q, want %q", got, "B,A,C")
	}
	if got := m.list.Index(); got != 1 {
		t.Errorf("cursor: got %d, want 1", got)
	}

	press(m, "K")
	if got := titles(s); got != "A,B,C" {
		t.Errorf("after K: got %q, want %q", got, "A,B,C")
	}
}

func TestMoveDisabledWhenFiltered(t *testing.T) {
	s := testStore(t)
	s.AddTodo("A", "")
	s.AddTodo("B", "")
	s.SetFilterStatus(state.StatusActive)
	m := testModel(t, s)

	press(m, "J")
	if got := titles(s); got != "A,B" {
		t.Errorf("order: got %q, want unchanged %q", got, "A,B")
	}
}

func TestAssignCategoryCycles(t *testing.T) {
	s := testStore(t)
	s.AddCategory("Work")
	work := s.Categories()[1]
	s.AddTodo("Buy milk", "")
	m := testModel(t, s)

	press(m, "c")
	if got := s.Todos()[0].CategoryID; got != work.ID {
		t.Errorf("CategoryID: got %q, want %q", got, work.ID)
	}
	press(m, "c")
	if got := s.Todos()[0].CategoryID; got != state.UncategorizedID {
		t.Errorf("CategoryID: got %q, want %q", got, state.UncategorizedID)
	}
}

func TestViewShowsInputBar(t *testing.T) {
	s := testStore(t)
	m := testModel(t, s)

	if view := m.View(); strings.Contains(view, "Add todo") {
		t.Error("input bar visible before opening it")
	}
	press(m, "a")
	if view := m.View(); !strings.Contains(view, "Add todo") {
		t.Error("expected input bar in view")
	}
}

func titles(s *store.Store) string {
	todos := s.Todos()
	parts := make([]string, len(todos))
	for i, todo := range todos {
		parts[i] = todo.Title
	}
	return strings.Join(parts, ",")
}
