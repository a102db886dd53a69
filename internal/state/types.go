package state

import "strings"

// SchemaVersion is the current persisted-state format version.
const SchemaVersion = 1

// Sentinel category identity. The sentinel always exists and absorbs todos
// whose own category is deleted.
const (
	UncategorizedID   = "uncategorized"
	UncategorizedName = "Uncategorized"
)

// AllCategories is the filter value that matches every category.
const AllCategories = "all"

// Status filters todos by completion.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether s is a recognized status filter value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAll, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Todo is a single task.
type Todo struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Completed  bool   `json:"completed"`
	CategoryID string `json:"categoryId"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

// Category groups todos.
type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// Filter narrows the visible todo list. All three fields apply conjunctively.
type Filter struct {
	Status     Status `json:"status"`
	CategoryID string `json:"categoryId"`
	Search     string `json:"search"`
}

// UIState tracks transient interface state that survives restarts.
// EditingTodoID is the id of the todo currently being inline-edited,
// or empty when idle.
type UIState struct {
	EditingTodoID string `json:"editingTodoId"`
}

// Meta carries format metadata for the persisted blob.
type Meta struct {
	SchemaVersion int `json:"schemaVersion"`
}

// AppState is the full application state. It is the only unit ever
// persisted or restored as a whole.
type AppState struct {
	Todos      []Todo     `json:"todos"`
	Categories []Category `json:"categories"`
	Filter     Filter     `json:"filter"`
	UI         UIState    `json:"ui"`
	Meta       Meta       `json:"meta"`
}

// Default returns an empty state: no todos, the sentinel category only,
// an all/all/"" filter, and the current schema version. The sentinel's
// timestamps are stamped with now (Unix milliseconds).
func Default(now int64) AppState {
	return AppState{
		Todos: []Todo{},
		Categories: []Category{
			{
				ID:        UncategorizedID,
				Name:      UncategorizedName,
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		Filter: Filter{
			Status:     StatusAll,
			CategoryID: AllCategories,
			Search:     "",
		},
		UI:   UIState{},
		Meta: Meta{SchemaVersion: SchemaVersion},
	}
}

// Clone returns a deep copy of the state. Mutating the copy never affects
// the original.
func (s AppState) Clone() AppState {
	out := s
	out.Todos = make([]Todo, len(s.Todos))
	copy(out.Todos, s.Todos)
	out.Categories = make([]Category, len(s.Categories))
	copy(out.Categories, s.Categories)
	return out
}

// TodoIndex returns the index of the todo with the given id, or -1.
func (s *AppState) TodoIndex(id string) int {
	for i := range s.Todos {
		if s.Todos[i].ID == id {
			return i
		}
	}
	return -1
}

// CategoryIndex returns the index of the category with the given id, or -1.
func (s *AppState) CategoryIndex(id string) int {
	for i := range s.Categories {
		if s.Categories[i].ID == id {
			return i
		}
	}
	return -1
}

// Visible returns the todos passing the current filter, preserving list
// order. The three filter dimensions apply conjunctively. The search is
// a case-insensitive substring match on the title.
func (s AppState) Visible() []Todo {
	search := strings.ToLower(s.Filter.Search)
	out := make([]Todo, 0, len(s.Todos))
	for _, todo := range s.Todos {
		switch s.Filter.Status {
		case StatusActive:
			if todo.Completed {
				continue
			}
		case StatusCompleted:
			if !todo.Completed {
				continue
			}
		}
		if s.Filter.CategoryID != AllCategories && todo.CategoryID != s.Filter.CategoryID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(todo.Title), search) {
			continue
		}
		out = append(out, todo)
	}
	return out
}

// Normalize repairs a loaded state so the store's invariants hold: the
// sentinel category exists, every todo references an existing category,
// the filter holds recognized values, the editing pointer targets an
// existing todo, and the schema version is current. It reports whether
// anything changed.
func (s *AppState) Normalize(now int64) bool {
	changed := false

	if s.CategoryIndex(UncategorizedID) < 0 {
		sentinel := Category{
			ID:        UncategorizedID,
			Name:      UncategorizedName,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.Categories = append([]Category{sentinel}, s.Categories...)
		changed = true
	}

	for i := range s.Todos {
		if s.CategoryIndex(s.Todos[i].CategoryID) < 0 {
			s.Todos[i].CategoryID = UncategorizedID
			s.Todos[i].UpdatedAt = now
			changed = true
		}
	}

	if !ValidStatus(s.Filter.Status) {
		s.Filter.Status = StatusAll
		changed = true
	}
	if s.Filter.CategoryID != AllCategories && s.CategoryIndex(s.Filter.CategoryID) < 0 {
		s.Filter.CategoryID = AllCategories
		changed = true
	}

	if s.UI.EditingTodoID != "" && s.TodoIndex(s.UI.EditingTodoID) < 0 {
		s.UI.EditingTodoID = ""
		changed = true
	}

	if s.Meta.SchemaVersion != SchemaVersion {
		s.Meta.SchemaVersion = SchemaVersion
		changed = true
	}

	return changed
}
