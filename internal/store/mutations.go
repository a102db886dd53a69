package store

import (
	"strings"

	"github.com/keptlist/kept/internal/state"
)

// Mutations are the last line of defense against bad input: empty titles,
// unknown ids, and protected targets are silently ignored. A mutation that
// changes nothing does not touch the persisted state.

// AddTodo appends a new active todo with the given title. An empty
// categoryID assigns the sentinel category.
func (s *Store) AddTodo(title, categoryID string) {
	title = strings.TrimSpace(title)
	if title == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if categoryID == "" {
		categoryID = state.UncategorizedID
	}
	now := s.now()
	todo := state.Todo{
		ID:         s.newID(),
		Title:      title,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.st.Todos = append(s.st.Todos, todo)
	s.logger.Debug("todo added", "id", todo.ID, "category", categoryID)
	s.save()
}

// ToggleTodo flips the completion flag of the given todo.
func (s *Store) ToggleTodo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.TodoIndex(id)
	if i < 0 {
		return
	}
	s.st.Todos[i].Completed = !s.st.Todos[i].Completed
	s.st.Todos[i].UpdatedAt = s.now()
	s.logger.Debug("todo toggled", "id", id, "completed", s.st.Todos[i].Completed)
	s.save()
}

// EditTodoTitle replaces the title of the given todo and leaves editing
// mode. An empty new title is ignored and editing mode is kept; callers
// use CancelEditing to abandon an edit.
func (s *Store) EditTodoTitle(id, newTitle string) {
	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.TodoIndex(id)
	if i < 0 {
		return
	}
	s.st.Todos[i].Title = newTitle
	s.st.Todos[i].UpdatedAt = s.now()
	s.st.UI.EditingTodoID = ""
	s.logger.Debug("todo edited", "id", id)
	s.save()
}

// DeleteTodo removes the given todo. If it was being edited, editing mode
// is left as well.
func (s *Store) DeleteTodo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.TodoIndex(id)
	if i < 0 {
		return
	}
	s.st.Todos = append(s.st.Todos[:i], s.st.Todos[i+1:]...)
	if s.st.UI.EditingTodoID == id {
		s.st.UI.EditingTodoID = ""
	}
	s.logger.Debug("todo deleted", "id", id)
	s.save()
}

// ClearCompleted removes every completed todo. Active todos, categories,
// and the filter are untouched.
func (s *Store) ClearCompleted() {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]state.Todo, 0, len(s.st.Todos))
	for _, t := range s.st.Todos {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.st.Todos) - len(kept)
	if removed == 0 {
		return
	}
	s.st.Todos = kept
	if id := s.st.UI.EditingTodoID; id != "" && s.st.TodoIndex(id) < 0 {
		s.st.UI.EditingTodoID = ""
	}
	s.logger.Debug("completed todos cleared", "removed", removed)
	s.save()
}

// MoveTodo moves the given todo to index in the overall list order.
// Out-of-range targets are clamped.
func (s *Store) MoveTodo(id string, index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.st.TodoIndex(id)
	if from < 0 {
		return
	}
	if index < 0 {
		index = 0
	}
	if max := len(s.st.Todos) - 1; index > max {
		index = max
	}
	if index == from {
		return
	}

	todo := s.st.Todos[from]
	todo.UpdatedAt = s.now()
	rest := append(s.st.Todos[:from], s.st.Todos[from+1:]...)
	s.st.Todos = append(rest[:index], append([]state.Todo{todo}, rest[index:]...)...)
	s.logger.Debug("todo moved", "id", id, "index", index)
	s.save()
}

// AssignCategory points the given todo at categoryID. The category is not
// required to exist; dangling references are repaired on the next load.
func (s *Store) AssignCategory(todoID, categoryID string) {
	if categoryID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.TodoIndex(todoID)
	if i < 0 {
		return
	}
	if s.st.Todos[i].CategoryID == categoryID {
		return
	}
	s.st.Todos[i].CategoryID = categoryID
	s.st.Todos[i].UpdatedAt = s.now()
	s.logger.Debug("todo assigned", "id", todoID, "category", categoryID)
	s.save()
}

// StartEditing marks the given todo as being edited. Only one todo can be
// edited at a time; starting a new edit replaces the previous one.
func (s *Store) StartEditing(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.TodoIndex(id) < 0 {
		return
	}
	if s.st.UI.EditingTodoID == id {
		return
	}
	s.st.UI.EditingTodoID = id
	s.save()
}

// CancelEditing leaves editing mode without changing any todo.
func (s *Store) CancelEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.UI.EditingTodoID == "" {
		return
	}
	s.st.UI.EditingTodoID = ""
	s.save()
}

// AddCategory appends a new category with the given name.
func (s *Store) AddCategory(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cat := state.Category{
		ID:        s.newID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.st.Categories = append(s.st.Categories, cat)
	s.logger.Debug("category added", "id", cat.ID, "name", name)
	s.save()
}

// RenameCategory replaces the name of the given category. The sentinel
// category cannot be renamed.
func (s *Store) RenameCategory(id, newName string) {
	newName = strings.TrimSpace(newName)
	if newName == "" || id == state.UncategorizedID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.CategoryIndex(id)
	if i < 0 {
		return
	}
	s.st.Categories[i].Name = newName
	s.st.Categories[i].UpdatedAt = s.now()
	s.logger.Debug("category renamed", "id", id, "name", newName)
	s.save()
}

// DeleteCategory removes the given category and reassigns its todos to
// the sentinel category. The sentinel category cannot be deleted. A
// filter pinned to the deleted category falls back to showing all.
func (s *Store) DeleteCategory(id string) {
	if id == state.UncategorizedID {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.st.CategoryIndex(id)
	if i < 0 {
		return
	}
	now := s.now()
	reassigned := 0
	for j := range s.st.Todos {
		if s.st.Todos[j].CategoryID == id {
			s.st.Todos[j].CategoryID = state.UncategorizedID
			s.st.Todos[j].UpdatedAt = now
			reassigned++
		}
	}
	s.st.Categories = append(s.st.Categories[:i], s.st.Categories[i+1:]...)
	if s.st.Filter.CategoryID == id {
		s.st.Filter.CategoryID = state.AllCategories
	}
	s.logger.Debug("category deleted", "id", id, "reassigned", reassigned)
	s.save()
}

// SetFilterStatus narrows the visible todos by completion status. Unknown
// statuses are ignored.
func (s *Store) SetFilterStatus(status state.Status) {
	if !state.ValidStatus(status) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.Filter.Status == status {
		return
	}
	s.st.Filter.Status = status
	s.save()
}

// SetFilterCategory narrows the visible todos to one category, or to all
// with state.AllCategories.
func (s *Store) SetFilterCategory(categoryID string) {
	if categoryID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.Filter.CategoryID == categoryID {
		return
	}
	s.st.Filter.CategoryID = categoryID
	s.save()
}

// SetFilterSearch narrows the visible todos to titles containing text.
// An empty text clears the search.
func (s *Store) SetFilterSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.Filter.Search == text {
		return
	}
	s.st.Filter.Search = text
	s.save()
}
