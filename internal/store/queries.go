package store

import "github.com/keptlist/kept/internal/state"

// Queries return copies. Mutating a returned slice or struct never
// affects the store.

// Snapshot returns a deep copy of the whole application state.
func (s *Store) Snapshot() state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Clone()
}

// Todos returns all todos in list order.
func (s *Store) Todos() []state.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]state.Todo(nil), s.st.Todos...)
}

// Categories returns all categories in creation order. The sentinel
// category is always first.
func (s *Store) Categories() []state.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]state.Category(nil), s.st.Categories...)
}

// Filter returns the current filter.
func (s *Store) Filter() state.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Filter
}

// EditingTodoID returns the id of the todo currently being edited, or ""
// when not editing.
func (s *Store) EditingTodoID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.UI.EditingTodoID
}

// VisibleTodos returns the todos passing the current filter, preserving
// list order.
func (s *Store) VisibleTodos() []state.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.st.Visible()
}

// CountsByCategory returns the number of todos assigned to each category.
// Every known category is present, so categories without todos report
// zero.
func (s *Store) CountsByCategory() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int, len(s.st.Categories))
	for _, c := range s.st.Categories {
		counts[c.ID] = 0
	}
	for _, t := range s.st.Todos {
		counts[t.CategoryID]++
	}
	return counts
}
