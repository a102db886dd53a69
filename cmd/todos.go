package cmd

import (
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/state"
)

const (
	iconDone   = "☑"
	iconActive = "☐"
)

// addCommand appends a new todo.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept add", flag.ContinueOnError)
	category := fs.String("c", "", "Category for the new todo")

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("add requires a title")
	}
	title := strings.TrimSpace(strings.Join(remaining, " "))
	if title == "" {
		return fmt.Errorf("todo title cannot be empty")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	categoryID := ""
	if *category != "" {
		cat, err := resolveCategory(s.Categories(), *category)
		if err != nil {
			return err
		}
		categoryID = cat.ID
	}

	s.AddTodo(title, categoryID)
	todos := s.Todos()
	printTodo(todos[len(todos)-1], categoryNames(s.Categories()), false)
	return nil
}

// lsCommand lists todos through the persisted filter, optionally narrowed
// further for this one listing.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept ls", flag.ContinueOnError)
	statusFlag := fs.String("s", "", "Filter by status (all|active|completed)")
	categoryFlag := fs.String("c", "", "Filter by category")
	searchFlag := fs.String("q", "", "Filter by title substring")
	verbose := fs.Bool("v", false, "Show more details")
	asJSON := fs.Bool("json", false, "Emit the listing as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}

	// Listing flags are transient: they narrow this listing without
	// touching the persisted filter.
	snap := s.Snapshot()
	if *statusFlag != "" {
		status := state.Status(*statusFlag)
		if !state.ValidStatus(status) {
			return fmt.Errorf("unknown status %q (expected all|active|completed)", *statusFlag)
		}
		snap.Filter.Status = status
	}
	if *categoryFlag != "" {
		if *categoryFlag == state.AllCategories {
			snap.Filter.CategoryID = state.AllCategories
		} else {
			cat, err := resolveCategory(snap.Categories, *categoryFlag)
			if err != nil {
				return err
			}
			snap.Filter.CategoryID = cat.ID
		}
	}
	if *searchFlag != "" {
		snap.Filter.Search = *searchFlag
	}

	todos := snap.Visible()
	if *asJSON {
		out, err := json.MarshalIndent(todos, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding listing: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}
	if len(todos) == 0 {
		fmt.Println("No todos found.")
		return nil
	}

	names := categoryNames(snap.Categories)
	if snap.Filter.Status == state.StatusAll {
		printTodosByStatus("active", todos, false, names, *verbose)
		printTodosByStatus("completed", todos, true, names, *verbose)
	} else {
		for _, todo := range todos {
			printTodo(todo, names, *verbose)
		}
	}
	return nil
}

// doneCommand toggles a todo between active and completed.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept done", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("done requires exactly one todo reference")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	todo, err := resolveTodo(s.Todos(), remaining[0])
	if err != nil {
		return err
	}

	s.ToggleTodo(todo.ID)
	updated, _ := findTodo(s.Todos(), todo.ID)
	printTodo(updated, categoryNames(s.Categories()), false)
	return nil
}

// rmCommand deletes a todo.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept rm", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("rm requires exactly one todo reference")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	todo, err := resolveTodo(s.Todos(), remaining[0])
	if err != nil {
		return err
	}

	s.DeleteTodo(todo.ID)
	fmt.Printf("Deleted [%s] %s\n", shortID(todo.ID), todo.Title)
	return nil
}

// editCommand retitles a todo.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept edit", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) < 2 {
		return fmt.Errorf("edit requires a todo reference and a new title")
	}
	title := strings.TrimSpace(strings.Join(remaining[1:], " "))
	if title == "" {
		return fmt.Errorf("todo title cannot be empty")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	todo, err := resolveTodo(s.Todos(), remaining[0])
	if err != nil {
		return err
	}

	s.EditTodoTitle(todo.ID, title)
	updated, _ := findTodo(s.Todos(), todo.ID)
	printTodo(updated, categoryNames(s.Categories()), false)
	return nil
}

// mvCommand moves a todo to a 1-based position in the overall order.
func mvCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept mv", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 2 {
		return fmt.Errorf("mv requires a todo reference and a position")
	}
	position, err := strconv.Atoi(remaining[1])
	if err != nil {
		return fmt.Errorf("invalid position %q", remaining[1])
	}
	if position < 1 {
		return fmt.Errorf("position must be 1 or greater")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	todo, err := resolveTodo(s.Todos(), remaining[0])
	if err != nil {
		return err
	}

	s.MoveTodo(todo.ID, position-1)
	for i, t := range s.Todos() {
		if t.ID == todo.ID {
			fmt.Printf("Moved %q to position %d\n", t.Title, i+1)
			break
		}
	}
	return nil
}

// assignCommand moves a todo into a category.
func assignCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept assign", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 2 {
		return fmt.Errorf("assign requires a todo reference and a category")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	todo, err := resolveTodo(s.Todos(), remaining[0])
	if err != nil {
		return err
	}
	cat, err := resolveCategory(s.Categories(), remaining[1])
	if err != nil {
		return err
	}

	s.AssignCategory(todo.ID, cat.ID)
	fmt.Printf("Assigned %q to %s\n", todo.Title, cat.Name)
	return nil
}

// clearCommand resets the store to its empty default.
func clearCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept clear", flag.ContinueOnError)
	force := fs.Bool("f", false, "Skip the safety check")
	fs.BoolVar(force, "force", false, "Skip the safety check")
	completed := fs.Bool("completed", false, "Remove only completed todos")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if *completed {
		s, err := openStore(cfg, logger)
		if err != nil {
			return err
		}
		before := len(s.Todos())
		s.ClearCompleted()
		fmt.Printf("Cleared %d completed todos.\n", before-len(s.Todos()))
		return nil
	}

	if !*force {
		return fmt.Errorf("clear deletes every todo and category; re-run with -f to confirm")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	s.Clear()
	fmt.Println("Cleared all todos and categories.")
	return nil
}

// resolveTodo finds a todo by exact id, unique id prefix, or exact
// case-insensitive title.
func resolveTodo(todos []state.Todo, ref string) (state.Todo, error) {
	for _, t := range todos {
		if t.ID == ref {
			return t, nil
		}
	}

	prefix := strings.ToLower(ref)
	var matches []state.Todo
	for _, t := range todos {
		if strings.HasPrefix(t.ID, prefix) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return state.Todo{}, fmt.Errorf("ambiguous todo id %q (%d matches)", ref, len(matches))
	}

	matches = matches[:0]
	for _, t := range todos {
		if strings.EqualFold(t.Title, ref) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return state.Todo{}, fmt.Errorf("ambiguous todo title %q (%d matches)", ref, len(matches))
	}
	return state.Todo{}, fmt.Errorf("no todo matching %q", ref)
}

func findTodo(todos []state.Todo, id string) (state.Todo, bool) {
	for _, t := range todos {
		if t.ID == id {
			return t, true
		}
	}
	return state.Todo{}, false
}

// printTodosByStatus prints todos of a specific completion state.
func printTodosByStatus(label string, todos []state.Todo, completed bool, names map[string]string, verbose bool) {
	var matching []state.Todo
	for _, t := range todos {
		if t.Completed == completed {
			matching = append(matching, t)
		}
	}
	if len(matching) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(matching))
	for _, t := range matching {
		printTodo(t, names, verbose)
	}
	fmt.Println()
}

func printTodo(todo state.Todo, names map[string]string, verbose bool) {
	icon := iconActive
	if todo.Completed {
		icon = iconDone
	}
	line := fmt.Sprintf("  %s [%s] %s", icon, shortID(todo.ID), todo.Title)
	if todo.CategoryID != state.UncategorizedID {
		if name := names[todo.CategoryID]; name != "" {
			line += fmt.Sprintf(" (%s)", name)
		}
	}
	fmt.Println(line)
	if verbose {
		fmt.Printf("      id %s  created %s  updated %s\n",
			todo.ID, formatMillis(todo.CreatedAt), formatMillis(todo.UpdatedAt))
	}
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func categoryNames(cats []state.Category) map[string]string {
	names := make(map[string]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}
	return names
}
