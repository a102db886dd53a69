package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/state"
)

// catCommand dispatches the category subcommands. With no subcommand it
// lists categories.
func catCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	sub := "ls"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub = args[0]
		args = args[1:]
	}

	switch sub {
	case "ls":
		return catLsCommand(cfg, logger, args)
	case "add":
		return catAddCommand(cfg, logger, args)
	case "mv":
		return catMvCommand(cfg, logger, args)
	case "rm":
		return catRmCommand(cfg, logger, args)
	default:
		return fmt.Errorf("unknown cat subcommand: %s (expected ls|add|mv|rm)", sub)
	}
}

// catLsCommand lists categories with their todo counts.
func catLsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept cat ls", flag.ContinueOnError)

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

	counts := s.CountsByCategory()
	for _, cat := range s.Categories() {
		fmt.Printf("  [%s] %s (%d)\n", shortID(cat.ID), cat.Name, counts[cat.ID])
	}
	return nil
}

// catAddCommand creates a new category.
func catAddCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept cat add", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("cat add requires a name")
	}
	name := strings.TrimSpace(strings.Join(remaining, " "))
	if name == "" {
		return fmt.Errorf("category name cannot be empty")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	for _, cat := range s.Categories() {
		if strings.EqualFold(cat.Name, name) {
			return fmt.Errorf("category %q already exists", cat.Name)
		}
	}

	s.AddCategory(name)
	cats := s.Categories()
	added := cats[len(cats)-1]
	fmt.Printf("Added category [%s] %s\n", shortID(added.ID), added.Name)
	return nil
}

// catMvCommand renames a category.
func catMvCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept cat mv", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) < 2 {
		return fmt.Errorf("cat mv requires a category and a new name")
	}
	name := strings.TrimSpace(strings.Join(remaining[1:], " "))
	if name == "" {
		return fmt.Errorf("category name cannot be empty")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	cat, err := resolveCategory(s.Categories(), remaining[0])
	if err != nil {
		return err
	}
	if cat.ID == state.UncategorizedID {
		return fmt.Errorf("the %s category cannot be renamed", state.UncategorizedName)
	}

	s.RenameCategory(cat.ID, name)
	fmt.Printf("Renamed category %q to %q\n", cat.Name, name)
	return nil
}

// catRmCommand deletes a category, moving its todos to the sentinel.
func catRmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept cat rm", flag.ContinueOnError)

	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) != 1 {
		return fmt.Errorf("cat rm requires exactly one category reference")
	}

	s, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	cat, err := resolveCategory(s.Categories(), remaining[0])
	if err != nil {
		return err
	}
	if cat.ID == state.UncategorizedID {
		return fmt.Errorf("the %s category cannot be deleted", state.UncategorizedName)
	}

	moved := s.CountsByCategory()[cat.ID]
	s.DeleteCategory(cat.ID)
	if moved > 0 {
		fmt.Printf("Deleted category %q; %d todos moved to %s\n", cat.Name, moved, state.UncategorizedName)
	} else {
		fmt.Printf("Deleted category %q\n", cat.Name)
	}
	return nil
}

// resolveCategory finds a category by exact case-insensitive name, exact
// id, or unique id prefix.
func resolveCategory(cats []state.Category, ref string) (state.Category, error) {
	var matches []state.Category
	for _, c := range cats {
		if strings.EqualFold(c.Name, ref) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return state.Category{}, fmt.Errorf("ambiguous category name %q (%d matches)", ref, len(matches))
	}

	for _, c := range cats {
		if c.ID == ref {
			return c, nil
		}
	}

	prefix := strings.ToLower(ref)
	matches = matches[:0]
	for _, c := range cats {
		if strings.HasPrefix(c.ID, prefix) {
			matches = append(matches, c)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return state.Category{}, fmt.Errorf("ambiguous category id %q (%d matches)", ref, len(matches))
	}
	return state.Category{}, fmt.Errorf("no category matching %q", ref)
}
