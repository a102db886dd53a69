package cmd

import (
	"testing"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/state"
)

func reopenCategories(t *testing.T, cfg *config.Config) []state.Category {
	t.Helper()
	s, err := openStore(cfg, testLogger())
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	return s.Categories()
}

func TestCatAddCommand(t *testing.T) {
	cfg := testConfig(t)

	if err := catAddCommand(cfg, testLogger(), []string{"Work"}); err != nil {
		t.Fatalf("catAddCommand failed: %v", err)
	}

	cats := reopenCategories(t, cfg)
	if len(cats) != 2 {
		t.Fatalf("categories: got %d, want 2", len(cats))
	}
	if cats[1].Name != "Work" {
		t.Errorf("Name: got %q, want %q", cats[1].Name, "Work")
	}

	// Names are unique ignoring case.
	if err := catAddCommand(cfg, testLogger(), []string{"work"}); err == nil {
		t.Error("expected error for duplicate name")
	}
	if err := catAddCommand(cfg, testLogger(), []string{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestCatMvCommand(t *testing.T) {
	cfg := testConfig(t)
	if err := catAddCommand(cfg, testLogger(), []string{"Work"}); err != nil {
		t.Fatalf("catAddCommand failed: %v", err)
	}

	if err := catMvCommand(cfg, testLogger(), []string{"Work", "Office"}); err != nil {
		t.Fatalf("catMvCommand failed: %v", err)
	}
	if cats := reopenCategories(t, cfg); cats[1].Name != "Office" {
		t.Errorf("Name: got %q, want %q", cats[1].Name, "Office")
	}

	if err := catMvCommand(cfg, testLogger(), []string{"Uncategorized", "Misc"}); err == nil {
		t.Error("expected error renaming the sentinel category")
	}
}

func TestCatRmCommand(t *testing.T) {
	cfg := testConfig(t)
	if err := catAddCommand(cfg, testLogger(), []string{"Work"}); err != nil {
		t.Fatalf("catAddCommand failed: %v", err)
	}
	if err := addCommand(cfg, testLogger(), []string{"-c", "Work", "Write", "report"}); err != nil {
		t.Fatalf("addCommand failed: %v", err)
	}

	if err := catRmCommand(cfg, testLogger(), []string{"Work"}); err != nil {
		t.Fatalf("catRmCommand failed: %v", err)
	}

	cats := reopenCategories(t, cfg)
	if len(cats) != 1 {
		t.Fatalf("categories: got %d, want 1", len(cats))
	}
	if todos := reopen(t, cfg); todos[0].CategoryID != state.UncategorizedID {
		t.Errorf("CategoryID: got %q, want %q", todos[0].CategoryID, state.UncategorizedID)
	}

	if err := catRmCommand(cfg, testLogger(), []string{"Uncategorized"}); err == nil {
		t.Error("expected error deleting the sentinel category")
	}
}

func TestCatCommandDispatch(t *testing.T) {
	cfg := testConfig(t)

	// Bare cat lists.
	if err := catCommand(cfg, testLogger(), []string{}); err != nil {
		t.Errorf("cat with no subcommand failed: %v", err)
	}
	if err := catCommand(cfg, testLogger(), []string{"add", "Work"}); err != nil {
		t.Errorf("cat add failed: %v", err)
	}
	if err := catCommand(cfg, testLogger(), []string{"bogus"}); err == nil {
		t.Error("expected error for unknown subcommand")
	}
}
