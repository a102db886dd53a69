// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keptlist/kept/internal/store"
)

// Option configures the TUI behavior.
type Option func(*uiConfig)

// uiConfig holds TUI configuration.
type uiConfig struct {
	programOptions []tea.ProgramOption
}

// WithProgramOptions appends extra bubbletea program options, for example
// to run without a renderer in tests.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(c *uiConfig) {
		c.programOptions = append(c.programOptions, opts...)
	}
}

// RunTUI starts the interactive todo list over the given store.
func RunTUI(ctx context.Context, s *store.Store, opts ...Option) error {
	c := &uiConfig{}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	return runProgram(ctx, newTUIModel(s), c.programOptions)
}

func runProgram(ctx context.Context, model *tuiModel, extra []tea.ProgramOption) error {
	options := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, extra...)
	program := tea.NewProgram(model, options...)
	_, err := program.Run()
	return err
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, _ := f.Stat()
	return (info.Mode() & os.ModeCharDevice) != 0
}
