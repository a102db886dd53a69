// Package cmd implements the CLI command structure for kept.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/logging"
	"github.com/keptlist/kept/internal/storage"
	"github.com/keptlist/kept/internal/store"
	"github.com/keptlist/kept/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the kept CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("kept", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps)

	// Determine the subcommand
	// If no args or first arg is a flag, open the TUI
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "ls":
		return lsCommand(cfg, logger, remainingArgs)
	case "done":
		return doneCommand(cfg, logger, remainingArgs)
	case "rm":
		return rmCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "mv":
		return mvCommand(cfg, logger, remainingArgs)
	case "assign":
		return assignCommand(cfg, logger, remainingArgs)
	case "cat":
		return catCommand(cfg, logger, remainingArgs)
	case "clear":
		return clearCommand(cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cws, remainingArgs)
	case "init":
		return initCommand(cfg, remainingArgs)
	case "completion":
		return completionCommand(remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore opens the persisted state behind a live store.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	adapter := storage.New(cfg.StateFile, storage.WithSchemaFile(cfg.SchemaFile))
	return store.New(adapter, store.WithLogger(logger))
}

// tuiCommand launches the interactive todo list.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("kept tui", flag.ContinueOnError)

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
	return ui.RunTUI(ctx, s)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("kept version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Kept - A keyboard-driven todo list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  kept [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                    Open the interactive todo list (default command)")
	fmt.Fprintln(w, "  add <title>            Add a todo")
	fmt.Fprintln(w, "  ls                     List todos")
	fmt.Fprintln(w, "  done <todo>            Toggle a todo between active and completed")
	fmt.Fprintln(w, "  rm <todo>              Delete a todo")
	fmt.Fprintln(w, "  edit <todo> <title>    Retitle a todo")
	fmt.Fprintln(w, "  mv <todo> <position>   Move a todo to a 1-based position")
	fmt.Fprintln(w, "  assign <todo> <cat>    Assign a todo to a category")
	fmt.Fprintln(w, "  cat [ls|add|mv|rm]     Manage categories")
	fmt.Fprintln(w, "  clear                  Delete all todos and categories")
	fmt.Fprintln(w, "  doctor                 Check config and state file validity")
	fmt.Fprintln(w, "  init                   Create the config, state, and schema files")
	fmt.Fprintln(w, "  completion <shell>     Print a completion script (bash|zsh|fish|powershell)")
	fmt.Fprintln(w, "  version                Show version information")
	fmt.Fprintln(w, "  help                   Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Todos are referenced by id, unique id prefix, or exact title.")
	fmt.Fprintln(w, "Categories are referenced by name, id, or unique id prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options (use with 'add' command):")
	fmt.Fprintln(w, "  -c string")
	fmt.Fprintln(w, "        Category for the new todo")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -s string")
	fmt.Fprintln(w, "        Filter by status (all|active|completed) for this listing only")
	fmt.Fprintln(w, "  -c string")
	fmt.Fprintln(w, "        Filter by category for this listing only")
	fmt.Fprintln(w, "  -q string")
	fmt.Fprintln(w, "        Filter by title substring for this listing only")
	fmt.Fprintln(w, "  -v    Show more details")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Emit the listing as JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Clear Options (use with 'clear' command):")
	fmt.Fprintln(w, "  -f    Skip the safety check")
	fmt.Fprintln(w, "  -completed")
	fmt.Fprintln(w, "        Remove only completed todos")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Doctor Options (use with 'doctor' command):")
	fmt.Fprintln(w, "  -v    Verbose output")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Init Options (use with 'init' command):")
	fmt.Fprintln(w, "  -skip-config")
	fmt.Fprintln(w, "        Do not write a project config file")
}
