package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/state"
	"github.com/keptlist/kept/internal/storage"
)

// initCommand creates the project config, state file, and schema file,
// skipping anything that already exists.
func initCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("kept init", flag.ContinueOnError)
	skipConfig := fs.Bool("skip-config", false, "Do not write a project config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	if !*skipConfig {
		if _, err := os.Stat(config.ProjectConfigFile); err == nil {
			fmt.Printf("Config file already exists: %s\n", config.ProjectConfigFile)
		} else if os.IsNotExist(err) {
			if err := os.WriteFile(config.ProjectConfigFile, []byte(config.ExampleConfig()), 0644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}
			fmt.Printf("Created config file: %s\n", config.ProjectConfigFile)
		} else {
			return fmt.Errorf("checking config file: %w", err)
		}
	}

	if _, err := os.Stat(cfg.StateFile); err == nil {
		fmt.Printf("State file already exists: %s\n", cfg.StateFile)
	} else if os.IsNotExist(err) {
		adapter := storage.New(cfg.StateFile)
		if err := adapter.Save(state.Default(time.Now().UnixMilli())); err != nil {
			return fmt.Errorf("writing state file: %w", err)
		}
		fmt.Printf("Created state file: %s\n", cfg.StateFile)
	} else {
		return fmt.Errorf("checking state file: %w", err)
	}

	if cfg.SchemaFile != "" {
		if _, err := os.Stat(cfg.SchemaFile); err == nil {
			fmt.Printf("Schema file already exists: %s\n", cfg.SchemaFile)
		} else if os.IsNotExist(err) {
			if err := os.WriteFile(cfg.SchemaFile, storage.BundledSchema(), 0644); err != nil {
				return fmt.Errorf("writing schema file: %w", err)
			}
			fmt.Printf("Created schema file: %s\n", cfg.SchemaFile)
		} else {
			return fmt.Errorf("checking schema file: %w", err)
		}
	}

	return nil
}
