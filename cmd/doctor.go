package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keptlist/kept/internal/config"
	"github.com/keptlist/kept/internal/storage"
)

// doctorCommand checks config, state file, and schema validity.
func doctorCommand(cws *config.ConfigWithSources, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("kept doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if remaining := fs.Args(); len(remaining) > 0 {
		return fmt.Errorf("unexpected arguments: %v", remaining)
	}

	cfg := cws.Config

	fmt.Println("Kept Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	// Check config
	fmt.Println("Config:")
	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("  ✅ Config file: %s\n", file)
	} else {
		fmt.Println("  ✅ Config file: (none, using defaults)")
	}
	fmt.Printf("  ✅ State file: %s (%s)\n", cfg.StateFile, cws.Sources["state_file"])
	if cfg.SchemaFile != "" {
		fmt.Printf("  ✅ Schema file: %s (%s)\n", cfg.SchemaFile, cws.Sources["schema_file"])
	} else {
		fmt.Println("  ✅ Schema: bundled")
	}
	if validLogLevel(cfg.LogLevel) {
		fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cws.Sources["log_level"])
	} else {
		fmt.Printf("  ⚠️  Log level: %s (unrecognized, falls back to %s)\n", cfg.LogLevel, config.DefaultLogLevel)
	}
	if validLogFormat(cfg.LogFormat) {
		fmt.Printf("  ✅ Log format: %s (%s)\n", cfg.LogFormat, cws.Sources["log_format"])
	} else {
		fmt.Printf("  ⚠️  Log format: %s (unrecognized, falls back to %s)\n", cfg.LogFormat, config.DefaultLogFormat)
	}
	fmt.Println()

	// Check state file
	adapter := storage.New(cfg.StateFile, storage.WithSchemaFile(cfg.SchemaFile))
	fmt.Printf("State file: %s\n", cfg.StateFile)
	info, err := os.Stat(cfg.StateFile)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first change)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if info.IsDir() {
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
		// Validate the file
		result, err := adapter.Validate()
		if err != nil {
			fmt.Printf("  ❌ Parse error: %v\n", err)
			allOK = false
		} else {
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Println("  ✅ Valid")
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose && result.Valid {
				if st, err := adapter.Load(); err == nil {
					fmt.Printf("  Todos: %d\n", len(st.Todos))
					for _, t := range st.Todos {
						fmt.Printf("    - [%s] %s\n", shortID(t.ID), t.Title)
					}
					fmt.Printf("  Categories: %d\n", len(st.Categories))
					for _, c := range st.Categories {
						fmt.Printf("    - [%s] %s\n", shortID(c.ID), c.Name)
					}
				}
			}
		}
	}
	fmt.Println()

	// Check schema file override
	if cfg.SchemaFile != "" {
		fmt.Printf("Schema file: %s\n", cfg.SchemaFile)
		if info, err := os.Stat(cfg.SchemaFile); err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ⚠️  Not found (falling back to the bundled schema)")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
				allOK = false
			}
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else {
			fmt.Println("  ✅ OK")
		}
		fmt.Println()
	}

	// Check state directory
	stateDir := filepath.Dir(cfg.StateFile)
	fmt.Printf("State directory: %s\n", stateDir)
	if _, err := os.Stat(stateDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first save)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Kept may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func validLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		return true
	}
	return false
}

func validLogFormat(format string) bool {
	switch strings.ToLower(format) {
	case "text", "json", "logfmt":
		return true
	}
	return false
}
