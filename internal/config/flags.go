package config

import "flag"

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("kept", flag.ContinueOnError)
	}

	if sources == nil {
		// Direct binding: defaults are already in cfg, so unset flags
		// leave it untouched.
		fs.StringVar(&cfg.StateFile, "state", cfg.StateFile, "Path to the state file")
		fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to a schema file overriding the bundled one")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
		fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
		return fs.Parse(args)
	}

	// Bind to locals and apply only the flags that were explicitly set.
	var stateFile, schemaFile, logLevel, logFormat string
	var logTimestamps bool
	fs.StringVar(&stateFile, "state", cfg.StateFile, "")
	fs.StringVar(&schemaFile, "schema", cfg.SchemaFile, "")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "")

	if err := fs.Parse(args); err != nil {
		return err
	}

	flagToSource := map[string]string{
		"state":          "state_file",
		"schema":         "schema_file",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "state":
			cfg.StateFile = stateFile
		case "schema":
			cfg.SchemaFile = schemaFile
		case "log-level":
			cfg.LogLevel = logLevel
		case "log-format":
			cfg.LogFormat = logFormat
		case "log-timestamps":
			cfg.LogTimestamps = logTimestamps
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	return nil
}
