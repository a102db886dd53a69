package config

import (
	"flag"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.kept/config.toml or OS-specific config dir)
// 3. Project config file (kept.toml or .kept.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// KEPT_CONFIG, when set, names an explicit config file loaded instead of
// steps 2 and 3.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2/3. Load config files (explicit override or user then project)
	if explicit := explicitConfigFile(); explicit != "" {
		if _, err := loadConfigFile(cfg, explicit); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		if userFile := findUserConfigFile(); userFile != "" {
			if _, err := loadConfigFile(cfg, userFile); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
			}
		}
		if projFile := findProjectConfigFile(); projFile != "" {
			if _, err := loadConfigFile(cfg, projFile); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
			}
		}
	}

	// 4. Override from environment
	loadFromEnv(cfg)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalizeConfig(cfg)

	return cfg, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Returns ConfigWithSources containing the config and a map of field names
// to their sources. The doctor command uses this to show where each
// setting came from.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2/3. Load config files (explicit override or user then project)
	if explicit := explicitConfigFile(); explicit != "" {
		if err := loadConfigFileWithSources(cfg, explicit, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", explicit, err)
		}
	} else {
		if userFile := findUserConfigFile(); userFile != "" {
			if err := loadConfigFileWithSources(cfg, userFile, sources, SourceUserFile); err != nil {
				return nil, fmt.Errorf("loading user config file %s: %w", userFile, err)
			}
		}
		if projFile := findProjectConfigFile(); projFile != "" {
			if err := loadConfigFileWithSources(cfg, projFile, sources, SourceProjFile); err != nil {
				return nil, fmt.Errorf("loading project config file %s: %w", projFile, err)
			}
		}
	}

	// 4. Override from environment
	loadFromEnvWithSources(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlagsWithSources(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	finalizeConfig(cfg)

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"state_file",
		"schema_file",
		"log_level",
		"log_format",
		"log_timestamps",
	}
}

// loadConfigFile loads TOML config from the given file. Unknown keys are
// ignored.
func loadConfigFile(cfg *Config, path string) (toml.MetaData, error) {
	return toml.DecodeFile(path, cfg)
}

// loadConfigFileWithSources loads TOML config and updates source tracking
// for the keys the file actually defines.
func loadConfigFileWithSources(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := loadConfigFile(cfg, path)
	if err != nil {
		return err
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig computes derived values.
func finalizeConfig(cfg *Config) {
	// Expand ~ in paths
	cfg.StateFile = expandPath(cfg.StateFile)
	cfg.SchemaFile = expandPath(cfg.SchemaFile)
}
