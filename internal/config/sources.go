package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// explicitConfigFile returns the config file named by KEPT_CONFIG, or ""
// when the variable is unset. An explicit file replaces the user and
// project file discovery.
func explicitConfigFile() string {
	return os.Getenv("KEPT_CONFIG")
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{ProjectConfigFile, ".kept.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.kept/config.toml first, then falls back to OS-specific
// config directories if ~/.kept doesn't exist.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".kept", "config.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "kept", "config.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		// Respect XDG_CONFIG_HOME or use ~/.config
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.StateFile = DefaultStateFile
	cfg.SchemaFile = ""
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
}

// GetConfigFile returns the active config file path, preferring the
// project file over the user file.
func (cws *ConfigWithSources) GetConfigFile() string {
	if explicit := explicitConfigFile(); explicit != "" {
		return explicit
	}
	for _, source := range cws.Sources {
		if source == SourceProjFile {
			if projFile := findProjectConfigFile(); projFile != "" {
				return projFile
			}
		}
	}
	for _, source := range cws.Sources {
		if source == SourceUserFile {
			if userFile := findUserConfigFile(); userFile != "" {
				return userFile
			}
		}
	}
	return ""
}
