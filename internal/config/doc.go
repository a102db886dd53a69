// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.kept/config.toml or OS-specific config directory)
// 3. Project config file (kept.toml or .kept.toml in the current directory)
// 4. Environment variables (KEPT_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// KEPT_CONFIG points at an explicit config file and replaces the user and
// project file discovery entirely.
//
// User-level config locations:
// - ~/.kept/config.toml (preferred)
// - Windows: %APPDATA%\kept\config.toml
// - macOS: ~/Library/Application Support/kept/config.toml
// - Linux/BSD: $XDG_CONFIG_HOME/kept/config.toml or ~/.config/kept/config.toml
//
// Project-level config locations (overrides user config):
// - ./kept.toml (preferred)
// - ./.kept.toml
package config
