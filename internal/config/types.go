package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultStateFile = "~/.kept/state.json"
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// ProjectConfigFile is the project-level config file name.
const ProjectConfigFile = "kept.toml"

// Config holds the full configuration for kept.
type Config struct {
	// Paths
	StateFile string `toml:"state_file"`
	// SchemaFile overrides the bundled state schema. Empty means bundled.
	SchemaFile string `toml:"schema_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
}
