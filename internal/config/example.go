package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# kept configuration file
# Every value here can be overridden by KEPT_* environment variables or
# CLI flags.

# Where the todo state lives (supports ~ and $VAR expansion)
state_file = "~/.kept/state.json"

# Schema file overriding the bundled state schema
# schema_file = "~/.kept/state.schema.json"

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"

# Show timestamps in logs
log_timestamps = false
`
}
