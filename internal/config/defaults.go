package config

import "time"

// Git defaults
const (
	DefaultGitBinary       = "git"
	DefaultGitTimeout      = 5 * time.Minute
	DefaultPrimaryBranch   = "master"
	DefaultLocatorCacheTTL = 10 * time.Minute
)

// Log file rotation defaults
const (
	DefaultLogMaxSize    = 1 // megabytes
	DefaultLogMaxBackups = 2
	DefaultLogMaxAge     = 30 // days
)

// Tracing defaults
const (
	ExporterStdout = "stdout"
	ExporterOTLP   = "otlp"

	DefaultTracingEndpoint = "localhost:4317"
)

// Output defaults
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)
