// Package config defines run configuration structures and loading hooks.
//
// Conventions:
// - Defaults live in New; Load layers file and environment on top.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Source selects the rank-history provider: opgg or fixture.
	Source string `koanf:"source"`

	// SourceBaseURL overrides the op.gg region host.
	SourceBaseURL string `koanf:"source_base_url"`

	// FixturePath points at the YAML file used by the fixture source.
	FixturePath string `koanf:"fixture_path"`

	// UserAgent is sent with every upstream request.
	UserAgent string `koanf:"user_agent"`

	// HTTPTimeoutMS bounds a single upstream request.
	HTTPTimeoutMS int `koanf:"http_timeout_ms"`

	// Concurrency sets the number of fetch workers; 1 keeps the run sequential.
	Concurrency int `koanf:"concurrency"`

	// QueueSize bounds the fetch job queue.
	QueueSize int `koanf:"queue_size"`

	// SkipFailedPlayers drops players whose retrieval or scoring fails
	// instead of aborting the run.
	SkipFailedPlayers bool `koanf:"skip_failed_players"`

	// OutputDir is where the cohort file is written.
	OutputDir string `koanf:"output_dir"`

	// OutputBase is the cohort file name without extension.
	OutputBase string `koanf:"output_base"`

	// OutputFormat is json, yaml or sqlite; it also picks the extension.
	OutputFormat string `koanf:"output_format"`

	// MetricsFile, when set, receives a Prometheus textfile after the run.
	MetricsFile string `koanf:"metrics_file"`
}

// Supported values.
const (
	SourceOPGG    = "opgg"
	SourceFixture = "fixture"

	FormatJSON   = "json"
	FormatYAML   = "yaml"
	FormatSQLite = "sqlite"
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Source:        SourceOPGG,
		SourceBaseURL: "https://na.op.gg",
		HTTPTimeoutMS: 15_000,
		Concurrency:   1,
		QueueSize:     1024,
		OutputDir:     ".",
		OutputBase:    "coby_output",
		OutputFormat:  FormatJSON,
	}
}
