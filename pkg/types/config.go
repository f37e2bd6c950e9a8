package types

// NotebookFile is the notebook the launcher executes. It always lives next to
// the launcher executable and is never taken from the caller.
const NotebookFile = "report.ipynb"

// HistoryConfig holds settings for the run history store.
type HistoryConfig struct {
	// Enabled turns run recording on or off (default true).
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding runs.db, relative to the launcher directory
	// unless absolute (default ".report-runner").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Limit is the number of runs listed by the history command (default 20).
	Limit int `json:"limit" yaml:"limit" mapstructure:"limit"`
}

// SettingsConfig locates the report settings file shared with the notebook.
type SettingsConfig struct {
	// File is the settings file name, relative to the launcher directory
	// unless absolute (default "config.yaml").
	File string `json:"file" yaml:"file" mapstructure:"file"`
}

// LogConfig holds diagnostic logging settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default "warn").
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// RunnerConfig groups all launcher settings.
type RunnerConfig struct {
	// Tool is the notebook-execution binary looked up on PATH (default "jupyter").
	Tool string `json:"tool" yaml:"tool" mapstructure:"tool"`

	History  HistoryConfig  `json:"history" yaml:"history" mapstructure:"history"`
	Settings SettingsConfig `json:"settings" yaml:"settings" mapstructure:"settings"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

// Defaults applied when neither a config file nor the environment sets a key.
const (
	DefaultTool         = "jupyter"
	DefaultHistoryDir   = ".report-runner"
	DefaultHistoryLimit = 20
	DefaultSettingsFile = "config.yaml"
	DefaultLogLevel     = "warn"
)

// DefaultRunnerConfig returns a RunnerConfig populated with defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Tool: DefaultTool,
		History: HistoryConfig{
			Enabled: true,
			Dir:     DefaultHistoryDir,
			Limit:   DefaultHistoryLimit,
		},
		Settings: SettingsConfig{File: DefaultSettingsFile},
		Log:      LogConfig{Level: DefaultLogLevel},
	}
}
