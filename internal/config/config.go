// Package config handles tool configuration loading and management.
package config

// Config holds all gltf2skel settings.
type Config struct {
	Import  ImportConfig  `yaml:"import"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ImportConfig holds importer settings.
type ImportConfig struct {
	// SampleRate is the cubic-spline resampling rate in Hz. 0 lets the
	// importer pick its default.
	SampleRate float32 `yaml:"sample_rate"`
}

// OutputConfig holds export settings.
type OutputConfig struct {
	Dir    string `yaml:"dir"`    // output directory for written files
	Pretty bool   `yaml:"pretty"` // indent JSON output
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			SampleRate: 0,
		},
		Output: OutputConfig{
			Dir:    ".",
			Pretty: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
