package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagRate   = flag.Float64("rate", 0, "Cubic-spline sampling rate in Hz (0 = importer default)")
	flagOut    = flag.String("out", "", "Output directory")
	flagPretty = flag.Bool("pretty", false, "Indent JSON output")
	flagLog    = flag.String("log", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRate > 0 {
		cfg.Import.SampleRate = float32(*flagRate)
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagPretty {
		cfg.Output.Pretty = true
	}
	if *flagLog != "" {
		cfg.Logging.LogFile = *flagLog
	}
}
