package config

const (
	defaultStateDir           = "~/.local/share/sweeper"
	defaultLogDir             = "~/.local/share/sweeper/logs"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultProgressIntervalMS = 250
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Run: Run{
			Workers:            0, // logical CPU count
			ProgressIntervalMS: defaultProgressIntervalMS,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Journal: Journal{
			Enabled: true,
		},
	}
}
