package config

// DefaultConfig returns the baseline configuration used when no file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Port:          8080,
		DataDir:       ".agribot",
		BotName:       "AgriBot",
		DefaultRegion: "centre",
		LogLevel:      "info",
	}
}
