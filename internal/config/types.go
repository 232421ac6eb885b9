package config

// Config holds all agribot settings. Values load from a YAML file with
// AGRIBOT_* environment overrides on top.
type Config struct {
	Port          int    `yaml:"port" koanf:"port"`
	AllowAllCORS  bool   `yaml:"allow_all_cors" koanf:"allow_all_cors"`
	DataDir       string `yaml:"data_dir" koanf:"data_dir"`
	BotName       string `yaml:"bot_name" koanf:"bot_name"`
	DefaultRegion string `yaml:"default_region" koanf:"default_region"`
	LogLevel      string `yaml:"log_level" koanf:"log_level"`
	LogJSON       bool   `yaml:"log_json" koanf:"log_json"`
}
