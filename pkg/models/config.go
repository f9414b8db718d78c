package models

// Config holds the settings read from config.yaml and ZTASK_* variables via Viper.
type Config struct {
	DBPath          string `yaml:"db" mapstructure:"db"`
	MinPrefixLength int    `yaml:"min_prefix_length" mapstructure:"min_prefix_length"`
	DefaultPriority int    `yaml:"default_priority" mapstructure:"default_priority"`
	DefaultCategory string `yaml:"default_category" mapstructure:"default_category"`
	Editor          string `yaml:"editor,omitempty" mapstructure:"editor"`
	LogLevel        string `yaml:"log_level" mapstructure:"log_level"`
	IDWidth         int    `yaml:"id_width" mapstructure:"id_width"`
}
