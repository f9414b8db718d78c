package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/valter-silva-au/ztask/pkg/models"
)

// ConfigFileName is the name of the config file inside the ztask home.
const ConfigFileName = "config.yaml"

// EnvPrefix prefixes environment overrides, e.g. ZTASK_DB.
const EnvPrefix = "ZTASK"

// ConfigurationManager loads and validates ztask settings from config.yaml
// and ZTASK_* environment variables.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	ValidateConfig(cfg *models.Config) error
	WriteDefaultConfig() error
	ConfigPath() string
}

// viperConfigManager implements ConfigurationManager using Viper.
type viperConfigManager struct {
	// home is the directory holding config.yaml.
	home string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// config.yaml from home.
func NewConfigurationManager(home string) ConfigurationManager {
	return &viperConfigManager{home: home}
}

// DefaultConfig returns the settings used when nothing is configured. The db
// path keeps its variables unexpanded; callers expand it at open time.
func DefaultConfig() *models.Config {
	return &models.Config{
		DBPath:          "$HOME/.ztask/taskdb.json",
		MinPrefixLength: 0,
		DefaultPriority: models.DefaultPriority,
		DefaultCategory: models.DefaultCategory,
		LogLevel:        "warn",
		IDWidth:         9,
	}
}

func (cm *viperConfigManager) ConfigPath() string {
	return filepath.Join(cm.home, ConfigFileName)
}

// LoadConfig reads config.yaml from the home directory and applies ZTASK_*
// overrides. A missing file yields the defaults.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	def := DefaultConfig()

	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(ConfigFileName, filepath.Ext(ConfigFileName)))
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.home)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("db", def.DBPath)
	v.SetDefault("min_prefix_length", def.MinPrefixLength)
	v.SetDefault("default_priority", def.DefaultPriority)
	v.SetDefault("default_category", def.DefaultCategory)
	v.SetDefault("editor", def.Editor)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("id_width", def.IDWidth)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading %s: %w", cm.ConfigPath(), err)
		}
	}

	cfg := &models.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// ValidateConfig checks cfg for out of range values and reports all of them.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if strings.TrimSpace(cfg.DBPath) == "" {
		errs = append(errs, "db must not be empty")
	}
	if cfg.MinPrefixLength < 0 {
		errs = append(errs, fmt.Sprintf("min_prefix_length must be non-negative, got %d", cfg.MinPrefixLength))
	}
	if cfg.DefaultPriority < models.MinPriority || cfg.DefaultPriority > models.MaxPriority {
		errs = append(errs, fmt.Sprintf(
			"default_priority %d is invalid, must be between %d and %d",
			cfg.DefaultPriority, models.MinPriority, models.MaxPriority,
		))
	}
	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Sprintf(
			"log_level %q is invalid, must be one of: debug, info, warn, error",
			cfg.LogLevel,
		))
	}
	if cfg.IDWidth < 4 || cfg.IDWidth > 32 {
		errs = append(errs, fmt.Sprintf("id_width %d is invalid, must be between 4 and 32", cfg.IDWidth))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// WriteDefaultConfig writes the default settings to config.yaml. An existing
// file is left alone.
func (cm *viperConfigManager) WriteDefaultConfig() error {
	path := cm.ConfigPath()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("writing default config: %s already exists", path)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("writing default config: marshaling YAML: %w", err)
	}
	if err := os.MkdirAll(cm.home, 0o750); err != nil {
		return fmt.Errorf("writing default config: creating directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
