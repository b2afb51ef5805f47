package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultInputPath is the export the analysis was written against.
const DefaultInputPath = "data/all_apps_wide_2026-02-04.csv"

// Config holds the full application configuration.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Filter FilterConfig `yaml:"filter" mapstructure:"filter"`
	Design DesignConfig `yaml:"design" mapstructure:"design"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig locates the session export. Sheet names an XLSX worksheet,
// or gives its zero-based index when no sheet has that name.
type InputConfig struct {
	Path     string `yaml:"path" mapstructure:"path"`
	Encoding string `yaml:"encoding" mapstructure:"encoding"`
	Sheet    string `yaml:"sheet" mapstructure:"sheet"`
}

// FilterConfig holds the sentinels that mark real participants.
type FilterConfig struct {
	CompletedPage   string `yaml:"completed_page" mapstructure:"completed_page"`
	ExcludedSession string `yaml:"excluded_session" mapstructure:"excluded_session"`
}

// DesignConfig optionally replaces the built-in treatment sequence.
type DesignConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig configures report and export artifacts.
type OutputConfig struct {
	Dir        string `yaml:"dir" mapstructure:"dir"`
	CSVBOM     bool   `yaml:"csv_bom" mapstructure:"csv_bom"`
	SQLitePath string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BARGAIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", DefaultInputPath)
	v.SetDefault("input.encoding", "utf-8")
	v.SetDefault("input.sheet", "")
	v.SetDefault("filter.completed_page", "Results")
	v.SetDefault("filter.excluded_session", "Full Experiment")
	v.SetDefault("design.path", "")
	v.SetDefault("output.dir", "results")
	v.SetDefault("output.csv_bom", true)
	v.SetDefault("output.sqlite_path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. Mode is "run" or
// "validate".
func (c *Config) Validate(mode string) error {
	var errs []string

	if c.Input.Path == "" {
		errs = append(errs, "input.path is required")
	}
	if c.Filter.CompletedPage == "" {
		errs = append(errs, "filter.completed_page is required")
	}

	switch mode {
	case "run":
		if c.Output.Dir == "" {
			errs = append(errs, "output.dir is required")
		}
	case "validate":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
