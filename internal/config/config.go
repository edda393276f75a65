package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/quote-compare-cli/internal/ingest"
	"github.com/sells-group/quote-compare-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Ingest IngestConfig `yaml:"ingest" mapstructure:"ingest"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string           `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string           `yaml:"database_url" mapstructure:"database_url"`
	Pool        store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// IngestConfig configures spreadsheet ingestion.
type IngestConfig struct {
	MaxFileMB  int64          `yaml:"max_file_mb" mapstructure:"max_file_mb"`
	SheetIndex int            `yaml:"sheet_index" mapstructure:"sheet_index"`
	Columns    ingest.Columns `yaml:"columns" mapstructure:"columns"`
}

// Options converts the config into ingest options.
func (c IngestConfig) Options() ingest.Options {
	return ingest.Options{
		Columns:      c.Columns,
		MaxFileBytes: c.MaxFileMB << 20,
		SheetIndex:   c.SheetIndex,
	}
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("QUOTECOMP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "quotes.db")
	v.SetDefault("ingest.max_file_mb", 10)
	v.SetDefault("ingest.sheet_index", 0)
	cols := ingest.DefaultColumns()
	v.SetDefault("ingest.columns.article", cols.Article)
	v.SetDefault("ingest.columns.series", cols.Series)
	v.SetDefault("ingest.columns.material", cols.Material)
	v.SetDefault("ingest.columns.supplier", cols.Supplier)
	v.SetDefault("ingest.columns.price", cols.Price)
	v.SetDefault("ingest.columns.quoted_at", cols.QuotedAt)
	v.SetDefault("server.port", 8080)
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
