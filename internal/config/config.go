// Package config loads application configuration from file and environment
// and initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Ingest   IngestConfig   `yaml:"ingest" mapstructure:"ingest"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
}

// StoreConfig configures the run-history database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ServerConfig configures the results API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// IngestConfig configures source file parsing.
type IngestConfig struct {
	SheetName string            `yaml:"sheet_name" mapstructure:"sheet_name"`
	ColumnMap map[string]string `yaml:"column_map" mapstructure:"column_map"` // field -> source column header
}

// KeyCheck is one entry of the canonical check-priority list. Match is a
// case-insensitive substring applied to discovered check slugs.
type KeyCheck struct {
	Label string `yaml:"label" mapstructure:"label"`
	Match string `yaml:"match" mapstructure:"match"`
}

// AnalysisConfig configures the transformation and mining engine.
type AnalysisConfig struct {
	COGSBins             []float64         `yaml:"cogs_bins" mapstructure:"cogs_bins"`
	DispositionSynonyms  map[string]string `yaml:"disposition_synonyms" mapstructure:"disposition_synonyms"`
	KeyChecks            []KeyCheck        `yaml:"key_checks" mapstructure:"key_checks"`
	HighCOGSThreshold    float64           `yaml:"high_cogs_threshold" mapstructure:"high_cogs_threshold"`
	TopPatterns          int               `yaml:"top_patterns" mapstructure:"top_patterns"`
	CosmeticRecoveryRate float64           `yaml:"cosmetic_recovery_rate" mapstructure:"cosmetic_recovery_rate"`
}

// DefaultKeyChecks is the canonical priority ordering of the routing checks,
// reflecting the order they occur in the repair decision process.
func DefaultKeyChecks() []KeyCheck {
	return []KeyCheck{
		{Label: "IOG", Match: "is_it_iog"},
		{Label: "Something_in_Box", Match: "something_in_the_box"},
		{Label: "TREX_Open", Match: "t_rex_open"},
		{Label: "Expected_Item", Match: "expected_item"},
		{Label: "Fraud", Match: "is_it_fraud"},
		{Label: "Factory_Sealed", Match: "factory_sealed"},
		{Label: "Destroy", Match: "destroyed"},
		{Label: "Scratches_Dents", Match: "scratches_or_dents"},
		{Label: "Works", Match: "does_the_item_work"},
		{Label: "Repairable", Match: "repairable"},
		{Label: "Needs_Parts", Match: "need_parts"},
		{Label: "Has_Parts", Match: "have_parts"},
		{Label: "Needs_Sanitization", Match: "sanitization"},
		{Label: "Factory_Reset", Match: "factory_reset"},
	}
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LIQCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "liquidation.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("analysis.cogs_bins", []float64{1000, 1500, 2000, 2500, 3000})
	v.SetDefault("analysis.disposition_synonyms", map[string]string{
		"liquidate":  "liquidated",
		"liquidated": "liquidated",
		"sellable":   "sellable",
		"sell":       "sellable",
	})
	v.SetDefault("analysis.high_cogs_threshold", 2000.0)
	v.SetDefault("analysis.top_patterns", 20)
	v.SetDefault("analysis.cosmetic_recovery_rate", 0.5)

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

	// The key-check list has ordering semantics, so a YAML default is
	// awkward through viper; fill it here when the file omits it.
	if len(cfg.Analysis.KeyChecks) == 0 {
		cfg.Analysis.KeyChecks = DefaultKeyChecks()
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
