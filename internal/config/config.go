package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/traveler-cli/internal/fielddetect"
	"github.com/sells-group/traveler-cli/internal/geometry"
	"github.com/sells-group/traveler-cli/internal/keys"
	"github.com/sells-group/traveler-cli/internal/route"
	"github.com/sells-group/traveler-cli/internal/traveler"
	"github.com/sells-group/traveler-cli/internal/wcfdate"
)

// Config holds the full application configuration.
type Config struct {
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
	Normalize NormalizeConfig `yaml:"normalize" mapstructure:"normalize"`
	Dump      DumpConfig      `yaml:"dump" mapstructure:"dump"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// NormalizeConfig configures record normalization.
type NormalizeConfig struct {
	OutputUTC        bool     `yaml:"output_utc" mapstructure:"output_utc"`
	StrictDates      bool     `yaml:"strict_dates" mapstructure:"strict_dates"`
	JSONSafe         bool     `yaml:"json_safe" mapstructure:"json_safe"`
	DateKeyPattern   string   `yaml:"date_key_pattern" mapstructure:"date_key_pattern"`
	LocationPrefixes []string `yaml:"location_prefixes" mapstructure:"location_prefixes"`
	PropertySuffixes []string `yaml:"property_suffixes" mapstructure:"property_suffixes"`
}

// DumpConfig configures the dump command.
type DumpConfig struct {
	OutDir      string `yaml:"out_dir" mapstructure:"out_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	TableSchema string `yaml:"table_schema" mapstructure:"table_schema"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("traveler")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRAVELER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	rules := keys.DefaultRules()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("normalize.output_utc", true)
	v.SetDefault("normalize.strict_dates", false)
	v.SetDefault("normalize.json_safe", true)
	v.SetDefault("normalize.date_key_pattern", traveler.DefaultDateKeyPattern)
	v.SetDefault("normalize.location_prefixes", rules.LocationPrefixes)
	v.SetDefault("normalize.property_suffixes", rules.PropertySuffixes)
	v.SetDefault("dump.out_dir", "output")
	v.SetDefault("dump.concurrency", 4)
	v.SetDefault("dump.table_schema", "traveler")

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

// Validate checks the settings a command depends on.
func (c *Config) Validate() error {
	var missing []string
	if len(c.Normalize.LocationPrefixes) == 0 {
		missing = append(missing, "normalize.location_prefixes is required")
	}
	if len(c.Normalize.PropertySuffixes) == 0 {
		missing = append(missing, "normalize.property_suffixes is required")
	}
	if c.Dump.OutDir == "" {
		missing = append(missing, "dump.out_dir is required")
	}
	if c.Dump.Concurrency < 1 {
		missing = append(missing, "dump.concurrency must be at least 1")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: %s", strings.Join(missing, "; "))
	}
	return nil
}

// Engine bundles the immutable tables built from a Config. It is safe to
// share across goroutines.
type Engine struct {
	Parser   *traveler.Parser
	Infer    *fielddetect.Inferencer
	Geometry *geometry.Deriver
	Routes   *route.Parser
	JSONSafe bool
}

// Engine builds the normalization engine described by the normalize section.
func (c *Config) Engine() (*Engine, error) {
	normalizer, err := keys.NewNormalizer(keys.Rules{
		LocationPrefixes: c.Normalize.LocationPrefixes,
		PropertySuffixes: c.Normalize.PropertySuffixes,
	})
	if err != nil {
		return nil, eris.Wrap(err, "config: build key normalizer")
	}

	codec := wcfdate.New(
		wcfdate.WithStrict(c.Normalize.StrictDates),
		wcfdate.WithOutputUTC(c.Normalize.OutputUTC),
	)
	routes := route.DefaultParser()

	parser, err := traveler.NewParser(traveler.Options{
		Normalizer:     normalizer,
		Codec:          &codec,
		Routes:         routes,
		DateKeyPattern: c.Normalize.DateKeyPattern,
	})
	if err != nil {
		return nil, eris.Wrap(err, "config: build parser")
	}

	return &Engine{
		Parser:   parser,
		Infer:    fielddetect.NewInferencer(fielddetect.DefaultRanks()),
		Geometry: geometry.NewDeriver(geometry.DefaultLayouts()),
		Routes:   routes,
		JSONSafe: c.Normalize.JSONSafe,
	}, nil
}

// InitLogger initializes the global zap logger. Logs always go to stderr so
// that command output on stdout stays machine-readable.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	switch cfg.Format {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
	case "json", "":
		zapCfg = zap.NewProductionConfig()
	default:
		return eris.Errorf("config: unknown log format %q", cfg.Format)
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.InitialFields = map[string]any{"app": "traveler-cli"}

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
