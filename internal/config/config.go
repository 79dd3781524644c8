package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Routing RoutingConfig `yaml:"routing" mapstructure:"routing"`
	Google  GoogleConfig  `yaml:"google" mapstructure:"google"`
	ORS     ORSConfig     `yaml:"ors" mapstructure:"ors"`
	Geocode GeocodeConfig `yaml:"geocode" mapstructure:"geocode"`
	Places  PlacesConfig  `yaml:"places" mapstructure:"places"`
	Scrape  ScrapeConfig  `yaml:"scrape" mapstructure:"scrape"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// RoutingConfig configures the batched route matrix.
type RoutingConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider" validate:"oneof=google ors"`
	Mode      string        `yaml:"mode" mapstructure:"mode" validate:"oneof=walking driving"`
	BatchSize int           `yaml:"batch_size" mapstructure:"batch_size" validate:"gte=0"`
	Delay     time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
}

// GoogleConfig holds Google Maps Platform credentials.
type GoogleConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

// ORSConfig holds OpenRouteService credentials.
type ORSConfig struct {
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
}

type GeocodeConfig struct {
	Delay  time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Suffix string        `yaml:"suffix" mapstructure:"suffix"`
}

// PlacesConfig configures place discovery around a town center.
type PlacesConfig struct {
	CenterLat    float64       `yaml:"center_lat" mapstructure:"center_lat" validate:"gte=-90,lte=90"`
	CenterLng    float64       `yaml:"center_lng" mapstructure:"center_lng" validate:"gte=-180,lte=180"`
	RadiusMeters int           `yaml:"radius_meters" mapstructure:"radius_meters" validate:"gt=0"`
	Area         string        `yaml:"area" mapstructure:"area"`
	Locality     string        `yaml:"locality" mapstructure:"locality"`
	Delay        time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	PageDelay    time.Duration `yaml:"page_delay" mapstructure:"page_delay" validate:"gte=0"`
}

// ScrapeConfig configures listing page fetches.
type ScrapeConfig struct {
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts" validate:"gte=1,lte=10"`
	Backoff     time.Duration `yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	Settle      time.Duration `yaml:"settle" mapstructure:"settle" validate:"gte=0"`
	Delay       time.Duration `yaml:"delay" mapstructure:"delay" validate:"gte=0"`
	Timeout     time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	UserAgent   string        `yaml:"user_agent" mapstructure:"user_agent"`
}

// CacheConfig selects where route and geocode answers are kept between runs.
type CacheConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver" validate:"oneof=none memory sqlite postgres"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url" validate:"required_if=Driver postgres"`
	MemorySize  int    `yaml:"memory_size" mapstructure:"memory_size" validate:"gt=0"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Load reads configuration from .env, config.yaml and the environment.
func Load() (*Config, error) {
	// .env only seeds the process environment; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GEOENRICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The backends' conventional variable names are accepted as well.
	if err := v.BindEnv("google.api_key", "GEOENRICH_GOOGLE_API_KEY", "GOOGLE_MAPS_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind google key")
	}
	if err := v.BindEnv("ors.api_key", "GEOENRICH_ORS_API_KEY", "ORS_API_KEY"); err != nil {
		return nil, eris.Wrap(err, "config: bind ors key")
	}

	// Defaults
	v.SetDefault("routing.provider", "google")
	v.SetDefault("routing.mode", "walking")
	v.SetDefault("routing.batch_size", 25)
	v.SetDefault("routing.delay", 500*time.Millisecond)
	v.SetDefault("routing.timeout", 10*time.Second)
	v.SetDefault("google.base_url", "")
	v.SetDefault("ors.base_url", "")
	v.SetDefault("geocode.delay", 500*time.Millisecond)
	v.SetDefault("geocode.suffix", ", Davis, CA")
	v.SetDefault("places.center_lat", 38.5449)
	v.SetDefault("places.center_lng", -121.7405)
	v.SetDefault("places.radius_meters", 9656)
	v.SetDefault("places.area", "Davis, CA")
	v.SetDefault("places.locality", "Davis")
	v.SetDefault("places.delay", 500*time.Millisecond)
	v.SetDefault("places.page_delay", 2*time.Second)
	v.SetDefault("scrape.max_attempts", 3)
	v.SetDefault("scrape.backoff", 5*time.Second)
	v.SetDefault("scrape.settle", time.Duration(0))
	v.SetDefault("scrape.delay", 4*time.Second)
	v.SetDefault("scrape.timeout", 30*time.Second)
	v.SetDefault("scrape.user_agent", "")
	v.SetDefault("cache.driver", "none")
	v.SetDefault("cache.sqlite_path", "data/geoenrich-cache.db")
	v.SetDefault("cache.database_url", "")
	v.SetDefault("cache.memory_size", 10000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return eris.Wrap(err, "config: invalid")
	}
	return nil
}

// APIKey returns the key of a routing provider, failing when it is unset.
func (c *Config) APIKey(provider string) (string, error) {
	var key, name string
	switch provider {
	case "google":
		key, name = c.Google.APIKey, "GOOGLE_MAPS_API_KEY"
	case "ors":
		key, name = c.ORS.APIKey, "ORS_API_KEY"
	default:
		return "", eris.Errorf("config: unknown provider %q", provider)
	}
	if strings.TrimSpace(key) == "" {
		return "", eris.Errorf("config: %s is required", name)
	}
	return key, nil
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
