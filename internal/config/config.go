package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/nikolayk812/storefront/internal/shopify"
	"github.com/nikolayk812/storefront/internal/variant"
	"github.com/spf13/viper"
)

const envPrefix = "STOREFRONT"

const (
	CommerceShopify = "shopify"
	CommerceMemory  = "memory"

	SessionMemory   = "memory"
	SessionPostgres = "postgres"
	SessionRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Commerce CommerceConfig
	Shopify  ShopifyConfig
	Session  SessionConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Picker   PickerConfig
}

type AppConfig struct {
	Env  string
	Port string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

type CommerceConfig struct {
	Backend string // shopify, memory
}

type ShopifyConfig struct {
	StoreDomain string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	RateLimit   float64
	RateBurst   int
}

type SessionConfig struct {
	Backend    string // memory, postgres, redis
	CookieName string
	TTL        time.Duration
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PickerConfig struct {
	LowStockThreshold int
	StockAware        bool
}

// Load reads configuration with priority, highest first:
// 1. Environment variables with STOREFRONT_ prefix (e.g. STOREFRONT_SHOPIFY_ACCESS_TOKEN)
// 2. .env file in the working directory
// 3. config.toml
// 4. Built-in defaults
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Commerce: CommerceConfig{
			Backend: v.GetString("commerce.backend"),
		},
		Shopify: ShopifyConfig{
			StoreDomain: v.GetString("shopify.store_domain"),
			AccessToken: v.GetString("shopify.access_token"),
			APIVersion:  v.GetString("shopify.api_version"),
			Timeout:     v.GetDuration("shopify.timeout"),
			RateLimit:   v.GetFloat64("shopify.rate_limit"),
			RateBurst:   v.GetInt("shopify.rate_burst"),
		},
		Session: SessionConfig{
			Backend:    v.GetString("session.backend"),
			CookieName: v.GetString("session.cookie_name"),
			TTL:        v.GetDuration("session.ttl"),
		},
		Database: DatabaseConfig{
			URL: v.GetString("database.url"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Picker: PickerConfig{
			LowStockThreshold: v.GetInt("picker.low_stock_threshold"),
			StockAware:        v.GetBool("picker.stock_aware"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Commerce.Backend == "" {
		cfg.Commerce.Backend = CommerceShopify
	}
	if cfg.Shopify.APIVersion == "" {
		cfg.Shopify.APIVersion = shopify.DefaultAPIVersion
	}
	if cfg.Shopify.Timeout == 0 {
		cfg.Shopify.Timeout = shopify.DefaultTimeout
	}
	if cfg.Shopify.RateLimit > 0 && cfg.Shopify.RateBurst == 0 {
		cfg.Shopify.RateBurst = 1
	}
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = SessionMemory
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "sid"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 30 * 24 * time.Hour
	}
	if cfg.Picker.LowStockThreshold == 0 {
		cfg.Picker.LowStockThreshold = variant.DefaultLowStockThreshold
	}
}

// Validate reports every missing or inconsistent setting at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Commerce.Backend {
	case CommerceShopify:
		if err := c.ShopifyClientConfig().Validate(); err != nil {
			errs = append(errs, err)
		}
	case CommerceMemory:
		if c.App.Env == "production" {
			errs = append(errs, fmt.Errorf("commerce.backend=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("commerce.backend %q is not supported", c.Commerce.Backend))
	}

	switch c.Session.Backend {
	case SessionMemory:
	case SessionPostgres:
		if c.Database.URL == "" {
			errs = append(errs, fmt.Errorf("database.url is required for session.backend=postgres"))
		}
	case SessionRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, fmt.Errorf("redis.addr is required for session.backend=redis"))
		}
	default:
		errs = append(errs, fmt.Errorf("session.backend %q is not supported", c.Session.Backend))
	}

	if c.Shopify.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("shopify.rate_limit cannot be negative"))
	}
	if c.Picker.LowStockThreshold < 0 {
		errs = append(errs, fmt.Errorf("picker.low_stock_threshold cannot be negative"))
	}

	return errors.Join(errs...)
}

func (c *Config) ShopifyClientConfig() shopify.Config {
	return shopify.Config{
		StoreDomain: c.Shopify.StoreDomain,
		AccessToken: c.Shopify.AccessToken,
		APIVersion:  c.Shopify.APIVersion,
		Timeout:     c.Shopify.Timeout,
		RateLimit:   c.Shopify.RateLimit,
		RateBurst:   c.Shopify.RateBurst,
	}
}

func (c *Config) PickerViewConfig() variant.Config {
	return variant.Config{
		LowStockThreshold: c.Picker.LowStockThreshold,
		StockAware:        c.Picker.StockAware,
	}
}
