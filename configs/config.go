package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/UTarts/RASRAJ-themithaishop/internal/backend"
	"github.com/UTarts/RASRAJ-themithaishop/internal/domain"
	"github.com/UTarts/RASRAJ-themithaishop/internal/kv"
	"github.com/UTarts/RASRAJ-themithaishop/internal/pricing"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/circuitbreaker"
	"github.com/UTarts/RASRAJ-themithaishop/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "STOREFRONT_"

type Config struct {
	HTTP struct {
		Addr            string        `koanf:"addr"`
		ReadTimeout     time.Duration `koanf:"read_timeout"`
		WriteTimeout    time.Duration `koanf:"write_timeout"`
		IdleTimeout     time.Duration `koanf:"idle_timeout"`
		ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	} `koanf:"http"`

	Backend struct {
		BaseURL string        `koanf:"base_url"`
		Timeout time.Duration `koanf:"timeout"`
		Breaker struct {
			MaxRequests         uint32        `koanf:"max_requests"`
			Interval            time.Duration `koanf:"interval"`
			Timeout             time.Duration `koanf:"timeout"`
			ConsecutiveFailures uint32        `koanf:"consecutive_failures"`
		} `koanf:"breaker"`
	} `koanf:"backend"`

	Pricing struct {
		// Whole rupees.
		FreeDeliveryThreshold int64  `koanf:"free_delivery_threshold"`
		DeliveryFee           int64  `koanf:"delivery_fee"`
		CouponPolicy          string `koanf:"coupon_policy"`
	} `koanf:"pricing"`

	Store struct {
		Driver     string `koanf:"driver"`
		SQLitePath string `koanf:"sqlite_path"`
		Postgres   struct {
			Host     string `koanf:"host"`
			Port     int    `koanf:"port"`
			User     string `koanf:"user"`
			Password string `koanf:"password"`
			DBName   string `koanf:"dbname"`
			SSLMode  string `koanf:"sslmode"`
		} `koanf:"postgres"`
		Redis struct {
			Addr     string        `koanf:"addr"`
			Password string        `koanf:"password"`
			DB       int           `koanf:"db"`
			Prefix   string        `koanf:"prefix"`
			TTL      time.Duration `koanf:"ttl"`
		} `koanf:"redis"`
		Mongo struct {
			URI        string `koanf:"uri"`
			Database   string `koanf:"database"`
			Collection string `koanf:"collection"`
		} `koanf:"mongo"`
	} `koanf:"store"`

	Events struct {
		Brokers []string      `koanf:"brokers"`
		Timeout time.Duration `koanf:"timeout"`
	} `koanf:"events"`

	Log struct {
		Level      string `koanf:"level"`
		File       string `koanf:"file"`
		MaxSizeMB  int    `koanf:"max_size_mb"`
		MaxBackups int    `koanf:"max_backups"`
		MaxAgeDays int    `koanf:"max_age_days"`
	} `koanf:"log"`

	Session struct {
		CookieName   string        `koanf:"cookie_name"`
		CookieSecure bool          `koanf:"cookie_secure"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
		SweepEvery   time.Duration `koanf:"sweep_every"`
	} `koanf:"session"`
}

// Load reads base.yaml, then <envName>.yaml, then STOREFRONT_ variables
// (nested keys joined with __, e.g. STOREFRONT_STORE__DRIVER). A .env file in
// the working directory is loaded into the environment first when present.
func Load(pathDir, envName string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(filepath.Join(pathDir, "base.yaml")), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load base: %w", err)
	}

	// optional per-environment overlay
	if envName != "" {
		_ = k.Load(file.Provider(filepath.Join(pathDir, envName+".yaml")), yaml.Parser())
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http.addr required")
	}
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url required")
	}
	if _, err := pricing.ParsePolicy(c.Pricing.CouponPolicy); err != nil {
		return fmt.Errorf("pricing.coupon_policy: %w", err)
	}
	if c.Pricing.FreeDeliveryThreshold < 0 || c.Pricing.DeliveryFee < 0 {
		return fmt.Errorf("pricing amounts must not be negative")
	}
	switch c.Store.Driver {
	case "", "memory":
	case "redis":
		if c.Store.Redis.Addr == "" {
			return fmt.Errorf("store.redis.addr required for redis driver")
		}
	case "sqlite":
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("store.sqlite_path required for sqlite driver")
		}
	case "postgres":
		if c.Store.Postgres.Host == "" || c.Store.Postgres.DBName == "" {
			return fmt.Errorf("store.postgres.host and store.postgres.dbname required for postgres driver")
		}
	case "mongo":
		if c.Store.Mongo.URI == "" {
			return fmt.Errorf("store.mongo.uri required for mongo driver")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	return nil
}

func (c Config) PricingConfig() pricing.Config {
	policy, _ := pricing.ParsePolicy(c.Pricing.CouponPolicy)
	return pricing.Config{
		FreeDeliveryThreshold: domain.Rupees(c.Pricing.FreeDeliveryThreshold),
		DeliveryFee:           domain.Rupees(c.Pricing.DeliveryFee),
		Policy:                policy,
	}
}

func (c Config) StoreOptions() kv.Options {
	s := c.Store
	return kv.Options{
		Driver:     s.Driver,
		SQLitePath: s.SQLitePath,
		Postgres: kv.Credentials{
			Host:     s.Postgres.Host,
			Port:     s.Postgres.Port,
			User:     s.Postgres.User,
			Password: s.Postgres.Password,
			DBName:   s.Postgres.DBName,
			SSLMode:  s.Postgres.SSLMode,
		},
		RedisAddr:       s.Redis.Addr,
		RedisPassword:   s.Redis.Password,
		RedisDB:         s.Redis.DB,
		RedisPrefix:     s.Redis.Prefix,
		TTL:             s.Redis.TTL,
		MongoURI:        s.Mongo.URI,
		MongoDatabase:   s.Mongo.Database,
		MongoCollection: s.Mongo.Collection,
	}
}

func (c Config) BackendOptions() backend.Options {
	b := c.Backend
	return backend.Options{
		BaseURL: b.BaseURL,
		Timeout: b.Timeout,
		Breaker: circuitbreaker.Options{
			MaxRequests:         b.Breaker.MaxRequests,
			Interval:            b.Breaker.Interval,
			Timeout:             b.Breaker.Timeout,
			ConsecutiveFailures: b.Breaker.ConsecutiveFailures,
		},
	}
}

func (c Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}
