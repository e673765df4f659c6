package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/Cheertaboi/cart-pricing-service/internal/catalog"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/pkg/db"
)

const (
	defaultPort          = "8080"
	defaultReadTimeout   = 10 * time.Second
	defaultWriteTimeout  = 15 * time.Second
	defaultIdleTimeout   = 60 * time.Second
	defaultCacheTTL      = 10 * time.Minute
	defaultPointsBalance = 500
	defaultLogLevel      = "info"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server   ServerConfig
	Postgres db.PostgresConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Campaign CampaignOverride
	Points   PointsConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// CatalogConfig points at a YAML catalog; an empty File uses the bundled one.
type CatalogConfig struct {
	File string
}

// CampaignOverride replaces individual campaign fields from the catalog.
type CampaignOverride struct {
	Active   *bool
	Every    *decimal.Decimal
	Discount *decimal.Decimal
}

type PointsConfig struct {
	Default int64
}

// Load reads the environment, after merging a .env file when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	pg, err := db.LoadPostgresConfig()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Server:   ServerConfig{Port: stringOr("PORT", defaultPort)},
		Postgres: pg,
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Catalog:  CatalogConfig{File: os.Getenv("CATALOG_FILE")},
		LogLevel: strings.ToLower(stringOr("LOG_LEVEL", defaultLogLevel)),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg.Server.ReadTimeout, err = durationOr("SERVER_READ_TIMEOUT", defaultReadTimeout)
	collect(err)
	cfg.Server.WriteTimeout, err = durationOr("SERVER_WRITE_TIMEOUT", defaultWriteTimeout)
	collect(err)
	cfg.Server.IdleTimeout, err = durationOr("SERVER_IDLE_TIMEOUT", defaultIdleTimeout)
	collect(err)
	cfg.Redis.TTL, err = durationOr("REDIS_CACHE_TTL", defaultCacheTTL)
	collect(err)

	redisDB, err := intOr("REDIS_DB", 0)
	collect(err)
	cfg.Redis.DB = int(redisDB)

	cfg.Points.Default, err = intOr("DEFAULT_POINTS", defaultPointsBalance)
	collect(err)
	if cfg.Points.Default < 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_POINTS must not be negative"))
	}

	cfg.Campaign, err = loadCampaignOverride()
	collect(err)

	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	return cfg, nil
}

// Apply returns base with the configured fields replaced.
func (o CampaignOverride) Apply(base models.CampaignConfig) models.CampaignConfig {
	if o.Active != nil {
		base.Active = *o.Active
	}
	if o.Every != nil {
		base.Every = *o.Every
	}
	if o.Discount != nil {
		base.Discount = *o.Discount
	}
	return base
}

// Resolve applies the override to base and validates the merged rule, so an
// override cannot switch on a campaign that has no threshold.
func (o CampaignOverride) Resolve(base models.CampaignConfig) (models.CampaignConfig, error) {
	merged := o.Apply(base)
	if err := catalog.ValidateCampaign(merged); err != nil {
		return models.CampaignConfig{}, fmt.Errorf("campaign override: %w", err)
	}
	return merged, nil
}

func loadCampaignOverride() (CampaignOverride, error) {
	var o CampaignOverride
	if raw := strings.TrimSpace(os.Getenv("CAMPAIGN_ACTIVE")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return o, fmt.Errorf("invalid CAMPAIGN_ACTIVE %q: %w", raw, err)
		}
		o.Active = &active
	}
	if raw := strings.TrimSpace(os.Getenv("CAMPAIGN_EVERY")); raw != "" {
		every, err := decimal.NewFromString(raw)
		if err != nil || !every.IsPositive() {
			return o, fmt.Errorf("invalid CAMPAIGN_EVERY %q: must be a positive amount", raw)
		}
		o.Every = &every
	}
	if raw := strings.TrimSpace(os.Getenv("CAMPAIGN_DISCOUNT")); raw != "" {
		discount, err := decimal.NewFromString(raw)
		if err != nil || discount.IsNegative() {
			return o, fmt.Errorf("invalid CAMPAIGN_DISCOUNT %q: must be a non-negative amount", raw)
		}
		o.Discount = &discount
	}
	return o, nil
}

func stringOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func intOr(key string, fallback int64) (int64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}
