package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/nayarn/internal/log"
)

type Application struct {
	Env           string `mapstructure:"env"            json:"env"`
	Host          string `mapstructure:"host"           json:"host"`
	SecretKey     string `mapstructure:"secret_key"     json:"-"`
	StorefrontURL string `mapstructure:"storefront_url" json:"storefront_url"`
	LogPath       string `mapstructure:"log_path"       json:"log_path"`
	Port          int    `mapstructure:"port"           json:"port"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string        `mapstructure:"host"     json:"host"`
	Password string        `mapstructure:"password" json:"-"`
	Database int           `mapstructure:"database" json:"database"`
	Port     uint16        `mapstructure:"port"     json:"port"`
	TTL      time.Duration `mapstructure:"ttl"      json:"ttl"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

// Shipping holds the free shipping threshold and the flat cost charged below
// it, both in Currency units.
type Shipping struct {
	Currency              string  `mapstructure:"currency"                json:"currency"`
	FreeShippingThreshold float64 `mapstructure:"free_shipping_threshold" json:"free_shipping_threshold"`
	StandardCost          float64 `mapstructure:"standard_cost"           json:"standard_cost"`
}

type Cart struct {
	SessionTTL    time.Duration `mapstructure:"session_ttl"    json:"session_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval" json:"sweep_interval"`
}

type Notification struct {
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"  json:"timeout"`
}

type Mail struct {
	Driver   string `mapstructure:"driver"   json:"driver"`
	Host     string `mapstructure:"host"     json:"host"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"-"`
	From     string `mapstructure:"from"     json:"from"`
	Port     int    `mapstructure:"port"     json:"port"`
}

// Admin is the single back office account. PasswordHash is a bcrypt hash.
type Admin struct {
	Email        string        `mapstructure:"email"         json:"email"`
	PasswordHash string        `mapstructure:"password_hash" json:"-"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"     json:"token_ttl"`
}

type Config struct {
	Database     `mapstructure:"db"           json:"db"`
	Cache        `mapstructure:"cache"        json:"cache"`
	Application  `mapstructure:"application"  json:"application"`
	Otel         `mapstructure:"otel"         json:"otel"`
	Shipping     `mapstructure:"shipping"     json:"shipping"`
	Cart         `mapstructure:"cart"         json:"cart"`
	Notification `mapstructure:"notification" json:"notification"`
	Mail         `mapstructure:"mail"         json:"mail"`
	Admin        `mapstructure:"admin"        json:"admin"`
}

var (
	once   sync.Once
	config *Config
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", "development")
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8080)
	v.SetDefault("application.storefront_url", "http://localhost:5173")
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 2)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("shipping.currency", "USD")
	v.SetDefault("shipping.free_shipping_threshold", 150)
	v.SetDefault("shipping.standard_cost", 15)
	v.SetDefault("cart.session_ttl", 24*time.Hour)
	v.SetDefault("cart.sweep_interval", 5*time.Minute)
	v.SetDefault("notification.base_url", "http://notification-service:8080")
	v.SetDefault("notification.timeout", 10*time.Second)
	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "NaYarn <orders@nayarn.com>")
	v.SetDefault("admin.token_ttl", 12*time.Hour)
}

// Load reads ./env/<filename>.yaml (and .env when present) into a Config.
// Environment variables override file values, e.g. DB_HOST for db.host.
func Load(c context.Context, filename string, paths ...string) (Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "config Load").
		Str("filename", filename).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "loading dotenv").Logger()
	logger.Info().Msg("loading dotenv")
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		err = fmt.Errorf("failed loading dotenv with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Config{}, err
	}
	logger.Info().Msg("loaded dotenv")

	v := viper.New()
	setDefaults(v)
	v.SetConfigName(filename)
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"./env"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Info().Msg("reading config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("failed reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return Config{}, err
		}
		logger.Warn().Err(err).Msg("config file not found, using defaults and environment")
	}
	logger.Info().Msg("read config")

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Info().Msg("unmarshaling config")
	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		err = fmt.Errorf("failed unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return Config{}, err
	}
	logger.Info().Any(log.KeyConfig, cfg).Msg("unmarshaled config")

	return cfg, nil
}

// Get loads the config once per process and exits on failure.
func Get(c context.Context, filename string) *Config {
	once.Do(func() {
		cfg, err := Load(c, filename)
		if err != nil {
			zerolog.Ctx(c).Fatal().Err(err).Str(log.KeyTag, "config Get").Msg(err.Error())
		}
		config = &cfg
	})
	return config
}
