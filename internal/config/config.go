package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env string `mapstructure:"env"`

	Server struct {
		Addr           string   `mapstructure:"addr"`
		AllowedOrigins []string `mapstructure:"allowed_origins"`
		PublicRPS      float64  `mapstructure:"public_rps"`
		PublicBurst    int      `mapstructure:"public_burst"`
	} `mapstructure:"server"`

	Log struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`

	Database struct {
		URL      string `mapstructure:"url"`
		MaxConns int32  `mapstructure:"max_conns"`
		MinConns int32  `mapstructure:"min_conns"`
	} `mapstructure:"database"`

	Redis struct {
		Addr     string        `mapstructure:"addr"`
		Password string        `mapstructure:"password"`
		DB       int           `mapstructure:"db"`
		MenuTTL  time.Duration `mapstructure:"menu_ttl"`
	} `mapstructure:"redis"`

	JWT struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"jwt"`

	R2 struct {
		Endpoint      string `mapstructure:"endpoint"`
		AccessKey     string `mapstructure:"access_key"`
		SecretKey     string `mapstructure:"secret_key"`
		Bucket        string `mapstructure:"bucket"`
		PublicBaseURL string `mapstructure:"public_base_url"`
	} `mapstructure:"r2"`

	Publisher struct {
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"publisher"`

	Metrics struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"metrics"`
}

var (
	ErrMissingJWTSecret   = errors.New("jwt.secret is not set (MENUBOARD_JWT_SECRET)")
	ErrMissingDatabaseURL = errors.New("database.url is not set (MENUBOARD_DATABASE_URL)")
	ErrNoAllowedOrigins   = errors.New("server.allowed_origins must list at least one origin")
	ErrInvalidInterval    = errors.New("publisher.interval must be positive")
)

var keys = []string{
	"env",
	"server.addr", "server.allowed_origins", "server.public_rps", "server.public_burst",
	"log.level", "log.pretty",
	"database.url", "database.max_conns", "database.min_conns",
	"redis.addr", "redis.password", "redis.db", "redis.menu_ttl",
	"jwt.secret", "jwt.ttl",
	"r2.endpoint", "r2.access_key", "r2.secret_key", "r2.bucket", "r2.public_base_url",
	"publisher.interval",
	"metrics.addr",
}

// Load reads configuration from MENUBOARD_* environment variables and an
// optional config.yaml. A .env file is honoured outside production.
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("MENUBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.GetString("env") != "production" {
		_ = godotenv.Load()
	}

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("server.public_rps", 20.0)
	v.SetDefault("server.public_burst", 40)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("redis.menu_ttl", 60*time.Second)
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("publisher.interval", time.Minute)
	v.SetDefault("metrics.addr", ":9090")
}

// Validate checks the settings the API server needs.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if !hasOrigin(c.Server.AllowedOrigins) {
		return ErrNoAllowedOrigins
	}
	return nil
}

// ValidatePublisher checks the settings of the snapshot worker.
func (c *Config) ValidatePublisher() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if c.Publisher.Interval <= 0 {
		return ErrInvalidInterval
	}
	return nil
}

func hasOrigin(origins []string) bool {
	for _, o := range origins {
		if strings.TrimSpace(o) != "" {
			return true
		}
	}
	return false
}
