package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

const devSecret = "dev-secret"

type DB struct {
	Driver string
	Path   string
	Host   string
	Port   int
	User   string
	Pass   string
	Name   string
}

type JWT struct {
	Secret string
	TTL    time.Duration
}

type Redis struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type Recipes struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type RateLimit struct {
	RPS   float64
	Burst int
}

type Log struct {
	Level  string
	Format string
	Path   string
}

type Config struct {
	Host string
	Port int
	JWT  JWT
	Auth struct {
		AllowSignupRole bool
	}
	Inventory struct {
		ExpirySoonDays int
	}
	DB        DB
	Redis     Redis
	Recipes   Recipes
	RateLimit RateLimit
	CORS      struct {
		AllowedOrigins []string
	}
	Log         Log
	PingMessage string
}

func (c *Config) Addr() string { return net.JoinHostPort(c.Host, strconv.Itoa(c.Port)) }

// UsesDevSecret reports whether tokens are signed with the built-in secret.
func (c *Config) UsesDevSecret() bool { return c.JWT.Secret == devSecret }

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("backend.host", "0.0.0.0")
	v.SetDefault("backend.port", 8080)
	v.SetDefault("backend.jwt.secret", devSecret)
	v.SetDefault("backend.jwt.ttl", "168h")
	v.SetDefault("backend.auth.allow_signup_role", true)
	v.SetDefault("backend.inventory.expiry_soon_days", 3)
	v.SetDefault("backend.db.driver", "memory")
	v.SetDefault("backend.db.path", "pantry.db")
	v.SetDefault("backend.db.host", "127.0.0.1")
	v.SetDefault("backend.db.port", 3306)
	v.SetDefault("backend.db.user", "root")
	v.SetDefault("backend.db.pass", "")
	v.SetDefault("backend.db.name", "smart_pantry")
	v.SetDefault("backend.redis.addr", "")
	v.SetDefault("backend.redis.password", "")
	v.SetDefault("backend.redis.db", 0)
	v.SetDefault("backend.redis.cache_ttl", "1h")
	v.SetDefault("backend.recipes.api_key", "")
	v.SetDefault("backend.recipes.base_url", "https://api.spoonacular.com")
	v.SetDefault("backend.recipes.timeout", "5s")
	v.SetDefault("backend.rate_limit.rps", 5)
	v.SetDefault("backend.rate_limit.burst", 10)
	v.SetDefault("backend.cors.allowed_origins", []string{"*"})
	v.SetDefault("backend.log.level", "info")
	v.SetDefault("backend.log.format", "console")
	v.SetDefault("backend.log.path", "")
	v.SetDefault("backend.ping_message", "ping")

	// PANTRY_BACKEND_DB_HOST and friends for every key
	v.SetEnvPrefix("pantry")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// unprefixed names used by existing deployments
	_ = v.BindEnv("backend.port", "PORT")
	_ = v.BindEnv("backend.jwt.secret", "JWT_SECRET")
	_ = v.BindEnv("backend.jwt.ttl", "JWT_TTL")
	_ = v.BindEnv("backend.inventory.expiry_soon_days", "EXPIRY_SOON_DAYS")
	_ = v.BindEnv("backend.db.driver", "DB_DRIVER")
	_ = v.BindEnv("backend.db.path", "DB_PATH")
	_ = v.BindEnv("backend.redis.addr", "REDIS_ADDR")
	_ = v.BindEnv("backend.recipes.api_key", "SPOONACULAR_API_KEY", "SPOON_API_KEY")
	_ = v.BindEnv("backend.log.level", "LOG_LEVEL")
	_ = v.BindEnv("backend.ping_message", "PING_MESSAGE")
	return v
}

// Load reads defaults, then the YAML file at path (optional), then the
// environment.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Host: v.GetString("backend.host"),
		Port: v.GetInt("backend.port"),
		JWT:  JWT{Secret: v.GetString("backend.jwt.secret"), TTL: v.GetDuration("backend.jwt.ttl")},
		DB: DB{
			Driver: strings.ToLower(v.GetString("backend.db.driver")),
			Path:   v.GetString("backend.db.path"),
			Host:   v.GetString("backend.db.host"),
			Port:   v.GetInt("backend.db.port"),
			User:   v.GetString("backend.db.user"),
			Pass:   v.GetString("backend.db.pass"),
			Name:   v.GetString("backend.db.name"),
		},
		Redis: Redis{
			Addr:     v.GetString("backend.redis.addr"),
			Password: v.GetString("backend.redis.password"),
			DB:       v.GetInt("backend.redis.db"),
			CacheTTL: v.GetDuration("backend.redis.cache_ttl"),
		},
		Recipes: Recipes{
			APIKey:  v.GetString("backend.recipes.api_key"),
			BaseURL: v.GetString("backend.recipes.base_url"),
			Timeout: v.GetDuration("backend.recipes.timeout"),
		},
		RateLimit: RateLimit{
			RPS:   v.GetFloat64("backend.rate_limit.rps"),
			Burst: v.GetInt("backend.rate_limit.burst"),
		},
		Log: Log{
			Level:  v.GetString("backend.log.level"),
			Format: v.GetString("backend.log.format"),
			Path:   v.GetString("backend.log.path"),
		},
		PingMessage: v.GetString("backend.ping_message"),
	}
	cfg.Auth.AllowSignupRole = v.GetBool("backend.auth.allow_signup_role")
	cfg.Inventory.ExpirySoonDays = v.GetInt("backend.inventory.expiry_soon_days")
	cfg.CORS.AllowedOrigins = v.GetStringSlice("backend.cors.allowed_origins")

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = devSecret
	}
	if cfg.JWT.TTL <= 0 {
		cfg.JWT.TTL = 7 * 24 * time.Hour
	}
	if cfg.Inventory.ExpirySoonDays < 0 {
		return nil, fmt.Errorf("expiry_soon_days must not be negative, got %d", cfg.Inventory.ExpirySoonDays)
	}
	if cfg.PingMessage == "" {
		cfg.PingMessage = "ping"
	}
	switch cfg.DB.Driver {
	case "memory", "sqlite", "mysql":
	default:
		return nil, fmt.Errorf("unknown db driver %q", cfg.DB.Driver)
	}
	return cfg, nil
}

// Watch reloads the file at path on every change and hands the new config to
// onChange. Invalid edits are reported to onError and otherwise ignored.
func Watch(path string, onChange func(*Config), onError func(error)) error {
	if path == "" {
		return errors.New("watch: no config file")
	}
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := fromViper(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}
