package initialize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"smart-pantry/backend/app/controllers"
	"smart-pantry/backend/app/db"
	jwtutil "smart-pantry/backend/app/jwt"
	"smart-pantry/backend/app/middleware"
	"smart-pantry/backend/app/recipes"
	"smart-pantry/backend/app/repo"
	"smart-pantry/backend/app/services"
	"smart-pantry/backend/config"
	"smart-pantry/backend/global"
	"smart-pantry/backend/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Redis     *redis.Client
	Router    http.Handler
	Users     *services.UserService
	Inventory *services.InventoryService
	RateLimit *middleware.RateLimiter
}

// Build loads the config at configPath and wires the whole server.
func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return BuildWithConfig(cfg)
}

func BuildWithConfig(cfg *config.Config) (*App, error) {
	global.Config = cfg
	app := &App{Cfg: cfg}

	if cfg.UsesDevSecret() {
		global.Logger.Warn().Msg("JWT secret not configured, using the development default")
	}

	// Storage
	var users repo.UserStore
	var items repo.ItemStore
	if cfg.DB.Driver == db.DriverMemory {
		users, items = repo.NewMemoryUserStore(), repo.NewMemoryItemStore()
	} else {
		gdb, err := db.Connect(db.Config{
			Driver: cfg.DB.Driver, Path: cfg.DB.Path,
			Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		global.Mdb = gdb
		app.DB = gdb
		users, items = repo.NewUserRepository(gdb), repo.NewItemRepository(gdb)
	}

	// Recipe cache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := rdb.Ping(ctx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			_ = app.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		global.Rdb = rdb
		app.Redis = rdb
	}

	// Services
	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), TTL: cfg.JWT.TTL}
	app.Users = services.NewUserService(users, signer)
	app.Users.AllowSignupRole = cfg.Auth.AllowSignupRole
	app.Inventory = services.NewInventoryService(items, cfg.Inventory.ExpirySoonDays)
	suggester := recipes.New(recipes.Config{
		APIKey:   cfg.Recipes.APIKey,
		BaseURL:  cfg.Recipes.BaseURL,
		Timeout:  cfg.Recipes.Timeout,
		Redis:    app.Redis,
		CacheTTL: cfg.Redis.CacheTTL,
	}, global.Logger)
	if cfg.Recipes.APIKey == "" {
		global.Logger.Info().Msg("no recipe API key, serving local suggestions only")
	}

	// Controllers
	ctrls := router.Controllers{
		HTTP:      controllers.NewHTTPController(cfg.PingMessage),
		Auth:      controllers.NewAuthController(app.Users),
		Inventory: controllers.NewInventoryController(app.Inventory),
		Recipes:   controllers.NewRecipeController(suggester),
	}
	app.RateLimit = middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	mw := router.Middleware{
		Auth:      &middleware.Auth{Signer: signer},
		RateLimit: app.RateLimit,
		Metrics:   middleware.NewMetrics(),
	}

	// Router
	h := router.NewRouter(ctrls, mw)
	h = middleware.NewCORS(cfg.CORS.AllowedOrigins).Handler(h)
	// Wrap with logging middleware
	h = middleware.Logging(h)
	app.Router = h
	return app, nil
}

// ApplyReload pushes the hot-reloadable settings of cfg into the running app.
func (a *App) ApplyReload(cfg *config.Config) {
	a.Inventory.SetExpirySoonDays(cfg.Inventory.ExpirySoonDays)
	SetLogLevel(cfg.Log.Level)
	global.Logger.Info().Int("expiry_soon_days", cfg.Inventory.ExpirySoonDays).Str("log_level", cfg.Log.Level).Msg("config reloaded")
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if a.DB != nil {
		errs = append(errs, db.Close(a.DB))
	}
	return errors.Join(errs...)
}
