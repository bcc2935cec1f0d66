package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/rhyn0/anime-rest-api/internal/config"
	"github.com/rhyn0/anime-rest-api/internal/database"
	"github.com/rhyn0/anime-rest-api/internal/http/handler"
	"github.com/rhyn0/anime-rest-api/internal/http/router"
	"github.com/rhyn0/anime-rest-api/internal/observability"
	"github.com/rhyn0/anime-rest-api/internal/repository"
	"github.com/rhyn0/anime-rest-api/internal/security"
	"github.com/rhyn0/anime-rest-api/internal/service"
)

// App wires config, storage, services and the HTTP server. Construction is
// explicit so the dependency order reads top to bottom.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	DB     *gorm.DB
	Server *http.Server
}

func New(cfg *config.Config) (*App, error) {
	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return newWithDB(cfg, logger, db), nil
}

// NewWithDB builds an app around an already-open connection. Integration
// tests use it with sqlite.
func NewWithDB(cfg *config.Config, db *gorm.DB) *App {
	logger := observability.NewLogger(cfg.LogLevel)
	return newWithDB(cfg, logger, db)
}

func newWithDB(cfg *config.Config, logger *slog.Logger, db *gorm.DB) *App {
	userRepo := repository.NewUserRepository(db)
	showRepo := repository.NewShowRepository(db)

	jwtMgr := security.NewJWTManager(cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	sessionSvc := service.NewSessionService(userRepo, jwtMgr, logger)
	userSvc := service.NewUserService(userRepo, cfg.BcryptCost)
	showSvc := service.NewShowService(showRepo)

	mux := router.New(router.Deps{
		Logger:   logger,
		JWTMgr:   jwtMgr,
		Sessions: handler.NewSessionHandler(sessionSvc, jwtMgr, logger),
		Users:    handler.NewUserHandler(userSvc, logger),
		Shows:    handler.NewShowHandler(showSvc, logger),
	})

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Server: &http.Server{
			Addr:              ":" + cfg.HTTPPort,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (a *App) Migrate() error {
	return database.Migrate(a.DB)
}

func (a *App) Run() error {
	a.Logger.Info("http server listening", "addr", a.Server.Addr, "env", a.Config.Env)
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) Shutdown(ctx context.Context) error {
	return a.Server.Shutdown(ctx)
}
