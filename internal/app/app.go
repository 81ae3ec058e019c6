package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/data/db"
	"github.com/mechgenz/mechgenz-backend/internal/http"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *http.Server
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Store    storage.FileStore
}

func New() (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	// A missing database configuration is not fatal: the API still comes
	// up and data endpoints answer 503 until one is provided.
	var theDB *gorm.DB
	dbService, err := db.New(log)
	switch {
	case errors.Is(err, db.ErrNotConfigured):
		log.Warn("No database configured, data endpoints will be unavailable")
	case err != nil:
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	default:
		theDB = dbService.DB()
		if err := db.AutoMigrateAll(theDB); err != nil {
			log.Sync()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
	}

	store, err := storage.NewLocalStoreFromEnv(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init file store: %w", err)
	}

	clients, err := wireClients(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, clients, store)

	if theDB != nil {
		ctx := context.Background()
		if err := serviceset.ImageCatalog.Seed(ctx); err != nil {
			log.Warn("Image catalog seed failed", "error", err)
		}
		if err := serviceset.Admin.EnsureDefault(ctx); err != nil {
			log.Warn("Default admin seed failed", "error", err)
		}
	}

	handlerset := wireHandlers(log, theDB, store, serviceset)
	server := wireServer(log, cfg, store, handlerset)

	return &App{
		Log:      log,
		DB:       theDB,
		Server:   server,
		Router:   server.Engine,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Store:    store,
	}, nil
}

func (a *App) Run(addr string) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(addr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
