package app

import (
	"github.com/mechgenz/mechgenz-backend/internal/http"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

func wireServer(log *logger.Logger, cfg Config, store storage.FileStore, handlerset Handlers) *http.Server {
	uploadsDir := ""
	if store != nil {
		uploadsDir = store.Dir()
	}
	return http.NewServer(http.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadsDir:     uploadsDir,
		HealthHandler:  handlerset.Health,
		ContactHandler: handlerset.Contact,
		MailHandler:    handlerset.Mail,
		ImagesHandler:  handlerset.Images,
		AdminHandler:   handlerset.Admin,
	})
}
