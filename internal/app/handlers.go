package app

import (
	"gorm.io/gorm"

	httpH "github.com/mechgenz/mechgenz-backend/internal/http/handlers"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Contact *httpH.ContactHandler
	Mail    *httpH.MailHandler
	Images  *httpH.ImagesHandler
	Admin   *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, db *gorm.DB, store storage.FileStore, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(db, store, serviceset.Notification.Enabled()),
		Contact: httpH.NewContactHandler(serviceset.Submission),
		Mail:    httpH.NewMailHandler(serviceset.Notification),
		Images:  httpH.NewImagesHandler(serviceset.ImageCatalog),
		Admin:   httpH.NewAdminHandler(serviceset.Admin),
	}
}
