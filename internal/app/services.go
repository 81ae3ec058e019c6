package app

import (
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/services"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

type Services struct {
	Notification services.NotificationService
	Submission   services.SubmissionService
	ImageCatalog services.ImageCatalogService
	Admin        services.AdminService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, store storage.FileStore) Services {
	log.Info("Wiring services...")

	notification := services.NewNotificationService(log, clients.Mail, services.NotificationConfig{
		CompanyEmail:  cfg.CompanyEmail,
		FromEmail:     cfg.FromEmail,
		FromName:      cfg.FromName,
		AdminPanelURL: cfg.AdminPanelURL,
	})

	return Services{
		Notification: notification,
		Submission:   services.NewSubmissionService(db, log, reposet.Submission, store, notification),
		ImageCatalog: services.NewImageCatalogService(db, log, reposet.WebsiteImage, store),
		Admin:        services.NewAdminService(db, log, reposet.AdminUser),
	}
}
