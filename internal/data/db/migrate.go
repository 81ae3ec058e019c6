package db

import (
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.Submission{},
		&types.WebsiteImage{},
		&types.AdminUser{},
	)
}
