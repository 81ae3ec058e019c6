package repos

import (
	"github.com/mechgenz/mechgenz-backend/internal/data/repos/admin"
	"github.com/mechgenz/mechgenz-backend/internal/data/repos/cms"
	"github.com/mechgenz/mechgenz-backend/internal/data/repos/contact"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type SubmissionRepo = contact.SubmissionRepo
type SubmissionListParams = contact.ListParams
type WebsiteImageRepo = cms.WebsiteImageRepo
type AdminUserRepo = admin.AdminUserRepo

func NewSubmissionRepo(db *gorm.DB, log *logger.Logger) SubmissionRepo {
	return contact.NewSubmissionRepo(db, log)
}

func NewWebsiteImageRepo(db *gorm.DB, log *logger.Logger) WebsiteImageRepo {
	return cms.NewWebsiteImageRepo(db, log)
}

func NewAdminUserRepo(db *gorm.DB, log *logger.Logger) AdminUserRepo {
	return admin.NewAdminUserRepo(db, log)
}
