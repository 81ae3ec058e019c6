package app

import (
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type Repos struct {
	Submission   repos.SubmissionRepo
	WebsiteImage repos.WebsiteImageRepo
	AdminUser    repos.AdminUserRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	if db == nil {
		return Repos{}
	}
	return Repos{
		Submission:   repos.NewSubmissionRepo(db, log),
		WebsiteImage: repos.NewWebsiteImageRepo(db, log),
		AdminUser:    repos.NewAdminUserRepo(db, log),
	}
}
