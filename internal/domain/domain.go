package domain

import (
	"github.com/mechgenz/mechgenz-backend/internal/domain/admin"
	"github.com/mechgenz/mechgenz-backend/internal/domain/cms"
	"github.com/mechgenz/mechgenz-backend/internal/domain/contact"
)

const (
	SubmissionStatusNew        = contact.StatusNew
	SubmissionStatusInProgress = contact.StatusInProgress
	SubmissionStatusCompleted  = contact.StatusCompleted
	SubmissionStatusArchived   = contact.StatusArchived
)

type Submission = contact.Submission
type StoredFile = contact.StoredFile
type WebsiteImage = cms.WebsiteImage
type AdminUser = admin.AdminUser

func ValidSubmissionStatus(status string) bool { return contact.ValidStatus(status) }
