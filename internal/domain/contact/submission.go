package contact

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusArchived   = "archived"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusNew, StatusInProgress, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

// StoredFile is the attachment metadata recorded on a submission. The
// bytes themselves live in the file store under StoredName.
type StoredFile struct {
	OriginalName string `json:"original_name"`
	StoredName   string `json:"stored_name"`
	Size         int64  `json:"size"`
	ContentType  string `json:"content_type"`
}

type Submission struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Phone       string         `gorm:"not null;column:phone" json:"phone"`
	Email       string         `gorm:"not null;index;column:email" json:"email"`
	Message     string         `gorm:"not null;column:message" json:"message"`
	Files       datatypes.JSON `gorm:"column:files" json:"files"`
	Extra       datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
	Status      string         `gorm:"not null;index;column:status" json:"status"`
	SourceIP    string         `gorm:"column:source_ip" json:"source_ip,omitempty"`
	UserAgent   string         `gorm:"column:user_agent" json:"user_agent,omitempty"`
	SubmittedAt time.Time      `gorm:"not null;index;column:submitted_at" json:"submitted_at"`
	UpdatedAt   *time.Time     `gorm:"column:updated_at" json:"updated_at,omitempty"`
}

func (Submission) TableName() string { return "contact_submissions" }
