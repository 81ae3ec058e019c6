package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

const (
	maxAttachmentSize = 10 << 20 // 10 MB per file
	maxExtraEntries   = 20
	maxExtraValueLen  = 2000
)

var allowedAttachmentExts = map[string]struct{}{
	".pdf":  {},
	".doc":  {},
	".docx": {},
	".xls":  {},
	".xlsx": {},
	".txt":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type SubmitInput struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Extra   map[string]string
	Files   []UploadedFile
}

type SubmitMeta struct {
	SourceIP  string
	UserAgent string
}

type SubmissionStats struct {
	Total    int64            `json:"total_submissions"`
	Recent   int64            `json:"recent_submissions"`
	ByStatus map[string]int64 `json:"status_breakdown"`
}

type AttachmentFile struct {
	Path         string
	OriginalName string
	ContentType  string
}

type SubmissionService interface {
	Submit(ctx context.Context, input SubmitInput, meta SubmitMeta) (*types.Submission, error)
	List(ctx context.Context, params repos.SubmissionListParams) ([]*types.Submission, int64, error)
	Get(ctx context.Context, id string) (*types.Submission, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*SubmissionStats, error)
	Attachment(ctx context.Context, id, filename string) (*AttachmentFile, error)
}

type submissionService struct {
	db       *gorm.DB
	log      *logger.Logger
	repo     repos.SubmissionRepo
	store    storage.FileStore
	notifier NotificationService
}

func NewSubmissionService(db *gorm.DB, log *logger.Logger, repo repos.SubmissionRepo, store storage.FileStore, notifier NotificationService) SubmissionService {
	serviceLog := log.With("service", "SubmissionService")
	return &submissionService{
		db:       db,
		log:      serviceLog,
		repo:     repo,
		store:    store,
		notifier: notifier,
	}
}

func (ss *submissionService) ready() error {
	if ss.db == nil || ss.repo == nil {
		return apierr.Unavailable("database_unavailable", fmt.Errorf("database connection not available"))
	}
	return nil
}

func (ss *submissionService) Submit(ctx context.Context, input SubmitInput, meta SubmitMeta) (*types.Submission, error) {
	if err := ss.ready(); err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Email = strings.TrimSpace(input.Email)
	input.Message = strings.TrimSpace(input.Message)

	switch {
	case input.Name == "":
		return nil, apierr.Validation("missing_name", fmt.Errorf("name is required"))
	case input.Phone == "":
		return nil, apierr.Validation("missing_phone", fmt.Errorf("phone is required"))
	case input.Email == "":
		return nil, apierr.Validation("missing_email", fmt.Errorf("email is required"))
	case input.Message == "":
		return nil, apierr.Validation("missing_message", fmt.Errorf("message is required"))
	}

	if err := validateAttachments(input.Files); err != nil {
		return nil, err
	}

	extraJSON, err := boundExtra(input.Extra)
	if err != nil {
		return nil, err
	}

	// Attachments are written before the insert; metadata only goes in
	// the record.
	stored := make([]types.StoredFile, 0, len(input.Files))
	storedNames := make([]string, 0, len(input.Files))
	for _, f := range input.Files {
		name, err := ss.store.Save(ctx, f.Filename, f.Data)
		if err != nil {
			ss.cleanupFiles(storedNames)
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		storedNames = append(storedNames, name)
		stored = append(stored, types.StoredFile{
			OriginalName: f.Filename,
			StoredName:   name,
			Size:         int64(len(f.Data)),
			ContentType:  f.ContentType,
		})
	}

	filesJSON, err := json.Marshal(stored)
	if err != nil {
		ss.cleanupFiles(storedNames)
		return nil, err
	}

	sub := &types.Submission{
		ID:          uuid.New(),
		Name:        input.Name,
		Phone:       input.Phone,
		Email:       input.Email,
		Message:     input.Message,
		Files:       datatypes.JSON(filesJSON),
		Extra:       extraJSON,
		Status:      types.SubmissionStatusNew,
		SourceIP:    meta.SourceIP,
		UserAgent:   meta.UserAgent,
		SubmittedAt: time.Now().UTC(),
	}

	if err := ss.repo.Create(ctx, nil, sub); err != nil {
		ss.cleanupFiles(storedNames)
		ss.log.Error("Submission insert failed", "error", err)
		return nil, err
	}

	ss.log.Info("Submission created",
		"submission_id", sub.ID.String(),
		"attachments", len(stored),
	)

	// Alert failures never break the submission.
	if err := ss.notifier.NotifyNewSubmission(ctx, sub); err != nil {
		ss.log.Warn("Submission alert failed (suppressed)",
			"submission_id", sub.ID.String(),
			"error", err,
		)
	}

	return sub, nil
}

func (ss *submissionService) List(ctx context.Context, params repos.SubmissionListParams) ([]*types.Submission, int64, error) {
	if err := ss.ready(); err != nil {
		return nil, 0, err
	}

	if params.Limit <= 0 {
		params.Limit = 50
	}
	if params.Limit > 100 {
		params.Limit = 100
	}
	if params.Skip < 0 {
		params.Skip = 0
	}
	if params.Status != "" && !types.ValidSubmissionStatus(params.Status) {
		return nil, 0, apierr.Validation("invalid_status", fmt.Errorf("invalid status filter: %s", params.Status))
	}

	return ss.repo.List(ctx, nil, params)
}

func (ss *submissionService) Get(ctx context.Context, id string) (*types.Submission, error) {
	if err := ss.ready(); err != nil {
		return nil, err
	}

	subID, err := parseSubmissionID(id)
	if err != nil {
		return nil, err
	}

	sub, err := ss.repo.GetByID(ctx, nil, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("submission_not_found", fmt.Errorf("submission not found"))
		}
		return nil, err
	}
	return sub, nil
}

func (ss *submissionService) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ss.ready(); err != nil {
		return err
	}

	subID, err := parseSubmissionID(id)
	if err != nil {
		return err
	}
	if !types.ValidSubmissionStatus(status) {
		return apierr.Validation("invalid_status",
			fmt.Errorf("invalid status, must be one of: new, in_progress, completed, archived"))
	}

	affected, err := ss.repo.UpdateStatus(ctx, nil, subID, status, time.Now().UTC())
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("submission_not_found", fmt.Errorf("submission not found"))
	}

	ss.log.Info("Submission status updated", "submission_id", subID.String(), "status", status)
	return nil
}

func (ss *submissionService) Delete(ctx context.Context, id string) error {
	if err := ss.ready(); err != nil {
		return err
	}

	subID, err := parseSubmissionID(id)
	if err != nil {
		return err
	}

	sub, err := ss.repo.GetByID(ctx, nil, subID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierr.NotFound("submission_not_found", fmt.Errorf("submission not found"))
		}
		return err
	}

	affected, err := ss.repo.Delete(ctx, nil, subID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("submission_not_found", fmt.Errorf("submission not found"))
	}

	// Row is gone; orphaned files are only worth a warning.
	for _, f := range decodeStoredFiles(sub.Files) {
		if err := ss.store.Delete(f.StoredName); err != nil && !errors.Is(err, storage.ErrNotFound) {
			ss.log.Warn("Attachment cleanup failed", "stored_name", f.StoredName, "error", err)
		}
	}

	ss.log.Info("Submission deleted", "submission_id", subID.String())
	return nil
}

func (ss *submissionService) Stats(ctx context.Context) (*SubmissionStats, error) {
	if err := ss.ready(); err != nil {
		return nil, err
	}

	stats := &SubmissionStats{ByStatus: map[string]int64{}}
	cutoff := time.Now().UTC().Add(-30 * 24 * time.Hour)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := ss.repo.Count(gctx, nil)
		if err != nil {
			return err
		}
		stats.Total = total
		return nil
	})
	g.Go(func() error {
		recent, err := ss.repo.CountSince(gctx, nil, cutoff)
		if err != nil {
			return err
		}
		stats.Recent = recent
		return nil
	})
	g.Go(func() error {
		byStatus, err := ss.repo.CountsByStatus(gctx, nil)
		if err != nil {
			return err
		}
		stats.ByStatus = byStatus
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return stats, nil
}

func (ss *submissionService) Attachment(ctx context.Context, id, filename string) (*AttachmentFile, error) {
	sub, err := ss.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	filename = strings.TrimSpace(filename)
	for _, f := range decodeStoredFiles(sub.Files) {
		if f.StoredName != filename {
			continue
		}
		path, err := ss.store.Path(f.StoredName)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, apierr.NotFound("file_not_found", fmt.Errorf("file not found on disk"))
			}
			return nil, err
		}
		return &AttachmentFile{
			Path:         path,
			OriginalName: f.OriginalName,
			ContentType:  f.ContentType,
		}, nil
	}
	return nil, apierr.NotFound("file_not_found", fmt.Errorf("file not attached to this submission"))
}

func (ss *submissionService) cleanupFiles(storedNames []string) {
	for _, name := range storedNames {
		if err := ss.store.Delete(name); err != nil && !errors.Is(err, storage.ErrNotFound) {
			ss.log.Warn("Orphan attachment cleanup failed", "stored_name", name, "error", err)
		}
	}
}

func parseSubmissionID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return uuid.Nil, apierr.Validation("invalid_submission_id", fmt.Errorf("invalid submission ID format"))
	}
	return parsed, nil
}

func validateAttachments(files []UploadedFile) error {
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if _, ok := allowedAttachmentExts[ext]; !ok {
			return apierr.Validation("invalid_file_type",
				fmt.Errorf("file type %s is not allowed", ext))
		}
		if len(f.Data) > maxAttachmentSize {
			return apierr.Validation("file_too_large",
				fmt.Errorf("file %s exceeds the 10MB limit", f.Filename))
		}
	}
	return nil
}

// boundExtra caps the free-form metadata map so clients cannot stuff
// arbitrary payloads into the record.
func boundExtra(extra map[string]string) (datatypes.JSON, error) {
	if len(extra) == 0 {
		return nil, nil
	}
	if len(extra) > maxExtraEntries {
		return nil, apierr.Validation("extra_too_large",
			fmt.Errorf("at most %d extra fields are accepted", maxExtraEntries))
	}
	for k, v := range extra {
		if len(v) > maxExtraValueLen {
			return nil, apierr.Validation("extra_too_large",
				fmt.Errorf("extra field %s exceeds %d characters", k, maxExtraValueLen))
		}
	}
	raw, err := json.Marshal(extra)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeStoredFiles(raw datatypes.JSON) []types.StoredFile {
	if len(raw) == 0 {
		return nil
	}
	var files []types.StoredFile
	if err := json.Unmarshal(raw, &files); err != nil {
		return nil
	}
	return files
}
