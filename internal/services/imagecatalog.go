package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

const maxImageSize = 10 << 20 // 10 MB

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// fallbackCategories is served when the store is unreachable so the
// admin panel's filter bar keeps working.
var fallbackCategories = []string{
	"hero", "about", "trading", "portfolio", "services",
	"contact", "team", "branding", "testimonials",
}

const (
	DeleteImageOnly = "image_only"
	DeleteComplete  = "complete"
)

type ImageCatalogService interface {
	Seed(ctx context.Context) error
	List(ctx context.Context) (map[string]*types.WebsiteImage, error)
	Get(ctx context.Context, id string) (*types.WebsiteImage, error)
	Categories(ctx context.Context) []string
	Upload(ctx context.Context, id, filename, contentType string, data []byte) (string, error)
	UpdateMetadata(ctx context.Context, id, name, description string) error
	Reset(ctx context.Context, id string) (*types.WebsiteImage, error)
	Delete(ctx context.Context, id, mode string) error
}

type imageCatalogService struct {
	db    *gorm.DB
	log   *logger.Logger
	repo  repos.WebsiteImageRepo
	store storage.FileStore
}

func NewImageCatalogService(db *gorm.DB, log *logger.Logger, repo repos.WebsiteImageRepo, store storage.FileStore) ImageCatalogService {
	serviceLog := log.With("service", "ImageCatalogService")
	return &imageCatalogService{db: db, log: serviceLog, repo: repo, store: store}
}

func (ics *imageCatalogService) ready() error {
	if ics.db == nil || ics.repo == nil {
		return apierr.Unavailable("database_unavailable", fmt.Errorf("database connection not available"))
	}
	return nil
}

// Seed inserts the embedded catalog only when the table is empty, so
// admin edits survive restarts.
func (ics *imageCatalogService) Seed(ctx context.Context) error {
	if err := ics.ready(); err != nil {
		return err
	}

	count, err := ics.repo.Count(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		ics.log.Debug("Image catalog already seeded", "rows", count)
		return nil
	}

	entries, err := loadCatalog()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	images := make([]*types.WebsiteImage, 0, len(entries))
	for _, entry := range entries {
		locations, err := json.Marshal(entry.Locations)
		if err != nil {
			return err
		}
		images = append(images, &types.WebsiteImage{
			ID:              entry.ID,
			Name:            entry.Name,
			Description:     entry.Description,
			Category:        entry.Category,
			CurrentURL:      entry.DefaultURL,
			DefaultURL:      entry.DefaultURL,
			Locations:       datatypes.JSON(locations),
			RecommendedSize: entry.RecommendedSize,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	if err := ics.repo.Create(ctx, nil, images); err != nil {
		return err
	}
	ics.log.Info("Image catalog seeded", "slots", len(images))
	return nil
}

func (ics *imageCatalogService) List(ctx context.Context) (map[string]*types.WebsiteImage, error) {
	if err := ics.ready(); err != nil {
		return nil, err
	}

	all, err := ics.repo.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*types.WebsiteImage, len(all))
	for _, img := range all {
		out[img.ID] = img
	}
	return out, nil
}

func (ics *imageCatalogService) Get(ctx context.Context, id string) (*types.WebsiteImage, error) {
	if err := ics.ready(); err != nil {
		return nil, err
	}

	img, err := ics.repo.GetByID(ctx, nil, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("image_not_found", fmt.Errorf("image configuration not found"))
		}
		return nil, err
	}
	return img, nil
}

func (ics *imageCatalogService) Categories(ctx context.Context) []string {
	if err := ics.ready(); err != nil {
		return fallbackCategories
	}
	cats, err := ics.repo.Categories(ctx, nil)
	if err != nil || len(cats) == 0 {
		if err != nil {
			ics.log.Warn("Category query failed, serving fallback", "error", err)
		}
		return fallbackCategories
	}
	return cats
}

func (ics *imageCatalogService) Upload(ctx context.Context, id, filename, contentType string, data []byte) (string, error) {
	img, err := ics.Get(ctx, id)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := allowedImageExts[ext]; !ok {
		return "", apierr.Validation("invalid_file_type",
			fmt.Errorf("file type %s is not allowed, use jpg, jpeg, png, gif or webp", ext))
	}
	if len(data) > maxImageSize {
		return "", apierr.Validation("file_too_large",
			fmt.Errorf("image exceeds the 10MB limit"))
	}
	storedName, err := ics.store.Save(ctx, img.ID+ext, data)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	newURL := ics.store.PublicURL(storedName)
	affected, err := ics.repo.UpdateCurrentURL(ctx, nil, img.ID, newURL)
	if err != nil {
		_ = ics.store.Delete(storedName)
		return "", err
	}
	if affected == 0 {
		_ = ics.store.Delete(storedName)
		return "", apierr.NotFound("image_not_found", fmt.Errorf("image configuration not found"))
	}

	// A replaced upload leaves its predecessor behind otherwise.
	ics.removeUploadedFile(img.CurrentURL, img.DefaultURL)

	ics.log.Info("Slot image replaced", "slot_id", img.ID, "stored_name", storedName)
	return newURL, nil
}

func (ics *imageCatalogService) UpdateMetadata(ctx context.Context, id, name, description string) error {
	if err := ics.ready(); err != nil {
		return err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return apierr.Validation("missing_name", fmt.Errorf("name is required"))
	}

	affected, err := ics.repo.UpdateMetadata(ctx, nil, strings.TrimSpace(id), name, strings.TrimSpace(description))
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("image_not_found", fmt.Errorf("image configuration not found"))
	}
	return nil
}

func (ics *imageCatalogService) Reset(ctx context.Context, id string) (*types.WebsiteImage, error) {
	img, err := ics.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	// Restore the URL first; a failed update must not leave current_url
	// pointing at a file that is already gone.
	if _, err := ics.repo.UpdateCurrentURL(ctx, nil, img.ID, img.DefaultURL); err != nil {
		return nil, err
	}
	ics.removeUploadedFile(img.CurrentURL, img.DefaultURL)
	img.CurrentURL = img.DefaultURL

	ics.log.Info("Slot reset to default", "slot_id", img.ID)
	return img, nil
}

func (ics *imageCatalogService) Delete(ctx context.Context, id, mode string) error {
	switch mode {
	case DeleteImageOnly, DeleteComplete:
	default:
		return apierr.Validation("invalid_delete_type",
			fmt.Errorf("delete_type must be %q or %q", DeleteImageOnly, DeleteComplete))
	}

	if mode == DeleteImageOnly {
		_, err := ics.Reset(ctx, id)
		return err
	}

	img, err := ics.Get(ctx, id)
	if err != nil {
		return err
	}

	ics.removeUploadedFile(img.CurrentURL, img.DefaultURL)

	affected, err := ics.repo.Delete(ctx, nil, img.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apierr.NotFound("image_not_found", fmt.Errorf("image configuration not found"))
	}

	ics.log.Info("Slot removed from catalog", "slot_id", img.ID)
	return nil
}

// removeUploadedFile deletes the file behind a locally-hosted current
// URL. External URLs (including the seeded defaults) are untouched.
func (ics *imageCatalogService) removeUploadedFile(currentURL, defaultURL string) {
	if currentURL == "" || currentURL == defaultURL {
		return
	}
	idx := strings.LastIndex(currentURL, "/uploads/")
	if idx < 0 {
		return
	}
	storedName := currentURL[idx+len("/uploads/"):]
	if storedName == "" {
		return
	}
	if err := ics.store.Delete(storedName); err != nil && !errors.Is(err, storage.ErrNotFound) {
		ics.log.Warn("Uploaded image cleanup failed", "stored_name", storedName, "error", err)
	}
}
