package cms

import (
	"context"
	"time"

	"gorm.io/gorm"

	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type WebsiteImageRepo interface {
	Create(ctx context.Context, tx *gorm.DB, images []*types.WebsiteImage) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.WebsiteImage, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WebsiteImage, error)
	Categories(ctx context.Context, tx *gorm.DB) ([]string, error)
	UpdateCurrentURL(ctx context.Context, tx *gorm.DB, id, url string) (int64, error)
	UpdateMetadata(ctx context.Context, tx *gorm.DB, id, name, description string) (int64, error)
	Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type websiteImageRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWebsiteImageRepo(db *gorm.DB, baseLog *logger.Logger) WebsiteImageRepo {
	repoLog := baseLog.With("repo", "WebsiteImageRepo")
	return &websiteImageRepo{db: db, log: repoLog}
}

func (wr *websiteImageRepo) Create(ctx context.Context, tx *gorm.DB, images []*types.WebsiteImage) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	if len(images) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&images).Error
}

func (wr *websiteImageRepo) GetByID(ctx context.Context, tx *gorm.DB, id string) (*types.WebsiteImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var result types.WebsiteImage
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *websiteImageRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.WebsiteImage, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []*types.WebsiteImage
	if err := transaction.WithContext(ctx).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *websiteImageRepo) Categories(ctx context.Context, tx *gorm.DB) ([]string, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var results []string
	if err := transaction.WithContext(ctx).
		Model(&types.WebsiteImage{}).
		Distinct("category").
		Order("category").
		Pluck("category", &results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *websiteImageRepo) UpdateCurrentURL(ctx context.Context, tx *gorm.DB, id, url string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.WebsiteImage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"current_url": url,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (wr *websiteImageRepo) UpdateMetadata(ctx context.Context, tx *gorm.DB, id, name, description string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.WebsiteImage{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"description": description,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (wr *websiteImageRepo) Delete(ctx context.Context, tx *gorm.DB, id string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.WebsiteImage{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (wr *websiteImageRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.WebsiteImage{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
