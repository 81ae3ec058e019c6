package admin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type AdminUserRepo interface {
	Create(ctx context.Context, tx *gorm.DB, user *types.AdminUser) error
	GetFirst(ctx context.Context, tx *gorm.DB) (*types.AdminUser, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.AdminUser, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) (int64, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type adminUserRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdminUserRepo(db *gorm.DB, baseLog *logger.Logger) AdminUserRepo {
	repoLog := baseLog.With("repo", "AdminUserRepo")
	return &adminUserRepo{db: db, log: repoLog}
}

func (ar *adminUserRepo) Create(ctx context.Context, tx *gorm.DB, user *types.AdminUser) error {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}
	return transaction.WithContext(ctx).Create(user).Error
}

func (ar *adminUserRepo) GetFirst(ctx context.Context, tx *gorm.DB) (*types.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.AdminUser
	if err := transaction.WithContext(ctx).
		Order("created_at").
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *adminUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.AdminUser, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var result types.AdminUser
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ar *adminUserRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, fields map[string]any) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	if len(fields) == 0 {
		return 0, nil
	}
	fields["updated_at"] = time.Now().UTC()

	res := transaction.WithContext(ctx).
		Model(&types.AdminUser{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (ar *adminUserRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = ar.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.AdminUser{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
