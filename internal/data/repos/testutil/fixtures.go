package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func SeedSubmission(tb testing.TB, ctx context.Context, tx *gorm.DB, email, status string, submittedAt time.Time) *types.Submission {
	tb.Helper()
	s := &types.Submission{
		ID:          uuid.New(),
		Name:        "Test Sender",
		Phone:       "+97430000000",
		Email:       email,
		Message:     "test inquiry",
		Files:       datatypes.JSON([]byte("[]")),
		Status:      status,
		SubmittedAt: submittedAt,
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		tb.Fatalf("seed submission: %v", err)
	}
	return s
}

func SeedWebsiteImage(tb testing.TB, ctx context.Context, tx *gorm.DB, id, category string) *types.WebsiteImage {
	tb.Helper()
	now := time.Now().UTC()
	img := &types.WebsiteImage{
		ID:              id,
		Name:            "Image " + id,
		Description:     "seeded image",
		Category:        category,
		CurrentURL:      "https://example.com/" + id + ".jpg",
		DefaultURL:      "https://example.com/" + id + ".jpg",
		Locations:       datatypes.JSON([]byte(`["Test Section"]`)),
		RecommendedSize: "800x600px",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := tx.WithContext(ctx).Create(img).Error; err != nil {
		tb.Fatalf("seed website image: %v", err)
	}
	return img
}

func SeedAdminUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email, passwordHash string) *types.AdminUser {
	tb.Helper()
	u := &types.AdminUser{
		ID:           uuid.New(),
		Name:         "Admin",
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed admin user: %v", err)
	}
	return u
}
