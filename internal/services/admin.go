package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/platform/envutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
)

type UpdateProfileInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type AdminService interface {
	EnsureDefault(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*types.AdminUser, error)
	Profile(ctx context.Context) (*types.AdminUser, error)
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*types.AdminUser, error)
}

type adminService struct {
	db   *gorm.DB
	log  *logger.Logger
	repo repos.AdminUserRepo
}

func NewAdminService(db *gorm.DB, log *logger.Logger, repo repos.AdminUserRepo) AdminService {
	serviceLog := log.With("service", "AdminService")
	return &adminService{db: db, log: serviceLog, repo: repo}
}

func (as *adminService) ready() error {
	if as.db == nil || as.repo == nil {
		return apierr.Unavailable("database_unavailable", fmt.Errorf("database connection not available"))
	}
	return nil
}

// EnsureDefault seeds the single admin account on first startup. The
// default credentials are meant to be changed through the profile
// endpoint right after deployment.
func (as *adminService) EnsureDefault(ctx context.Context) error {
	if err := as.ready(); err != nil {
		return err
	}

	count, err := as.repo.Count(ctx, nil)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := envutil.String("ADMIN_DEFAULT_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash default password: %w", err)
	}

	user := &types.AdminUser{
		ID:           uuid.New(),
		Name:         envutil.String("ADMIN_DEFAULT_NAME", "MECHGENZ Admin"),
		Email:        strings.ToLower(envutil.String("ADMIN_DEFAULT_EMAIL", "admin@mechgenz.com")),
		PasswordHash: string(hash),
	}
	if err := as.repo.Create(ctx, nil, user); err != nil {
		return err
	}

	as.log.Info("Default admin account created", "email", user.Email)
	return nil
}

func (as *adminService) Login(ctx context.Context, email, password string) (*types.AdminUser, error) {
	if err := as.ready(); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apierr.Validation("missing_credentials", fmt.Errorf("email and password are required"))
	}

	user, err := as.repo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid email or password"))
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apierr.Unauthorized("invalid_credentials", fmt.Errorf("invalid email or password"))
	}

	as.log.Info("Admin login", "email", user.Email)
	return user, nil
}

func (as *adminService) Profile(ctx context.Context) (*types.AdminUser, error) {
	if err := as.ready(); err != nil {
		return nil, err
	}

	user, err := as.repo.GetFirst(ctx, nil)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("admin_not_found", fmt.Errorf("admin profile not found"))
		}
		return nil, err
	}
	return user, nil
}

func (as *adminService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*types.AdminUser, error) {
	user, err := as.Profile(ctx)
	if err != nil {
		return nil, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Name == "" {
		return nil, apierr.Validation("missing_name", fmt.Errorf("name is required"))
	}
	if input.Email == "" {
		return nil, apierr.Validation("missing_email", fmt.Errorf("email is required"))
	}

	fields := map[string]any{
		"name":  input.Name,
		"email": input.Email,
	}

	if strings.TrimSpace(input.NewPassword) != "" {
		if input.CurrentPassword == "" {
			return nil, apierr.Validation("missing_current_password",
				fmt.Errorf("current password is required to set a new one"))
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
			return nil, apierr.Unauthorized("invalid_current_password",
				fmt.Errorf("current password is incorrect"))
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash new password: %w", err)
		}
		fields["password_hash"] = string(hash)
	}

	if _, err := as.repo.Update(ctx, nil, user.ID, fields); err != nil {
		return nil, err
	}

	as.log.Info("Admin profile updated", "email", input.Email)
	return as.Profile(ctx)
}
