package services

import (
	"context"
	"errors"
	"testing"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	"github.com/mechgenz/mechgenz-backend/internal/data/repos/testutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
)

func testAdminService(t *testing.T) AdminService {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	return NewAdminService(tx, log, repos.NewAdminUserRepo(tx, log))
}

func TestEnsureDefaultSeedsOnce(t *testing.T) {
	svc := testAdminService(t)
	ctx := context.Background()

	if err := svc.EnsureDefault(ctx); err != nil {
		t.Fatalf("ensure default: %v", err)
	}
	first, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}

	if err := svc.EnsureDefault(ctx); err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	second, err := svc.Profile(ctx)
	if err != nil {
		t.Fatalf("profile after second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("ensure default created a second account")
	}
	if first.PasswordHash == "admin123" {
		t.Fatalf("default password stored in plaintext")
	}
}

func TestLogin(t *testing.T) {
	svc := testAdminService(t)
	ctx := context.Background()

	if err := svc.EnsureDefault(ctx); err != nil {
		t.Fatalf("ensure default: %v", err)
	}

	user, err := svc.Login(ctx, "admin@mechgenz.com", "admin123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Email != "admin@mechgenz.com" {
		t.Fatalf("wrong account: %s", user.Email)
	}

	var ae *apierr.Error
	if _, err := svc.Login(ctx, "admin@mechgenz.com", "wrong"); !errors.As(err, &ae) || ae.Status != 401 {
		t.Fatalf("expected 401 for wrong password, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody@mechgenz.com", "admin123"); !errors.As(err, &ae) || ae.Status != 401 {
		t.Fatalf("expected 401 for unknown email, got %v", err)
	}
	if _, err := svc.Login(ctx, "", ""); !errors.As(err, &ae) || ae.Status != 400 {
		t.Fatalf("expected 400 for empty credentials, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc := testAdminService(t)
	ctx := context.Background()

	if err := svc.EnsureDefault(ctx); err != nil {
		t.Fatalf("ensure default: %v", err)
	}

	updated, err := svc.UpdateProfile(ctx, UpdateProfileInput{
		Name:  "Mishal Basheer",
		Email: "mishal.basheer@mechgenz.com",
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.Name != "Mishal Basheer" || updated.Email != "mishal.basheer@mechgenz.com" {
		t.Fatalf("profile not applied: %+v", updated)
	}

	// Password change requires proving the current one.
	var ae *apierr.Error
	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{
		Name:        "Mishal Basheer",
		Email:       "mishal.basheer@mechgenz.com",
		NewPassword: "newpass",
	})
	if !errors.As(err, &ae) || ae.Status != 400 {
		t.Fatalf("expected 400 without current password, got %v", err)
	}

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{
		Name:            "Mishal Basheer",
		Email:           "mishal.basheer@mechgenz.com",
		CurrentPassword: "wrong",
		NewPassword:     "newpass",
	})
	if !errors.As(err, &ae) || ae.Status != 401 {
		t.Fatalf("expected 401 with wrong current password, got %v", err)
	}

	_, err = svc.UpdateProfile(ctx, UpdateProfileInput{
		Name:            "Mishal Basheer",
		Email:           "mishal.basheer@mechgenz.com",
		CurrentPassword: "admin123",
		NewPassword:     "newpass",
	})
	if err != nil {
		t.Fatalf("password change: %v", err)
	}

	if _, err := svc.Login(ctx, "mishal.basheer@mechgenz.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, "mishal.basheer@mechgenz.com", "admin123"); err == nil {
		t.Fatalf("old password still accepted")
	}
}
