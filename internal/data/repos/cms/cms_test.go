package cms

import (
	"context"
	"testing"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos/testutil"
)

func TestWebsiteImageRepoGetAllAndCategories(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewWebsiteImageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	testutil.SeedWebsiteImage(t, ctx, tx, "hero_slide_1", "hero")
	testutil.SeedWebsiteImage(t, ctx, tx, "hero_slide_2", "hero")
	testutil.SeedWebsiteImage(t, ctx, tx, "logo", "branding")

	all, err := repo.GetAll(ctx, tx)
	if err != nil {
		t.Fatalf("get all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 images, got %d", len(all))
	}

	cats, err := repo.Categories(ctx, tx)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if len(cats) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", cats)
	}
}

func TestWebsiteImageRepoUpdateCurrentURL(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewWebsiteImageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	img := testutil.SeedWebsiteImage(t, ctx, tx, "about_main", "about")

	affected, err := repo.UpdateCurrentURL(ctx, tx, img.ID, "/uploads/about_main_new.jpg")
	if err != nil {
		t.Fatalf("update url: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	got, err := repo.GetByID(ctx, tx, img.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CurrentURL != "/uploads/about_main_new.jpg" {
		t.Fatalf("current url not updated: %s", got.CurrentURL)
	}
	if got.DefaultURL != img.DefaultURL {
		t.Fatalf("default url must not change on upload")
	}

	affected, err = repo.UpdateCurrentURL(ctx, tx, "missing_slot", "/uploads/x.jpg")
	if err != nil {
		t.Fatalf("update missing: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 rows for unknown slot, got %d", affected)
	}
}

func TestWebsiteImageRepoUpdateMetadataAndDelete(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewWebsiteImageRepo(db, testutil.Logger(t))
	ctx := context.Background()

	img := testutil.SeedWebsiteImage(t, ctx, tx, "portfolio_civil_1", "portfolio")

	affected, err := repo.UpdateMetadata(ctx, tx, img.ID, "Renamed", "new description")
	if err != nil {
		t.Fatalf("update metadata: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	got, err := repo.GetByID(ctx, tx, img.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" || got.Description != "new description" {
		t.Fatalf("metadata not applied: %+v", got)
	}

	affected, err = repo.Delete(ctx, tx, img.ID)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row deleted, got %d", affected)
	}

	count, err := repo.Count(ctx, tx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}
}
