package admin

import (
	"context"
	"testing"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos/testutil"
)

func TestAdminUserRepoCreateAndGet(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewAdminUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	count, err := repo.Count(ctx, tx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d", count)
	}

	seeded := testutil.SeedAdminUser(t, ctx, tx, "admin@mechgenz.com", "hash")

	got, err := repo.GetByEmail(ctx, tx, "admin@mechgenz.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != seeded.ID {
		t.Fatalf("wrong admin returned")
	}

	first, err := repo.GetFirst(ctx, tx)
	if err != nil {
		t.Fatalf("get first: %v", err)
	}
	if first.ID != seeded.ID {
		t.Fatalf("get first returned wrong row")
	}
}

func TestAdminUserRepoUpdate(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	repo := NewAdminUserRepo(db, testutil.Logger(t))
	ctx := context.Background()

	seeded := testutil.SeedAdminUser(t, ctx, tx, "admin2@mechgenz.com", "hash")

	affected, err := repo.Update(ctx, tx, seeded.ID, map[string]any{
		"name":  "New Name",
		"email": "renamed@mechgenz.com",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 row affected, got %d", affected)
	}

	got, err := repo.GetByEmail(ctx, tx, "renamed@mechgenz.com")
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if got.Name != "New Name" {
		t.Fatalf("name not updated: %s", got.Name)
	}
}
