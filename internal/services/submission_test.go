package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos"
	"github.com/mechgenz/mechgenz-backend/internal/data/repos/testutil"
	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/storage"
)

type noopNotifier struct {
	notified int
	err      error
}

func (n *noopNotifier) Enabled() bool { return true }
func (n *noopNotifier) NotifyNewSubmission(ctx context.Context, sub *types.Submission) error {
	n.notified++
	return n.err
}
func (n *noopNotifier) SendReply(ctx context.Context, input ReplyInput) (*ReplyReceipt, error) {
	return nil, fmt.Errorf("not implemented")
}

func testSubmissionService(t *testing.T, notifier NotificationService) (SubmissionService, repos.SubmissionRepo, storage.FileStore) {
	t.Helper()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	repo := repos.NewSubmissionRepo(tx, log)
	store, err := storage.NewLocalStore(log, t.TempDir(), "")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	if notifier == nil {
		notifier = &noopNotifier{}
	}
	return NewSubmissionService(tx, log, repo, store, notifier), repo, store
}

func validSubmitInput() SubmitInput {
	return SubmitInput{
		Name:    "Ahmed",
		Phone:   "+97430401080",
		Email:   "ahmed@example.com",
		Message: "Need a quotation",
	}
}

func TestSubmitAssignsFreshID(t *testing.T) {
	svc, _, _ := testSubmissionService(t, nil)
	ctx := context.Background()

	first, err := svc.Submit(ctx, validSubmitInput(), SubmitMeta{SourceIP: "1.2.3.4", UserAgent: "test"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	second, err := svc.Submit(ctx, validSubmitInput(), SubmitMeta{})
	if err != nil {
		t.Fatalf("submit second: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("submissions share an id")
	}
	if first.Status != types.SubmissionStatusNew {
		t.Fatalf("new submission status = %s", first.Status)
	}
	if first.SubmittedAt.IsZero() {
		t.Fatalf("submitted_at not stamped")
	}
	if first.SourceIP != "1.2.3.4" || first.UserAgent != "test" {
		t.Fatalf("request metadata not recorded")
	}
}

func TestSubmitRejectsBlankFields(t *testing.T) {
	svc, repo, _ := testSubmissionService(t, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"blank name", func(in *SubmitInput) { in.Name = "   " }},
		{"blank phone", func(in *SubmitInput) { in.Phone = "" }},
		{"blank email", func(in *SubmitInput) { in.Email = "\t" }},
		{"blank message", func(in *SubmitInput) { in.Message = " \n " }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validSubmitInput()
			tc.mutate(&input)
			_, err := svc.Submit(ctx, input, SubmitMeta{})
			var ae *apierr.Error
			if !errors.As(err, &ae) || ae.Status != 400 {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected submissions persisted rows: %d", count)
	}
}

func TestSubmitStoresAttachments(t *testing.T) {
	svc, _, store := testSubmissionService(t, nil)
	ctx := context.Background()

	input := validSubmitInput()
	input.Files = []UploadedFile{
		{Filename: "site plan.pdf", ContentType: "application/pdf", Data: []byte("pdf bytes")},
	}

	sub, err := svc.Submit(ctx, input, SubmitMeta{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	files := decodeStoredFiles(sub.Files)
	if len(files) != 1 {
		t.Fatalf("expected 1 stored file, got %d", len(files))
	}
	if files[0].OriginalName != "site plan.pdf" || files[0].Size != 9 {
		t.Fatalf("bad metadata: %+v", files[0])
	}
	if _, err := store.Path(files[0].StoredName); err != nil {
		t.Fatalf("stored file missing on disk: %v", err)
	}

	att, err := svc.Attachment(ctx, sub.ID.String(), files[0].StoredName)
	if err != nil {
		t.Fatalf("attachment: %v", err)
	}
	if att.OriginalName != "site plan.pdf" {
		t.Fatalf("attachment metadata mismatch: %+v", att)
	}
}

func TestSubmitRejectsBadAttachments(t *testing.T) {
	svc, repo, _ := testSubmissionService(t, nil)
	ctx := context.Background()

	input := validSubmitInput()
	input.Files = []UploadedFile{{Filename: "run.exe", Data: []byte("x")}}
	if _, err := svc.Submit(ctx, input, SubmitMeta{}); err == nil {
		t.Fatalf("expected rejection of disallowed extension")
	}

	input = validSubmitInput()
	input.Files = []UploadedFile{{Filename: "big.pdf", Data: make([]byte, maxAttachmentSize+1)}}
	if _, err := svc.Submit(ctx, input, SubmitMeta{}); err == nil {
		t.Fatalf("expected rejection of oversized file")
	}

	count, err := repo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("invalid submissions persisted rows: %d", count)
	}
}

func TestSubmitSuppressesNotifyFailure(t *testing.T) {
	notifier := &noopNotifier{err: fmt.Errorf("smtp down")}
	svc, _, _ := testSubmissionService(t, notifier)

	sub, err := svc.Submit(context.Background(), validSubmitInput(), SubmitMeta{})
	if err != nil {
		t.Fatalf("notification failure must not fail the submission: %v", err)
	}
	if sub == nil || notifier.notified != 1 {
		t.Fatalf("notifier not invoked")
	}
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, _, _ := testSubmissionService(t, nil)
	ctx := context.Background()

	sub, err := svc.Submit(ctx, validSubmitInput(), SubmitMeta{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := svc.UpdateStatus(ctx, sub.ID.String(), "resolved"); err == nil {
		t.Fatalf("expected rejection of unknown status")
	}
	if err := svc.UpdateStatus(ctx, "not-a-uuid", types.SubmissionStatusCompleted); err == nil {
		t.Fatalf("expected rejection of malformed id")
	}
	if err := svc.UpdateStatus(ctx, sub.ID.String(), types.SubmissionStatusCompleted); err != nil {
		t.Fatalf("valid update failed: %v", err)
	}

	got, err := svc.Get(ctx, sub.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != types.SubmissionStatusCompleted || got.UpdatedAt == nil {
		t.Fatalf("status transition not recorded: %+v", got)
	}
}

func TestDeleteRemovesAttachments(t *testing.T) {
	svc, _, store := testSubmissionService(t, nil)
	ctx := context.Background()

	input := validSubmitInput()
	input.Files = []UploadedFile{{Filename: "doc.pdf", Data: []byte("x")}}
	sub, err := svc.Submit(ctx, input, SubmitMeta{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	stored := decodeStoredFiles(sub.Files)[0].StoredName

	if err := svc.Delete(ctx, sub.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, sub.ID.String()); err == nil {
		t.Fatalf("submission still readable after delete")
	}
	if _, err := store.Path(stored); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("attachment not removed from disk: %v", err)
	}

	var ae *apierr.Error
	if err := svc.Delete(ctx, sub.ID.String()); !errors.As(err, &ae) || ae.Status != 404 {
		t.Fatalf("second delete should 404, got %v", err)
	}
}

func TestStats(t *testing.T) {
	// Stats fans out concurrent queries, so it runs against the pooled
	// handle rather than a single test transaction.
	db := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewSubmissionRepo(db, log)
	store, err := storage.NewLocalStore(log, t.TempDir(), "")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	svc := NewSubmissionService(db, log, repo, store, &noopNotifier{})
	ctx := context.Background()
	t.Cleanup(func() {
		db.Where("1 = 1").Delete(&types.Submission{})
	})

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(ctx, validSubmitInput(), SubmitMeta{}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}
	items, _, err := repo.List(ctx, nil, repos.SubmissionListParams{Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := repo.UpdateStatus(ctx, nil, items[0].ID, types.SubmissionStatusArchived, time.Now().UTC()); err != nil {
		t.Fatalf("archive: %v", err)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d", stats.Total)
	}
	if stats.Recent != 3 {
		t.Fatalf("recent = %d", stats.Recent)
	}
	if stats.ByStatus[types.SubmissionStatusNew] != 2 || stats.ByStatus[types.SubmissionStatusArchived] != 1 {
		t.Fatalf("unexpected breakdown: %v", stats.ByStatus)
	}
}

func TestDegradedModeReturns503(t *testing.T) {
	log := testutil.Logger(t)
	store, err := storage.NewLocalStore(log, t.TempDir(), "")
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	svc := NewSubmissionService(nil, log, nil, store, &noopNotifier{})

	var ae *apierr.Error
	if _, err := svc.Submit(context.Background(), validSubmitInput(), SubmitMeta{}); !errors.As(err, &ae) || ae.Status != 503 {
		t.Fatalf("expected 503 in degraded mode, got %v", err)
	}
	if _, _, err := svc.List(context.Background(), repos.SubmissionListParams{}); !errors.As(err, &ae) || ae.Status != 503 {
		t.Fatalf("expected 503 from list, got %v", err)
	}
}
