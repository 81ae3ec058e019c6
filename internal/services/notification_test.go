package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mechgenz/mechgenz-backend/internal/data/repos/testutil"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/platform/resend"
)

type fakeMailClient struct {
	calls   int
	lastReq resend.SendEmailRequest
	result  *resend.SendEmailResult
	err     error
}

func (f *fakeMailClient) Send(ctx context.Context, req resend.SendEmailRequest) (*resend.SendEmailResult, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return &resend.SendEmailResult{StatusCode: 200, MessageID: "msg_123"}, nil
}

func testNotifier(t *testing.T, mail resend.Client) NotificationService {
	t.Helper()
	return NewNotificationService(testutil.Logger(t), mail, NotificationConfig{
		CompanyEmail:  "mechgenz4@gmail.com",
		FromEmail:     "info@mechgenz.com",
		AdminPanelURL: "https://admin.mechgenz.com/admin/user-inquiries",
	})
}

func TestSendReplyValidationShortCircuitsProvider(t *testing.T) {
	mail := &fakeMailClient{}
	ns := testNotifier(t, mail)
	ctx := context.Background()

	cases := []struct {
		name  string
		input ReplyInput
	}{
		{"missing to_email", ReplyInput{ToName: "A", ReplyMessage: "x"}},
		{"missing to_name", ReplyInput{ToEmail: "a@b.c", ReplyMessage: "x"}},
		{"missing reply_message", ReplyInput{ToEmail: "a@b.c", ToName: "A"}},
		{"whitespace only", ReplyInput{ToEmail: "  ", ToName: "A", ReplyMessage: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ns.SendReply(ctx, tc.input)
			var ae *apierr.Error
			if !errors.As(err, &ae) || ae.Status != 400 {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
	if mail.calls != 0 {
		t.Fatalf("provider called %d times despite invalid input", mail.calls)
	}
}

func TestSendReplySuccess(t *testing.T) {
	mail := &fakeMailClient{}
	ns := testNotifier(t, mail)

	receipt, err := ns.SendReply(context.Background(), ReplyInput{
		ToEmail:         "fatima@example.com",
		ToName:          "Fatima",
		ReplyMessage:    "We can start next week.",
		OriginalMessage: "When can you start?",
	})
	if err != nil {
		t.Fatalf("send reply: %v", err)
	}
	if receipt.MessageID != "msg_123" {
		t.Fatalf("unexpected message id: %s", receipt.MessageID)
	}
	if mail.calls != 1 {
		t.Fatalf("expected one provider call, got %d", mail.calls)
	}
	if len(mail.lastReq.To) != 1 || mail.lastReq.To[0] != "fatima@example.com" {
		t.Fatalf("wrong recipient: %v", mail.lastReq.To)
	}
	if mail.lastReq.ReplyTo == nil || mail.lastReq.ReplyTo.Email != "mechgenz4@gmail.com" {
		t.Fatalf("reply-to should be the company address")
	}
	if mail.lastReq.Text == "" || mail.lastReq.HTML == "" {
		t.Fatalf("reply must carry both html and text bodies")
	}
}

func TestSendReplyMissingMessageIDIsFailure(t *testing.T) {
	mail := &fakeMailClient{result: &resend.SendEmailResult{StatusCode: 200}}
	ns := testNotifier(t, mail)

	_, err := ns.SendReply(context.Background(), ReplyInput{
		ToEmail: "a@b.c", ToName: "A", ReplyMessage: "x",
	})
	if err == nil {
		t.Fatalf("expected error when provider returns no message id")
	}
}

func TestSendReplyDisabledNotifier(t *testing.T) {
	ns := testNotifier(t, nil)

	_, err := ns.SendReply(context.Background(), ReplyInput{
		ToEmail: "a@b.c", ToName: "A", ReplyMessage: "x",
	})
	var ae *apierr.Error
	if !errors.As(err, &ae) || ae.Status != 503 {
		t.Fatalf("expected 503 from disabled notifier, got %v", err)
	}
}

func TestNotifyNewSubmission(t *testing.T) {
	mail := &fakeMailClient{}
	ns := testNotifier(t, mail)
	ctx := context.Background()

	sub := testutil.SeedSubmission(t, ctx, testutil.Tx(t, testutil.DB(t)), "ahmed@example.com", "new", time.Now().UTC())
	if err := ns.NotifyNewSubmission(ctx, sub); err != nil {
		t.Fatalf("notify: %v", err)
	}
	if mail.calls != 1 {
		t.Fatalf("expected one provider call, got %d", mail.calls)
	}
	if len(mail.lastReq.To) != 1 || mail.lastReq.To[0] != "mechgenz4@gmail.com" {
		t.Fatalf("alert should go to the company address: %v", mail.lastReq.To)
	}
	if mail.lastReq.ReplyTo == nil || mail.lastReq.ReplyTo.Email != "ahmed@example.com" {
		t.Fatalf("alert reply-to should be the submitter")
	}
	if !strings.Contains(mail.lastReq.Subject, "Test Sender") {
		t.Fatalf("subject should carry the submitter name: %s", mail.lastReq.Subject)
	}

	// Disabled notifier swallows alerts instead of failing.
	disabled := testNotifier(t, nil)
	if err := disabled.NotifyNewSubmission(ctx, sub); err != nil {
		t.Fatalf("disabled notifier should not error: %v", err)
	}
}
