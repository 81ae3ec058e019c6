package services

import (
	"strings"
	"testing"
	"time"
)

func TestRenderNotificationEmail(t *testing.T) {
	body := renderNotificationEmail(notificationEmailData{
		Name:          "Ahmed Al-Thani",
		Phone:         "+97430401080",
		Email:         "ahmed@example.com",
		Message:       "Need a quotation for plumbing works",
		SubmittedAt:   time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC),
		AdminPanelURL: "https://admin.mechgenz.com/admin/user-inquiries",
	})

	for _, want := range []string{
		"MECHGENZ",
		"NEW CONTACT FORM SUBMISSION",
		"Ahmed Al-Thani",
		"+97430401080",
		"ahmed@example.com",
		"Need a quotation for plumbing works",
		"2024-06-01 09:30:00",
		"https://admin.mechgenz.com/admin/user-inquiries",
		"mailto:ahmed@example.com",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("notification email missing %q", want)
		}
	}
}

func TestRenderNotificationEmailEscapesHTML(t *testing.T) {
	body := renderNotificationEmail(notificationEmailData{
		Name:        "<script>alert(1)</script>",
		Phone:       "1",
		Email:       "a@b.c",
		Message:     "hi",
		SubmittedAt: time.Now(),
	})
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Fatalf("user input not escaped")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup in body")
	}
}

func TestRenderNotificationEmailBlankFields(t *testing.T) {
	body := renderNotificationEmail(notificationEmailData{
		Name:        "X",
		Email:       "a@b.c",
		Message:     "hi",
		SubmittedAt: time.Now(),
	})
	if !strings.Contains(body, "Not provided") {
		t.Fatalf("blank phone should render as Not provided")
	}
	if strings.Contains(body, "View in Admin Panel") {
		t.Fatalf("admin panel button rendered without a URL")
	}
}

func TestRenderReplyEmail(t *testing.T) {
	data := replyEmailData{
		ToName:          "Fatima",
		ReplyMessage:    "We can start next week.",
		OriginalMessage: "When can you start?",
	}

	html := renderReplyEmailHTML(data)
	for _, want := range []string{
		"Dear Fatima,",
		"Our Response:",
		"We can start next week.",
		"Your Original Message:",
		"When can you start?",
		companyOffice,
		companyPhone,
		companyWebsite,
		companyMD,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("reply html missing %q", want)
		}
	}

	text := renderReplyEmailText(data)
	for _, want := range []string{
		"Dear Fatima,",
		"We can start next week.",
		"When can you start?",
		companyPhone,
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("reply text missing %q", want)
		}
	}
	if strings.Contains(text, "<") {
		t.Fatalf("plain text version contains markup")
	}
}

func TestRenderReplyEmailOmitsEmptyOriginal(t *testing.T) {
	html := renderReplyEmailHTML(replyEmailData{ToName: "A", ReplyMessage: "ok"})
	if strings.Contains(html, "Your Original Message:") {
		t.Fatalf("original message block rendered without content")
	}
	text := renderReplyEmailText(replyEmailData{ToName: "A", ReplyMessage: "ok"})
	if strings.Contains(text, "Your Original Message:") {
		t.Fatalf("original message block rendered without content in text")
	}
}
