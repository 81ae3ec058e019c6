package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	types "github.com/mechgenz/mechgenz-backend/internal/domain"
	"github.com/mechgenz/mechgenz-backend/internal/platform/apierr"
	"github.com/mechgenz/mechgenz-backend/internal/platform/logger"
	"github.com/mechgenz/mechgenz-backend/internal/platform/resend"
)

type ReplyInput struct {
	ToEmail         string `json:"to_email"`
	ToName          string `json:"to_name"`
	ReplyMessage    string `json:"reply_message"`
	OriginalMessage string `json:"original_message"`
}

type ReplyReceipt struct {
	MessageID string
	ToEmail   string
	ToName    string
	SentAt    time.Time
}

type NotificationService interface {
	Enabled() bool
	NotifyNewSubmission(ctx context.Context, sub *types.Submission) error
	SendReply(ctx context.Context, input ReplyInput) (*ReplyReceipt, error)
}

type NotificationConfig struct {
	CompanyEmail  string
	FromEmail     string
	FromName      string
	AdminPanelURL string
}

type notificationService struct {
	log  *logger.Logger
	mail resend.Client
	cfg  NotificationConfig
}

// NewNotificationService accepts a nil mail client: the service then
// reports Enabled() == false, swallows submission alerts, and refuses
// replies with a 503.
func NewNotificationService(log *logger.Logger, mail resend.Client, cfg NotificationConfig) NotificationService {
	serviceLog := log.With("service", "NotificationService")
	if mail == nil {
		serviceLog.Warn("Mail client not configured, outbound email disabled")
	}
	if strings.TrimSpace(cfg.FromName) == "" {
		cfg.FromName = companyName
	}
	return &notificationService{log: serviceLog, mail: mail, cfg: cfg}
}

func (ns *notificationService) Enabled() bool {
	return ns != nil && ns.mail != nil
}

func (ns *notificationService) NotifyNewSubmission(ctx context.Context, sub *types.Submission) error {
	if sub == nil {
		return fmt.Errorf("nil submission")
	}
	if !ns.Enabled() {
		ns.log.Debug("Skipping submission alert, mail disabled", "submission_id", sub.ID.String())
		return nil
	}
	if strings.TrimSpace(ns.cfg.CompanyEmail) == "" {
		return fmt.Errorf("company email not configured")
	}

	htmlBody := renderNotificationEmail(notificationEmailData{
		Name:          sub.Name,
		Phone:         sub.Phone,
		Email:         sub.Email,
		Message:       sub.Message,
		SubmittedAt:   sub.SubmittedAt,
		AdminPanelURL: ns.cfg.AdminPanelURL,
	})

	replyTo := strings.TrimSpace(sub.Email)
	if replyTo == "" {
		replyTo = ns.cfg.CompanyEmail
	}

	result, err := ns.mail.Send(ctx, resend.SendEmailRequest{
		From:    resend.EmailAddress{Email: ns.cfg.FromEmail, Name: companyName + " Website"},
		To:      []string{ns.cfg.CompanyEmail},
		ReplyTo: &resend.EmailAddress{Email: replyTo},
		Subject: fmt.Sprintf("New Contact Form Submission from %s", sub.Name),
		HTML:    htmlBody,
	})
	if err != nil {
		return err
	}

	ns.log.Info("Submission alert sent",
		"submission_id", sub.ID.String(),
		"message_id", result.MessageID,
	)
	return nil
}

func (ns *notificationService) SendReply(ctx context.Context, input ReplyInput) (*ReplyReceipt, error) {
	input.ToEmail = strings.TrimSpace(input.ToEmail)
	input.ToName = strings.TrimSpace(input.ToName)
	input.ReplyMessage = strings.TrimSpace(input.ReplyMessage)

	// Validation happens before any provider call.
	if input.ToEmail == "" {
		return nil, apierr.Validation("missing_to_email", fmt.Errorf("to_email is required"))
	}
	if input.ToName == "" {
		return nil, apierr.Validation("missing_to_name", fmt.Errorf("to_name is required"))
	}
	if input.ReplyMessage == "" {
		return nil, apierr.Validation("missing_reply_message", fmt.Errorf("reply_message is required"))
	}

	if !ns.Enabled() {
		return nil, apierr.Unavailable("email_not_configured", fmt.Errorf("email delivery is not configured"))
	}

	data := replyEmailData{
		ToName:          input.ToName,
		ReplyMessage:    input.ReplyMessage,
		OriginalMessage: input.OriginalMessage,
	}

	var replyTo *resend.EmailAddress
	if strings.TrimSpace(ns.cfg.CompanyEmail) != "" {
		replyTo = &resend.EmailAddress{Email: ns.cfg.CompanyEmail}
	}

	result, err := ns.mail.Send(ctx, resend.SendEmailRequest{
		From:    resend.EmailAddress{Email: ns.cfg.FromEmail, Name: companyName},
		To:      []string{input.ToEmail},
		ReplyTo: replyTo,
		Subject: "Reply from MECHGENZ - Your Inquiry",
		HTML:    renderReplyEmailHTML(data),
		Text:    renderReplyEmailText(data),
	})
	if err != nil {
		ns.log.Error("Reply email send failed", "to_email", input.ToEmail, "error", err)
		return nil, err
	}
	if strings.TrimSpace(result.MessageID) == "" {
		ns.log.Error("Reply email got no message id from provider", "to_email", input.ToEmail)
		return nil, fmt.Errorf("provider returned no message id")
	}

	ns.log.Info("Reply email sent", "to_email", input.ToEmail, "message_id", result.MessageID)
	return &ReplyReceipt{
		MessageID: result.MessageID,
		ToEmail:   input.ToEmail,
		ToName:    input.ToName,
		SentAt:    time.Now().UTC(),
	}, nil
}
