package services

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Company details rendered into every outbound email.
const (
	companyName    = "MECHGENZ"
	companyTagline = "TRADING CONTRACTING AND SERVICES"
	companyOffice  = "Buzwair Complex, 4th Floor, Rawdat Al Khail St, Doha Qatar"
	companyPOBox   = "22911"
	companyPhone   = "+974 30401080"
	companyEmails  = "info@mechgenz.com | mishal.basheer@mechgenz.com"
	companyWebsite = "www.mechgenz.com"
	companyMD      = "Mishal Basheer"
)

const emailStyles = `
body { font-family: 'Arial', sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f4f4f4; }
.email-container { background-color: #ffffff; border-radius: 10px; padding: 30px; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1); }
.header { text-align: center; border-bottom: 3px solid #ff5722; padding-bottom: 20px; margin-bottom: 30px; }
.logo { font-size: 28px; font-weight: bold; color: #ff5722; letter-spacing: 2px; }
.tagline { font-size: 12px; color: #666; letter-spacing: 3px; margin-top: 5px; }
.alert { background-color: #ff5722; color: white; padding: 15px; border-radius: 5px; margin: 20px 0; text-align: center; font-weight: bold; }
.panel { background-color: #f9f9f9; padding: 20px; border-left: 4px solid #ff5722; margin: 20px 0; border-radius: 5px; }
.quoted { background-color: #f0f0f0; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 3px solid #ccc; }
.quoted h4 { color: #666; margin-top: 0; font-size: 14px; }
.field { margin-bottom: 15px; padding-bottom: 15px; border-bottom: 1px solid #eee; }
.field:last-child { border-bottom: none; margin-bottom: 0; padding-bottom: 0; }
.field-label { font-weight: bold; color: #ff5722; margin-bottom: 5px; }
.field-value { color: #333; white-space: pre-wrap; }
.contact-info { margin: 20px 0; padding: 15px; background-color: #f8f8f8; border-radius: 5px; }
.contact-info h4 { color: #ff5722; margin-top: 0; }
.signature { margin-top: 30px; padding: 20px; background-color: #ff5722; color: white; border-radius: 5px; text-align: center; }
.action-buttons { text-align: center; margin: 30px 0; }
.btn { display: inline-block; padding: 12px 20px; margin: 5px; text-decoration: none; border-radius: 5px; font-weight: bold; color: white; }
.btn-primary { background-color: #ff5722; }
.btn-secondary { background-color: #2c3e50; }
.footer { margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; text-align: center; color: #666; font-size: 14px; }
`

// emailShell wraps a body fragment with the branded header, footer and
// shared styles. Both email types render through it so the layout only
// exists once.
func emailShell(title, body, footerNote string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>%s</style>
</head>
<body>
<div class="email-container">
<div class="header">
<div class="logo">%s</div>
<div class="tagline">%s</div>
</div>
%s
<div class="footer">
<p>%s&copy; 2024 MECHGENZ W.L.L. All Rights Reserved.</p>
</div>
</div>
</body>
</html>`, html.EscapeString(title), emailStyles, companyName, companyTagline, body, footerNote)
}

type notificationEmailData struct {
	Name          string
	Phone         string
	Email         string
	Message       string
	SubmittedAt   time.Time
	AdminPanelURL string
}

func renderNotificationEmail(data notificationEmailData) string {
	field := func(label, value string) string {
		if strings.TrimSpace(value) == "" {
			value = "Not provided"
		}
		return fmt.Sprintf(`<div class="field"><div class="field-label">%s</div><div class="field-value">%s</div></div>`,
			label, html.EscapeString(value))
	}

	var b strings.Builder
	b.WriteString(`<div class="alert">NEW CONTACT FORM SUBMISSION</div>`)
	b.WriteString(`<p>A new contact form has been submitted on the MECHGENZ website. Here are the details:</p>`)
	b.WriteString(`<div class="panel">`)
	b.WriteString(field("Full Name:", data.Name))
	b.WriteString(field("Phone Number:", data.Phone))
	b.WriteString(field("Email Address:", data.Email))
	b.WriteString(field("Message:", data.Message))
	b.WriteString(`</div>`)
	b.WriteString(fmt.Sprintf(`<p><strong>Submitted at:</strong> %s UTC</p>`,
		data.SubmittedAt.UTC().Format("2006-01-02 15:04:05")))
	b.WriteString(`<div class="action-buttons">`)
	if data.AdminPanelURL != "" {
		b.WriteString(fmt.Sprintf(`<a href="%s" class="btn btn-primary">View in Admin Panel</a>`,
			html.EscapeString(data.AdminPanelURL)))
	}
	b.WriteString(fmt.Sprintf(`<a href="mailto:%s?subject=Re: Your inquiry to MECHGENZ" class="btn btn-secondary">Reply Directly</a>`,
		html.EscapeString(data.Email)))
	b.WriteString(`</div>`)
	b.WriteString(`<p>Please respond to this inquiry as soon as possible.</p>`)

	return emailShell(
		"New Contact Form Submission - MECHGENZ",
		b.String(),
		"This notification was sent automatically from the MECHGENZ website contact form.<br>",
	)
}

type replyEmailData struct {
	ToName          string
	ReplyMessage    string
	OriginalMessage string
}

func renderReplyEmailHTML(data replyEmailData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<div style="font-size: 18px; margin-bottom: 20px;">Dear %s,</div>`,
		html.EscapeString(data.ToName)))
	b.WriteString(`<p>Thank you for contacting MECHGENZ Trading Contracting &amp; Services. We appreciate your inquiry and are pleased to respond to your message.</p>`)
	b.WriteString(`<div class="panel"><h3 style="color: #ff5722; margin-top: 0;">Our Response:</h3>`)
	b.WriteString(fmt.Sprintf(`<p style="margin-bottom: 0; white-space: pre-line;">%s</p></div>`,
		html.EscapeString(data.ReplyMessage)))
	if strings.TrimSpace(data.OriginalMessage) != "" {
		b.WriteString(`<div class="quoted"><h4>Your Original Message:</h4>`)
		b.WriteString(fmt.Sprintf(`<p style="margin-bottom: 0; font-style: italic; white-space: pre-line;">%s</p></div>`,
			html.EscapeString(data.OriginalMessage)))
	}
	b.WriteString(`<p>If you have any further questions or need additional information, please don't hesitate to contact us. We look forward to the opportunity to work with you.</p>`)
	b.WriteString(fmt.Sprintf(`<div class="contact-info"><h4>Contact Information</h4>
<p><strong>Office:</strong> %s<br><strong>P.O. Box:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Website:</strong> %s</p>
<p><strong>Managing Director:</strong> %s</p></div>`,
		companyOffice, companyPOBox, companyPhone, companyEmails, companyWebsite, companyMD))
	b.WriteString(`<div class="signature"><p style="margin: 0;"><strong>Best Regards,<br>MECHGENZ Team<br>Trading Contracting and Services</strong></p></div>`)

	return emailShell("Reply from MECHGENZ", b.String(), "")
}

func renderReplyEmailText(data replyEmailData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", data.ToName)
	b.WriteString("Thank you for contacting MECHGENZ Trading Contracting & Services. We appreciate your inquiry and are pleased to respond to your message.\n\n")
	fmt.Fprintf(&b, "Our Response:\n%s\n\n", data.ReplyMessage)
	if strings.TrimSpace(data.OriginalMessage) != "" {
		fmt.Fprintf(&b, "Your Original Message:\n%s\n\n", data.OriginalMessage)
	}
	b.WriteString("If you have any further questions or need additional information, please don't hesitate to contact us. We look forward to the opportunity to work with you.\n\n")
	b.WriteString("Contact Information:\n")
	fmt.Fprintf(&b, "Office: %s\n", companyOffice)
	fmt.Fprintf(&b, "P.O. Box: %s\n", companyPOBox)
	fmt.Fprintf(&b, "Phone: %s\n", companyPhone)
	fmt.Fprintf(&b, "Email: %s\n", companyEmails)
	fmt.Fprintf(&b, "Website: %s\n", companyWebsite)
	fmt.Fprintf(&b, "Managing Director: %s\n\n", companyMD)
	b.WriteString("Best Regards,\nMECHGENZ Team\nTrading Contracting and Services\n\n")
	b.WriteString("(c) 2024 MECHGENZ W.L.L. All Rights Reserved.\n")
	return b.String()
}
