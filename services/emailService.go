package services

import (
	"fmt"
	"html"

	"github.com/PrayNoel/initializers"
	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

type EmailService struct {
	client *resend.Client
	from   string
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := initializers.Config.ResendAPIKey

	if apiKey == "" {
		initializers.Log.Warn("RESEND_API_KEY not set, email notifications are disabled")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
		from:   initializers.Config.EmailFrom,
	}

	initializers.Log.Info("email service initialized with Resend")
}

// GetEmailService returns nil when email is not configured.
func GetEmailService() *EmailService {
	return emailService
}

const emailLayout = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
        .header {
            text-align: center;
            padding: 20px 0;
            border-bottom: 2px solid #b22222;
        }
        .header h1 {
            color: #b22222;
            margin: 0;
        }
        .content {
            padding: 30px 0;
        }
        .quote {
            background-color: #f8f5ef;
            border-left: 4px solid #1e6b3a;
            padding: 12px 16px;
            margin: 20px 0;
        }
        .footer {
            text-align: center;
            padding: 20px 0;
            border-top: 1px solid #ddd;
            font-size: 12px;
            color: #666;
        }
    </style>
</head>
<body>
    <div class="header">
        <h1>Pray Noel</h1>
    </div>

    <div class="content">
%s
    </div>

    <div class="footer">
        <p>You are receiving this because you have an account on Pray Noel.</p>
    </div>
</body>
</html>
`

func (s *EmailService) send(to, subject, body, kind string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    fmt.Sprintf(emailLayout, body),
	}

	sent, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send %s email: %w", kind, err)
	}

	initializers.Log.WithFields(logrus.Fields{
		"kind":     kind,
		"email_id": sent.Id,
	}).Info("email sent")
	return nil
}

// SendWelcomeEmail greets a newly registered user.
func (s *EmailService) SendWelcomeEmail(toEmail string, username string) error {
	body := fmt.Sprintf(`        <h2>Welcome, %s!</h2>

        <p>Thank you for joining Pray Noel. This Advent season you can:</p>
        <ul>
            <li>Share your prayer requests with the community</li>
            <li>Pray for others and leave words of encouragement</li>
            <li>Gather friends and family into prayer circles</li>
            <li>Follow the daily Advent reflections</li>
        </ul>

        <p>Merry Christmas,<br>The Pray Noel Team</p>`, html.EscapeString(username))

	return s.send(toEmail, "Welcome to Pray Noel!", body, "welcome")
}

// SendEncouragementEmail tells a request owner someone encouraged them.
func (s *EmailService) SendEncouragementEmail(toEmail, username, requestTitle, encouragement string) error {
	body := fmt.Sprintf(`        <h2>Hi %s,</h2>

        <p>Someone left you an encouragement on your prayer request <strong>%s</strong>:</p>

        <div class="quote">%s</div>

        <p>You are not alone. The community is praying with you.</p>`,
		html.EscapeString(username),
		html.EscapeString(requestTitle),
		html.EscapeString(encouragement),
	)

	return s.send(toEmail, "You received an encouragement", body, "encouragement")
}
