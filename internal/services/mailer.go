package services

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/miamibeach-ops/hk-backend/config"
)

// Mailer sends a formatted email to one address; each call succeeds or
// fails atomically.
type Mailer interface {
	SendOTPEmail(to, code string) error
}

// SendGridMailer sends mail through the SendGrid API
type SendGridMailer struct {
	client *sendgrid.Client
	from   *mail.Email
}

// NewSendGridMailer creates a mailer from the app configuration
func NewSendGridMailer() *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey),
		from:   mail.NewEmail("Miami Beach Resort", config.AppConfig.EmailSender),
	}
}

// SendOTPEmail sends the login code email
func (m *SendGridMailer) SendOTPEmail(to, code string) error {
	if config.AppConfig.SendGridAPIKey == "" {
		return fmt.Errorf("SENDGRID_API_KEY not configured")
	}

	subject := "Your Login Code - Miami Beach Resort"
	plain := fmt.Sprintf("Your login code is: %s\nThis code expires in 10 minutes.", code)
	message := mail.NewSingleEmail(m.from, subject, mail.NewEmail("", to), plain, otpEmailBody(code))

	resp, err := m.client.Send(message)
	if err != nil {
		log.Printf("❌ Failed to send OTP email: %v", err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("❌ SendGrid rejected OTP email: status %d", resp.StatusCode)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}

	log.Printf("✅ OTP email sent to %s", to)
	return nil
}

func otpEmailBody(code string) string {
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 400px; margin: 0 auto; padding: 20px;">
			<h2 style="color: #2D6A6A;">Miami Beach Resort</h2>
			<p>Your login code is:</p>
			<div style="font-size: 32px; font-weight: bold; color: #2D6A6A; letter-spacing: 5px; padding: 20px; background: #f0f9f9; border-radius: 8px; text-align: center;">
				%s
			</div>
			<p style="color: #666; margin-top: 20px;">This code expires in 10 minutes.</p>
		</div>
	`, code)
}
