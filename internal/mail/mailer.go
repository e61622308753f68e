package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"adminpanel/api/internal/config"
)

// SMTPMailer delivers login codes over SMTP.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) (*SMTPMailer, error) {
	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

func (m *SMTPMailer) SendOTP(ctx context.Context, to, code string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	msg.Subject("Admin Panel Login OTP")
	msg.SetBodyString(gomail.TypeTextHTML, otpBody(code))

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}

func otpBody(code string) string {
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333; text-align: center;">Admin Panel Login</h2>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="margin: 0; color: #666;">Your OTP for admin panel login is:</p>
    <h1 style="color: #007bff; text-align: center; font-size: 32px; margin: 20px 0;">%s</h1>
    <p style="margin: 0; color: #666; font-size: 14px;">This OTP will expire in 5 minutes.</p>
  </div>
  <p style="color: #999; font-size: 12px; text-align: center;">
    If you didn't request this OTP, please ignore this email.
  </p>
</div>`, code)
}
