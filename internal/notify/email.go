package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gopkg.in/gomail.v2"
)

type Kind string

const (
	KindVerification  Kind = "verification"
	KindPasswordReset Kind = "password_reset"
)

// Notifier delivers one-time codes to users.
type Notifier interface {
	SendOtp(ctx context.Context, toEmail, code string, kind Kind) error
}

type EmailConfig struct {
	SMTPHost  string
	SMTPPort  int
	SMTPUser  string
	SMTPPass  string
	FromEmail string
}

func (c EmailConfig) configured() bool {
	return c.SMTPHost != "" && c.FromEmail != ""
}

type EmailNotifier struct {
	cfg    EmailConfig
	logger *slog.Logger
}

func NewEmailNotifier(cfg EmailConfig, logger *slog.Logger) *EmailNotifier {
	return &EmailNotifier{
		cfg:    cfg,
		logger: logger,
	}
}

func (n *EmailNotifier) SendOtp(ctx context.Context, toEmail, code string, kind Kind) error {
	if !n.cfg.configured() {
		return fmt.Errorf("email config missing")
	}
	if strings.TrimSpace(toEmail) == "" {
		return fmt.Errorf("empty recipient")
	}

	subject, heading := "Verify your email", "Welcome! Use this code to verify your account:"
	if kind == KindPasswordReset {
		subject, heading = "Reset your password", "Use this code to reset your password:"
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.FromEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <p>%s</p>
    <div style="font-size: 28px; font-weight: bold; letter-spacing: 3px;">%s</div>
    <p>The code expires in 10 minutes.</p>
  </div>
</body>
</html>`, heading, code))

	d := gomail.NewDialer(n.cfg.SMTPHost, n.cfg.SMTPPort, n.cfg.SMTPUser, n.cfg.SMTPPass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Info("otp email sent", slog.String("to", toEmail), slog.String("kind", string(kind)))
	return nil
}

// Async hands each message to a goroutine and only logs delivery failures,
// so callers never block on SMTP.
type Async struct {
	next   Notifier
	logger *slog.Logger
}

func NewAsync(next Notifier, logger *slog.Logger) *Async {
	return &Async{next: next, logger: logger}
}

func (a *Async) SendOtp(_ context.Context, toEmail, code string, kind Kind) error {
	go func() {
		if err := a.next.SendOtp(context.Background(), toEmail, code, kind); err != nil {
			a.logger.Error("failed to send otp email",
				slog.String("to", toEmail),
				slog.String("kind", string(kind)),
				slog.String("error", err.Error()),
			)
		}
	}()
	return nil
}
