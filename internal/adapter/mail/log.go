package mail

import (
	"context"

	"go.uber.org/zap"

	"tasktracker/internal/config"
	"tasktracker/internal/core/ports"
)

// LogMailer writes emails to the log instead of sending them. It is used when
// no SMTP host is configured, which keeps local signups usable.
type LogMailer struct {
	frontendURL string
}

var _ ports.Mailer = (*LogMailer)(nil)

func NewLogMailer(frontendURL string) *LogMailer {
	return &LogMailer{frontendURL: frontendURL}
}

func (m *LogMailer) SendVerificationCode(_ context.Context, to, code string) error {
	zap.L().Info("verification email", zap.String("to", to), zap.String("code", code))
	return nil
}

func (m *LogMailer) SendPasswordReset(_ context.Context, to, token string) error {
	zap.L().Info("password reset email", zap.String("to", to), zap.String("url", ResetURL(m.frontendURL, token)))
	return nil
}

// New picks the SMTP mailer when SMTP_HOST is set.
func New(conf *config.Config) ports.Mailer {
	if conf.SMTPHost == "" {
		zap.L().Warn("SMTP_HOST not set, emails will only be logged")
		return NewLogMailer(conf.FrontendURL)
	}
	return NewSMTPMailer(conf)
}
