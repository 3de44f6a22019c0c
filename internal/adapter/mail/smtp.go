// Package mail delivers the transactional emails: verification codes and
// password reset links.
package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"tasktracker/internal/adapter/metrics"
	"tasktracker/internal/config"
	"tasktracker/internal/core/domain"
	"tasktracker/internal/core/ports"
)

type SMTPMailer struct {
	host        string
	port        int
	user        string
	password    string
	from        string
	useTLS      bool
	frontendURL string
	timeout     time.Duration

	send func(ctx context.Context, to string, msg []byte) error
}

var _ ports.Mailer = (*SMTPMailer)(nil)

func NewSMTPMailer(conf *config.Config) *SMTPMailer {
	m := &SMTPMailer{
		host:        conf.SMTPHost,
		port:        conf.SMTPPort,
		user:        conf.SMTPUser,
		password:    conf.SMTPPassword,
		from:        conf.SMTPFrom,
		useTLS:      conf.SMTPUseTLS,
		frontendURL: conf.FrontendURL,
		timeout:     30 * time.Second,
	}
	m.send = m.sendSMTP
	return m
}

func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body, err := render(verificationTemplate, verificationData{
		Code:             code,
		ExpiresInMinutes: int(domain.VerificationCodeTTL / time.Minute),
	})
	if err != nil {
		return err
	}
	return m.deliver(ctx, "verification", to, verificationSubject, body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	body, err := render(resetTemplate, resetData{ResetURL: ResetURL(m.frontendURL, token)})
	if err != nil {
		return err
	}
	return m.deliver(ctx, "password_reset", to, resetSubject, body)
}

func (m *SMTPMailer) deliver(ctx context.Context, kind, to, subject, body string) error {
	if err := m.send(ctx, to, m.buildMessage(to, subject, body)); err != nil {
		metrics.EmailsSent.WithLabelValues(kind, "failure").Inc()
		return err
	}
	metrics.EmailsSent.WithLabelValues(kind, "success").Inc()
	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, body string) []byte {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: Mini Task Tracker <%s>\r\n", m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}

func (m *SMTPMailer) sendSMTP(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(m.host, fmt.Sprint(m.port))

	dialer := &net.Dialer{Timeout: m.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to SMTP server: %w", err)
	}
	defer func() { _ = conn.Close() }()

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if m.useTLS {
		if err := client.StartTLS(&tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}); err != nil {
			return fmt.Errorf("start TLS: %w", err)
		}
	}

	if m.user != "" && m.password != "" {
		if err := client.Auth(smtp.PlainAuth("", m.user, m.password, m.host)); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := writer.Write(msg); err != nil {
		_ = writer.Close()
		return fmt.Errorf("write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finish message: %w", err)
	}

	return client.Quit()
}
