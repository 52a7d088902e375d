package email

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/metrics"
)

const sendTimeout = 30 * time.Second

// Service handles sending email notifications.
type Service struct {
	cfg     *config.Config
	enabled bool
	pending sync.WaitGroup
}

// NewService creates a new email service.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		enabled: cfg.IsEmailEnabled(),
	}

	if s.enabled {
		slog.Info("email alerts enabled", "smtp_host", cfg.SMTPHost, "smtp_port", cfg.SMTPPort, "tls", cfg.SMTPTLS)
	} else {
		slog.Info("email alerts disabled (SMTP or ALERT_EMAIL not configured)")
	}

	return s
}

// IsEnabled returns true if email is enabled.
func (s *Service) IsEnabled() bool {
	return s.enabled
}

// Send sends an email to the specified recipients.
func (s *Service) Send(ctx context.Context, to []string, subject, htmlBody, textBody string) error {
	if !s.enabled {
		return nil
	}

	if len(to) == 0 {
		return nil
	}

	msg, err := s.buildMessage(to, subject, htmlBody, textBody)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	client, err := s.newClient()
	if err != nil {
		return fmt.Errorf("create mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// buildMessage assembles a plain text message with an optional HTML alternative.
func (s *Service) buildMessage(to []string, subject, htmlBody, textBody string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.EmailSenderName != "" {
		if err := msg.FromFormat(s.cfg.EmailSenderName, s.cfg.EmailSender); err != nil {
			return nil, fmt.Errorf("set from: %w", err)
		}
	} else if err := msg.From(s.cfg.EmailSender); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}

	if err := msg.To(to...); err != nil {
		return nil, fmt.Errorf("set to: %w", err)
	}

	msg.Subject(subject)

	switch {
	case textBody != "" && htmlBody != "":
		msg.SetBodyString(mail.TypeTextPlain, textBody)
		msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)
	case htmlBody != "":
		msg.SetBodyString(mail.TypeTextHTML, htmlBody)
	default:
		msg.SetBodyString(mail.TypeTextPlain, textBody)
	}

	msg.SetGenHeader(mail.HeaderXMailer, s.cfg.SiteTitle)
	msg.SetDate()
	msg.SetMessageID()

	return msg, nil
}

// newClient creates an SMTP client for the configured TLS mode.
func (s *Service) newClient() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
		mail.WithTimeout(sendTimeout),
	}

	switch s.cfg.SMTPTLS {
	case "tls": // implicit TLS (port 465)
		opts = append(opts, mail.WithSSL())
	case "none":
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	default: // "starttls" (port 587)
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}

	if s.cfg.EmailPassword != "" && s.cfg.SMTPTLS != "none" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.EmailSender),
			mail.WithPassword(s.cfg.EmailPassword),
		)
	}

	return mail.NewClient(s.cfg.SMTPHost, opts...)
}

// SendAsync sends an email asynchronously (fire and forget with logging).
func (s *Service) SendAsync(to []string, subject, htmlBody, textBody string) {
	if !s.enabled || len(to) == 0 {
		return
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := s.Send(ctx, to, subject, htmlBody, textBody); err != nil {
			metrics.RecordAlert("failed")
			slog.Error("failed to send email", "to", to, "subject", subject, "error", err)
			return
		}
		metrics.RecordAlert("sent")
		slog.Info("email sent", "to", to, "subject", subject)
	}()
}

// Wait blocks until all emails queued with SendAsync have finished.
func (s *Service) Wait() {
	s.pending.Wait()
}
