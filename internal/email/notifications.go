package email

import (
	"context"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// Notifier sends email notifications for rank changes.
type Notifier struct {
	service   *Service
	templates *Templates
	cfg       *config.Config
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		cfg:       cfg,
	}
}

// IsEnabled returns true if alerts will actually be sent.
func (n *Notifier) IsEnabled() bool {
	return n.service.IsEnabled()
}

// NotifyRankChange emails the alert recipients that a keyword's rank moved.
func (n *Notifier) NotifyRankChange(ctx context.Context, domain string, result models.KeywordResult) {
	if !n.service.IsEnabled() {
		return
	}

	subject, htmlBody, textBody := n.templates.RankChanged(domain, result)
	n.service.SendAsync(n.cfg.AlertEmails, subject, htmlBody, textBody)
}

// Wait blocks until queued alerts have been delivered or have failed.
func (n *Notifier) Wait() {
	n.service.Wait()
}
