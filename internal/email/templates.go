package email

import (
	"fmt"
	"html"
	"strconv"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a consistent HTML email template.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #1565c0; color: white; padding: 20px; text-align: center; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 22px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .improved { color: #2e7d32; font-weight: 600; }
        .dropped { color: #c62828; font-weight: 600; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>This email was sent by %s</p>
        <p><a href="%s">%s</a></p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(t.cfg.SiteTitle), content, html.EscapeString(t.cfg.SiteTitle), t.cfg.BaseURL, t.cfg.BaseURL)
}

// RankChanged generates the alert sent when a keyword's rank moves.
func (t *Templates) RankChanged(domain string, result models.KeywordResult) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] Keyword '%s' - Rank %s", t.cfg.SiteTitle, result.Keyword, result.Change)

	previous := "None"
	if result.PreviousRank != nil {
		previous = formatRank(*result.PreviousRank)
	}
	current := formatRank(result.Rank)

	statusClass := ""
	switch result.Change {
	case models.ChangeImproved:
		statusClass = "improved"
	case models.ChangeDropped:
		statusClass = "dropped"
	}

	content := fmt.Sprintf(`
        <p>The ranking of a tracked keyword has changed.</p>

        <div class="info-box">
            <p><span class="label">Keyword:</span> <code>%s</code></p>
            <p><span class="label">Domain:</span> %s</p>
            <p><span class="label">Previous Rank:</span> %s</p>
            <p><span class="label">Current Rank:</span> %s</p>
            <p><span class="label">Status:</span> <span class="%s">%s</span></p>
            <p><span class="label">Ranking URL:</span> %s</p>
        </div>
    `,
		html.EscapeString(result.Keyword),
		html.EscapeString(domain),
		previous,
		current,
		statusClass,
		html.EscapeString(string(result.Change)),
		rankingURLHTML(result.URL),
	)

	htmlBody = t.baseHTML(subject, content)

	textBody = fmt.Sprintf(`Keyword: %s
Domain: %s
Previous Rank: %s
Current Rank: %s
Status: %s
Ranking URL: %s

--
%s
%s`,
		result.Keyword,
		domain,
		previous,
		current,
		result.Change,
		result.URL,
		t.cfg.SiteTitle,
		t.cfg.BaseURL,
	)

	return
}

func formatRank(rank int) string {
	if rank <= 0 {
		return "Not found"
	}
	return strconv.Itoa(rank)
}

func rankingURLHTML(url string) string {
	if url == "" || url == models.NotFoundURL {
		return models.NotFoundURL
	}
	escaped := html.EscapeString(url)
	return fmt.Sprintf(`<a href="%s">%s</a>`, escaped, escaped)
}
