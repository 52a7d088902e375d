package email

import (
	"strings"
	"testing"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

func intPtr(n int) *int { return &n }

func TestTemplates_BaseHTML(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	out := tmpl.baseHTML("Title", "<p>body</p>")

	for _, want := range []string{"<!DOCTYPE html>", "<title>Title</title>", "<p>body</p>", "SERP Checker", "http://localhost:3000"} {
		if !strings.Contains(out, want) {
			t.Errorf("baseHTML() missing %q", want)
		}
	}
}

func TestTemplates_BaseHTML_EscapesHTML(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	out := tmpl.baseHTML("<script>alert(1)</script>", "")

	if strings.Contains(out, "<script>alert(1)</script>") {
		t.Error("baseHTML() should escape the title")
	}
}

func TestTemplates_RankChanged(t *testing.T) {
	tests := []struct {
		name        string
		result      models.KeywordResult
		wantSubject string
		wantText    []string
	}{
		{
			name: "improved",
			result: models.KeywordResult{
				Keyword:      "go tutorials",
				Rank:         3,
				URL:          "https://example.com/go",
				PreviousRank: intPtr(7),
				Change:       models.ChangeImproved,
			},
			wantSubject: "[SERP Checker] Keyword 'go tutorials' - Rank Improved",
			wantText: []string{
				"Keyword: go tutorials",
				"Domain: example.com",
				"Previous Rank: 7",
				"Current Rank: 3",
				"Status: Improved",
				"Ranking URL: https://example.com/go",
			},
		},
		{
			name: "fell out of results",
			result: models.KeywordResult{
				Keyword:      "golang",
				Rank:         0,
				URL:          models.NotFoundURL,
				PreviousRank: intPtr(4),
				Change:       models.ChangeImproved,
			},
			wantSubject: "[SERP Checker] Keyword 'golang' - Rank Improved",
			wantText: []string{
				"Previous Rank: 4",
				"Current Rank: Not found",
				"Status: Improved",
				"Ranking URL: Not Found",
			},
		},
	}

	tmpl := NewTemplates(testConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, htmlBody, textBody := tmpl.RankChanged("example.com", tt.result)

			if subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", subject, tt.wantSubject)
			}
			for _, want := range tt.wantText {
				if !strings.Contains(textBody, want) {
					t.Errorf("text body missing %q\n%s", want, textBody)
				}
			}
			if !strings.Contains(htmlBody, tt.result.Keyword) {
				t.Errorf("html body missing keyword %q", tt.result.Keyword)
			}
		})
	}
}

func TestTemplates_RankChanged_NoPrevious(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	_, _, textBody := tmpl.RankChanged("example.com", models.KeywordResult{Keyword: "k", Rank: 1, Change: models.ChangeNew})

	if !strings.Contains(textBody, "Previous Rank: None") {
		t.Errorf("text body = %q, want Previous Rank: None", textBody)
	}
}

func TestTemplates_HTMLEscaping(t *testing.T) {
	tmpl := NewTemplates(testConfig())

	result := models.KeywordResult{
		Keyword:      `<img src=x onerror="alert(1)">`,
		Rank:         2,
		URL:          `https://example.com/?q="><script>`,
		PreviousRank: intPtr(5),
		Change:       models.ChangeImproved,
	}
	_, htmlBody, _ := tmpl.RankChanged("example.com", result)

	if strings.Contains(htmlBody, "<img src=x") {
		t.Error("keyword should be escaped in HTML body")
	}
	if strings.Contains(htmlBody, `"><script>`) {
		t.Error("URL should be escaped in HTML body")
	}
}
