package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/AniruddhGohil/serp-checker/internal/chart"
	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/models"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
	"github.com/AniruddhGohil/serp-checker/internal/sessioncache"
	"github.com/AniruddhGohil/serp-checker/internal/validation"
)

// Warning shown when neither the text field nor the CSV yields a keyword.
const noKeywordsWarning = "No keywords provided."

// CheckHandler serves the rank check form and its results.
type CheckHandler struct {
	tracker *rank.Tracker
	cfg     *config.Config
}

// NewCheckHandler creates a new check handler.
func NewCheckHandler(tracker *rank.Tracker, cfg *config.Config) *CheckHandler {
	return &CheckHandler{tracker: tracker, cfg: cfg}
}

// Index renders the empty check form.
func (h *CheckHandler) Index(c fiber.Ctx) error {
	cache, err := sessioncache.Load(c)
	if err != nil {
		return err
	}

	return c.Render("index", MergeBranding(fiber.Map{
		"Title":       "Check rankings",
		"User":        currentUser(c),
		"CachedCount": cache.Len(),
	}, h.cfg))
}

// Run checks the submitted keywords, updates the session cache and renders
// the results table and chart.
func (h *CheckHandler) Run(c fiber.Ctx) error {
	domain := validation.NormalizeDomain(c.FormValue("domain"))
	keywordText := c.FormValue("keywords")

	cache, err := sessioncache.Load(c)
	if err != nil {
		return err
	}

	data := fiber.Map{
		"Title":       "Check rankings",
		"User":        currentUser(c),
		"Domain":      domain,
		"Keywords":    keywordText,
		"CachedCount": cache.Len(),
	}

	var warnings []string
	render := func() error {
		data["Warnings"] = warnings
		return c.Render("index", MergeBranding(data, h.cfg))
	}

	if ok, msg := validation.ValidateDomain(domain); !ok {
		warnings = append(warnings, msg)
		return render()
	}

	keywords, err := h.formKeywords(c, keywordText)
	if err != nil {
		warnings = append(warnings, err.Error())
		return render()
	}
	if err := validation.ValidateKeywords(keywords); err != nil {
		if errors.Is(err, validation.ErrNoKeywords) {
			warnings = append(warnings, noKeywordsWarning)
		} else {
			warnings = append(warnings, err.Error())
		}
		return render()
	}

	if h.cfg.SerpAPIKey == "" {
		warnings = append(warnings, "SERPAPI_API_KEY is not configured.")
		return render()
	}

	report, runErr := h.tracker.Run(c.Context(), domain, keywords, cache)
	if report == nil {
		return runErr
	}
	if err := sessioncache.Save(c, cache); err != nil {
		return err
	}
	if runErr != nil {
		warnings = append(warnings, "The check was interrupted before every keyword was looked up.")
	}
	if failed := report.Failed(); failed > 0 {
		warnings = append(warnings, fmt.Sprintf("%d of %d keyword lookups failed and kept their previous rank.", failed, len(report.Results)))
	}

	data["RunID"] = report.RunID.String()
	data["Results"] = report.Results
	data["CachedCount"] = cache.Len()

	if uri, err := chartURI(report.Results); err != nil {
		if !errors.Is(err, chart.ErrNoData) {
			slog.Error("failed to render chart", "run_id", report.RunID.String(), "error", err)
			warnings = append(warnings, "The ranking chart could not be rendered.")
		}
	} else {
		data["Chart"] = uri
	}

	return render()
}

// Reset forgets every rank cached in the visitor's session.
func (h *CheckHandler) Reset(c fiber.Ctx) error {
	if err := sessioncache.Clear(c); err != nil {
		return err
	}
	return c.Redirect().To("/")
}

// formKeywords reads keywords from the uploaded CSV when one is attached,
// otherwise from the comma-separated text field.
func (h *CheckHandler) formKeywords(c fiber.Ctx, text string) ([]string, error) {
	fh, err := c.FormFile("file")
	if err != nil || fh == nil || fh.Size == 0 {
		return validation.CleanKeywords(validation.ParseKeywordList(text)), nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("could not open uploaded file")
	}
	defer f.Close()

	keywords, err := validation.ReadKeywordsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("could not read CSV file: %w", err)
	}
	return validation.CleanKeywords(keywords), nil
}

// chartURI renders the successful results as an inline PNG.
func chartURI(results []models.KeywordResult) (template.URL, error) {
	plotted := make([]models.KeywordResult, 0, len(results))
	for _, r := range results {
		if !r.Failed() {
			plotted = append(plotted, r)
		}
	}

	png, err := chart.Render(plotted)
	if err != nil {
		return "", err
	}
	return template.URL(chart.DataURI(png)), nil
}
