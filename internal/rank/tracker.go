// Package rank classifies keyword rank changes and runs rank checks.
package rank

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/AniruddhGohil/serp-checker/internal/metrics"
	"github.com/AniruddhGohil/serp-checker/internal/models"
	"github.com/AniruddhGohil/serp-checker/internal/serp"
)

// Lookuper finds where a domain ranks for a keyword.
type Lookuper interface {
	Lookup(ctx context.Context, keyword, domain string) (serp.Ranking, error)
}

// AlertNotifier is told about every rank that changed since the previous check.
type AlertNotifier interface {
	NotifyRankChange(ctx context.Context, domain string, result models.KeywordResult)
}

// Report is the outcome of one check run.
type Report struct {
	RunID     uuid.UUID
	Domain    string
	Results   []models.KeywordResult
	StartedAt time.Time
	Duration  time.Duration
}

// Changed returns the results whose rank moved since the previous check.
func (r *Report) Changed() []models.KeywordResult {
	var changed []models.KeywordResult
	for _, res := range r.Results {
		if res.Change == models.ChangeImproved || res.Change == models.ChangeDropped {
			changed = append(changed, res)
		}
	}
	return changed
}

// Failed returns the number of keywords whose lookup did not complete.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Tracker checks keywords one at a time, diffs them against a Cache and
// notifies on change.
type Tracker struct {
	lookup   Lookuper
	notifier AlertNotifier
}

// NewTracker creates a tracker. notifier may be nil.
func NewTracker(lookup Lookuper, notifier AlertNotifier) *Tracker {
	return &Tracker{lookup: lookup, notifier: notifier}
}

// Run checks every keyword for domain in order. A failed lookup is recorded
// on its result and leaves the cache untouched. If ctx is canceled the
// results gathered so far are returned with the context error.
func (t *Tracker) Run(ctx context.Context, domain string, keywords []string, cache *Cache) (*Report, error) {
	report := &Report{
		RunID:     uuid.New(),
		Domain:    domain,
		Results:   make([]models.KeywordResult, 0, len(keywords)),
		StartedAt: time.Now(),
	}
	logger := slog.With("run_id", report.RunID.String(), "domain", domain)
	logger.Info("rank check started", "keywords", len(keywords))

	for _, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(report.StartedAt)
			return report, err
		}
		report.Results = append(report.Results, t.checkKeyword(ctx, logger, domain, keyword, cache))
	}

	report.Duration = time.Since(report.StartedAt)
	logger.Info("rank check finished",
		"keywords", len(report.Results),
		"changed", len(report.Changed()),
		"failed", report.Failed(),
		"duration", report.Duration,
	)
	return report, nil
}

func (t *Tracker) checkKeyword(ctx context.Context, logger *slog.Logger, domain, keyword string, cache *Cache) models.KeywordResult {
	result := models.KeywordResult{Keyword: keyword}

	ranking, err := t.lookup.Lookup(ctx, keyword, domain)
	if err != nil {
		logger.Warn("keyword lookup failed", "keyword", keyword, "error", err)
		result.Error = err.Error()
		result.PreviousRank = cache.Previous(keyword)
		metrics.RecordCheck(domain, keyword, models.OutcomeError, 0)
		return result
	}

	previous := cache.Previous(keyword)
	result.Rank = ranking.Position
	result.URL = ranking.URL
	result.PreviousRank = previous
	result.Change = Classify(previous, ranking.Position)
	cache.Set(keyword, ranking.Position)

	metrics.RecordCheck(domain, keyword, string(result.Change), result.Rank)

	if ShouldAlert(previous, ranking.Position) {
		logger.Info("rank changed", "keyword", keyword, "previous", *previous, "current", ranking.Position, "change", result.Change)
		if t.notifier != nil {
			t.notifier.NotifyRankChange(ctx, domain, result)
		}
	}

	return result
}
