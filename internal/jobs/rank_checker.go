package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
	"github.com/AniruddhGohil/serp-checker/internal/validation"
)

// projectDelay spaces out projects within one pass.
const projectDelay = 1 * time.Second

// RankChecker periodically re-checks the projects listed in the YAML
// tracking file. Each project keeps its own cache for the life of the
// process, so alerts fire on changes between passes.
type RankChecker struct {
	tracker  *rank.Tracker
	tracking *config.YAMLConfig
	interval time.Duration

	mu     sync.Mutex
	caches map[string]*rank.Cache
	last   map[string]*rank.Report
}

// NewRankChecker creates a rank checker for the configured projects.
// Domains and keywords are normalized the same way UI input is.
func NewRankChecker(tracker *rank.Tracker, tracking *config.YAMLConfig) *RankChecker {
	r := &RankChecker{
		tracker:  tracker,
		tracking: &config.YAMLConfig{},
		interval: config.DefaultTrackingInterval,
		caches:   make(map[string]*rank.Cache),
		last:     make(map[string]*rank.Report),
	}
	if !tracking.HasProjects() {
		return r
	}

	r.tracking.Tracking.Interval = tracking.Tracking.Interval
	if r.tracking.Tracking.Interval > 0 {
		r.interval = r.tracking.Tracking.Interval
	}
	// Projects that normalize to the same domain share one cache, so their
	// keyword lists are merged into the first entry.
	index := make(map[string]int)
	for _, p := range tracking.Tracking.Projects {
		domain := validation.NormalizeDomain(p.Domain)
		if ok, msg := validation.ValidateDomain(domain); !ok {
			slog.Warn("rank checker: skipping project", "domain", p.Domain, "reason", msg)
			continue
		}
		i, seen := index[domain]
		var keywords []string
		if seen {
			keywords = append(keywords, r.tracking.Tracking.Projects[i].Keywords...)
		}
		keywords = validation.CleanKeywords(append(keywords, p.Keywords...))
		if err := validation.ValidateKeywords(keywords); err != nil {
			slog.Warn("rank checker: skipping project", "domain", domain, "reason", err)
			continue
		}
		if seen {
			slog.Info("rank checker: merging duplicate project", "domain", domain)
			r.tracking.Tracking.Projects[i].Keywords = keywords
			continue
		}
		index[domain] = len(r.tracking.Tracking.Projects)
		r.tracking.Tracking.Projects = append(r.tracking.Tracking.Projects, config.ProjectConfig{Domain: domain, Keywords: keywords})
		r.caches[domain] = rank.NewCache()
	}
	return r
}

// HasProjects reports whether there is anything to track.
func (r *RankChecker) HasProjects() bool {
	return r.tracking.HasProjects()
}

// Start begins the background check loop. It returns when ctx is done.
func (r *RankChecker) Start(ctx context.Context) {
	if !r.HasProjects() {
		return
	}
	slog.Info("rank checker started", "interval", r.interval, "projects", len(r.tracking.Tracking.Projects))

	// Run immediately on start
	r.checkAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("rank checker stopped")
			return
		case <-ticker.C:
			r.checkAll(ctx)
		}
	}
}

// checkAll runs one pass over every project.
func (r *RankChecker) checkAll(ctx context.Context) {
	for i, p := range r.tracking.Tracking.Projects {
		if i > 0 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(projectDelay):
			}
		}

		report, err := r.tracker.Run(ctx, p.Domain, p.Keywords, r.caches[p.Domain])
		if report != nil {
			r.mu.Lock()
			r.last[p.Domain] = report
			r.mu.Unlock()
		}
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			slog.Error("rank checker: project failed", "domain", p.Domain, "error", err)
		}
	}
}

// LastReport returns the most recent report for a tracked domain, or nil
// when the domain is not tracked or has not been checked yet.
func (r *RankChecker) LastReport(domain string) *rank.Report {
	if r.tracking.GetProjectByDomain(validation.NormalizeDomain(domain)) == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last[validation.NormalizeDomain(domain)]
}

// Domains lists the tracked domains in configuration order.
func (r *RankChecker) Domains() []string {
	domains := make([]string, 0, len(r.tracking.Tracking.Projects))
	for _, p := range r.tracking.Tracking.Projects {
		domains = append(domains, p.Domain)
	}
	return domains
}
