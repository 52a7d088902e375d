package jobs

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/AniruddhGohil/serp-checker/internal/config"
	"github.com/AniruddhGohil/serp-checker/internal/models"
	"github.com/AniruddhGohil/serp-checker/internal/rank"
	"github.com/AniruddhGohil/serp-checker/internal/serp"
)

type stubLookup struct {
	mu    sync.Mutex
	ranks map[string]int
	calls int
}

func (s *stubLookup) Lookup(ctx context.Context, keyword, domain string) (serp.Ranking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if pos, ok := s.ranks[keyword]; ok {
		return serp.Ranking{Position: pos, URL: "https://" + domain + "/" + keyword}, nil
	}
	return serp.NotFound, nil
}

func (s *stubLookup) set(keyword string, pos int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ranks[keyword] = pos
}

type countingNotifier struct {
	mu     sync.Mutex
	alerts []models.KeywordResult
}

func (c *countingNotifier) NotifyRankChange(ctx context.Context, domain string, result models.KeywordResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, result)
}

func tracking(projects ...config.ProjectConfig) *config.YAMLConfig {
	return &config.YAMLConfig{Tracking: config.TrackingConfig{Interval: time.Hour, Projects: projects}}
}

func TestNewRankChecker_NormalizesProjects(t *testing.T) {
	rc := NewRankChecker(rank.NewTracker(&stubLookup{}, nil), tracking(
		config.ProjectConfig{Domain: "https://Example.com/", Keywords: []string{"go", " go ", "", "rust"}},
		config.ProjectConfig{Domain: "not a domain", Keywords: []string{"x"}},
		config.ProjectConfig{Domain: "empty.com"},
	))

	domains := rc.Domains()
	if len(domains) != 1 || domains[0] != "example.com" {
		t.Fatalf("Domains() = %v, want [example.com]", domains)
	}
	if got := rc.tracking.Tracking.Projects[0].Keywords; len(got) != 2 {
		t.Errorf("keywords = %v, want deduplicated [go rust]", got)
	}
	if rc.interval != time.Hour {
		t.Errorf("interval = %v, want 1h", rc.interval)
	}
}

func TestNewRankChecker_MergesDuplicateDomains(t *testing.T) {
	rc := NewRankChecker(rank.NewTracker(&stubLookup{}, nil), tracking(
		config.ProjectConfig{Domain: "example.com", Keywords: []string{"go", "rust"}},
		config.ProjectConfig{Domain: "other.org", Keywords: []string{"zig"}},
		config.ProjectConfig{Domain: "https://Example.com/", Keywords: []string{"rust", "python"}},
	))

	domains := rc.Domains()
	if len(domains) != 2 || domains[0] != "example.com" || domains[1] != "other.org" {
		t.Fatalf("Domains() = %v, want [example.com other.org]", domains)
	}
	got := rc.tracking.Tracking.Projects[0].Keywords
	want := []string{"go", "rust", "python"}
	if len(got) != len(want) {
		t.Fatalf("keywords = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if len(rc.caches) != 2 {
		t.Errorf("caches = %d, want 2", len(rc.caches))
	}
}

func TestNewRankChecker_NilConfig(t *testing.T) {
	rc := NewRankChecker(rank.NewTracker(&stubLookup{}, nil), nil)

	if rc.HasProjects() {
		t.Error("HasProjects() = true for nil config")
	}
	// Start returns immediately without projects
	rc.Start(context.Background())
}

func TestRankChecker_CheckAll_AlertsOnSecondPass(t *testing.T) {
	lookup := &stubLookup{ranks: map[string]int{"go": 5, "rust": 2}}
	notifier := &countingNotifier{}
	rc := NewRankChecker(rank.NewTracker(lookup, notifier), tracking(
		config.ProjectConfig{Domain: "example.com", Keywords: []string{"go", "rust"}},
	))

	rc.checkAll(context.Background())
	if len(notifier.alerts) != 0 {
		t.Fatalf("first pass alerts = %d, want 0", len(notifier.alerts))
	}

	lookup.set("go", 3)
	rc.checkAll(context.Background())

	if len(notifier.alerts) != 1 {
		t.Fatalf("second pass alerts = %d, want 1", len(notifier.alerts))
	}
	if a := notifier.alerts[0]; a.Keyword != "go" || a.Change != models.ChangeImproved {
		t.Errorf("alert = %+v", a)
	}

	report := rc.LastReport("https://example.com")
	if report == nil {
		t.Fatal("LastReport() = nil")
	}
	if len(report.Results) != 2 {
		t.Errorf("LastReport().Results = %d, want 2", len(report.Results))
	}
	if rc.LastReport("other.com") != nil {
		t.Error("LastReport() for untracked domain should be nil")
	}
}

func TestRankChecker_Start_StopsOnCancel(t *testing.T) {
	lookup := &stubLookup{ranks: map[string]int{}}
	rc := NewRankChecker(rank.NewTracker(lookup, nil), tracking(
		config.ProjectConfig{Domain: "example.com", Keywords: []string{"go"}},
	))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		rc.Start(ctx)
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for rc.LastReport("example.com") == nil {
		select {
		case <-deadline:
			t.Fatal("initial pass did not run")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
