package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/AniruddhGohil/serp-checker/internal/db"
	"github.com/AniruddhGohil/serp-checker/internal/models"
)

var (
	checksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serpchecker_keyword_checks_total",
			Help: "Keyword rank checks by change outcome",
		},
		[]string{"outcome"},
	)

	serpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "serpchecker_serp_request_duration_seconds",
			Help:    "Latency of search API requests by HTTP status",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"status"},
	)

	alertsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serpchecker_alert_emails_total",
			Help: "Rank change alert emails by delivery result",
		},
		[]string{"result"},
	)

	checkStatDesc = prometheus.NewDesc(
		"serpchecker_keyword_outcomes_total",
		"Persisted keyword check count by domain and outcome",
		[]string{"domain", "keyword", "outcome"},
		nil,
	)
	lastRankDesc = prometheus.NewDesc(
		"serpchecker_keyword_last_rank",
		"Most recent rank seen for a keyword (0 = not found)",
		[]string{"domain", "keyword"},
		nil,
	)
)

// CheckStatsCollector is a custom Prometheus collector that reads check
// statistics from the database on each scrape.
type CheckStatsCollector struct {
	db *db.DB
}

// Describe sends the metric descriptors to the channel.
func (c *CheckStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- checkStatDesc
	ch <- lastRankDesc
}

// Collect queries the database for all check statistics and emits them.
func (c *CheckStatsCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stats, err := c.db.GetCheckStats(ctx)
	if err != nil {
		slog.Error("failed to collect check stats metrics", "error", err)
		return
	}

	for _, s := range stats {
		ch <- prometheus.MustNewConstMetric(
			checkStatDesc,
			prometheus.CounterValue,
			float64(s.Count),
			s.Domain,
			s.Keyword,
			s.Outcome,
		)
	}
	for key, rank := range latestRanks(stats) {
		ch <- prometheus.MustNewConstMetric(lastRankDesc, prometheus.GaugeValue, float64(rank), key[0], key[1])
	}
}

// latestRanks picks the most recently seen rank per domain and keyword.
// Error rows carry no rank and are skipped.
func latestRanks(stats []models.CheckStat) map[[2]string]int {
	ranks := make(map[[2]string]int)
	seen := make(map[[2]string]time.Time)
	for _, s := range stats {
		if s.Outcome == models.OutcomeError {
			continue
		}
		key := [2]string{s.Domain, s.Keyword}
		if s.LastSeenAt.After(seen[key]) {
			seen[key] = s.LastSeenAt
			ranks[key] = s.LastRank
		}
	}
	return ranks
}

// Recorder provides async check statistic recording.
type Recorder struct {
	db *db.DB
}

var (
	recorder *Recorder
	initOnce sync.Once
)

// Init registers the collectors and, when database is non-nil, the
// DB-backed statistics recorder. Must be called once at startup.
func Init(database *db.DB) {
	initOnce.Do(func() {
		prometheus.MustRegister(checksTotal, serpRequestDuration, alertsTotal)
		if database != nil {
			recorder = &Recorder{db: database}
			prometheus.MustRegister(&CheckStatsCollector{db: database})
		}
	})
}

// RecordCheck counts a keyword check outcome and, if statistics are enabled,
// asynchronously persists it.
func RecordCheck(domain, keyword, outcome string, rank int) {
	checksTotal.WithLabelValues(outcome).Inc()

	if recorder == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := recorder.db.RecordCheck(ctx, domain, keyword, outcome, rank); err != nil {
			slog.Error("failed to record keyword check", "domain", domain, "keyword", keyword, "outcome", outcome, "error", err)
		}
	}()
}

// ObserveSerpRequest records the latency of one search API call.
func ObserveSerpRequest(status string, d time.Duration) {
	serpRequestDuration.WithLabelValues(status).Observe(d.Seconds())
}

// RecordAlert counts an alert email by result ("sent" or "failed").
func RecordAlert(result string) {
	alertsTotal.WithLabelValues(result).Inc()
}
