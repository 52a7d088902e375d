// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AniruddhGohil/serp-checker/internal/db"
	"github.com/AniruddhGohil/serp-checker/internal/serp"
)

// TestDB creates a test database connection and returns a cleanup function.
// The test is skipped unless TEST_DATABASE_URL is set.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	cleanupTestData(ctx, database.Pool)

	cleanup := func() {
		cleanupTestData(ctx, database.Pool)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all test data from the database.
func cleanupTestData(ctx context.Context, pool *pgxpool.Pool) {
	pool.Exec(ctx, "DELETE FROM keyword_checks")
}

// FakeLookup is an in-memory search API. Keywords without a configured
// rank are reported as not found.
type FakeLookup struct {
	mu    sync.Mutex
	ranks map[string]serp.Ranking
	errs  map[string]error
	calls []string
}

// NewFakeLookup creates a FakeLookup with no ranks configured.
func NewFakeLookup() *FakeLookup {
	return &FakeLookup{
		ranks: make(map[string]serp.Ranking),
		errs:  make(map[string]error),
	}
}

// SetRank makes keyword rank at position with the given URL.
func (f *FakeLookup) SetRank(keyword string, position int, url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.errs, keyword)
	f.ranks[keyword] = serp.Ranking{Position: position, URL: url}
}

// SetError makes lookups for keyword fail with err.
func (f *FakeLookup) SetError(keyword string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[keyword] = err
}

// Calls returns the keywords looked up so far, in order.
func (f *FakeLookup) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Lookup implements rank.Lookuper.
func (f *FakeLookup) Lookup(ctx context.Context, keyword, domain string) (serp.Ranking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, keyword)
	if err, ok := f.errs[keyword]; ok {
		return serp.Ranking{}, err
	}
	if r, ok := f.ranks[keyword]; ok {
		return r, nil
	}
	return serp.NotFound, nil
}
