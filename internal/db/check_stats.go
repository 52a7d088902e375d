package db

import (
	"context"

	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// RecordCheck upserts the count for a keyword check outcome and remembers the latest rank.
func (d *DB) RecordCheck(ctx context.Context, domain, keyword, outcome string, rank int) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO keyword_checks (domain, keyword, outcome, count, last_rank, last_seen_at)
		VALUES ($1, $2, $3, 1, $4, NOW())
		ON CONFLICT (domain, keyword, outcome) DO UPDATE
		SET count = keyword_checks.count + 1, last_rank = EXCLUDED.last_rank, last_seen_at = NOW()
	`, domain, keyword, outcome, rank)
	return err
}

// GetCheckStats returns all keyword check rows for metrics export.
func (d *DB) GetCheckStats(ctx context.Context) ([]models.CheckStat, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT domain, keyword, outcome, count, last_rank, last_seen_at
		FROM keyword_checks
		ORDER BY domain, keyword, outcome
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []models.CheckStat
	for rows.Next() {
		var s models.CheckStat
		if err := rows.Scan(&s.Domain, &s.Keyword, &s.Outcome, &s.Count, &s.LastRank, &s.LastSeenAt); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
