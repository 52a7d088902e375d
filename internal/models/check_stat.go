package models

import "time"

// CheckStat represents a per-keyword count of check outcomes for one domain.
type CheckStat struct {
	Domain     string
	Keyword    string
	Outcome    string
	Count      int64
	LastRank   int
	LastSeenAt time.Time
}

// Outcome for a lookup that failed before a rank was known.
const OutcomeError = "error"
