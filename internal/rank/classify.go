package rank

import (
	"github.com/AniruddhGohil/serp-checker/internal/models"
)

// Classify compares the current rank with the previous one as plain
// integers. A nil previous rank means the keyword has not been seen before.
// Rank 0 (not found) is the smallest number, so leaving the results reads
// as Improved and entering them as Dropped.
func Classify(previous *int, current int) models.Change {
	if previous == nil {
		return models.ChangeNew
	}

	switch {
	case current < *previous:
		return models.ChangeImproved
	case current > *previous:
		return models.ChangeDropped
	default:
		return models.ChangeNone
	}
}

// ShouldAlert returns true when a previously seen rank has changed.
func ShouldAlert(previous *int, current int) bool {
	return previous != nil && *previous != current
}
