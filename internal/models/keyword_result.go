package models

import "strconv"

// Change classifies how a keyword's rank moved since the previous check.
type Change string

// Change constants
const (
	ChangeNew      Change = "New"
	ChangeImproved Change = "Improved"
	ChangeDropped  Change = "Dropped"
	ChangeNone     Change = "No Change"
)

// NotFoundURL is reported as the ranking URL when the domain is absent from the results.
const NotFoundURL = "Not Found"

// KeywordResult is the outcome of checking one keyword for a domain.
type KeywordResult struct {
	Keyword      string `json:"keyword"`
	Rank         int    `json:"rank"` // 0 = not found
	URL          string `json:"url"`
	PreviousRank *int   `json:"previous_rank"`
	Change       Change `json:"change"`
	Error        string `json:"error,omitempty"`
}

// Found returns true if the domain appeared in the checked results.
func (r *KeywordResult) Found() bool {
	return r.Rank > 0
}

// Failed returns true if the lookup for this keyword did not complete.
func (r *KeywordResult) Failed() bool {
	return r.Error != ""
}

// PreviousLabel renders the previous rank for tables, empty when there was none.
func (r *KeywordResult) PreviousLabel() string {
	if r.PreviousRank == nil {
		return ""
	}
	return strconv.Itoa(*r.PreviousRank)
}
