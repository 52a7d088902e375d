package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrNotConfigured = errors.New("database URL not configured")
)
