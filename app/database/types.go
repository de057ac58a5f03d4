package database

import (
	"time"
)

type Calendar struct {
	Name         string // Configuration calendar identifier derived from filename
	URL          string // Feed URL from configuration
	Label        string // Source label prefixed to normalized event IDs
	LastSyncedAt *time.Time
	NextSyncAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time // Tracks last successful processing
}
