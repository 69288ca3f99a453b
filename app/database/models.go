package database

import (
	"time"
)

// Listing is a registry row mirroring one listing configuration, plus fetch
// bookkeeping updated after each report run. Cleaning records themselves are
// never persisted; they are rebuilt per calculation request.
type Listing struct {
	ID             string // Database UUID
	Name           string // Configuration listing identifier derived from filename
	DisplayName    string // Human-readable listing name shown on reports
	FeedURL        string // Booking calendar feed URL from configuration
	Rate           string // Flat per-cleaning fee, decimal string
	Enabled        bool
	LastFetchedAt  *time.Time
	LastFetchError string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
