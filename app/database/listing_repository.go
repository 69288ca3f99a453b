package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var _ ListingRepository = (*ListingRepositoryImpl)(nil)

// ListingRepositoryImpl handles database operations for the listing registry.
type ListingRepositoryImpl struct {
	db *DB
}

func NewListingRepository(db *DB) *ListingRepositoryImpl {
	return &ListingRepositoryImpl{db: db}
}

// GetListing returns the registry row for a listing, or nil when the listing
// has not been registered.
func (r *ListingRepositoryImpl) GetListing(listingName string) (*Listing, error) {
	var l Listing
	var lastFetchedAt sql.NullTime
	var enabled int

	err := r.db.QueryRow(`
		SELECT id, name, display_name, feed_url, rate, enabled,
		       last_fetched_at, last_fetch_error, created_at, updated_at
		FROM listings
		WHERE name = ?
	`, listingName).Scan(&l.ID, &l.Name, &l.DisplayName, &l.FeedURL, &l.Rate,
		&enabled, &lastFetchedAt, &l.LastFetchError, &l.CreatedAt, &l.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	l.Enabled = enabled != 0
	if lastFetchedAt.Valid {
		l.LastFetchedAt = &lastFetchedAt.Time
	}

	return &l, nil
}

func (r *ListingRepositoryImpl) GetListingCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// UpsertListing registers a listing configuration, updating the existing row
// when one exists. The second return value reports whether the feed URL
// changed, so callers can log recycled names pointing at new calendars.
func (r *ListingRepositoryImpl) UpsertListing(listingName, displayName, feedURL, rate string, enabled bool) (string, bool, error) {
	existing, err := r.GetListing(listingName)
	if err != nil {
		return "", false, fmt.Errorf("failed to check existing listing: %w", err)
	}

	if existing != nil {
		urlChanged := existing.FeedURL != feedURL

		_, err = r.db.Exec(`
			UPDATE listings
			SET display_name = ?, feed_url = ?, rate = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
			WHERE name = ?
		`, displayName, feedURL, rate, boolToInt(enabled), listingName)
		if err != nil {
			return "", false, fmt.Errorf("failed to update listing: %w", err)
		}

		return existing.ID, urlChanged, nil
	}

	id := uuid.NewString()
	_, err = r.db.Exec(`
		INSERT INTO listings (id, name, display_name, feed_url, rate, enabled)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, listingName, displayName, feedURL, rate, boolToInt(enabled))
	if err != nil {
		return "", false, fmt.Errorf("failed to insert listing: %w", err)
	}

	return id, false, nil
}

// UpdateFetchStatus records the outcome of the latest feed retrieval for a
// listing. An empty fetchError marks success.
func (r *ListingRepositoryImpl) UpdateFetchStatus(listingName string, fetchedAt time.Time, fetchError string) error {
	_, err := r.db.Exec(`
		UPDATE listings
		SET last_fetched_at = ?, last_fetch_error = ?, updated_at = CURRENT_TIMESTAMP
		WHERE name = ?
	`, fetchedAt.UTC(), fetchError, listingName)
	if err != nil {
		return fmt.Errorf("failed to update fetch status: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
