package database

import (
	"time"
)

type ListingRepository interface {
	GetListing(listingName string) (*Listing, error)
	GetListingCount() (int, error)

	UpsertListing(listingName, displayName, feedURL, rate string, enabled bool) (string, bool, error)
	UpdateFetchStatus(listingName string, fetchedAt time.Time, fetchError string) error
}
