package api

import (
	"context"

	"github.com/John-Gell/cleaning-calculator/app/database"
	"github.com/John-Gell/cleaning-calculator/app/listing"
	"github.com/John-Gell/cleaning-calculator/app/report"
)

type ReportRunnerInterface interface {
	Run(ctx context.Context, year, month int, configs []*listing.Config) (*report.Report, error)
}

var _ ReportRunnerInterface = (*report.Service)(nil)

type Handler struct {
	configCache *listing.ConfigCache
	listingRepo database.ListingRepository
	reports     ReportRunnerInterface
}

// ReportRequest is the body of POST /reports. Listings is optional; when
// empty, every enabled listing is included.
type ReportRequest struct {
	Year     int      `json:"year"`
	Month    int      `json:"month"`
	Listings []string `json:"listings"`
}
