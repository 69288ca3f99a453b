package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/John-Gell/cleaning-calculator/app/database"
	"github.com/John-Gell/cleaning-calculator/app/fetch"
	"github.com/John-Gell/cleaning-calculator/app/ical"
	"github.com/John-Gell/cleaning-calculator/app/listing"
)

type FetcherInterface interface {
	Run(ctx context.Context, reqs []fetch.Request) []fetch.Result
}

var _ FetcherInterface = (*fetch.Fetcher)(nil)

// FetchStatusRecorder is the slice of the listing registry the service
// needs: bookkeeping of the latest fetch outcome per listing.
type FetchStatusRecorder interface {
	UpdateFetchStatus(listingName string, fetchedAt time.Time, fetchError string) error
}

var _ FetchStatusRecorder = (*database.ListingRepositoryImpl)(nil)

// Service runs one calculation request end to end: fetch every listing's
// feed, parse the bodies, and aggregate the in-window checkouts into a
// report. Fetching is the only concurrent step; parsing and aggregation are
// pure sequential computation.
type Service struct {
	fetcher     FetcherInterface
	parser      *ical.Parser
	aggregator  *Aggregator
	listingRepo FetchStatusRecorder
}

func NewService(fetcher FetcherInterface, listingRepo FetchStatusRecorder) *Service {
	return &Service{
		fetcher:     fetcher,
		parser:      ical.NewParser(),
		aggregator:  NewAggregator(),
		listingRepo: listingRepo,
	}
}

// Run computes the report for the target month over the given listings.
// Listing order defines processing order, which the aggregator preserves for
// records with equal cleaning dates.
func (s *Service) Run(ctx context.Context, year, month int, configs []*listing.Config) (*Report, error) {
	if year < 1000 || year > 9999 {
		return nil, fmt.Errorf("year must be a 4-digit number, got %d", year)
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}

	reqs := make([]fetch.Request, 0, len(configs))
	configsByID := make(map[string]*listing.Config, len(configs))
	for _, config := range configs {
		reqs = append(reqs, fetch.Request{
			URL:         config.URL,
			ListingID:   config.Name,
			ListingName: config.DisplayName,
		})
		configsByID[config.Name] = config
	}

	start := time.Now()
	fetched := s.fetcher.Run(ctx, reqs)

	results := make([]FetchResult, 0, len(fetched))
	for _, res := range fetched {
		if res.Err != nil {
			results = append(results, FetchResult{
				ListingID:   res.ListingID,
				ListingName: res.ListingName,
				Success:     false,
				Error:       res.Err.Error(),
			})
			s.recordFetchStatus(res.ListingID, res.Err.Error())
			continue
		}

		events := s.parser.Run(res.Body)
		results = append(results, FetchResult{
			ListingID:   res.ListingID,
			ListingName: res.ListingName,
			Success:     true,
			Events:      events,
		})
		s.recordFetchStatus(res.ListingID, "")
	}

	rep := s.aggregator.Run(year, month, configsByID, results)

	slog.Info("Report computed",
		"target_month", rep.TargetMonth,
		"listings", len(configs),
		"cleanings", len(rep.Cleanings),
		"failures", len(rep.Errors),
		"duration", time.Since(start))

	return rep, nil
}

// recordFetchStatus is registry bookkeeping only; a failure here never
// affects the report.
func (s *Service) recordFetchStatus(listingName, fetchError string) {
	if err := s.listingRepo.UpdateFetchStatus(listingName, time.Now().UTC(), fetchError); err != nil {
		slog.Warn("Failed to record fetch status", "listing", listingName, "error", err)
	}
}
