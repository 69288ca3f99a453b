package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/John-Gell/cleaning-calculator/app/fetch"
	"github.com/John-Gell/cleaning-calculator/app/listing"
)

type stubFetcher struct {
	bodies map[string][]byte
	errs   map[string]error
}

func (s *stubFetcher) Run(ctx context.Context, reqs []fetch.Request) []fetch.Result {
	results := make([]fetch.Result, len(reqs))
	for i, req := range reqs {
		results[i] = fetch.Result{
			ListingID:   req.ListingID,
			ListingName: req.ListingName,
			Body:        s.bodies[req.ListingID],
			Err:         s.errs[req.ListingID],
		}
	}
	return results
}

type stubListingRepo struct {
	statuses map[string]string
}

var _ FetchStatusRecorder = (*stubListingRepo)(nil)

func (s *stubListingRepo) UpdateFetchStatus(listingName string, fetchedAt time.Time, fetchError string) error {
	if s.statuses == nil {
		s.statuses = make(map[string]string)
	}
	s.statuses[listingName] = fetchError
	return nil
}

func TestServiceRunEndToEnd(t *testing.T) {
	feedA := `BEGIN:VCALENDAR
BEGIN:VEVENT
DTSTART:20240603
DTEND:20240606
SUMMARY:Reservation - John Smith
UID:abc123
END:VEVENT
BEGIN:VEVENT
DTSTART:20240610T140000Z
DTEND:20240612T110000Z
SUMMARY:Booking - Jane Doe
UID:def456
END:VEVENT
END:VCALENDAR`

	fetcher := &stubFetcher{
		bodies: map[string][]byte{"a": []byte(feedA)},
		errs:   map[string]error{"b": errors.New("timeout")},
	}
	repo := &stubListingRepo{}

	service := NewService(fetcher, repo)

	configs := []*listing.Config{
		testListing("a", "75.00"),
		testListing("b", "60.00"),
	}

	rep, err := service.Run(context.Background(), 2024, 6, configs)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Cleanings) != 2 {
		t.Fatalf("Expected 2 cleanings, got %d", len(rep.Cleanings))
	}
	if !rep.TotalAmount.Equal(decimal.RequireFromString("150.00")) {
		t.Errorf("Expected total 150.00, got %s", rep.TotalAmount)
	}
	if rep.Cleanings[0].GuestName != "John Smith" {
		t.Errorf("Expected first guest 'John Smith', got %q", rep.Cleanings[0].GuestName)
	}
	if rep.Cleanings[1].GuestName != "Jane Doe" {
		t.Errorf("Expected second guest 'Jane Doe', got %q", rep.Cleanings[1].GuestName)
	}
	if len(rep.Errors) != 1 || rep.Errors[0] != "b: timeout" {
		t.Errorf("Expected errors ['b: timeout'], got %v", rep.Errors)
	}

	if repo.statuses["a"] != "" {
		t.Errorf("Expected empty fetch error recorded for 'a', got %q", repo.statuses["a"])
	}
	if repo.statuses["b"] != "timeout" {
		t.Errorf("Expected fetch error 'timeout' recorded for 'b', got %q", repo.statuses["b"])
	}
}

func TestServiceRunRejectsInvalidMonth(t *testing.T) {
	service := NewService(&stubFetcher{}, &stubListingRepo{})

	if _, err := service.Run(context.Background(), 2024, 13, nil); err == nil {
		t.Error("Expected error for month 13")
	}
	if _, err := service.Run(context.Background(), 2024, 0, nil); err == nil {
		t.Error("Expected error for month 0")
	}
	if _, err := service.Run(context.Background(), 24, 6, nil); err == nil {
		t.Error("Expected error for 2-digit year")
	}
}

func TestServiceRunZeroListings(t *testing.T) {
	service := NewService(&stubFetcher{}, &stubListingRepo{})

	rep, err := service.Run(context.Background(), 2024, 6, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.Cleanings) != 0 {
		t.Errorf("Expected 0 cleanings, got %d", len(rep.Cleanings))
	}
	if !rep.TotalAmount.IsZero() {
		t.Errorf("Expected zero total, got %s", rep.TotalAmount)
	}
}
