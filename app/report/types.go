package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/John-Gell/cleaning-calculator/app/ical"
)

// FetchResult pairs one listing with the outcome of retrieving and parsing
// its calendar feed. A failed fetch carries an error message and no events.
type FetchResult struct {
	ListingID   string
	ListingName string
	Success     bool
	Events      []ical.Event
	Error       string
}

// CleaningRecord is one billable cleaning, derived from a retained booking
// event. Immutable once built.
type CleaningRecord struct {
	ListingName  string          `json:"listing_name"`
	CleaningDate time.Time       `json:"cleaning_date"`
	GuestName    string          `json:"guest_name"`
	Amount       decimal.Decimal `json:"amount"`
	BookingID    string          `json:"booking_id"`
}

// Report is the final reportable dataset for one target month.
type Report struct {
	Cleanings      []CleaningRecord `json:"cleanings"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	DateRangeLabel string           `json:"date_range_label"`
	TargetMonth    string           `json:"target_month"`
	Errors         []string         `json:"errors,omitempty"`
}

// MonthWindow is the inclusive [first day, last day] range of a target month.
type MonthWindow struct {
	First time.Time
	Last  time.Time
}

// NewMonthWindow computes the window for a 1-based month number. time.Date
// normalizes day zero of the following month to the target month's actual
// last day, so leap years come out right.
func NewMonthWindow(year, month int) MonthWindow {
	return MonthWindow{
		First: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
		Last:  time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC),
	}
}

// Contains reports whether d falls inside the window, inclusive on both ends.
func (w MonthWindow) Contains(d time.Time) bool {
	return !d.Before(w.First) && !d.After(w.Last)
}
