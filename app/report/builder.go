package report

import (
	"regexp"
	"strings"

	"github.com/John-Gell/cleaning-calculator/app/ical"
	"github.com/John-Gell/cleaning-calculator/app/listing"
)

// Booking platforms prefix the guest name in the event summary. Stripped
// once, case-insensitively, with an optional hyphen and/or whitespace.
var guestPrefixRe = regexp.MustCompile(`(?i)^(booking|reservation|stay)[\s-]*`)

// Builder turns a listing's booking events into cleaning records for a
// target month. Cleaning happens at checkout, so the event end date is both
// the selection key and the cleaning date.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Run retains events whose end date falls inside the window and builds one
// cleaning record per retained event, priced at the listing's flat rate.
func (b *Builder) Run(window MonthWindow, config *listing.Config, events []ical.Event) []CleaningRecord {
	records := make([]CleaningRecord, 0, len(events))

	for _, ev := range events {
		if !window.Contains(ev.End) {
			continue
		}

		records = append(records, CleaningRecord{
			ListingName:  config.DisplayName,
			CleaningDate: ev.End,
			GuestName:    normalizeGuestName(ev.Summary),
			Amount:       config.RateAmount,
			BookingID:    bookingID(ev),
		})
	}

	return records
}

func normalizeGuestName(summary string) string {
	return strings.TrimSpace(guestPrefixRe.ReplaceAllString(summary, ""))
}

// bookingID prefers the feed's own identifier. The synthetic fallback
// collides for two bookings with identical start and end dates on the same
// listing; downstream consumers depend on this shape, so it stays.
func bookingID(ev ical.Event) string {
	if ev.UID != "" {
		return ev.UID
	}
	return ev.Start.Format("20060102") + "-" + ev.End.Format("20060102")
}
