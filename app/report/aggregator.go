package report

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/John-Gell/cleaning-calculator/app/listing"
)

// Aggregator merges per-listing fetch results into one report: failures
// become error entries, successes run through the record builder, and the
// combined records are sorted and summed.
type Aggregator struct {
	builder *Builder
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		builder: NewBuilder(),
	}
}

// Run produces the report for the target month. Results are consumed in
// input order, so ties on cleaning date keep listing-processing order after
// the stable sort. A result whose listing has no configuration is skipped;
// the feeds were fetched from caller-supplied metadata, so a missing match
// is a caller-side inconsistency.
func (a *Aggregator) Run(year, month int, configs map[string]*listing.Config, results []FetchResult) *Report {
	window := NewMonthWindow(year, month)

	records := make([]CleaningRecord, 0)
	errs := make([]string, 0)

	for _, res := range results {
		if !res.Success {
			errs = append(errs, fmt.Sprintf("%s: %s", res.ListingName, res.Error))
			continue
		}

		config, ok := configs[res.ListingID]
		if !ok {
			slog.Warn("Fetch result has no matching listing config, skipping", "listing_id", res.ListingID)
			continue
		}

		records = append(records, a.builder.Run(window, config, res.Events)...)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CleaningDate.Before(records[j].CleaningDate)
	})

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Amount)
	}

	return &Report{
		Cleanings:      records,
		TotalAmount:    total,
		DateRangeLabel: dateRangeLabel(window),
		TargetMonth:    fmt.Sprintf("%04d-%02d", year, month),
		Errors:         errs,
	}
}

func dateRangeLabel(w MonthWindow) string {
	return fmt.Sprintf("%s - %s, %d", w.First.Format("January 2"), w.Last.Format("January 2"), w.First.Year())
}
