package listing

import (
	"github.com/shopspring/decimal"
)

// Config describes one rental listing: where its booking calendar lives and
// what a single cleaning costs. One YAML file per listing.
type Config struct {
	Name        string `yaml:"-"`    // Derived from filename (without .yml extension)
	DisplayName string `yaml:"name"` // Human-readable listing name shown on reports
	URL         string `yaml:"url"`  // Booking calendar feed URL
	Rate        string `yaml:"rate"` // Flat per-cleaning fee, decimal string
	Enabled     bool   `yaml:"enabled"`

	// RateAmount is Rate parsed during validation; always non-negative.
	RateAmount decimal.Decimal `yaml:"-"`
}
