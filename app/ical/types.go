package ical

import "time"

// Event is one booking span extracted from a calendar feed. Start and End
// are date-granularity values at midnight UTC; the parser only emits events
// that carry both.
type Event struct {
	Start   time.Time
	End     time.Time
	Summary string
	UID     string
}
