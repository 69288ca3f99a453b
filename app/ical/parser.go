package ical

import (
	"strings"
	"time"
)

const (
	beginEventMarker = "BEGIN:VEVENT"
	endEventMarker   = "END:VEVENT"

	startDatePrefix  = "DTSTART"
	endDatePrefix    = "DTEND"
	summaryPrefix    = "SUMMARY:"
	identifierPrefix = "UID:"

	defaultSummary = "Unnamed Booking"
)

type parseState int

const (
	stateOutsideEvent parseState = iota
	stateInsideEvent
)

// accumulator collects field values for the event currently being scanned.
// Start and End stay nil until a date field for them actually parses.
type accumulator struct {
	start   *time.Time
	end     *time.Time
	summary string
	uid     string
}

// Parser reads the single-event, non-recurring iCalendar subset produced by
// short-term-rental booking calendars. It is a strict subset reader: only
// BEGIN:VEVENT/END:VEVENT markers and the DTSTART, DTEND, SUMMARY and UID
// fields are interpreted, everything else is passed over.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Run scans a full feed body and returns the booking events it contains, in
// input order. Events missing a start or end date are dropped, as is any
// event still open when the feed ends.
func (p *Parser) Run(data []byte) []Event {
	events := make([]Event, 0)

	state := stateOutsideEvent
	acc := accumulator{}

	for _, line := range splitLines(string(data)) {
		var done *Event
		state, acc, done = p.scanLine(state, acc, line)
		if done != nil {
			events = append(events, *done)
		}
	}

	return events
}

// scanLine advances the two-state scanner by one line. It returns the next
// state, the updated accumulator, and a finalized event when the line closed
// one that had both dates set.
func (p *Parser) scanLine(state parseState, acc accumulator, line string) (parseState, accumulator, *Event) {
	switch state {
	case stateOutsideEvent:
		if line == beginEventMarker {
			return stateInsideEvent, accumulator{}, nil
		}
		// Stray END:VEVENT or any other content outside an event is ignored.
		return stateOutsideEvent, acc, nil

	case stateInsideEvent:
		switch {
		case line == endEventMarker:
			return stateOutsideEvent, accumulator{}, acc.finalize()
		case line == beginEventMarker:
			// Malformed nesting: restart the accumulator.
			return stateInsideEvent, accumulator{}, nil
		case strings.HasPrefix(line, startDatePrefix):
			if d, ok := ExtractDate(line); ok {
				acc.start = &d
			}
		case strings.HasPrefix(line, endDatePrefix):
			if d, ok := ExtractDate(line); ok {
				acc.end = &d
			}
		case strings.HasPrefix(line, summaryPrefix):
			acc.summary = strings.TrimSpace(line[len(summaryPrefix):])
		case strings.HasPrefix(line, identifierPrefix):
			acc.uid = strings.TrimSpace(line[len(identifierPrefix):])
		}
		// Unrecognized fields inside an event are skipped.
		return stateInsideEvent, acc, nil
	}

	return state, acc, nil
}

// finalize turns the accumulator into an event, or nil when either date is
// missing. Partial events never surface downstream.
func (a accumulator) finalize() *Event {
	if a.start == nil || a.end == nil {
		return nil
	}

	summary := a.summary
	if summary == "" {
		summary = defaultSummary
	}

	return &Event{
		Start:   *a.start,
		End:     *a.end,
		Summary: summary,
		UID:     a.uid,
	}
}

// splitLines splits a feed body on both \n and \r\n endings, trimming each
// line of surrounding whitespace.
func splitLines(body string) []string {
	raw := strings.Split(body, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}
