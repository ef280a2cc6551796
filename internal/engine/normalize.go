package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowgo/scheduler/internal/model"
)

// layouts accepted for provider timestamps, tried in order. Date-only values
// are handled separately because they mark all-day events.
var eventTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

const dateOnlyLayout = "2006-01-02"

// NormalizeEvents converts raw provider events into timezone-localized
// CalendarEvents, sorted by start time. Events that already ended before now
// are dropped, and events whose timestamps cannot be parsed are logged and
// skipped so one bad event never aborts the rest.
func NormalizeEvents(raw []model.RawEvent, loc *time.Location, now time.Time, log zerolog.Logger) []model.CalendarEvent {
	events := make([]model.CalendarEvent, 0, len(raw))

	for _, re := range raw {
		name := re.Name
		if name == "" {
			name = "Busy"
		}

		start, startAllDay, err := parseEventTime(re.Start, loc)
		if err != nil {
			log.Warn().Err(err).Str("event", name).Msg("skipping event with unparseable start")
			continue
		}
		end, _, err := parseEventTime(re.End, loc)
		if err != nil {
			log.Warn().Err(err).Str("event", name).Msg("skipping event with unparseable end")
			continue
		}
		if end.Before(start) {
			log.Warn().Str("event", name).Time("start", start).Time("end", end).Msg("skipping event with end before start")
			continue
		}

		// Drop events that have already ended; in-progress events stay.
		if end.Before(now) {
			continue
		}

		events = append(events, model.CalendarEvent{
			Name:     name,
			Start:    start,
			End:      end,
			AllDay:   startAllDay,
			Location: re.Location,
		})
	}

	sort.Slice(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events
}

// parseEventTime parses a provider timestamp into the reference zone. The
// second return value reports whether the value was date-only (all-day).
func parseEventTime(value string, loc *time.Location) (time.Time, bool, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return time.Time{}, false, fmt.Errorf("empty timestamp")
	}

	// Date-only values localize to midnight in the reference zone.
	if !strings.Contains(v, "T") {
		t, err := time.ParseInLocation(dateOnlyLayout, v, loc)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("parse date %q: %w", v, err)
		}
		return t, true, nil
	}

	for _, layout := range eventTimeLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339 {
			t, err = time.Parse(layout, v)
		} else {
			// Timestamp without offset: assume the reference zone.
			t, err = time.ParseInLocation(layout, v, loc)
		}
		if err == nil {
			return t.In(loc), false, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("parse timestamp %q", v)
}

// eventsOnDate filters events whose (reference-zone) start date equals day.
func eventsOnDate(events []model.CalendarEvent, day time.Time) []model.CalendarEvent {
	y, m, d := day.Date()
	out := make([]model.CalendarEvent, 0)
	for _, e := range events {
		ey, em, ed := e.Start.Date()
		if ey == y && em == m && ed == d {
			out = append(out, e)
		}
	}
	return out
}
