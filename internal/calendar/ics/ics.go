// Package ics adapts a subscribed ICS feed to the calendar.Provider
// interface. The per-user credential is the feed URL itself.
package ics

import (
	"context"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/glowgo/scheduler/internal/model"
)

const (
	formatTimed   = time.RFC3339
	formatAllDay  = "2006-01-02"
	requestWindow = 15 * time.Second
)

type Provider struct {
	client *resty.Client
}

func New() *Provider {
	return &Provider{
		client: resty.New().SetTimeout(requestWindow),
	}
}

// Events downloads the feed and returns the VEVENTs overlapping
// [timeMin, timeMax). Recurrence rules are not expanded; feeds that
// pre-expand instances (the common export shape) work as-is.
func (p *Provider) Events(ctx context.Context, feedURL string, timeMin, timeMax time.Time) ([]model.RawEvent, error) {
	if feedURL == "" {
		return nil, errors.New("ics: empty feed URL")
	}

	resp, err := p.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		return nil, errors.Wrap(err, "ics: fetch feed")
	}
	if resp.StatusCode() != 200 {
		return nil, errors.Errorf("ics: feed returned status %d", resp.StatusCode())
	}

	cal, err := ical.ParseCalendar(strings.NewReader(resp.String()))
	if err != nil {
		return nil, errors.Wrap(err, "ics: parse feed")
	}

	out := make([]model.RawEvent, 0)
	for _, ve := range cal.Events() {
		raw, ok := mapVEvent(ve)
		if !ok {
			continue
		}
		start, end, perr := eventBounds(ve)
		if perr != nil {
			continue
		}
		if !end.After(timeMin) || !start.Before(timeMax) {
			continue
		}
		out = append(out, raw)
	}
	return out, nil
}

// FreeBusy reports busy intervals derived from the feed's timed events.
func (p *Provider) FreeBusy(ctx context.Context, feedURL string, timeMin, timeMax time.Time) ([]model.FreeBusyInterval, error) {
	events, err := p.Events(ctx, feedURL, timeMin, timeMax)
	if err != nil {
		return nil, err
	}

	busy := make([]model.FreeBusyInterval, 0, len(events))
	for _, e := range events {
		start, serr := time.Parse(formatTimed, e.Start)
		end, eerr := time.Parse(formatTimed, e.End)
		if serr != nil || eerr != nil {
			// All-day entries carry date-only values; they do not block
			// specific hours.
			continue
		}
		busy = append(busy, model.FreeBusyInterval{Start: start, End: end})
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	return busy, nil
}

// mapVEvent converts one VEVENT to the provider-neutral raw shape. All-day
// events are emitted with date-only values so downstream normalization
// treats them as all-day.
func mapVEvent(ve *ical.VEvent) (model.RawEvent, bool) {
	var raw model.RawEvent

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		raw.Name = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		raw.Location = p.Value
	}

	start, end, err := eventBounds(ve)
	if err != nil {
		return raw, false
	}

	if isAllDay(ve) {
		raw.Start = start.Format(formatAllDay)
		raw.End = end.Format(formatAllDay)
	} else {
		raw.Start = start.Format(formatTimed)
		raw.End = end.Format(formatTimed)
	}
	return raw, true
}

func eventBounds(ve *ical.VEvent) (time.Time, time.Time, error) {
	start, err := ve.GetStartAt()
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(err, "ics: event start")
	}
	end, err := ve.GetEndAt()
	if err != nil {
		// DTEND is optional; a missing end means a zero-length event.
		end = start
	}
	return start, end, nil
}

// isAllDay inspects DTSTART: VALUE=DATE or a value without a time component
// marks the event as all-day.
func isAllDay(ve *ical.VEvent) bool {
	prop := ve.GetProperty(ical.ComponentPropertyDtStart)
	if prop == nil {
		return false
	}
	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}
