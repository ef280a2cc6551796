// Package google adapts the Google Calendar API to the calendar.Provider
// interface. The per-user credential is an OAuth access token obtained by
// the consumer-facing application; this service never runs the OAuth flow.
package google

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/glowgo/scheduler/internal/model"
)

const primaryCalendar = "primary"

type Provider struct {
	// extra client options, appended after authentication. Tests inject an
	// endpoint override here.
	opts []option.ClientOption
}

func New(opts ...option.ClientOption) *Provider {
	return &Provider{opts: opts}
}

func (p *Provider) service(ctx context.Context, accessToken string) (*calendarapi.Service, error) {
	opts := make([]option.ClientOption, 0, len(p.opts)+1)
	if accessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		opts = append(opts, option.WithTokenSource(src))
	} else {
		opts = append(opts, option.WithoutAuthentication())
	}
	opts = append(opts, p.opts...)

	svc, err := calendarapi.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "google: build calendar client")
	}
	return svc, nil
}

// Events lists single-instance events on the primary calendar within
// [timeMin, timeMax), ordered by start time. Recurring events are expanded
// server-side.
func (p *Provider) Events(ctx context.Context, accessToken string, timeMin, timeMax time.Time) ([]model.RawEvent, error) {
	svc, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	call := svc.Events.List(primaryCalendar).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	out := make([]model.RawEvent, 0)
	err = call.Pages(ctx, func(page *calendarapi.Events) error {
		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			out = append(out, model.RawEvent{
				Name:     item.Summary,
				Start:    eventEdge(item.Start),
				End:      eventEdge(item.End),
				Location: item.Location,
			})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "google: list events")
	}
	return out, nil
}

// FreeBusy queries the freebusy endpoint for the primary calendar.
func (p *Provider) FreeBusy(ctx context.Context, accessToken string, timeMin, timeMax time.Time) ([]model.FreeBusyInterval, error) {
	svc, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	req := &calendarapi.FreeBusyRequest{
		TimeMin: timeMin.Format(time.RFC3339),
		TimeMax: timeMax.Format(time.RFC3339),
		Items:   []*calendarapi.FreeBusyRequestItem{{Id: primaryCalendar}},
	}
	resp, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrap(err, "google: freebusy query")
	}

	cal, ok := resp.Calendars[primaryCalendar]
	if !ok {
		return []model.FreeBusyInterval{}, nil
	}

	busy := make([]model.FreeBusyInterval, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, serr := time.Parse(time.RFC3339, period.Start)
		end, eerr := time.Parse(time.RFC3339, period.End)
		if serr != nil || eerr != nil {
			continue
		}
		busy = append(busy, model.FreeBusyInterval{Start: start, End: end})
	}
	return busy, nil
}

// eventEdge picks the timed value when present, falling back to the
// date-only value for all-day events. Downstream normalization keys the
// all-day flag off the date-only shape.
func eventEdge(edge *calendarapi.EventDateTime) string {
	if edge == nil {
		return ""
	}
	if edge.DateTime != "" {
		return edge.DateTime
	}
	return edge.Date
}
