package ics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:evt-1
SUMMARY:Dentist
LOCATION:12 Main St
DTSTART:20260903T140000Z
DTEND:20260903T150000Z
END:VEVENT
BEGIN:VEVENT
UID:evt-2
SUMMARY:Conference
DTSTART;VALUE=DATE:20260904
DTEND;VALUE=DATE:20260905
END:VEVENT
BEGIN:VEVENT
UID:evt-3
SUMMARY:Old thing
DTSTART:20260801T100000Z
DTEND:20260801T110000Z
END:VEVENT
END:VCALENDAR
`

func feedServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEventsFiltersWindowAndMapsShapes(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)

	p := New()
	timeMin := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	timeMax := timeMin.AddDate(0, 0, 7)

	events, err := p.Events(context.Background(), srv.URL, timeMin, timeMax)
	require.NoError(t, err)
	require.Len(t, events, 2, "August event must be filtered out")

	byName := map[string]int{}
	for i, e := range events {
		byName[e.Name] = i
	}

	dentist := events[byName["Dentist"]]
	assert.Equal(t, "2026-09-03T14:00:00Z", dentist.Start)
	assert.Equal(t, "12 Main St", dentist.Location)

	conf := events[byName["Conference"]]
	assert.Equal(t, "2026-09-04", conf.Start, "all-day events carry date-only values")
	assert.Equal(t, "2026-09-05", conf.End)
}

func TestFreeBusySkipsAllDay(t *testing.T) {
	srv := feedServer(t, http.StatusOK, sampleFeed)

	p := New()
	timeMin := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	busy, err := p.FreeBusy(context.Background(), srv.URL, timeMin, timeMin.AddDate(0, 0, 7))
	require.NoError(t, err)
	require.Len(t, busy, 1)
	assert.Equal(t, time.Date(2026, 9, 3, 14, 0, 0, 0, time.UTC), busy[0].Start)
	assert.Equal(t, time.Date(2026, 9, 3, 15, 0, 0, 0, time.UTC), busy[0].End)
}

func TestEventsFeedErrors(t *testing.T) {
	p := New()
	now := time.Now()

	_, err := p.Events(context.Background(), "", now, now.AddDate(0, 0, 1))
	require.Error(t, err)

	srv := feedServer(t, http.StatusForbidden, "nope")
	_, err = p.Events(context.Background(), srv.URL, now, now.AddDate(0, 0, 1))
	require.Error(t, err)

	bad := feedServer(t, http.StatusOK, "not an ics payload")
	_, err = p.Events(context.Background(), bad.URL, now, now.AddDate(0, 0, 1))
	require.Error(t, err)
}
