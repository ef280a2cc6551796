package engine

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowgo/scheduler/internal/model"
)

func testLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func TestNormalizeEvents_SortsAndLocalizes(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Name: "Lunch", Start: "2026-09-02T12:00:00-04:00", End: "2026-09-02T13:00:00-04:00"},
		{Name: "Standup", Start: "2026-09-02T09:30:00-04:00", End: "2026-09-02T09:45:00-04:00"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Name != "Standup" || events[1].Name != "Lunch" {
		t.Fatalf("events not sorted by start: %v, %v", events[0].Name, events[1].Name)
	}
	if events[0].Start.Location() != loc {
		t.Fatalf("event not localized to reference zone: %v", events[0].Start.Location())
	}
}

func TestNormalizeEvents_DropsPastEvents(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Name: "Yesterday", Start: "2026-08-31T10:00:00-04:00", End: "2026-08-31T11:00:00-04:00"},
		{Name: "Earlier today", Start: "2026-09-01T09:00:00-04:00", End: "2026-09-01T10:00:00-04:00"},
		{Name: "In progress", Start: "2026-09-01T11:30:00-04:00", End: "2026-09-01T12:30:00-04:00"},
		{Name: "Tomorrow", Start: "2026-09-02T10:00:00-04:00", End: "2026-09-02T11:00:00-04:00"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 2 {
		t.Fatalf("expected 2 future events, got %d: %+v", len(events), events)
	}
	if events[0].Name != "In progress" || events[1].Name != "Tomorrow" {
		t.Fatalf("wrong events kept: %v, %v", events[0].Name, events[1].Name)
	}
}

func TestNormalizeEvents_SkipsMalformedWithoutAborting(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Name: "Broken start", Start: "not-a-date", End: "2026-09-02T11:00:00-04:00"},
		{Name: "Broken end", Start: "2026-09-02T10:00:00-04:00", End: ""},
		{Name: "Inverted", Start: "2026-09-02T12:00:00-04:00", End: "2026-09-02T11:00:00-04:00"},
		{Name: "Fine", Start: "2026-09-02T10:00:00-04:00", End: "2026-09-02T11:00:00-04:00"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 1 || events[0].Name != "Fine" {
		t.Fatalf("expected only the well-formed event, got %+v", events)
	}
}

func TestNormalizeEvents_AllDayLocalizesToMidnight(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Name: "Conference", Start: "2026-09-03", End: "2026-09-04"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if !e.AllDay {
		t.Fatal("expected all-day flag")
	}
	want := time.Date(2026, 9, 3, 0, 0, 0, 0, loc)
	if !e.Start.Equal(want) {
		t.Fatalf("all-day start = %v, want %v", e.Start, want)
	}
	if !e.End.Equal(want.AddDate(0, 0, 1)) {
		t.Fatalf("all-day end = %v", e.End)
	}
}

func TestNormalizeEvents_NaiveTimestampAssumesReferenceZone(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Name: "Dentist", Start: "2026-09-02T10:00:00", End: "2026-09-02T11:00:00"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	want := time.Date(2026, 9, 2, 10, 0, 0, 0, loc)
	if !events[0].Start.Equal(want) {
		t.Fatalf("start = %v, want %v", events[0].Start, want)
	}
}

func TestNormalizeEvents_DefaultsEmptyNameToBusy(t *testing.T) {
	loc := testLocation(t)
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, loc)

	raw := []model.RawEvent{
		{Start: "2026-09-02T10:00:00-04:00", End: "2026-09-02T11:00:00-04:00"},
	}

	events := NormalizeEvents(raw, loc, now, zerolog.Nop())
	if len(events) != 1 || events[0].Name != "Busy" {
		t.Fatalf("expected unnamed event to become Busy, got %+v", events)
	}
}
