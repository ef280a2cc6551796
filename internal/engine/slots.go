package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/glowgo/scheduler/internal/model"
)

// SlotPolicy carries the availability rules: the local business-hours window
// and the travel buffer applied around every event.
type SlotPolicy struct {
	BusinessStartHour int
	BusinessEndHour   int
	BufferMinutes     int
}

// busyPeriod is an event padded by the buffer on both sides. It never leaves
// this package.
type busyPeriod struct {
	start time.Time
	end   time.Time
	name  string
}

func (p SlotPolicy) buffer() time.Duration {
	return time.Duration(p.BufferMinutes) * time.Minute
}

func (p SlotPolicy) buildBusyPeriods(events []model.CalendarEvent) []busyPeriod {
	periods := make([]busyPeriod, 0, len(events))
	for _, e := range events {
		periods = append(periods, busyPeriod{
			start: e.Start.Add(-p.buffer()),
			end:   e.End.Add(p.buffer()),
			name:  e.Name,
		})
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].start.Before(periods[j].start) })

	// Coalesce overlapping and contained periods so the gap scan only ever
	// sees disjoint busy intervals.
	merged := make([]busyPeriod, 0, len(periods))
	for _, bp := range periods {
		if n := len(merged); n > 0 && !bp.start.After(merged[n-1].end) {
			if bp.end.After(merged[n-1].end) {
				merged[n-1].end = bp.end
				merged[n-1].name = bp.name
			}
			continue
		}
		merged = append(merged, bp)
	}
	return merged
}

// dayWindow returns the business-hours window for day. When day is today the
// start is clamped forward to now plus the buffer, so slots in the immediate
// past are never suggested.
func (p SlotPolicy) dayWindow(day, now time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, p.BusinessStartHour, 0, 0, 0, day.Location())
	end := time.Date(y, m, d, p.BusinessEndHour, 0, 0, 0, day.Location())

	if sameDate(day, now) {
		if earliest := now.Add(p.buffer()); earliest.After(start) {
			start = earliest
		}
	}
	return start, end
}

// FindSlotsForDay computes the available slots on a single day. dayEvents
// must already be restricted to that day; requiredMinutes is the service
// duration plus the buffer on both sides. Every emitted slot lies inside the
// business-hours window, never overlaps a buffered busy period, and is at
// least requiredMinutes long.
func (p SlotPolicy) FindSlotsForDay(day time.Time, dayEvents []model.CalendarEvent, requiredMinutes int, now time.Time) []model.AvailableSlot {
	windowStart, windowEnd := p.dayWindow(day, now)
	if !windowStart.Before(windowEnd) {
		return nil
	}

	date := formatDate(day)

	if len(dayEvents) == 0 {
		slot, ok := makeSlot(windowStart, windowEnd, requiredMinutes, date, model.SlotFreeDay, "Your calendar is free this day!")
		if !ok {
			return nil
		}
		return []model.AvailableSlot{slot}
	}

	busy := p.buildBusyPeriods(dayEvents)
	slots := make([]model.AvailableSlot, 0, len(busy)+1)

	// Before the first busy period.
	if s, ok := makeSlot(windowStart, clipToWindow(busy[0].start, windowStart, windowEnd), requiredMinutes, date,
		model.SlotBeforeFirstEvent, fmt.Sprintf("Before your %s", busy[0].name)); ok {
		slots = append(slots, s)
	}

	// Between consecutive busy periods.
	for i := 0; i < len(busy)-1; i++ {
		gapStart := clipToWindow(busy[i].end, windowStart, windowEnd)
		gapEnd := clipToWindow(busy[i+1].start, windowStart, windowEnd)
		if s, ok := makeSlot(gapStart, gapEnd, requiredMinutes, date,
			model.SlotBetweenEvents, fmt.Sprintf("Between %s and %s", busy[i].name, busy[i+1].name)); ok {
			slots = append(slots, s)
		}
	}

	// After the last busy period.
	if s, ok := makeSlot(clipToWindow(busy[len(busy)-1].end, windowStart, windowEnd), windowEnd, requiredMinutes, date,
		model.SlotAfterLastEvent, fmt.Sprintf("After your %s", busy[len(busy)-1].name)); ok {
		slots = append(slots, s)
	}

	return slots
}

// makeSlot emits a slot only when the gap is at least requiredMinutes long.
func makeSlot(start, end time.Time, requiredMinutes int, date string, kind model.SlotKind, note string) (model.AvailableSlot, bool) {
	minutes := int(end.Sub(start).Minutes())
	if minutes < requiredMinutes {
		return model.AvailableSlot{}, false
	}
	return model.AvailableSlot{
		Start:           start,
		End:             end,
		DurationMinutes: minutes,
		Date:            date,
		Kind:            kind,
		Note:            note,
	}, true
}

func clipToWindow(t, windowStart, windowEnd time.Time) time.Time {
	if t.Before(windowStart) {
		return windowStart
	}
	if t.After(windowEnd) {
		return windowEnd
	}
	return t
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
