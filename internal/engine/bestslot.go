package engine

import (
	"time"

	"github.com/glowgo/scheduler/internal/model"
)

// defaultIdealTime is suggested when the day before an important event is
// completely free: mid-morning leaves the evening untouched.
const defaultIdealTime = "11:00 AM"

// priorityHours is the preferred anchor window for day-before appointments
// (10:00-14:00). Early enough to leave time to get ready before an evening
// event.
var priorityHours = []int{10, 11, 12, 13, 14}

// FindBestSlotForDay picks a single suggested time on day, given that day's
// events. It returns a formatted local clock time, or NoAvailability when no
// gap fits requiredMinutes.
func (p SlotPolicy) FindBestSlotForDay(day time.Time, dayEvents []model.CalendarEvent, requiredMinutes int, now time.Time) string {
	y, m, d := day.Date()
	windowStart := time.Date(y, m, d, p.BusinessStartHour, 0, 0, 0, day.Location())
	windowEnd := time.Date(y, m, d, p.BusinessEndHour, 0, 0, 0, day.Location())

	// Same-day suggestions need lead time: never earlier than an hour out.
	if sameDate(day, now) {
		if earliest := now.Add(time.Hour); earliest.After(windowStart) {
			windowStart = earliest
		}
	}

	if len(dayEvents) == 0 {
		return defaultIdealTime
	}

	busy := p.buildBusyPeriods(dayEvents)

	type gap struct{ start, end time.Time }
	gaps := make([]gap, 0, len(busy)+1)
	appendGap := func(start, end time.Time) {
		if end.Sub(start).Minutes() >= float64(requiredMinutes) {
			gaps = append(gaps, gap{start: start, end: end})
		}
	}

	appendGap(windowStart, clipToWindow(busy[0].start, windowStart, windowEnd))
	for i := 0; i < len(busy)-1; i++ {
		appendGap(clipToWindow(busy[i].end, windowStart, windowEnd), clipToWindow(busy[i+1].start, windowStart, windowEnd))
	}
	appendGap(clipToWindow(busy[len(busy)-1].end, windowStart, windowEnd), windowEnd)

	if len(gaps) == 0 {
		return NoAvailability
	}

	// Prefer a gap containing a priority hour; anchor at the earliest one
	// that actually falls inside the gap.
	for _, g := range gaps {
		for _, hour := range priorityHours {
			candidate := time.Date(y, m, d, hour, 0, 0, 0, day.Location())
			if !candidate.Before(g.start) && candidate.Before(g.end) {
				return formatClock(candidate)
			}
		}
	}

	// No priority hour available: take the first gap's start, rounded up to
	// the nearest half hour.
	return formatClock(roundUpHalfHour(gaps[0].start))
}

func roundUpHalfHour(t time.Time) time.Time {
	switch {
	case t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0:
		return t
	case t.Minute() < 30 || (t.Minute() == 30 && t.Second() == 0 && t.Nanosecond() == 0):
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 30, 0, 0, t.Location())
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
	}
}
