package engine

import (
	"fmt"
	"strings"

	"github.com/glowgo/scheduler/internal/model"
)

// BuildSmartSuggestion assembles the analysis into a single natural-language
// recommendation. It is deterministic and side-effect-free; without calendar
// access it returns an empty string.
func BuildSmartSuggestion(result *model.AnalysisResult, serviceType string, hasTargetDate bool) string {
	if !result.HasCalendar {
		return ""
	}

	parts := make([]string, 0, 3)

	if hasTargetDate && len(result.EventsOnTargetDate) > 0 {
		parts = append(parts, describeTargetDate(result.EventsOnTargetDate))
	}

	if len(result.SuggestedSlots) > 0 {
		parts = append(parts, describeBestSlot(result.SuggestedSlots[0], serviceType))
	} else if hasTargetDate {
		parts = append(parts, fmt.Sprintf(
			"That day looks fully booked, so I couldn't find a window that fits your %s. Want to try a different day?",
			serviceType))
	} else {
		parts = append(parts, fmt.Sprintf(
			"Your next few days look fully booked, so I couldn't find a window that fits your %s. Want to look further out?",
			serviceType))
	}

	if len(result.DayBeforeSuggestions) > 0 {
		s := result.DayBeforeSuggestions[0]
		suggestedTime := s.SuggestedTime
		if suggestedTime == "" {
			suggestedTime = defaultIdealTime
		}
		parts = append(parts, fmt.Sprintf(
			"\n\n💡 I noticed you have %s on %s! How about getting your %s done the day before on %s around %s? "+
				"That way you'll look fresh and have plenty of time to get ready for your big event!",
			s.EventName, s.EventDate, serviceType, s.SuggestedDay, suggestedTime))
	}

	return strings.Join(parts, " ")
}

func describeTargetDate(events []model.CalendarEvent) string {
	switch len(events) {
	case 1:
		e := events[0]
		return fmt.Sprintf("I see you have %s at %s.", e.Name, formatClock(e.Start))
	case 2:
		e1, e2 := events[0], events[1]
		return fmt.Sprintf("I see from your calendar you have %s at %s, and %s at %s.",
			e1.Name, formatClock(e1.Start), e2.Name, formatClock(e2.Start))
	default:
		first := events[0]
		return fmt.Sprintf("I see you have %d events that day, starting with %s at %s.",
			len(events), first.Name, formatClock(first.Start))
	}
}

func describeBestSlot(slot model.AvailableSlot, serviceType string) string {
	switch slot.Kind {
	case model.SlotBetweenEvents:
		return fmt.Sprintf("How about between your appointments? %s to %s would give you enough time for your %s with buffer time to spare!",
			formatClock(slot.Start), formatClock(slot.End), serviceType)
	case model.SlotFreeDay:
		return fmt.Sprintf("Your calendar is free that day! I'd suggest late morning or early afternoon when you have plenty of time to enjoy your %s.",
			serviceType)
	default:
		return fmt.Sprintf("I'd suggest around %s - %s.", formatClock(slot.Start), strings.ToLower(slot.Note))
	}
}
