package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/glowgo/scheduler/internal/model"
)

func TestBuildSmartSuggestion_NoCalendar(t *testing.T) {
	result := &model.AnalysisResult{HasCalendar: false}
	assert.Equal(t, "", BuildSmartSuggestion(result, "haircut", true))
}

func TestBuildSmartSuggestion_SingleEvent(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		EventsOnTargetDate: []model.CalendarEvent{
			{Name: "Dentist", Start: time.Date(2026, 9, 3, 10, 0, 0, 0, loc)},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "I see you have Dentist at 10:00 AM.")
}

func TestBuildSmartSuggestion_TwoEvents(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		EventsOnTargetDate: []model.CalendarEvent{
			{Name: "Dentist", Start: time.Date(2026, 9, 3, 10, 0, 0, 0, loc)},
			{Name: "Client call", Start: time.Date(2026, 9, 3, 14, 0, 0, 0, loc)},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "you have Dentist at 10:00 AM, and Client call at 2:00 PM.")
}

func TestBuildSmartSuggestion_ManyEventsSummarizesFirst(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		EventsOnTargetDate: []model.CalendarEvent{
			{Name: "Standup", Start: time.Date(2026, 9, 3, 9, 30, 0, 0, loc)},
			{Name: "Dentist", Start: time.Date(2026, 9, 3, 11, 0, 0, 0, loc)},
			{Name: "Client call", Start: time.Date(2026, 9, 3, 14, 0, 0, 0, loc)},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "I see you have 3 events that day, starting with Standup at 9:30 AM.")
}

func TestBuildSmartSuggestion_BetweenEventsSlot(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		SuggestedSlots: []model.AvailableSlot{
			{
				Kind:  model.SlotBetweenEvents,
				Start: time.Date(2026, 9, 3, 11, 30, 0, 0, loc),
				End:   time.Date(2026, 9, 3, 13, 30, 0, 0, loc),
				Note:  "Between Dentist and Client call",
			},
		},
	}

	got := BuildSmartSuggestion(result, "manicure", true)
	assert.Contains(t, got, "How about between your appointments? 11:30 AM to 1:30 PM")
	assert.Contains(t, got, "your manicure with buffer time to spare!")
}

func TestBuildSmartSuggestion_FreeDaySlot(t *testing.T) {
	result := &model.AnalysisResult{
		HasCalendar: true,
		SuggestedSlots: []model.AvailableSlot{
			{Kind: model.SlotFreeDay, Note: "Your calendar is free this day!"},
		},
	}

	got := BuildSmartSuggestion(result, "massage", true)
	assert.Contains(t, got, "Your calendar is free that day!")
	assert.Contains(t, got, "late morning or early afternoon")
}

func TestBuildSmartSuggestion_GenericSlotCitesNote(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		SuggestedSlots: []model.AvailableSlot{
			{
				Kind:  model.SlotAfterLastEvent,
				Start: time.Date(2026, 9, 3, 15, 30, 0, 0, loc),
				Note:  "After your Client call",
			},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "I'd suggest around 3:30 PM - after your client call.")
}

func TestBuildSmartSuggestion_FullyBookedMessage(t *testing.T) {
	loc := testLocation(t)
	result := &model.AnalysisResult{
		HasCalendar: true,
		EventsOnTargetDate: []model.CalendarEvent{
			{Name: "Offsite", Start: time.Date(2026, 9, 3, 9, 0, 0, 0, loc)},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "fully booked")
	assert.NotEqual(t, "", got)
}

func TestBuildSmartSuggestion_FullyBookedWithoutTargetEvents(t *testing.T) {
	// A collapsed window can leave zero slots even with nothing on the
	// target date; the message must still land.
	result := &model.AnalysisResult{HasCalendar: true}

	got := BuildSmartSuggestion(result, "haircut", true)
	assert.Contains(t, got, "fully booked")
	assert.Contains(t, got, "different day")
}

func TestBuildSmartSuggestion_BookedOutHorizon(t *testing.T) {
	result := &model.AnalysisResult{HasCalendar: true}

	got := BuildSmartSuggestion(result, "massage", false)
	assert.Contains(t, got, "fully booked")
	assert.Contains(t, got, "your massage")
	assert.NotEqual(t, "", got)
}

func TestBuildSmartSuggestion_DayBeforeParagraph(t *testing.T) {
	result := &model.AnalysisResult{
		HasCalendar: true,
		DayBeforeSuggestions: []model.DayBeforeSuggestion{
			{
				EventName:     "Wedding Reception",
				EventDate:     "Friday, September 04",
				SuggestedDay:  "Thursday, September 03",
				SuggestedTime: "11:00 AM",
			},
		},
	}

	got := BuildSmartSuggestion(result, "haircut", false)
	assert.Contains(t, got, "I noticed you have Wedding Reception on Friday, September 04!")
	assert.Contains(t, got, "the day before on Thursday, September 03 around 11:00 AM")
	assert.True(t, strings.Contains(got, "💡"))
}

func TestBuildSmartSuggestion_NoDayBeforeWithoutTrigger(t *testing.T) {
	result := &model.AnalysisResult{HasCalendar: true}
	got := BuildSmartSuggestion(result, "haircut", false)
	assert.NotContains(t, got, "💡")
}
