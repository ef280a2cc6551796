package model

import "time"

// RawEvent is a provider event exactly as the calendar feed returned it.
// Start/End are either full date-times (RFC 3339, with or without offset)
// or date-only strings for all-day events.
type RawEvent struct {
	Name     string `json:"name"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Location string `json:"location,omitempty"`
}

// CalendarEvent is a normalized, timezone-localized event. Instances are
// request-scoped and immutable once produced by the normalizer.
type CalendarEvent struct {
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	AllDay   bool      `json:"allDay,omitempty"`
	Location string    `json:"location,omitempty"`
}

// SlotKind classifies where an available slot sits relative to the day's events.
type SlotKind string

const (
	SlotBeforeFirstEvent SlotKind = "before_first_event"
	SlotBetweenEvents    SlotKind = "between_events"
	SlotAfterLastEvent   SlotKind = "after_last_event"
	SlotFreeDay          SlotKind = "free_day"
)

// AvailableSlot is a free window large enough for the requested service,
// already reduced by the travel buffer on both sides of neighboring events.
type AvailableSlot struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"durationMinutes"`
	Date            string    `json:"date"`
	Kind            SlotKind  `json:"kind"`
	Note            string    `json:"note"`
}

// ImportantEvent marks an event as worth appearance preparation beforehand.
// Score is populated only when the scoring capability produced the match.
type ImportantEvent struct {
	Event  CalendarEvent `json:"event"`
	Reason string        `json:"reason"`
	Score  int           `json:"importanceScore,omitempty"`
}

// DayBeforeSuggestion recommends an appointment on the day preceding an
// important event. SuggestedTime is a formatted local time such as "11:00 AM",
// or the no-availability sentinel when the day is fully booked.
type DayBeforeSuggestion struct {
	EventName     string `json:"eventName"`
	EventDate     string `json:"eventDate"`
	SuggestedDay  string `json:"suggestedDay"`
	SuggestedTime string `json:"suggestedTime"`
	Reason        string `json:"reason"`
}

// AnalysisResult is the single value returned to the orchestration layer.
type AnalysisResult struct {
	HasCalendar          bool                  `json:"hasCalendar"`
	SuggestedSlots       []AvailableSlot       `json:"suggestedSlots"`
	ImportantEvents      []ImportantEvent      `json:"importantEvents"`
	DayBeforeSuggestions []DayBeforeSuggestion `json:"dayBeforeSuggestions"`
	EventsOnTargetDate   []CalendarEvent       `json:"eventsOnTargetDate,omitempty"`
	Reasoning            string                `json:"reasoning,omitempty"`
	SmartSuggestion      string                `json:"smartSuggestion"`
}

// FreeBusyInterval is one busy span from the provider's lighter-weight
// free/busy view. No event names are attached.
type FreeBusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ScoredEvent is one element of the scoring capability's response.
type ScoredEvent struct {
	Name            string `json:"name"`
	ImportanceScore int    `json:"importance_score"`
	Reason          string `json:"reason"`
}

// CalendarToken links a user to a calendar credential. For the Google
// provider AccessToken is an OAuth access token; for ICS feeds it is the
// secret feed URL. TimeZone, when set, overrides the service default as the
// user's reference zone.
type CalendarToken struct {
	TokenID      string    `json:"tokenId"`
	UserID       string    `json:"userId"`
	Provider     string    `json:"provider"`
	AccessToken  string    `json:"accessToken"`
	TimeZone     string    `json:"timeZone,omitempty"`
	CreationTime time.Time `json:"creationTime"`
	UpdateTime   time.Time `json:"updateTime"`
}
