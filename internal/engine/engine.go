// Package engine computes calendar availability and smart scheduling
// suggestions. It performs no I/O of its own beyond the injected token store
// and calendar provider; all computation is request-scoped and stateless.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowgo/scheduler/internal/calendar"
	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/store"
)

// Options are the injected policy knobs. Zero values fall back to the
// reference defaults via New.
type Options struct {
	Policy           SlotPolicy
	DefaultLocation  *time.Location
	HorizonDays      int
	MaxSuggestions   int
	ServiceDurations map[string]int

	// Now is the clock; tests substitute a fixed instant.
	Now func() time.Time
}

// Engine is the availability analysis entry point used by the orchestration
// layer. Safe for concurrent use; it holds no cross-request state.
type Engine struct {
	store      store.Store
	provider   calendar.Provider
	classifier Classifier
	opts       Options
	log        zerolog.Logger
}

func New(st store.Store, provider calendar.Provider, classifier Classifier, opts Options, log zerolog.Logger) *Engine {
	if opts.Policy.BusinessStartHour == 0 && opts.Policy.BusinessEndHour == 0 {
		opts.Policy = SlotPolicy{BusinessStartHour: 9, BusinessEndHour: 19, BufferMinutes: 30}
	}
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = 7
	}
	if opts.MaxSuggestions <= 0 {
		opts.MaxSuggestions = 3
	}
	if opts.ServiceDurations == nil {
		opts.ServiceDurations = map[string]int{"default": 60}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{store: st, provider: provider, classifier: classifier, opts: opts, log: log}
}

// ServiceDuration resolves a service type to its duration in minutes.
// Unknown types fall back to the default entry.
func (e *Engine) ServiceDuration(serviceType string) int {
	if d, ok := e.opts.ServiceDurations[strings.ToLower(serviceType)]; ok {
		return d
	}
	return e.opts.ServiceDurations["default"]
}

// AnalyzeAvailability is the sole public analysis operation. A nil targetDate
// means a whole-horizon search (default seven days). A missing calendar
// credential is not an error: the result carries hasCalendar=false and an
// explanatory reasoning string. Provider faults are likewise reported in the
// result, never as a returned error.
func (e *Engine) AnalyzeAvailability(ctx context.Context, userID, serviceType string, targetDate *time.Time) (*model.AnalysisResult, error) {
	result := &model.AnalysisResult{
		SuggestedSlots:       []model.AvailableSlot{},
		ImportantEvents:      []model.ImportantEvent{},
		DayBeforeSuggestions: []model.DayBeforeSuggestion{},
	}

	tok, err := e.store.Tokens().Get(ctx, userID)
	if errors.Is(err, model.ErrTokenNotFound) {
		result.Reasoning = "User has not connected their calendar"
		return result, nil
	}
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("token lookup failed")
		result.Reasoning = fmt.Sprintf("Error analyzing calendar: %v", err)
		return result, nil
	}
	result.HasCalendar = true

	loc := e.locationFor(tok)
	now := e.opts.Now().In(loc)

	required := e.ServiceDuration(serviceType) + 2*e.opts.Policy.BufferMinutes

	var timeMin, timeMax time.Time
	if targetDate != nil {
		timeMin = dateAt(*targetDate, loc)
		timeMax = timeMin.AddDate(0, 0, 1)
	} else {
		timeMin = midnightOf(now, loc)
		timeMax = timeMin.AddDate(0, 0, e.opts.HorizonDays)
	}

	raw, err := e.provider.Events(ctx, tok.AccessToken, timeMin, timeMax)
	if err != nil {
		e.log.Error().Err(err).Str("user_id", userID).Msg("calendar fetch failed")
		result.Reasoning = fmt.Sprintf("Error analyzing calendar: %v", err)
		return result, nil
	}

	events := NormalizeEvents(raw, loc, now, e.log)
	e.log.Debug().Int("raw", len(raw)).Int("future", len(events)).Msg("events normalized")

	result.ImportantEvents = e.classifier.DetectImportant(ctx, events)

	if targetDate != nil {
		day := dateAt(*targetDate, loc)
		dayEvents := eventsOnDate(events, day)
		result.EventsOnTargetDate = dayEvents
		result.SuggestedSlots = e.opts.Policy.FindSlotsForDay(day, dayEvents, required, now)
	} else {
		for i := 0; i < e.opts.HorizonDays; i++ {
			day := midnightOf(now, loc).AddDate(0, 0, i)
			slots := e.opts.Policy.FindSlotsForDay(day, eventsOnDate(events, day), required, now)
			result.SuggestedSlots = append(result.SuggestedSlots, slots...)
		}
	}
	if len(result.SuggestedSlots) > e.opts.MaxSuggestions {
		result.SuggestedSlots = result.SuggestedSlots[:e.opts.MaxSuggestions]
	}

	result.DayBeforeSuggestions = e.dayBeforeSuggestions(result.ImportantEvents, events, serviceType, required, now, loc)
	result.SmartSuggestion = BuildSmartSuggestion(result, serviceType, targetDate != nil)

	return result, nil
}

// dayBeforeSuggestions derives one suggestion per qualifying important event:
// the event must start at least 24 hours out, and at most MaxSuggestions are
// surfaced.
func (e *Engine) dayBeforeSuggestions(important []model.ImportantEvent, events []model.CalendarEvent, serviceType string, requiredMinutes int, now time.Time, loc *time.Location) []model.DayBeforeSuggestion {
	suggestions := make([]model.DayBeforeSuggestion, 0, len(important))

	for _, ie := range important {
		if ie.Event.Start.Sub(now) < 24*time.Hour {
			e.log.Debug().Str("event", ie.Event.Name).Msg("skipping day-before suggestion: event less than 24 hours away")
			continue
		}

		dayBefore := midnightOf(ie.Event.Start.In(loc), loc).AddDate(0, 0, -1)
		dayEvents := eventsOnDate(events, dayBefore)
		suggestedTime := e.opts.Policy.FindBestSlotForDay(dayBefore, dayEvents, requiredMinutes, now)

		suggestions = append(suggestions, model.DayBeforeSuggestion{
			EventName:     ie.Event.Name,
			EventDate:     formatDate(ie.Event.Start.In(loc)),
			SuggestedDay:  formatDate(dayBefore),
			SuggestedTime: suggestedTime,
			Reason:        fmt.Sprintf("Get your %s done before %s so you look your best!", serviceType, ie.Event.Name),
		})

		if len(suggestions) >= e.opts.MaxSuggestions {
			break
		}
	}
	return suggestions
}

// FreeBusy exposes the provider's lighter-weight busy view for a user.
// Unlike AnalyzeAvailability it propagates model.ErrTokenNotFound so the
// transport layer can answer 404.
func (e *Engine) FreeBusy(ctx context.Context, userID string, timeMin, timeMax time.Time) ([]model.FreeBusyInterval, error) {
	tok, err := e.store.Tokens().Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.provider.FreeBusy(ctx, tok.AccessToken, timeMin, timeMax)
}

func (e *Engine) locationFor(tok *model.CalendarToken) *time.Location {
	if tok.TimeZone != "" {
		if loc, err := time.LoadLocation(tok.TimeZone); err == nil {
			return loc
		}
		e.log.Warn().Str("timezone", tok.TimeZone).Msg("stored timezone invalid; using default")
	}
	return e.opts.DefaultLocation
}

func midnightOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// dateAt anchors a caller-supplied civil date (year/month/day taken as-is,
// whatever zone it was parsed in) to midnight in the reference zone.
func dateAt(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
