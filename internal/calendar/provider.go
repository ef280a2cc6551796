// Package calendar defines the provider boundary for raw calendar data.
package calendar

import (
	"context"
	"time"

	"github.com/glowgo/scheduler/internal/model"
)

// Provider fetches raw calendar data for a user credential. Implementations
// live under internal/calendar/<provider>/ (e.g., google, ics).
type Provider interface {
	// Events returns the raw events overlapping [timeMin, timeMax).
	Events(ctx context.Context, credential string, timeMin, timeMax time.Time) ([]model.RawEvent, error)

	// FreeBusy returns the provider's lighter-weight busy view for the range.
	FreeBusy(ctx context.Context, credential string, timeMin, timeMax time.Time) ([]model.FreeBusyInterval, error)
}
