package store

import (
	"context"

	"github.com/glowgo/scheduler/internal/model"
)

// Store exposes persistence operations required by the scheduler.
// Implementations live under internal/store/<driver>/ (e.g., postgres, sqlite).
type Store interface {
	Tokens() Tokens
}

// Tokens persists per-user calendar credentials. Get returns
// model.ErrTokenNotFound when the user has not connected a calendar.
type Tokens interface {
	Upsert(ctx context.Context, t *model.CalendarToken) (*model.CalendarToken, error)
	Get(ctx context.Context, userID string) (*model.CalendarToken, error)
	Delete(ctx context.Context, userID string) error
}
