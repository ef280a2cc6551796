package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. Implementations should provide a clean, isolated store and
// return it from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	userID := "u-" + uuid.New().String()

	// Missing token reports the sentinel.
	if _, err := s.Tokens().Get(ctx, userID); !errors.Is(err, model.ErrTokenNotFound) {
		t.Fatalf("Get before connect: want ErrTokenNotFound, got %v", err)
	}

	// Connect
	tok, err := s.Tokens().Upsert(ctx, &model.CalendarToken{
		UserID:      userID,
		Provider:    "google",
		AccessToken: "ya29.initial",
		TimeZone:    "America/New_York",
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if tok.TokenID == "" {
		t.Fatal("Upsert: empty token id")
	}
	if tok.CreationTime.IsZero() {
		t.Fatal("Upsert: zero creation time")
	}

	got, err := s.Tokens().Get(ctx, userID)
	if err != nil || got.AccessToken != "ya29.initial" {
		t.Fatalf("Get: got=%v err=%v", got, err)
	}

	// Reconnect replaces the credential, keeping one row per user.
	tok2, err := s.Tokens().Upsert(ctx, &model.CalendarToken{
		UserID:      userID,
		Provider:    "google",
		AccessToken: "ya29.rotated",
		TimeZone:    "America/Chicago",
	})
	if err != nil {
		t.Fatalf("Upsert rotate: %v", err)
	}
	if tok2.AccessToken != "ya29.rotated" || tok2.TimeZone != "America/Chicago" {
		t.Fatalf("Upsert rotate: got=%+v", tok2)
	}

	// Disconnect
	if err := s.Tokens().Delete(ctx, userID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Tokens().Get(ctx, userID); !errors.Is(err, model.ErrTokenNotFound) {
		t.Fatalf("Get after delete: want ErrTokenNotFound, got %v", err)
	}

	// Delete is idempotent.
	if err := s.Tokens().Delete(ctx, userID); err != nil {
		t.Fatalf("Delete twice: %v", err)
	}
}
