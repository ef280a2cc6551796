package postgres

import (
	"os"
	"testing"

	"github.com/glowgo/scheduler/internal/store"
	"github.com/glowgo/scheduler/internal/store/storetest"
)

func makePGStore(t *testing.T) store.Store {
	t.Helper()
	dsn := os.Getenv("SCHEDULER_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SCHEDULER_POSTGRES_DSN not set; skipping postgres store integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("postgres open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db)
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
