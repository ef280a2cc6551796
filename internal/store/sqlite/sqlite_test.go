package sqlite

import (
	"testing"

	"github.com/glowgo/scheduler/internal/store"
	"github.com/glowgo/scheduler/internal/store/storetest"
)

func TestSQLiteStoreCompliance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		db, err := Open(":memory:")
		if err != nil {
			t.Fatalf("open sqlite: %v", err)
		}
		t.Cleanup(func() { _ = db.Close() })

		s, err := NewWithDB(db)
		if err != nil {
			t.Fatalf("init store: %v", err)
		}
		return s
	})
}
