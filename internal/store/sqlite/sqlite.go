package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS calendar_tokens (
    token_id      TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL UNIQUE,
    provider      TEXT NOT NULL,
    access_token  TEXT NOT NULL,
    time_zone     TEXT NOT NULL DEFAULT '',
    creation_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    update_time   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// NewWithDB constructs a SQLite-backed store and applies the embedded schema.
// SQLite is the single-node default; Postgres serves multi-instance deployments.
func NewWithDB(db *sql.DB) (store.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Tokens() store.Tokens { return &tokens{db: s.db} }

// HealthPing implements health.HealthPinger for the SQLite-backed store.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type tokens struct{ db *sql.DB }

func (t *tokens) Upsert(ctx context.Context, m *model.CalendarToken) (*model.CalendarToken, error) {
	id := m.TokenID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()
	_, err := t.db.ExecContext(ctx, `
        INSERT INTO calendar_tokens (token_id, user_id, provider, access_token, time_zone, creation_time, update_time)
        VALUES (?,?,?,?,?,?,?)
        ON CONFLICT (user_id) DO UPDATE
        SET provider=excluded.provider,
            access_token=excluded.access_token,
            time_zone=excluded.time_zone,
            update_time=excluded.update_time
    `, id, m.UserID, m.Provider, m.AccessToken, m.TimeZone, now, now)
	if err != nil {
		return nil, err
	}
	return t.Get(ctx, m.UserID)
}

func (t *tokens) Get(ctx context.Context, userID string) (*model.CalendarToken, error) {
	var out model.CalendarToken
	row := t.db.QueryRowContext(ctx, `
        SELECT token_id, user_id, provider, access_token, time_zone, creation_time, update_time
        FROM calendar_tokens WHERE user_id=?
    `, userID)
	if err := row.Scan(&out.TokenID, &out.UserID, &out.Provider, &out.AccessToken, &out.TimeZone, &out.CreationTime, &out.UpdateTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTokenNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (t *tokens) Delete(ctx context.Context, userID string) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM calendar_tokens WHERE user_id=?`, userID)
	return err
}
