package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/store"
)

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies
// connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a Postgres-backed store directly over database/sql.
// The calendar_tokens schema is provisioned by the deployment, not here.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Tokens() store.Tokens { return &tokens{db: s.db} }

// HealthPing implements health.HealthPinger for the Postgres-backed store.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type tokens struct{ db *sql.DB }

func (t *tokens) Upsert(ctx context.Context, m *model.CalendarToken) (*model.CalendarToken, error) {
	id := m.TokenID
	if id == "" {
		id = uuid.New().String()
	}
	var out model.CalendarToken
	row := t.db.QueryRowContext(ctx, `
        INSERT INTO calendar_tokens (token_id, user_id, provider, access_token, time_zone)
        VALUES ($1,$2,$3,$4,$5)
        ON CONFLICT (user_id) DO UPDATE
        SET provider=EXCLUDED.provider,
            access_token=EXCLUDED.access_token,
            time_zone=EXCLUDED.time_zone,
            update_time=now()
        RETURNING token_id, user_id, provider, access_token, time_zone, creation_time, update_time
    `, id, m.UserID, m.Provider, m.AccessToken, m.TimeZone)
	if err := row.Scan(&out.TokenID, &out.UserID, &out.Provider, &out.AccessToken, &out.TimeZone, &out.CreationTime, &out.UpdateTime); err != nil {
		return nil, err
	}
	return &out, nil
}

func (t *tokens) Get(ctx context.Context, userID string) (*model.CalendarToken, error) {
	var out model.CalendarToken
	var updated *time.Time
	row := t.db.QueryRowContext(ctx, `
        SELECT token_id, user_id, provider, access_token, time_zone, creation_time, update_time
        FROM calendar_tokens WHERE user_id=$1
    `, userID)
	if err := row.Scan(&out.TokenID, &out.UserID, &out.Provider, &out.AccessToken, &out.TimeZone, &out.CreationTime, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrTokenNotFound
		}
		return nil, err
	}
	if updated != nil {
		out.UpdateTime = *updated
	}
	return &out, nil
}

func (t *tokens) Delete(ctx context.Context, userID string) error {
	_, err := t.db.ExecContext(ctx, `DELETE FROM calendar_tokens WHERE user_id=$1`, userID)
	return err
}
