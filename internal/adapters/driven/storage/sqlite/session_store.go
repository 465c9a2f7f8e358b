package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/custodia-labs/raiz-cli/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.TokenStore = (*SessionStore)(nil)

// SessionRecord is one stored login.
type SessionRecord struct {
	ID        string
	CreatedAt time.Time
	ClearedAt *time.Time
}

// Active reports whether the session has not been cleared.
func (r SessionRecord) Active() bool {
	return r.ClearedAt == nil
}

// SessionStore keeps bearer tokens in the sessions table. Saving a token
// closes any previous session, so at most one is active.
type SessionStore struct {
	store *Store
	now   func() time.Time
}

func (s *SessionStore) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Load returns the active token, or "" when there is none.
func (s *SessionStore) Load(ctx context.Context) (string, error) {
	query, args, err := psql.Select("token").
		From("sessions").
		Where(sq.Eq{"cleared_at": nil}).
		OrderBy("created_at DESC", "rowid DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("building query: %w", err)
	}

	var token string
	err = s.store.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return token, nil
}

// Save stores token as the new active session.
func (s *SessionStore) Save(ctx context.Context, token string) error {
	now := s.clock().UnixNano()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.clearTx(ctx, tx, now); err != nil {
		return err
	}

	query, args, err := psql.Insert("sessions").
		Columns("id", "token", "created_at").
		Values(uuid.NewString(), token, now).
		ToSql()
	if err != nil {
		return fmt.Errorf("building insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	return tx.Commit()
}

// Clear closes the active session. The row is kept for history but its
// token is erased.
func (s *SessionStore) Clear(ctx context.Context) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.clearTx(ctx, tx, s.clock().UnixNano()); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SessionStore) clearTx(ctx context.Context, tx *sql.Tx, now int64) error {
	query, args, err := psql.Update("sessions").
		Set("cleared_at", now).
		Set("token", "").
		Where(sq.Eq{"cleared_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building update: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clearing sessions: %w", err)
	}
	return nil
}

// History returns the most recent sessions, newest first.
func (s *SessionStore) History(ctx context.Context, limit int) ([]SessionRecord, error) {
	b := psql.Select("id", "created_at", "cleared_at").
		From("sessions").
		OrderBy("created_at DESC", "rowid DESC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building query: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			rec     SessionRecord
			created int64
			cleared sql.NullInt64
		)
		if err := rows.Scan(&rec.ID, &created, &cleared); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		rec.CreatedAt = time.Unix(0, created)
		if cleared.Valid {
			t := time.Unix(0, cleared.Int64)
			rec.ClearedAt = &t
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return records, nil
}
