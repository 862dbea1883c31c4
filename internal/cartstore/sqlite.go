package cartstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"marketplace-companion/internal/domain"
)

// SQLiteStore persists the cart as a single row in the app's local sqlite
// database. The blob stays the unit of persistence: the row holds the whole
// serialized line list, keyed by the fixed cart key.
type SQLiteStore struct {
	db     *sqlx.DB
	logger zerolog.Logger
	notifier
}

// OpenSQLite opens the local database and verifies connectivity.
func OpenSQLite(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// NewSQLite builds a SQLiteStore on an open database. The cart_blobs table is
// created by the embedded migrations (internal/migrate).
func NewSQLite(db *sqlx.DB, logger zerolog.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, logger: logger}
}

func (s *SQLiteStore) Load(ctx context.Context) ([]domain.CartLine, error) {
	var raw []byte
	err := s.db.QueryRowxContext(ctx, `SELECT payload FROM cart_blobs WHERE key = ?`, Key).Scan(&raw)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn().Err(err).Msg("cart row unreadable, treating as empty")
		}
		return []domain.CartLine{}, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(raw, &lines); err != nil {
		s.logger.Warn().Err(err).Msg("cart row corrupt, resetting to empty")
		return []domain.CartLine{}, nil
	}
	return lines, nil
}

func (s *SQLiteStore) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	const q = `
INSERT INTO cart_blobs (key, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
`
	if _, err := s.db.ExecContext(ctx, q, Key, raw, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	s.notify(lines)
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return s.Save(ctx, nil)
}
