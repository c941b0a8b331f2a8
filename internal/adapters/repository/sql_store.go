package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-wellness/internal/core/domain"
)

const DefaultTable = "kanso_records"

var _ domain.RecordStore = (*SQLRecordStore)(nil)

// SQLRecordStore keeps one row per collection key. The same statements run
// on PostgreSQL and SQLite; sqlx rebinds placeholders per driver.
type SQLRecordStore struct {
	db *sqlx.DB

	schemaQuery string
	getQuery    string
	upsertQuery string
	deleteQuery string
}

func NewSQLRecordStore(db *sqlx.DB, table string) *SQLRecordStore {
	if table == "" {
		table = DefaultTable
	}
	t := pq.QuoteIdentifier(table)

	return &SQLRecordStore{
		db: db,
		schemaQuery: fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				record_key   TEXT PRIMARY KEY,
				record_value TEXT NOT NULL,
				updated_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
			)`, t),
		getQuery: db.Rebind(fmt.Sprintf(`SELECT record_value FROM %s WHERE record_key = ?`, t)),
		upsertQuery: db.Rebind(fmt.Sprintf(`
			INSERT INTO %s (record_key, record_value, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (record_key) DO UPDATE
			SET record_value = excluded.record_value, updated_at = CURRENT_TIMESTAMP`, t)),
		deleteQuery: db.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE record_key = ?`, t)),
	}
}

// EnsureSchema creates the records table if it does not exist.
func (r *SQLRecordStore) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.schemaQuery); err != nil {
		return fmt.Errorf("repository: create records table: %w", err)
	}
	return nil
}

func (r *SQLRecordStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.GetContext(ctx, &value, r.getQuery, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrRecordNotFound
		}
		return "", fmt.Errorf("repository: get %q failed: %w", key, err)
	}
	return value, nil
}

func (r *SQLRecordStore) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, r.upsertQuery, key, value); err != nil {
		return fmt.Errorf("repository: set %q failed: %w", key, err)
	}
	return nil
}

func (r *SQLRecordStore) Remove(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.deleteQuery, key); err != nil {
		return fmt.Errorf("repository: remove %q failed: %w", key, err)
	}
	return nil
}

func (r *SQLRecordStore) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
