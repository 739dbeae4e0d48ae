package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timelog/internal/modules/session/domain"
	sessionout "timelog/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

// timestampLayout is one of the layouts the driver parses back into time.Time
// for TIMESTAMP columns.
const timestampLayout = "2006-01-02 15:04:05.999999999-07:00"

// SQLiteRecordStore opens the database per operation and closes it before
// returning. Schema creation and inserts share the same path.
type SQLiteRecordStore struct {
	dbPath string
}

func NewSQLiteRecordStore(dbPath string) sessionout.RecordStore {
	return &SQLiteRecordStore{dbPath: dbPath}
}

func (s *SQLiteRecordStore) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id INTEGER PRIMARY KEY,
  title TEXT,
  description TEXT,
  "start" TIMESTAMP,
  "end" TIMESTAMP
);
`
	return s.withDB(ctx, func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("create sessions table: %w", err)
		}
		return nil
	})
}

func (s *SQLiteRecordStore) AddRecord(ctx context.Context, record domain.Record) (int64, error) {
	const stmt = `INSERT INTO sessions (title, description, "start", "end") VALUES (?, ?, ?, ?)`
	var rowID int64
	err := s.withDB(ctx, func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin insert: %w", err)
		}
		res, err := tx.ExecContext(ctx, stmt, record.Title, record.Description, nullableTime(record.Start), nullableTime(record.End))
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert session: %w", err)
		}
		if rowID, err = res.LastInsertId(); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("read session id: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit session: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rowID, nil
}

func (s *SQLiteRecordStore) withDB(ctx context.Context, fn func(*sql.DB) error) error {
	if err := os.MkdirAll(filepath.Dir(s.dbPath), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect sqlite: %w", err)
	}
	return fn(db)
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timestampLayout)
}
