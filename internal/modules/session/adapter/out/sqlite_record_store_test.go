package out_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	sessionout "timelog/internal/modules/session/adapter/out"
	"timelog/internal/modules/session/domain"

	_ "modernc.org/sqlite"
)

type storedRow struct {
	id          int64
	title       string
	description string
	start       sql.NullTime
	end         sql.NullTime
}

func readRows(t *testing.T, dbPath string) []storedRow {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	rows, err := db.Query(`SELECT id, title, description, "start", "end" FROM sessions ORDER BY id`)
	if err != nil {
		t.Fatalf("query sessions: %v", err)
	}
	defer rows.Close()
	var out []storedRow
	for rows.Next() {
		r := storedRow{}
		if err := rows.Scan(&r.id, &r.title, &r.description, &r.start, &r.end); err != nil {
			t.Fatalf("scan session: %v", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate sessions: %v", err)
	}
	return out
}

func countTables(t *testing.T, dbPath string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'sessions'`).Scan(&n); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	return n
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), ".timelog", "session-history.sqlite")
	store := sessionout.NewSQLiteRecordStore(dbPath)
	for i := 0; i < 2; i++ {
		if err := store.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("ensure schema #%d: %v", i+1, err)
		}
	}
	if n := countTables(t, dbPath); n != 1 {
		t.Fatalf("expected exactly one sessions table, got %d", n)
	}
}

func TestAddRecordWritesOneRow(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "sessions.sqlite")
	store := sessionout.NewSQLiteRecordStore(dbPath)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	start := time.Date(2026, 2, 25, 10, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	id, err := store.AddRecord(context.Background(), domain.Record{Title: "T", Description: "D", Start: &start, End: &end})
	if err != nil {
		t.Fatalf("add record: %v", err)
	}
	rows := readRows(t, dbPath)
	if len(rows) != 1 {
		t.Fatalf("expected one row, got %d", len(rows))
	}
	row := rows[0]
	if row.id != id || row.title != "T" || row.description != "D" {
		t.Fatalf("unexpected row %+v (id %d)", row, id)
	}
	if !row.start.Valid || !row.start.Time.Equal(start) {
		t.Fatalf("start mismatch: %+v", row.start)
	}
	if !row.end.Valid || !row.end.Time.Equal(end) {
		t.Fatalf("end mismatch: %+v", row.end)
	}

	second, err := store.AddRecord(context.Background(), domain.Record{Title: "T2", Start: &start, End: &end})
	if err != nil {
		t.Fatalf("add second record: %v", err)
	}
	if second <= id {
		t.Fatalf("expected auto-assigned increasing id, got %d after %d", second, id)
	}
}

func TestAddRecordStoresNullRangeForIncompleteRecord(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "sessions.sqlite")
	store := sessionout.NewSQLiteRecordStore(dbPath)
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if _, err := store.AddRecord(context.Background(), domain.Record{Title: "T", Description: "D"}); err != nil {
		t.Fatalf("add record: %v", err)
	}
	rows := readRows(t, dbPath)
	if len(rows) != 1 || rows[0].start.Valid || rows[0].end.Valid {
		t.Fatalf("expected one row with NULL range, got %+v", rows)
	}
}

// The schema and the inserts must target the same database file. A store whose
// schema was created elsewhere surfaces the write failure instead of hiding it.
func TestAddRecordFailsWhenSchemaLivesAtAnotherPath(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaStore := sessionout.NewSQLiteRecordStore(filepath.Join(dir, "database", "session-history.sqlite"))
	if err := schemaStore.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	insertStore := sessionout.NewSQLiteRecordStore(filepath.Join(dir, "src", "database", "session-history.sqlite"))
	start := time.Now().UTC()
	if _, err := insertStore.AddRecord(context.Background(), domain.Record{Title: "T", Start: &start, End: &start}); err == nil {
		t.Fatalf("insert into a database without the sessions table must fail")
	}
}
