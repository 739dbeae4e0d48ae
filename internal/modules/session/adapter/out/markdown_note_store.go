package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"timelog/internal/modules/session/domain"
	sessionout "timelog/internal/modules/session/port/out"
	"timelog/internal/platform/markdown"
	"timelog/internal/platform/slug"
)

type noteMeta struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            int64  `yaml:"id"`
	Title         string `yaml:"title"`
	Description   string `yaml:"description"`
	StartedAt     string `yaml:"started_at"`
	EndedAt       string `yaml:"ended_at"`
	Duration      string `yaml:"duration"`
}

// MarkdownNoteStore writes one dated journal note per recorded session.
type MarkdownNoteStore struct {
	dir string
}

func NewMarkdownNoteStore(dir string) sessionout.NoteStore {
	return &MarkdownNoteStore{dir: dir}
}

func (s *MarkdownNoteStore) Save(_ context.Context, record domain.Record) (string, error) {
	if !record.Complete() {
		return "", fmt.Errorf("write session note: record %d has no time range", record.ID)
	}
	start := record.Start.Local()
	dir := filepath.Join(s.dir, start.Format("2006"), start.Format("01"), start.Format("02"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create note dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%d-%s.md", start.Format("150405"), record.ID, slug.Make(record.Title)))

	duration := domain.FormatDuration(record.End.Sub(*record.Start))
	meta := noteMeta{
		SchemaVersion: domain.SchemaVersion,
		ID:            record.ID,
		Title:         record.Title,
		Description:   record.Description,
		StartedAt:     record.Start.Format(time.RFC3339),
		EndedAt:       record.End.Format(time.RFC3339),
		Duration:      duration,
	}
	body := fmt.Sprintf("# %s\n\n%s\n\n- %s to %s (%s)\n", record.Title, record.Description,
		start.Format("15:04"), record.End.Local().Format("15:04"), duration)
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write session note: %w", err)
	}
	return path, nil
}
