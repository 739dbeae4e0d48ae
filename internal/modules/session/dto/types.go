package dto

import "time"

type BeginInput struct {
	Title       string
	Description string
}

type BeginOutput struct {
	SessionID string
	Title     string
	StartedAt time.Time
}

type EndInput struct {
	SessionID string
}

type EndOutput struct {
	SessionID   string
	RecordID    int64
	Title       string
	Description string
	StartedAt   time.Time
	EndedAt     time.Time
	Duration    string
	NotePath    string
	// NoteError is set when the row was stored but the journal note was not.
	NoteError string
}

type StatusOutput struct {
	SessionID   string
	Title       string
	Description string
	StartedAt   time.Time
	Duration    string
	Summary     string
}

type CancelInput struct {
	// Record stores the unfinished session before discarding it.
	Record bool
}

type CancelOutput struct {
	SessionID string
	Title     string
	Recorded  bool
	RecordID  int64
}
