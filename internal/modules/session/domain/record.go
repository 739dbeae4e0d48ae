package domain

import "time"

const SchemaVersion = 1

// Record is the persisted shape of a session. Start and End are nil when the
// session was not complete at extraction time.
type Record struct {
	ID          int64
	Title       string
	Description string
	Start       *time.Time
	End         *time.Time
}

func (r Record) Complete() bool {
	return r.Start != nil && r.End != nil
}

func ExtractRecord(s *Session) Record {
	record := Record{Title: s.Title, Description: s.Description}
	span, err := s.TimeRange()
	if err != nil {
		return record
	}
	record.Start = &span.Start
	record.End = &span.End
	return record
}

// ActiveSession is the in-progress state kept between CLI invocations.
type ActiveSession struct {
	SessionID   string    `json:"session_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartedAt   time.Time `json:"started_at"`
}
