package models

import "time"

// Outcome is the terminal state of a note lookup.
type Outcome string

const (
	// OutcomeExisting means the note was already there.
	OutcomeExisting Outcome = "existing"
	// OutcomeCreated means the note was created by this invocation.
	OutcomeCreated Outcome = "created"
	// OutcomeAbsent means there was no note and auto-create was off.
	OutcomeAbsent Outcome = "absent"
	// OutcomeBlocked means a folder occupies the note path.
	OutcomeBlocked Outcome = "blocked"
	// OutcomeFailed covers every other error.
	OutcomeFailed Outcome = "failed"
)

// NoteFile represents the daily note handed to a pane.
type NoteFile struct {
	Path    string `json:"path"` // vault-relative
	AbsPath string `json:"abs_path"`
	Created bool   `json:"created"`
}

// HistoryEntry records one invocation of the open command.
type HistoryEntry struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD of the note's day
	Path      string    `json:"path"`
	Outcome   Outcome   `json:"outcome"`
	Error     string    `json:"error,omitempty"`
	Presented bool      `json:"presented"`
	CreatedAt time.Time `json:"created_at"`
}
