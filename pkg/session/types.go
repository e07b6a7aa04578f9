// Package session persists past analysis runs so the knowledge base survives
// restarts. Sessions are stored newest-first under a single storage key.
package session

import (
	"time"

	"github.com/google/uuid"

	"thoreinstein.com/shadow/pkg/board"
)

// StorageKey is the key the serialized session list lives under.
const StorageKey = "shadow_sessions"

// DateLayout is the human-readable date format stored with each session.
const DateLayout = "Jan 2, 2006, 3:04 PM"

// Session is one completed analysis run.
type Session struct {
	ID       string         `json:"id"`
	Date     string         `json:"date"`
	Notes    string         `json:"notes"`
	Analysis board.Analysis `json:"analysis"`
}

// New builds a session for an analysis completed now.
func New(notes string, analysis board.Analysis) Session {
	return Session{
		ID:       uuid.NewString(),
		Date:     time.Now().Format(DateLayout),
		Notes:    notes,
		Analysis: analysis,
	}
}
