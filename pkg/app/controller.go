// Package app holds the application state machine: which screen is active,
// the working analysis, the session history, and the fetched meeting logs.
// All mutation goes through named methods so every transition is explicit.
package app

import (
	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/demo"
	shadowerrors "thoreinstein.com/shadow/pkg/errors"
	"thoreinstein.com/shadow/pkg/meetings"
	"thoreinstein.com/shadow/pkg/session"
)

// View identifies one of the five screens.
type View string

// View values.
const (
	ViewOnboarding  View = "onboarding"
	ViewDashboard   View = "dashboard"
	ViewKnowledge   View = "knowledge"
	ViewMeetings    View = "meetings"
	ViewActionBoard View = "actionboard"
)

// Controller owns the mutable application state. The stored session list is
// the source of truth for past analyses; the in-memory analysis is always a
// copy keyed back to its session by id.
type Controller struct {
	store *session.Store

	view      View
	team      board.TeamConfig
	backlog   []board.BacklogItem
	commits   []board.CommitItem
	notes     string
	analyzing bool
	lastError string

	analysis  *board.Analysis
	sessionID string
	sessions  []session.Session

	meetings        []meetings.Meeting
	meetingsErr     string
	loadingMeetings bool
	fetchGen        int
}

// NewController builds a controller backed by the given store. The session
// history is loaded eagerly; a configured team skips onboarding.
func NewController(store *session.Store, team board.TeamConfig) (*Controller, error) {
	c := &Controller{
		store: store,
		view:  ViewOnboarding,
		team:  team,
	}

	sessions, err := store.Load()
	if err != nil {
		return nil, err
	}
	c.sessions = sessions

	if !team.IsZero() {
		c.view = ViewDashboard
	}
	return c, nil
}

// View returns the active screen.
func (c *Controller) View() View { return c.view }

// Team returns the configured team.
func (c *Controller) Team() board.TeamConfig { return c.team }

// Backlog returns the reference backlog.
func (c *Controller) Backlog() []board.BacklogItem { return c.backlog }

// Commits returns the reference commits.
func (c *Controller) Commits() []board.CommitItem { return c.commits }

// Notes returns the notes of the in-flight or last analysis.
func (c *Controller) Notes() string { return c.notes }

// Analyzing reports whether an analysis call is in flight.
func (c *Controller) Analyzing() bool { return c.analyzing }

// LastError returns the most recent user-facing error message.
func (c *Controller) LastError() string { return c.lastError }

// Analysis returns the working analysis, or nil before the first run.
func (c *Controller) Analysis() *board.Analysis { return c.analysis }

// CurrentSessionID returns the id of the session the working analysis
// belongs to.
func (c *Controller) CurrentSessionID() string { return c.sessionID }

// Sessions returns the session history, newest first.
func (c *Controller) Sessions() []session.Session { return c.sessions }

// Meetings returns the last successfully fetched meeting logs.
func (c *Controller) Meetings() []meetings.Meeting { return c.meetings }

// MeetingsError returns the message of the last failed fetch, if any.
func (c *Controller) MeetingsError() string { return c.meetingsErr }

// LoadingMeetings reports whether a meetings fetch is in flight.
func (c *Controller) LoadingMeetings() bool { return c.loadingMeetings }

// Navigate switches the active screen.
func (c *Controller) Navigate(v View) {
	c.view = v
}

// ApplyTeam finishes onboarding with the given team profile.
func (c *Controller) ApplyTeam(team board.TeamConfig) error {
	if team.Name == "" {
		return shadowerrors.NewValidationError("team.name", "team name must not be empty")
	}
	c.team = team
	c.view = ViewDashboard
	return nil
}

// LoadDemo installs a demo dataset as the working context.
func (c *Controller) LoadDemo(d demo.Dataset) {
	c.team = d.Team
	c.backlog = d.Backlog
	c.commits = d.Commits
	c.notes = d.SampleNotes
}

// SetContext replaces the reference backlog and commits.
func (c *Controller) SetContext(backlog []board.BacklogItem, commits []board.CommitItem) {
	c.backlog = backlog
	c.commits = commits
}

// BeginAnalysis marks an analysis run as in flight. The working analysis is
// left untouched until the run succeeds.
func (c *Controller) BeginAnalysis(notes string) error {
	if notes == "" {
		return shadowerrors.NewValidationError("notes", "meeting notes must not be empty")
	}
	if c.analyzing {
		return shadowerrors.NewValidationError("analysis", "an analysis is already running")
	}
	c.notes = notes
	c.analyzing = true
	c.lastError = ""
	return nil
}

// ApplyAnalysis installs a finished analysis, records it as a new session,
// and lands on the action board.
func (c *Controller) ApplyAnalysis(analysis *board.Analysis) error {
	sess := session.New(c.notes, analysis.Clone())
	if err := c.store.Append(sess); err != nil {
		c.analyzing = false
		return err
	}

	c.sessions = append([]session.Session{sess}, c.sessions...)
	c.analysis = analysis
	c.sessionID = sess.ID
	c.analyzing = false
	c.view = ViewActionBoard
	return nil
}

// AbortAnalysis clears the in-flight flag and records the failure message.
// The previous analysis, if any, stays installed.
func (c *Controller) AbortAnalysis(err error) {
	c.analyzing = false
	if err != nil {
		c.lastError = err.Error()
	}
}

// OpenSession loads a past session's analysis onto the action board. The
// analysis is cloned so board edits go through UpdateItem.
func (c *Controller) OpenSession(id string) error {
	for _, sess := range c.sessions {
		if sess.ID == id {
			a := sess.Analysis.Clone()
			c.analysis = &a
			c.sessionID = sess.ID
			c.notes = sess.Notes
			c.view = ViewActionBoard
			return nil
		}
	}
	return shadowerrors.NewStoreError("Open", "no session with id "+id)
}

// UpdateItem replaces a card in the working analysis and writes the edit
// back to the owning session.
func (c *Controller) UpdateItem(item board.Item) error {
	if c.analysis == nil {
		return shadowerrors.NewValidationError("analysis", "no analysis to update")
	}
	if !c.analysis.ReplaceItem(item) {
		return nil
	}
	return c.persistAnalysis()
}

// ApproveItem approves the card with the given id in the working analysis
// and writes the change back to the owning session.
func (c *Controller) ApproveItem(id string) error {
	if c.analysis == nil {
		return shadowerrors.NewValidationError("analysis", "no analysis to update")
	}
	if !c.analysis.ApproveItem(id) {
		return nil
	}
	return c.persistAnalysis()
}

// MarkSynced records a ticket as pushed to the external tracker.
func (c *Controller) MarkSynced(id string) error {
	if c.analysis == nil {
		return shadowerrors.NewValidationError("analysis", "no analysis to update")
	}
	if !c.analysis.MarkSynced(id) {
		return nil
	}
	return c.persistAnalysis()
}

// SyncApproved pushes every approved ticket in the working analysis to the
// synced state, mirroring the tracker push.
func (c *Controller) SyncApproved() error {
	if c.analysis == nil {
		return shadowerrors.NewValidationError("analysis", "no analysis to update")
	}
	if !c.analysis.SyncApproved() {
		return nil
	}
	return c.persistAnalysis()
}

func (c *Controller) persistAnalysis() error {
	if c.sessionID == "" {
		return nil
	}
	for i := range c.sessions {
		if c.sessions[i].ID == c.sessionID {
			c.sessions[i].Analysis = c.analysis.Clone()
			break
		}
	}
	_, err := c.store.ReplaceAnalysis(c.sessionID, *c.analysis)
	return err
}

// PendingTicketCount counts suggested tickets across the whole history.
func (c *Controller) PendingTicketCount() int {
	count := 0
	for _, sess := range c.sessions {
		for _, t := range sess.Analysis.SuggestedTickets {
			if t.Status == board.StatusSuggested {
				count++
			}
		}
	}
	return count
}

// BeginMeetingsFetch starts a fetch and returns its generation. Results from
// older generations are ignored, so a slow response can never clobber the
// state of a newer fetch.
func (c *Controller) BeginMeetingsFetch() int {
	c.fetchGen++
	c.loadingMeetings = true
	c.meetingsErr = ""
	return c.fetchGen
}

// SetMeetings installs a fetch result if it is still current.
func (c *Controller) SetMeetings(gen int, list []meetings.Meeting) {
	if gen != c.fetchGen {
		return
	}
	c.meetings = list
	c.meetingsErr = ""
	c.loadingMeetings = false
}

// MeetingsFetchFailed records a fetch failure if it is still current. The
// previous meeting list is kept.
func (c *Controller) MeetingsFetchFailed(gen int, err error) {
	if gen != c.fetchGen {
		return
	}
	c.meetingsErr = err.Error()
	c.loadingMeetings = false
}

// SignOut resets the whole application: team, context, notes, analysis, and
// the persisted session history, then returns to onboarding.
func (c *Controller) SignOut() error {
	if err := c.store.Reset(); err != nil {
		return err
	}
	c.team = board.TeamConfig{}
	c.backlog = nil
	c.commits = nil
	c.notes = ""
	c.analysis = nil
	c.sessionID = ""
	c.sessions = nil
	c.lastError = ""
	c.view = ViewOnboarding
	return nil
}
