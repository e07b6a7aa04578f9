package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/demo"
	shadowerrors "thoreinstein.com/shadow/pkg/errors"
	"thoreinstein.com/shadow/pkg/meetings"
	"thoreinstein.com/shadow/pkg/session"
)

func newTestController(t *testing.T, team board.TeamConfig) (*Controller, *session.Store) {
	t.Helper()
	store, err := session.NewStore(filepath.Join(t.TempDir(), "sessions.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	c, err := NewController(store, team)
	require.NoError(t, err)
	return c, store
}

func testAnalysis() *board.Analysis {
	return &board.Analysis{
		Outcomes: []board.Outcome{
			{ID: "o1", Type: board.OutcomeDecision, Content: "Cache locally", Context: "sync"},
		},
		SuggestedTickets: []board.Ticket{
			{ID: "t1", Title: "Cache brand scores", Priority: board.PriorityHigh,
				Type: board.TypeFeature, Status: board.StatusSuggested},
			{ID: "t2", Title: "Green Friday banner", Priority: board.PriorityLow,
				Type: board.TypeTask, Status: board.StatusSuggested},
		},
	}
}

func TestStartsOnOnboardingWithoutTeam(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{})
	assert.Equal(t, ViewOnboarding, c.View())
}

func TestStartsOnDashboardWithTeam(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	assert.Equal(t, ViewDashboard, c.View())
}

func TestApplyTeamRequiresName(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{})

	err := c.ApplyTeam(board.TeamConfig{})
	assert.True(t, shadowerrors.IsValidationError(err))
	assert.Equal(t, ViewOnboarding, c.View())

	require.NoError(t, c.ApplyTeam(board.TeamConfig{Name: "Reewild"}))
	assert.Equal(t, ViewDashboard, c.View())
}

func TestLoadDemoInstallsDataset(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{})
	c.LoadDemo(demo.ByID("reewild"))

	assert.Equal(t, "Reewild", c.Team().Name)
	assert.NotEmpty(t, c.Backlog())
	assert.NotEmpty(t, c.Commits())
	assert.NotEmpty(t, c.Notes())
}

func TestAnalysisLifecycle(t *testing.T) {
	c, store := newTestController(t, board.TeamConfig{Name: "Reewild"})

	require.NoError(t, c.BeginAnalysis("we met"))
	assert.True(t, c.Analyzing())

	// Double-start is rejected while a run is in flight.
	assert.True(t, shadowerrors.IsValidationError(c.BeginAnalysis("again")))

	require.NoError(t, c.ApplyAnalysis(testAnalysis()))
	assert.False(t, c.Analyzing())
	assert.Equal(t, ViewActionBoard, c.View())
	require.NotNil(t, c.Analysis())
	assert.NotEmpty(t, c.CurrentSessionID())

	// The run was recorded as a session, in memory and on disk.
	require.Len(t, c.Sessions(), 1)
	assert.Equal(t, "we met", c.Sessions()[0].Notes)
	stored, err := store.Load()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, c.CurrentSessionID(), stored[0].ID)
}

func TestBeginAnalysisRejectsEmptyNotes(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	assert.True(t, shadowerrors.IsValidationError(c.BeginAnalysis("")))
}

func TestAbortAnalysisKeepsPriorState(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("we met"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	require.NoError(t, c.BeginAnalysis("second meeting"))
	c.AbortAnalysis(shadowerrors.NewAIErrorWithStatus("gemini", "Analyze", 503, "overloaded"))

	assert.False(t, c.Analyzing())
	assert.NotEmpty(t, c.LastError())
	require.NotNil(t, c.Analysis(), "previous analysis survives a failed run")
	assert.Len(t, c.Sessions(), 1, "failed runs record no session")
}

func TestUpdateItemWritesBackToSession(t *testing.T) {
	c, store := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("we met"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	edited := board.TicketItem(board.Ticket{
		ID: "t1", Title: "Cache brand scores locally", Priority: board.PriorityHigh,
		Type: board.TypeFeature, Status: board.StatusSuggested,
	})
	require.NoError(t, c.UpdateItem(edited))

	assert.Equal(t, "Cache brand scores locally", c.Analysis().SuggestedTickets[0].Title)

	got, err := store.Get(c.CurrentSessionID())
	require.NoError(t, err)
	assert.Equal(t, "Cache brand scores locally", got.Analysis.SuggestedTickets[0].Title)
	assert.Equal(t, "Cache brand scores locally", c.Sessions()[0].Analysis.SuggestedTickets[0].Title)
}

func TestApproveAndSyncPersist(t *testing.T) {
	c, store := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("we met"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	require.NoError(t, c.ApproveItem("t1"))
	require.NoError(t, c.MarkSynced("t1"))

	got, err := store.Get(c.CurrentSessionID())
	require.NoError(t, err)
	assert.Equal(t, board.StatusSynced, got.Analysis.SuggestedTickets[0].Status)
	assert.Equal(t, board.StatusSuggested, got.Analysis.SuggestedTickets[1].Status)
}

func TestOpenSessionRestoresAnalysis(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("first"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))
	firstID := c.CurrentSessionID()

	require.NoError(t, c.BeginAnalysis("second"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))
	require.NotEqual(t, firstID, c.CurrentSessionID())

	c.Navigate(ViewKnowledge)
	require.NoError(t, c.OpenSession(firstID))
	assert.Equal(t, ViewActionBoard, c.View())
	assert.Equal(t, firstID, c.CurrentSessionID())
	assert.Equal(t, "first", c.Notes())

	assert.Error(t, c.OpenSession("missing"))
}

func TestPendingTicketCountSpansHistory(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("first"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))
	require.NoError(t, c.ApproveItem("t1"))

	require.NoError(t, c.BeginAnalysis("second"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	// 2 suggested in the new session, 1 left in the first.
	assert.Equal(t, 3, c.PendingTicketCount())
}

func TestMeetingsFetchGenerationGuard(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})

	gen1 := c.BeginMeetingsFetch()
	gen2 := c.BeginMeetingsFetch()
	require.NotEqual(t, gen1, gen2)

	// A stale result is dropped.
	c.SetMeetings(gen1, []meetings.Meeting{{ID: "stale"}})
	assert.Empty(t, c.Meetings())
	assert.True(t, c.LoadingMeetings())

	c.SetMeetings(gen2, []meetings.Meeting{{ID: "fresh", Title: "Weekly Sync"}})
	require.Len(t, c.Meetings(), 1)
	assert.Equal(t, "fresh", c.Meetings()[0].ID)
	assert.False(t, c.LoadingMeetings())
}

func TestMeetingsFetchFailureKeepsPreviousList(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})

	gen := c.BeginMeetingsFetch()
	c.SetMeetings(gen, []meetings.Meeting{{ID: "m1"}})

	gen = c.BeginMeetingsFetch()
	c.MeetingsFetchFailed(gen, shadowerrors.NewMeetingsErrorWithStatus("Fetch", 502, "bad gateway"))

	assert.Len(t, c.Meetings(), 1, "previous list kept on failure")
	assert.NotEmpty(t, c.MeetingsError())
	assert.False(t, c.LoadingMeetings())

	// A stale failure does not overwrite a newer fetch's state.
	fresh := c.BeginMeetingsFetch()
	c.MeetingsFetchFailed(fresh-1, shadowerrors.NewMeetingsError("Fetch", "old"))
	assert.True(t, c.LoadingMeetings())
}

func TestSignOutResetsEverything(t *testing.T) {
	c, store := newTestController(t, board.TeamConfig{})
	c.LoadDemo(demo.ByID("reewild"))
	require.NoError(t, c.BeginAnalysis(c.Notes()))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	require.NoError(t, c.SignOut())

	assert.Equal(t, ViewOnboarding, c.View())
	assert.True(t, c.Team().IsZero())
	assert.Empty(t, c.Backlog())
	assert.Empty(t, c.Commits())
	assert.Empty(t, c.Notes())
	assert.Nil(t, c.Analysis())
	assert.Empty(t, c.Sessions())

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored, "persisted history cleared")
}

func TestEditorBufferIsDetached(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("we met"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	ed := NewEditor(board.TicketItem(c.Analysis().SuggestedTickets[0]))
	ed.SetTitle("Edited in buffer")
	ed.SetCriteria([]string{"new AC"})

	// Abandoned edits never touch the analysis.
	assert.Equal(t, "Cache brand scores", c.Analysis().SuggestedTickets[0].Title)

	require.NoError(t, c.UpdateItem(ed.Item()))
	assert.Equal(t, "Edited in buffer", c.Analysis().SuggestedTickets[0].Title)
	assert.Equal(t, []string{"new AC"}, c.Analysis().SuggestedTickets[0].AcceptanceCriteria)
}

func TestEditorApplyRefinementChecksIdentity(t *testing.T) {
	ed := NewEditor(board.TicketItem(board.Ticket{ID: "t1", Title: "Old"}))

	// Wrong kind is ignored.
	ed.ApplyRefinement(board.OutcomeItem(board.Outcome{ID: "t1", Content: "x"}))
	assert.Equal(t, "Old", ed.Item().Ticket.Title)

	// Wrong id is ignored.
	ed.ApplyRefinement(board.TicketItem(board.Ticket{ID: "t2", Title: "Other"}))
	assert.Equal(t, "Old", ed.Item().Ticket.Title)

	ed.ApplyRefinement(board.TicketItem(board.Ticket{ID: "t1", Title: "Refined"}))
	assert.Equal(t, "Refined", ed.Item().Ticket.Title)
}

func TestEditorOutcomeSetters(t *testing.T) {
	ed := NewEditor(board.OutcomeItem(board.Outcome{ID: "o1", Type: board.OutcomeRisk}))
	ed.SetContent("Audio buffer leak")
	ed.SetContext("Sam flagged it")
	ed.SetTitle("ignored for outcomes")

	item := ed.Item()
	assert.Equal(t, "Audio buffer leak", item.Outcome.Content)
	assert.Equal(t, "Sam flagged it", item.Outcome.Context)
}

func TestSyncApprovedPersists(t *testing.T) {
	c, store := newTestController(t, board.TeamConfig{Name: "Reewild"})
	require.NoError(t, c.BeginAnalysis("notes"))
	require.NoError(t, c.ApplyAnalysis(testAnalysis()))

	require.NoError(t, c.ApproveItem("t1"))
	require.NoError(t, c.SyncApproved())

	assert.Equal(t, board.StatusSynced, c.Analysis().SuggestedTickets[0].Status)
	assert.Equal(t, board.StatusSuggested, c.Analysis().SuggestedTickets[1].Status)

	stored, err := store.Get(c.CurrentSessionID())
	require.NoError(t, err)
	assert.Equal(t, board.StatusSynced, stored.Analysis.SuggestedTickets[0].Status)
	assert.Equal(t, board.StatusSuggested, stored.Analysis.SuggestedTickets[1].Status)
}

func TestSyncApprovedWithoutAnalysis(t *testing.T) {
	c, _ := newTestController(t, board.TeamConfig{Name: "Reewild"})
	assert.True(t, shadowerrors.IsValidationError(c.SyncApproved()))
}
