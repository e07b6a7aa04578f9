package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thoreinstein.com/shadow/pkg/app"
	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/demo"
	"thoreinstein.com/shadow/pkg/session"
)

func newTestController(t *testing.T, team board.TeamConfig) *app.Controller {
	t.Helper()

	store, err := session.NewStore(filepath.Join(t.TempDir(), "sessions.db"), 10)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ctrl, err := app.NewController(store, team)
	require.NoError(t, err)
	return ctrl
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func updateApp(t *testing.T, a App, msg tea.Msg) App {
	t.Helper()
	model, _ := a.Update(msg)
	next, ok := model.(App)
	require.True(t, ok)
	return next
}

func installAnalysis(t *testing.T, ctrl *app.Controller) {
	t.Helper()
	require.NoError(t, ctrl.BeginAnalysis("notes"))
	require.NoError(t, ctrl.ApplyAnalysis(&board.Analysis{
		Outcomes: []board.Outcome{
			{ID: "o1", Type: board.OutcomeDecision, Content: "Ship the beta", Status: board.StatusSuggested},
		},
		SuggestedTickets: []board.Ticket{
			{ID: "t1", Title: "Fix login", Priority: board.PriorityHigh, Type: board.TypeBug, Status: board.StatusSuggested},
			{ID: "t2", Title: "Add export", Priority: board.PriorityLow, Type: board.TypeFeature, Status: board.StatusSuggested},
		},
	}))
}

func TestAppStartsOnOnboardingWithoutTeam(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	assert.Equal(t, app.ViewOnboarding, ctrl.View())
	assert.Contains(t, a.View(), "ShadowPM")
}

func TestAppTabNavigation(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	assert.Equal(t, app.ViewDashboard, ctrl.View())

	a = updateApp(t, a, keyMsg("3"))
	assert.Equal(t, app.ViewMeetings, ctrl.View())

	a = updateApp(t, a, keyMsg("2"))
	assert.Equal(t, app.ViewKnowledge, ctrl.View())

	a = updateApp(t, a, keyMsg("4"))
	assert.Equal(t, app.ViewActionBoard, ctrl.View())

	updateApp(t, a, keyMsg("1"))
	assert.Equal(t, app.ViewDashboard, ctrl.View())
}

func TestAppQuitKey(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestAppSignOutReturnsToOnboarding(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Equal(t, app.ViewOnboarding, ctrl.View())
	assert.True(t, ctrl.Team().IsZero())
}

func TestAppOnboardingDemoLoad(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{})
	dataset := demo.ByID(demo.DefaultID)
	a := NewApp(ctrl, nil, nil, dataset)

	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, dataset.Team.Name, ctrl.Team().Name)
	assert.NotEmpty(t, ctrl.Backlog())

	updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, app.ViewDashboard, ctrl.View())
	assert.True(t, ctrl.Team().SlackConnected == dataset.Team.SlackConnected)
}

func TestAppOnboardingRejectsEmptyTeam(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, app.ViewOnboarding, ctrl.View())
}

func TestAppMeetingsResult(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	gen := ctrl.BeginMeetingsFetch()
	updateApp(t, a, meetingsFetchedMsg{Gen: gen, Err: assert.AnError})
	assert.NotEmpty(t, ctrl.MeetingsError())
	assert.False(t, ctrl.LoadingMeetings())
}

func TestAppAnalysisFailureRecorded(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	require.NoError(t, ctrl.BeginAnalysis("notes"))
	updateApp(t, a, analysisDoneMsg{Err: assert.AnError})
	assert.False(t, ctrl.Analyzing())
	assert.NotEmpty(t, ctrl.LastError())
}

func TestAppAnalysisSuccessLandsOnBoard(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))

	require.NoError(t, ctrl.BeginAnalysis("notes"))
	updateApp(t, a, analysisDoneMsg{Analysis: &board.Analysis{
		SuggestedTickets: []board.Ticket{{ID: "t1", Title: "Fix login", Status: board.StatusSuggested}},
	}})

	assert.Equal(t, app.ViewActionBoard, ctrl.View())
	require.NotNil(t, ctrl.Analysis())
	assert.Len(t, ctrl.Sessions(), 1)
}

func TestAppBoardApproveAndSync(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	// Cursor starts on the outcome; move to the first ticket.
	a = updateApp(t, a, keyMsg("j"))
	a = updateApp(t, a, keyMsg("a"))
	assert.Equal(t, board.StatusApproved, ctrl.Analysis().SuggestedTickets[0].Status)

	updateApp(t, a, keyMsg("s"))
	assert.Equal(t, board.StatusSynced, ctrl.Analysis().SuggestedTickets[0].Status)
}

func TestAppBoardSyncSkipsOutcomes(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	// Cursor on the outcome: s must not touch it.
	updateApp(t, a, keyMsg("s"))
	assert.Equal(t, board.StatusSuggested, ctrl.Analysis().Outcomes[0].Status)
}

func TestAppBoardEditFlow(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	a = updateApp(t, a, keyMsg("j"))
	a = updateApp(t, a, keyMsg("e"))
	assert.Equal(t, boardEdit, a.boardV.Mode())

	// Edit mode captures navigation keys as input.
	a = updateApp(t, a, keyMsg("!"))
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, boardBrowse, a.boardV.Mode())
	assert.Equal(t, "Fix login!", ctrl.Analysis().SuggestedTickets[0].Title)
}

func TestAppBoardEditEscDiscards(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	a = updateApp(t, a, keyMsg("j"))
	a = updateApp(t, a, keyMsg("e"))
	a = updateApp(t, a, keyMsg("x"))
	a = updateApp(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, boardBrowse, a.boardV.Mode())
	assert.Equal(t, "Fix login", ctrl.Analysis().SuggestedTickets[0].Title)
}

func TestAppRefineResultOpensEditBuffer(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	refined := board.TicketItem(board.Ticket{
		ID: "t1", Title: "Fix login redirect loop", Status: board.StatusSuggested,
	})
	a = updateApp(t, a, refineDoneMsg{Item: refined})

	// The refined card is staged for review, not saved yet.
	assert.Equal(t, boardEdit, a.boardV.Mode())
	assert.Equal(t, "Fix login", ctrl.Analysis().SuggestedTickets[0].Title)

	updateApp(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "Fix login redirect loop", ctrl.Analysis().SuggestedTickets[0].Title)
}

func TestAppRefineResultDiscardedOnEsc(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	a := NewApp(ctrl, nil, nil, demo.ByID(demo.DefaultID))
	installAnalysis(t, ctrl)

	refined := board.TicketItem(board.Ticket{
		ID: "t1", Title: "Fix login redirect loop", Status: board.StatusSuggested,
	})
	a = updateApp(t, a, refineDoneMsg{Item: refined})
	updateApp(t, a, tea.KeyMsg{Type: tea.KeyEsc})

	assert.Equal(t, "Fix login", ctrl.Analysis().SuggestedTickets[0].Title)
}

func TestOnboardingTeamParsing(t *testing.T) {
	m := newOnboarding()
	m.inputs[onboardFieldName].SetValue("  Acme  ")
	m.inputs[onboardFieldProduct].SetValue("Widgets")
	m.inputs[onboardFieldMembers].SetValue("Alice (Mobile), , Bob (Backend)")

	team := m.Team()
	assert.Equal(t, "Acme", team.Name)
	assert.Equal(t, "Widgets", team.ProductDescription)
	assert.Equal(t, []string{"Alice (Mobile)", "Bob (Backend)"}, team.Members)
}

func TestKnowledgeCursorClamp(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	installAnalysis(t, ctrl)

	m := newKnowledge(ctrl)
	m.MoveDown()
	assert.Equal(t, 0, m.cursor) // single session

	id, ok := m.SelectedID()
	require.True(t, ok)
	assert.Equal(t, ctrl.Sessions()[0].ID, id)

	require.NoError(t, ctrl.SignOut())
	m.ClampCursor()
	_, ok = m.SelectedID()
	assert.False(t, ok)
}

func TestActionBoardItemOrder(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	installAnalysis(t, ctrl)

	m := newActionBoard(ctrl)
	items := m.Items()
	require.Len(t, items, 3)
	assert.Equal(t, board.KindOutcome, items[0].Kind)
	assert.Equal(t, board.KindTicket, items[1].Kind)
}

func TestActionBoardRefinePromptRequiresInstruction(t *testing.T) {
	ctrl := newTestController(t, board.TeamConfig{Name: "Acme"})
	installAnalysis(t, ctrl)

	m := newActionBoard(ctrl)
	_ = m.BeginRefine()
	_, _, ok := m.CommitRefine()
	assert.False(t, ok)
	assert.Equal(t, boardBrowse, m.Mode())
}
