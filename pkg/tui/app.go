// Package tui implements the terminal interface: five screens driven by the
// application controller, with AI and network calls running as async
// commands so the interface never blocks.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"thoreinstein.com/shadow/pkg/app"
	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/demo"
	"thoreinstein.com/shadow/pkg/meetings"
	"thoreinstein.com/shadow/pkg/synthesis"
)

// App is the root bubbletea model. The controller owns all domain state; App
// owns widget state and translates key presses into controller mutations and
// async commands.
type App struct {
	ctrl  *app.Controller
	synth *synthesis.Client
	meet  *meetings.Client
	demo  demo.Dataset

	onboarding onboardingModel
	dashboard  dashboardModel
	knowledge  knowledgeModel
	meetingsV  meetingsModel
	boardV     actionBoardModel

	spin   spinner.Model
	width  int
	height int
}

// NewApp builds the root model.
func NewApp(ctrl *app.Controller, synth *synthesis.Client, meet *meetings.Client, demoData demo.Dataset) App {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = SpinnerStyle

	return App{
		ctrl:       ctrl,
		synth:      synth,
		meet:       meet,
		demo:       demoData,
		onboarding: newOnboarding(),
		dashboard:  newDashboard(ctrl),
		knowledge:  newKnowledge(ctrl),
		meetingsV:  newMeetings(ctrl),
		boardV:     newActionBoard(ctrl),
		spin:       sp,
	}
}

// Init fetches the external meeting logs immediately so the meetings screen
// is warm by the time the user reaches it.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.fetchMeetingsCmd(a.ctrl.BeginMeetingsFetch()))
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		a.meetingsV.SetSpinner(a.spin.View())
		a.boardV.SetSpinner(a.spin.View())
		return a, cmd

	case analysisDoneMsg:
		if msg.Err != nil {
			a.ctrl.AbortAnalysis(msg.Err)
			return a, nil
		}
		if err := a.ctrl.ApplyAnalysis(msg.Analysis); err != nil {
			a.ctrl.AbortAnalysis(err)
			return a, nil
		}
		a.meetingsV.SetNotes("")
		a.meetingsV.BlurNotes()
		return a, nil

	case meetingsFetchedMsg:
		if msg.Err != nil {
			a.ctrl.MeetingsFetchFailed(msg.Gen, msg.Err)
		} else {
			a.ctrl.SetMeetings(msg.Gen, msg.Meetings)
		}
		return a, nil

	case refineDoneMsg:
		a.boardV.RefineFinished()
		if msg.Err != nil {
			a.boardV.SetStatus("Refine failed: " + msg.Err.Error())
			return a, nil
		}
		a.boardV.SetStatus("")
		// The refined card lands in the edit buffer; saving is still explicit.
		cmd := a.boardV.ShowRefined(msg.Item)
		return a, cmd

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	switch a.ctrl.View() {
	case app.ViewOnboarding:
		return a.handleOnboardingKey(msg)
	case app.ViewDashboard:
		return a.handleDashboardKey(msg)
	case app.ViewKnowledge:
		return a.handleKnowledgeKey(msg)
	case app.ViewMeetings:
		return a.handleMeetingsKey(msg)
	case app.ViewActionBoard:
		return a.handleBoardKey(msg)
	}
	return a, nil
}

// handleGlobalKey covers navigation shared by the four post-onboarding
// screens. Returns false when the key was not consumed.
func (a *App) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "1":
		a.ctrl.Navigate(app.ViewDashboard)
		return nil, true
	case "2":
		a.ctrl.Navigate(app.ViewKnowledge)
		a.knowledge.ClampCursor()
		return nil, true
	case "3":
		a.ctrl.Navigate(app.ViewMeetings)
		return nil, true
	case "4":
		a.ctrl.Navigate(app.ViewActionBoard)
		return nil, true
	case "q":
		return tea.Quit, true
	case "ctrl+x":
		// Sign out: full reset back to onboarding.
		if err := a.ctrl.SignOut(); err == nil {
			a.onboarding = newOnboarding()
		}
		return nil, true
	}
	return nil, false
}

func (a App) handleOnboardingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyTab:
		a.onboarding.NextField()
		return a, nil
	case tea.KeyCtrlD:
		a.ctrl.LoadDemo(a.demo)
		a.onboarding.Prefill(a.demo.Team)
		return a, nil
	case tea.KeyEnter:
		team := a.onboarding.Team()
		// Demo connections survive when the prefilled identity is kept.
		if team.Name == a.ctrl.Team().Name {
			existing := a.ctrl.Team()
			team.GithubConnected = existing.GithubConnected
			team.JiraConnected = existing.JiraConnected
			team.SlackConnected = existing.SlackConnected
		}
		if err := a.ctrl.ApplyTeam(team); err != nil {
			a.onboarding.SetError(err.Error())
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.onboarding, cmd = a.onboarding.Update(msg)
	return a, cmd
}

func (a App) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleGlobalKey(msg); ok {
		return a, cmd
	}
	return a, nil
}

func (a App) handleKnowledgeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := a.handleGlobalKey(msg); ok {
		return a, cmd
	}

	switch msg.String() {
	case "j", "down":
		a.knowledge.MoveDown()
	case "k", "up":
		a.knowledge.MoveUp()
	case "enter":
		if id, ok := a.knowledge.SelectedID(); ok {
			a.ctrl.OpenSession(id)
		}
	}
	return a, nil
}

func (a App) handleMeetingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.meetingsV.NotesFocused() {
		switch msg.Type {
		case tea.KeyEsc:
			a.meetingsV.BlurNotes()
			return a, nil
		case tea.KeyCtrlS:
			return a, a.startAnalysis(a.meetingsV.Notes())
		}
		var cmd tea.Cmd
		a.meetingsV, cmd = a.meetingsV.Update(msg)
		return a, cmd
	}

	if cmd, ok := a.handleGlobalKey(msg); ok {
		return a, cmd
	}

	switch msg.String() {
	case "i":
		cmd := a.meetingsV.FocusNotes()
		return a, cmd
	case "j", "down":
		a.meetingsV.MoveDown()
	case "k", "up":
		a.meetingsV.MoveUp()
	case "r":
		return a, a.fetchMeetingsCmd(a.ctrl.BeginMeetingsFetch())
	case "enter":
		if notes, ok := a.meetingsV.SelectedNotes(); ok {
			return a, a.startAnalysis(notes)
		}
	}
	return a, nil
}

func (a App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch a.boardV.Mode() {
	case boardEdit:
		switch msg.Type {
		case tea.KeyEsc:
			a.boardV.CancelEdit()
			return a, nil
		case tea.KeyTab:
			a.boardV.NextEditField()
			return a, nil
		case tea.KeyEnter:
			if item, ok := a.boardV.CommitEdit(); ok {
				if err := a.ctrl.UpdateItem(item); err != nil {
					a.boardV.SetStatus(err.Error())
				}
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.boardV, cmd = a.boardV.Update(msg)
		return a, cmd

	case boardRefine:
		switch msg.Type {
		case tea.KeyEsc:
			a.boardV.CancelEdit()
			return a, nil
		case tea.KeyEnter:
			if item, instruction, ok := a.boardV.CommitRefine(); ok {
				return a, a.refineCmd(item, instruction)
			}
			return a, nil
		}
		var cmd tea.Cmd
		a.boardV, cmd = a.boardV.Update(msg)
		return a, cmd
	}

	if cmd, ok := a.handleGlobalKey(msg); ok {
		return a, cmd
	}

	switch msg.String() {
	case "j", "down":
		a.boardV.MoveDown()
	case "k", "up":
		a.boardV.MoveUp()
	case "a":
		if item, ok := a.boardV.Selected(); ok {
			if err := a.ctrl.ApproveItem(item.ID()); err != nil {
				a.boardV.SetStatus(err.Error())
			}
		}
	case "s":
		if item, ok := a.boardV.Selected(); ok && item.Kind == board.KindTicket {
			if err := a.ctrl.MarkSynced(item.ID()); err != nil {
				a.boardV.SetStatus(err.Error())
			}
		}
	case "S":
		if err := a.ctrl.SyncApproved(); err != nil {
			a.boardV.SetStatus(err.Error())
		}
	case "e":
		cmd := a.boardV.BeginEdit()
		return a, cmd
	case "i":
		cmd := a.boardV.BeginRefine()
		return a, cmd
	}
	return a, nil
}

func (a *App) startAnalysis(notes string) tea.Cmd {
	if err := a.ctrl.BeginAnalysis(notes); err != nil {
		return nil
	}
	return a.runAnalysisCmd(notes)
}

func (a App) View() string {
	var view string
	switch a.ctrl.View() {
	case app.ViewOnboarding:
		return a.onboarding.View()
	case app.ViewDashboard:
		view = a.dashboard.View()
	case app.ViewKnowledge:
		view = a.knowledge.View()
	case app.ViewMeetings:
		view = a.meetingsV.View()
	case app.ViewActionBoard:
		view = a.boardV.View()
	}
	return view + "\n" + a.renderStatusBar()
}

func (a App) renderStatusBar() string {
	tabs := []struct {
		key  string
		name string
		view app.View
	}{
		{"1", "Dashboard", app.ViewDashboard},
		{"2", "Knowledge", app.ViewKnowledge},
		{"3", "Meetings", app.ViewMeetings},
		{"4", "Board", app.ViewActionBoard},
	}

	parts := make([]string, 0, len(tabs)+1)
	for _, t := range tabs {
		label := t.key + " " + t.name
		if a.ctrl.View() == t.view {
			parts = append(parts, TabActiveStyle.Render(label))
		} else {
			parts = append(parts, TabInactiveStyle.Render(label))
		}
	}
	parts = append(parts, DimStyle.Render(a.ctrl.Team().Name))

	return "\n" + StatusBarStyle.Width(max(a.width, 1)).Render(strings.Join(parts, "  "))
}

// --- Commands ---

func (a App) runAnalysisCmd(notes string) tea.Cmd {
	bundle := &synthesis.ContextBundle{
		Team:    a.ctrl.Team(),
		Backlog: a.ctrl.Backlog(),
		Commits: a.ctrl.Commits(),
		Notes:   notes,
	}
	client := a.synth
	return func() tea.Msg {
		analysis, err := client.Analyze(context.Background(), bundle)
		return analysisDoneMsg{Analysis: analysis, Err: err}
	}
}

func (a App) fetchMeetingsCmd(gen int) tea.Cmd {
	client := a.meet
	return func() tea.Msg {
		logs, err := client.Fetch(context.Background())
		return meetingsFetchedMsg{Gen: gen, Meetings: logs, Err: err}
	}
}

func (a App) refineCmd(item board.Item, instruction string) tea.Cmd {
	client := a.synth
	return func() tea.Msg {
		refined, err := client.RefineItem(context.Background(), item, instruction)
		return refineDoneMsg{Item: refined, Err: err}
	}
}
