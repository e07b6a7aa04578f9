package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"thoreinstein.com/shadow/pkg/app"
)

// meetingsModel is the capture screen: paste notes for analysis or pull one
// of the fetched external meeting logs.
type meetingsModel struct {
	ctrl    *app.Controller
	notes   textarea.Model
	cursor  int
	focused bool // true when the notes textarea has focus
	spin    string
}

func newMeetings(ctrl *app.Controller) meetingsModel {
	ta := textarea.New()
	ta.Placeholder = "Paste a standup summary or meeting transcript..."
	ta.SetWidth(70)
	ta.SetHeight(8)
	ta.CharLimit = 0

	return meetingsModel{ctrl: ctrl, notes: ta, focused: false}
}

func (m *meetingsModel) FocusNotes() tea.Cmd {
	m.focused = true
	return m.notes.Focus()
}

func (m *meetingsModel) BlurNotes() {
	m.focused = false
	m.notes.Blur()
}

func (m meetingsModel) NotesFocused() bool { return m.focused }

func (m meetingsModel) Notes() string { return strings.TrimSpace(m.notes.Value()) }

func (m *meetingsModel) SetNotes(notes string) {
	m.notes.SetValue(notes)
}

func (m *meetingsModel) SetSpinner(view string) { m.spin = view }

func (m *meetingsModel) MoveDown() {
	if m.cursor < len(m.ctrl.Meetings())-1 {
		m.cursor++
	}
}

func (m *meetingsModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// SelectedNotes returns the analysis text of the meeting log under the
// cursor.
func (m meetingsModel) SelectedNotes() (string, bool) {
	logs := m.ctrl.Meetings()
	if m.cursor >= len(logs) {
		return "", false
	}
	return logs[m.cursor].Notes(), true
}

func (m meetingsModel) Update(msg tea.Msg) (meetingsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

func (m meetingsModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + TitleStyle.Render("Meeting Context"))
	b.WriteString("\n  " + SubtitleStyle.Render("Paste notes below, or pull a recorded meeting log.") + "\n\n")

	b.WriteString(indent(m.notes.View(), 2))
	b.WriteString("\n\n")

	if m.ctrl.Analyzing() {
		label := "Analyzing..."
		if m.spin != "" {
			label = m.spin + " " + label
		}
		b.WriteString("  " + SpinnerStyle.Render(label) + "\n\n")
	} else if m.ctrl.LastError() != "" {
		b.WriteString("  " + ErrorStyle.Render("Analysis failed: "+m.ctrl.LastError()) + "\n\n")
	}

	b.WriteString("  " + SubtitleStyle.Render("Recent Meeting Logs") + "\n")
	switch {
	case m.ctrl.LoadingMeetings():
		label := "Fetching meeting logs..."
		if m.spin != "" {
			label = m.spin + " " + label
		}
		b.WriteString("  " + SpinnerStyle.Render(label) + "\n")
	case m.ctrl.MeetingsError() != "":
		b.WriteString("  " + ErrorStyle.Render(m.ctrl.MeetingsError()) + "\n")
		b.WriteString("  " + HelpStyle.Render("r: retry fetch") + "\n")
	case len(m.ctrl.Meetings()) == 0:
		b.WriteString("  " + DimStyle.Render("No meeting logs found.") + "\n")
	}

	for i, log := range m.ctrl.Meetings() {
		marker := "  "
		if i == m.cursor && !m.focused {
			marker = CursorStyle.Render("> ")
		}
		title := log.Title
		if title == "" {
			title = "Meeting Log"
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", marker, title,
			DimStyle.Render(log.CreatorName)))
	}

	b.WriteString("\n")
	if m.focused {
		b.WriteString(HelpStyle.Render("  esc: leave notes  ctrl+s: analyze notes"))
	} else {
		b.WriteString(HelpStyle.Render("  i: edit notes  j/k: move  enter: analyze selected log  r: refresh logs"))
	}
	return b.String()
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	return pad + strings.ReplaceAll(s, "\n", "\n"+pad)
}
