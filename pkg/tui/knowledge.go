package tui

import (
	"fmt"
	"strings"

	"thoreinstein.com/shadow/pkg/app"
)

// knowledgeModel lists past analysis sessions; opening one restores it onto
// the action board.
type knowledgeModel struct {
	ctrl   *app.Controller
	cursor int
}

func newKnowledge(ctrl *app.Controller) knowledgeModel {
	return knowledgeModel{ctrl: ctrl}
}

func (m *knowledgeModel) MoveDown() {
	if m.cursor < len(m.ctrl.Sessions())-1 {
		m.cursor++
	}
}

func (m *knowledgeModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// SelectedID returns the session id under the cursor.
func (m knowledgeModel) SelectedID() (string, bool) {
	sessions := m.ctrl.Sessions()
	if m.cursor >= len(sessions) {
		return "", false
	}
	return sessions[m.cursor].ID, true
}

// ClampCursor keeps the cursor in range after the history changes.
func (m *knowledgeModel) ClampCursor() {
	if n := len(m.ctrl.Sessions()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m knowledgeModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + TitleStyle.Render("Knowledge Base"))
	b.WriteString("\n  " + SubtitleStyle.Render("Every analyzed meeting, newest first.") + "\n\n")

	sessions := m.ctrl.Sessions()
	if len(sessions) == 0 {
		b.WriteString("  " + DimStyle.Render("No sessions yet. Run an analysis from the Meetings screen.") + "\n")
		return b.String()
	}

	for i, sess := range sessions {
		marker := "  "
		if i == m.cursor {
			marker = CursorStyle.Render("> ")
		}
		notes := firstLine(sess.Notes)
		if len(notes) > 60 {
			notes = notes[:57] + "..."
		}
		b.WriteString(fmt.Sprintf("  %s%s  %s\n", marker, SubtitleStyle.Render(sess.Date), notes))
		b.WriteString(fmt.Sprintf("      %s\n", DimStyle.Render(fmt.Sprintf(
			"%d outcomes · %d tickets", len(sess.Analysis.Outcomes), len(sess.Analysis.SuggestedTickets)))))
	}

	b.WriteString("\n" + HelpStyle.Render("  j/k: move  enter: open on action board"))
	return b.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
