package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"thoreinstein.com/shadow/pkg/app"
	"thoreinstein.com/shadow/pkg/board"
)

// boardMode selects what keys mean on the action board.
type boardMode int

const (
	boardBrowse boardMode = iota
	boardEdit
	boardRefine
)

// Edit field cycle per kind.
const (
	editFieldPrimary   = iota // ticket title / outcome content
	editFieldSecondary        // ticket description / outcome context
	editFieldCount
)

// actionBoardModel renders the working analysis as cards and hosts the edit
// and refine flows.
type actionBoardModel struct {
	ctrl *app.Controller

	cursor int
	mode   boardMode

	editor    *app.Editor
	editField int
	input     textinput.Model

	refining bool // an AI refinement call is in flight
	spin     string
	status   string
}

func newActionBoard(ctrl *app.Controller) actionBoardModel {
	in := textinput.New()
	in.CharLimit = 0
	in.Width = 70
	return actionBoardModel{ctrl: ctrl, input: in}
}

// Items flattens the working analysis into the display order: outcomes
// first, then suggested tickets.
func (m actionBoardModel) Items() []board.Item {
	analysis := m.ctrl.Analysis()
	if analysis == nil {
		return nil
	}
	out := make([]board.Item, 0, len(analysis.Outcomes)+len(analysis.SuggestedTickets))
	for _, o := range analysis.Outcomes {
		out = append(out, board.OutcomeItem(o))
	}
	for _, t := range analysis.SuggestedTickets {
		out = append(out, board.TicketItem(t))
	}
	return out
}

// Selected returns the item under the cursor.
func (m actionBoardModel) Selected() (board.Item, bool) {
	items := m.Items()
	if m.cursor >= len(items) {
		return board.Item{}, false
	}
	return items[m.cursor], true
}

func (m *actionBoardModel) MoveDown() {
	if m.cursor < len(m.Items())-1 {
		m.cursor++
	}
}

func (m *actionBoardModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

func (m *actionBoardModel) SetSpinner(view string) { m.spin = view }

func (m *actionBoardModel) SetStatus(msg string) { m.status = msg }

// BeginEdit opens the edit buffer for the selected card.
func (m *actionBoardModel) BeginEdit() tea.Cmd {
	item, ok := m.Selected()
	if !ok {
		return nil
	}
	m.editor = app.NewEditor(item)
	m.mode = boardEdit
	m.editField = editFieldPrimary
	m.loadEditField()
	return m.input.Focus()
}

// NextEditField saves the current field into the buffer and focuses the
// next one.
func (m *actionBoardModel) NextEditField() {
	m.saveEditField()
	m.editField = (m.editField + 1) % editFieldCount
	m.loadEditField()
}

// CommitEdit flushes the buffer and returns the edited item.
func (m *actionBoardModel) CommitEdit() (board.Item, bool) {
	if m.editor == nil {
		return board.Item{}, false
	}
	m.saveEditField()
	item := m.editor.Item()
	m.CancelEdit()
	return item, true
}

// CancelEdit abandons the buffer.
func (m *actionBoardModel) CancelEdit() {
	m.editor = nil
	m.mode = boardBrowse
	m.input.Blur()
	m.input.Reset()
}

// BeginRefine opens the instruction prompt for the selected card.
func (m *actionBoardModel) BeginRefine() tea.Cmd {
	if _, ok := m.Selected(); !ok {
		return nil
	}
	m.mode = boardRefine
	m.input.Reset()
	m.input.Placeholder = "e.g. make the acceptance criteria more testable"
	return m.input.Focus()
}

// CommitRefine returns the instruction and the target item.
func (m *actionBoardModel) CommitRefine() (board.Item, string, bool) {
	item, ok := m.Selected()
	instruction := strings.TrimSpace(m.input.Value())
	m.mode = boardBrowse
	m.input.Blur()
	m.input.Reset()
	if !ok || instruction == "" {
		return board.Item{}, "", false
	}
	m.refining = true
	return item, instruction, true
}

// RefineFinished clears the in-flight flag.
func (m *actionBoardModel) RefineFinished() { m.refining = false }

// ShowRefined loads the AI-refined item into the edit buffer for review. The
// result is not saved until the user commits the edit.
func (m *actionBoardModel) ShowRefined(item board.Item) tea.Cmd {
	m.editor = app.NewEditor(item)
	m.mode = boardEdit
	m.editField = editFieldPrimary
	m.loadEditField()
	return m.input.Focus()
}

func (m actionBoardModel) Mode() boardMode { return m.mode }

func (m *actionBoardModel) saveEditField() {
	if m.editor == nil {
		return
	}
	value := m.input.Value()
	switch m.editor.Kind() {
	case board.KindTicket:
		if m.editField == editFieldPrimary {
			m.editor.SetTitle(value)
		} else {
			m.editor.SetDescription(value)
		}
	case board.KindOutcome:
		if m.editField == editFieldPrimary {
			m.editor.SetContent(value)
		} else {
			m.editor.SetContext(value)
		}
	}
}

func (m *actionBoardModel) loadEditField() {
	item := m.editor.Item()
	var value, label string
	switch item.Kind {
	case board.KindTicket:
		if m.editField == editFieldPrimary {
			value, label = item.Ticket.Title, "title"
		} else {
			value, label = item.Ticket.Description, "description"
		}
	case board.KindOutcome:
		if m.editField == editFieldPrimary {
			value, label = item.Outcome.Content, "content"
		} else {
			value, label = item.Outcome.Context, "context"
		}
	}
	m.input.SetValue(value)
	m.input.Placeholder = label
	m.input.CursorEnd()
}

func (m actionBoardModel) Update(msg tea.Msg) (actionBoardModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m actionBoardModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + TitleStyle.Render("Action Board"))
	analysis := m.ctrl.Analysis()
	if analysis == nil {
		b.WriteString("\n  " + DimStyle.Render("No analysis yet. Run one from the Meetings screen.") + "\n")
		return b.String()
	}
	b.WriteString("\n  " + SubtitleStyle.Render(fmt.Sprintf(
		"%d outcomes · %d suggested tickets", len(analysis.Outcomes), len(analysis.SuggestedTickets))) + "\n\n")

	for i, item := range m.Items() {
		b.WriteString(m.renderCard(item, i == m.cursor))
		b.WriteString("\n")
	}

	if m.refining {
		label := "Refining..."
		if m.spin != "" {
			label = m.spin + " " + label
		}
		b.WriteString("  " + SpinnerStyle.Render(label) + "\n")
	}
	if m.status != "" {
		b.WriteString("  " + ErrorStyle.Render(m.status) + "\n")
	}

	switch m.mode {
	case boardEdit:
		b.WriteString("\n  " + SubtitleStyle.Render("edit "+m.input.Placeholder) + "\n")
		b.WriteString("  " + m.input.View() + "\n")
		b.WriteString(HelpStyle.Render("  tab: next field  enter: save  esc: discard"))
	case boardRefine:
		b.WriteString("\n  " + SubtitleStyle.Render("refine with AI") + "\n")
		b.WriteString("  " + m.input.View() + "\n")
		b.WriteString(HelpStyle.Render("  enter: refine  esc: cancel"))
	default:
		b.WriteString("\n" + HelpStyle.Render("  j/k: move  a: approve  s: mark synced  S: push all approved  e: edit  i: refine with AI"))
	}

	return b.String()
}

func (m actionBoardModel) renderCard(item board.Item, selected bool) string {
	var body strings.Builder

	switch item.Kind {
	case board.KindOutcome:
		o := item.Outcome
		body.WriteString(fmt.Sprintf("%s %s", DimStyle.Render(strings.ToUpper(string(o.Type))), o.Content))
		if o.Context != "" {
			body.WriteString("\n" + DimStyle.Render(o.Context))
		}
		if o.Status != "" {
			body.WriteString("\n" + statusBadge(o.Status))
		}
	case board.KindTicket:
		t := item.Ticket
		body.WriteString(fmt.Sprintf("%s %s  %s",
			priorityStyle(t.Priority).Render(strings.ToUpper(string(t.Priority))),
			t.Title, statusBadge(t.Status)))
		if t.Description != "" {
			body.WriteString("\n" + t.Description)
		}
		for _, ac := range t.AcceptanceCriteria {
			body.WriteString("\n" + DimStyle.Render("· "+ac))
		}
		if t.Source != "" {
			body.WriteString("\n" + DimStyle.Render(t.Source))
		}
	}

	style := CardStyle
	if selected {
		style = CardSelectedStyle
	}
	return indent(style.Render(body.String()), 2)
}

func statusBadge(s board.Status) string {
	switch s {
	case board.StatusApproved:
		return ApprovedBadge.Render("approved")
	case board.StatusSynced:
		return SyncedBadge.Render("synced")
	default:
		return SuggestedBadge.Render("suggested")
	}
}
