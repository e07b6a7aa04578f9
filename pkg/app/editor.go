package app

import "thoreinstein.com/shadow/pkg/board"

// Editor is a detached edit buffer for one card. It works on a deep copy so
// abandoning the edit leaves the analysis untouched; the buffer is committed
// through Controller.UpdateItem.
type Editor struct {
	buf board.Item
}

// NewEditor opens an edit buffer for the item.
func NewEditor(item board.Item) *Editor {
	return &Editor{buf: item.Clone()}
}

// Item returns the current buffer contents.
func (e *Editor) Item() board.Item {
	return e.buf.Clone()
}

// Kind returns the buffered item's kind.
func (e *Editor) Kind() board.ItemKind {
	return e.buf.Kind
}

// SetTitle updates a ticket buffer's title. No-op for outcomes.
func (e *Editor) SetTitle(title string) {
	if e.buf.Kind == board.KindTicket {
		e.buf.Ticket.Title = title
	}
}

// SetDescription updates a ticket buffer's description. No-op for outcomes.
func (e *Editor) SetDescription(desc string) {
	if e.buf.Kind == board.KindTicket {
		e.buf.Ticket.Description = desc
	}
}

// SetPriority updates a ticket buffer's priority. No-op for outcomes.
func (e *Editor) SetPriority(p board.Priority) {
	if e.buf.Kind == board.KindTicket {
		e.buf.Ticket.Priority = p
	}
}

// SetCriteria replaces a ticket buffer's acceptance criteria. No-op for
// outcomes.
func (e *Editor) SetCriteria(criteria []string) {
	if e.buf.Kind == board.KindTicket {
		e.buf.Ticket.AcceptanceCriteria = append([]string(nil), criteria...)
	}
}

// SetContent updates an outcome buffer's content. No-op for tickets.
func (e *Editor) SetContent(content string) {
	if e.buf.Kind == board.KindOutcome {
		e.buf.Outcome.Content = content
	}
}

// SetContext updates an outcome buffer's context. No-op for tickets.
func (e *Editor) SetContext(context string) {
	if e.buf.Kind == board.KindOutcome {
		e.buf.Outcome.Context = context
	}
}

// ApplyRefinement replaces the buffer with an AI-refined item of the same
// kind and id. Mismatched items are ignored.
func (e *Editor) ApplyRefinement(item board.Item) {
	if item.Kind != e.buf.Kind || item.ID() != e.buf.ID() {
		return
	}
	e.buf = item.Clone()
}
