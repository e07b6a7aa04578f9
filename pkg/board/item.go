package board

// ItemKind discriminates the two card kinds. The tag is set at construction
// time and never inferred from which fields happen to be populated.
type ItemKind string

// ItemKind values.
const (
	KindTicket  ItemKind = "ticket"
	KindOutcome ItemKind = "outcome"
)

// Item is a tagged union over Ticket and Outcome, the unit the card editor
// and refinement operations work on. Exactly one of Ticket/Outcome is set,
// matching Kind.
type Item struct {
	Kind    ItemKind
	Ticket  *Ticket
	Outcome *Outcome
}

// TicketItem wraps a ticket as an Item.
func TicketItem(t Ticket) Item {
	return Item{Kind: KindTicket, Ticket: &t}
}

// OutcomeItem wraps an outcome as an Item.
func OutcomeItem(o Outcome) Item {
	return Item{Kind: KindOutcome, Outcome: &o}
}

// ID returns the wrapped item's id.
func (i Item) ID() string {
	switch i.Kind {
	case KindTicket:
		return i.Ticket.ID
	case KindOutcome:
		return i.Outcome.ID
	default:
		return ""
	}
}

// Clone returns a deep copy so edit buffers never alias the source item.
func (i Item) Clone() Item {
	switch i.Kind {
	case KindTicket:
		t := i.Ticket.Clone()
		return Item{Kind: KindTicket, Ticket: &t}
	case KindOutcome:
		o := *i.Outcome
		return Item{Kind: KindOutcome, Outcome: &o}
	default:
		return i
	}
}
