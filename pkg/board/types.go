// Package board defines the ShadowPM domain model: tickets and outcomes
// synthesized from meeting notes, the analysis aggregate that holds them, and
// the read-only backlog/commit context they are reconciled against.
package board

// Priority of a suggested ticket.
type Priority string

// Priority values.
const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TicketType classifies a suggested ticket.
type TicketType string

// TicketType values.
const (
	TypeFeature TicketType = "feature"
	TypeBug     TicketType = "bug"
	TypeTask    TicketType = "task"
)

// Status is the lifecycle stage of a ticket or outcome. Transitions are
// monotonic forward: suggested -> approved -> synced.
type Status string

// Status values. Outcomes never reach StatusSynced.
const (
	StatusSuggested Status = "suggested"
	StatusApproved  Status = "approved"
	StatusSynced    Status = "synced"
)

// rank orders statuses for monotonicity checks. Unknown statuses rank lowest.
func (s Status) rank() int {
	switch s {
	case StatusSuggested:
		return 1
	case StatusApproved:
		return 2
	case StatusSynced:
		return 3
	default:
		return 0
	}
}

// OutcomeType classifies a strategic outcome.
type OutcomeType string

// OutcomeType values.
const (
	OutcomeDecision OutcomeType = "decision"
	OutcomePriority OutcomeType = "priority"
	OutcomeRisk     OutcomeType = "risk"
	OutcomeQuestion OutcomeType = "question"
)

// Ticket is a structured, sync-ready backlog item derived from meeting notes.
type Ticket struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	AcceptanceCriteria []string   `json:"acceptanceCriteria"`
	Priority           Priority   `json:"priority"`
	Type               TicketType `json:"type"`
	Source             string     `json:"source"`
	Status             Status     `json:"status"`
}

// Clone returns a deep copy of the ticket.
func (t Ticket) Clone() Ticket {
	out := t
	out.AcceptanceCriteria = append([]string(nil), t.AcceptanceCriteria...)
	return out
}

// Outcome is a decision, risk, priority, or open question extracted from
// meeting notes. Status is optional and empty until the item is acted on.
type Outcome struct {
	ID      string      `json:"id"`
	Type    OutcomeType `json:"type"`
	Content string      `json:"content"`
	Context string      `json:"context"`
	Status  Status      `json:"status,omitempty"`
}

// Analysis is the aggregate shape of one structured-generation response:
// strategic outcomes plus suggested tickets. Edits replace elements by id;
// nested arrays are never mutated in place.
type Analysis struct {
	Outcomes         []Outcome `json:"outcomes"`
	SuggestedTickets []Ticket  `json:"suggestedTickets"`
}

// Clone returns a deep copy of the analysis.
func (a Analysis) Clone() Analysis {
	out := Analysis{
		Outcomes:         append([]Outcome(nil), a.Outcomes...),
		SuggestedTickets: make([]Ticket, len(a.SuggestedTickets)),
	}
	for i, t := range a.SuggestedTickets {
		out.SuggestedTickets[i] = t.Clone()
	}
	return out
}

// ReplaceTicket swaps the ticket with a matching id, preserving order and
// length. Returns false when no ticket has that id.
func (a *Analysis) ReplaceTicket(t Ticket) bool {
	for i := range a.SuggestedTickets {
		if a.SuggestedTickets[i].ID == t.ID {
			a.SuggestedTickets[i] = t
			return true
		}
	}
	return false
}

// ReplaceOutcome swaps the outcome with a matching id, preserving order and
// length. Returns false when no outcome has that id.
func (a *Analysis) ReplaceOutcome(o Outcome) bool {
	for i := range a.Outcomes {
		if a.Outcomes[i].ID == o.ID {
			a.Outcomes[i] = o
			return true
		}
	}
	return false
}

// ReplaceItem dispatches a replacement to the array selected by the item's
// kind tag. Ids only need to be unique within their own array; cross-array
// collisions are harmless because dispatch is kind-discriminated.
func (a *Analysis) ReplaceItem(item Item) bool {
	switch item.Kind {
	case KindTicket:
		return a.ReplaceTicket(*item.Ticket)
	case KindOutcome:
		return a.ReplaceOutcome(*item.Outcome)
	default:
		return false
	}
}

// ApproveItem moves the matching ticket or outcome to StatusApproved. The
// transition is monotonic: items already approved or synced are untouched.
// Both arrays are scanned, matching the original approve semantics.
func (a *Analysis) ApproveItem(id string) bool {
	changed := false
	for i := range a.SuggestedTickets {
		t := &a.SuggestedTickets[i]
		if t.ID == id && t.Status.rank() < StatusApproved.rank() {
			t.Status = StatusApproved
			changed = true
		}
	}
	for i := range a.Outcomes {
		o := &a.Outcomes[i]
		if o.ID == id && o.Status.rank() < StatusApproved.rank() {
			o.Status = StatusApproved
			changed = true
		}
	}
	return changed
}

// MarkSynced moves an approved ticket to StatusSynced. Suggested tickets
// cannot skip the approval stage.
func (a *Analysis) MarkSynced(id string) bool {
	for i := range a.SuggestedTickets {
		t := &a.SuggestedTickets[i]
		if t.ID == id && t.Status == StatusApproved {
			t.Status = StatusSynced
			return true
		}
	}
	return false
}

// SyncApproved moves every approved ticket to StatusSynced. Returns whether
// any ticket changed.
func (a *Analysis) SyncApproved() bool {
	changed := false
	for i := range a.SuggestedTickets {
		t := &a.SuggestedTickets[i]
		if t.Status == StatusApproved {
			t.Status = StatusSynced
			changed = true
		}
	}
	return changed
}

// PendingTickets returns the tickets still awaiting approval.
func (a Analysis) PendingTickets() []Ticket {
	var out []Ticket
	for _, t := range a.SuggestedTickets {
		if t.Status == StatusSuggested {
			out = append(out, t)
		}
	}
	return out
}

// BacklogItem is an existing backlog entry, read-only reference context for
// reconciliation prompts.
type BacklogItem struct {
	ID      string `json:"id"`
	Summary string `json:"summary"`
	Status  string `json:"status"`
}

// CommitItem is a recent commit, read-only reference context for
// reconciliation prompts.
type CommitItem struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// TeamConfig describes the configured team. Mutated only by onboarding;
// cleared wholesale on sign-out.
type TeamConfig struct {
	Name               string   `json:"name"`
	ProductDescription string   `json:"productDescription"`
	Members            []string `json:"members"`
	GithubConnected    bool     `json:"githubConnected"`
	JiraConnected      bool     `json:"jiraConnected"`
	SlackConnected     bool     `json:"slackConnected"`
}

// IsZero reports whether the config is in its reset state.
func (c TeamConfig) IsZero() bool {
	return c.Name == "" && c.ProductDescription == "" && len(c.Members) == 0 &&
		!c.GithubConnected && !c.JiraConnected && !c.SlackConnected
}
