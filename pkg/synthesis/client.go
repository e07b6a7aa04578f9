// Package synthesis turns meeting notes into structured analyses by way of a
// schema-constrained AI call, and refines individual cards on instruction.
package synthesis

import (
	"context"
	"encoding/json"

	"thoreinstein.com/shadow/pkg/ai"
	"thoreinstein.com/shadow/pkg/board"
	shadowerrors "thoreinstein.com/shadow/pkg/errors"
)

// Client runs synthesis operations against a structured AI provider.
type Client struct {
	provider ai.Provider
}

// NewClient creates a synthesis client.
func NewClient(provider ai.Provider) *Client {
	return &Client{provider: provider}
}

// Analyze sends the meeting notes plus reference context to the provider and
// parses the response into an analysis. Tickets that come back without a
// status default to suggested.
func (c *Client) Analyze(ctx context.Context, bundle *ContextBundle) (*board.Analysis, error) {
	if bundle.Notes == "" {
		return nil, shadowerrors.NewValidationError("notes", "meeting notes must not be empty")
	}

	raw, err := c.provider.GenerateStructured(ctx, &ai.StructuredRequest{
		Operation: "Analyze",
		System:    SystemPrompt,
		Prompt:    BuildAnalysisPrompt(bundle),
		Schema:    AnalysisSchema(),
	})
	if err != nil {
		return nil, err
	}

	var analysis board.Analysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, shadowerrors.NewFormatError("Analyze", string(raw), err)
	}

	for i := range analysis.SuggestedTickets {
		if analysis.SuggestedTickets[i].Status == "" {
			analysis.SuggestedTickets[i].Status = board.StatusSuggested
		}
	}

	return &analysis, nil
}

// RefineItem asks the provider to rewrite a single card per the instruction.
// The response is parsed according to the item's kind; the returned item
// keeps the original id even if the model changed it.
func (c *Client) RefineItem(ctx context.Context, item board.Item, instruction string) (board.Item, error) {
	if instruction == "" {
		return board.Item{}, shadowerrors.NewValidationError("instruction", "refine instruction must not be empty")
	}

	prompt, err := BuildRefinePrompt(item, instruction)
	if err != nil {
		return board.Item{}, shadowerrors.Wrap(err, "building refine prompt")
	}

	var schema *ai.Schema
	switch item.Kind {
	case board.KindTicket:
		schema = TicketSchema()
	case board.KindOutcome:
		schema = OutcomeSchema()
	}

	raw, err := c.provider.GenerateStructured(ctx, &ai.StructuredRequest{
		Operation: "Refine",
		System:    SystemPrompt,
		Prompt:    prompt,
		Schema:    schema,
	})
	if err != nil {
		return board.Item{}, err
	}

	switch item.Kind {
	case board.KindTicket:
		var ticket board.Ticket
		if err := json.Unmarshal(raw, &ticket); err != nil {
			return board.Item{}, shadowerrors.NewFormatError("Refine", string(raw), err)
		}
		ticket.ID = item.Ticket.ID
		if ticket.Status == "" {
			ticket.Status = item.Ticket.Status
		}
		return board.TicketItem(ticket), nil
	case board.KindOutcome:
		var outcome board.Outcome
		if err := json.Unmarshal(raw, &outcome); err != nil {
			return board.Item{}, shadowerrors.NewFormatError("Refine", string(raw), err)
		}
		outcome.ID = item.Outcome.ID
		if outcome.Status == "" {
			outcome.Status = item.Outcome.Status
		}
		return board.OutcomeItem(outcome), nil
	default:
		return board.Item{}, shadowerrors.Newf("unknown item kind %q", item.Kind)
	}
}
