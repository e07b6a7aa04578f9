package synthesis

import "thoreinstein.com/shadow/pkg/ai"

// OutcomeSchema declares the shape of a single extracted outcome.
func OutcomeSchema() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"id":      {Type: ai.TypeString},
			"type":    {Type: ai.TypeString, Enum: []string{"decision", "priority", "risk", "question"}},
			"content": {Type: ai.TypeString},
			"context": {Type: ai.TypeString},
		},
		Required: []string{"id", "type", "content", "context"},
	}
}

// TicketSchema declares the shape of a single suggested ticket. Status is a
// plain string and intentionally not required; the model may omit it and the
// client defaults missing statuses to suggested.
func TicketSchema() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"id":          {Type: ai.TypeString},
			"title":       {Type: ai.TypeString},
			"description": {Type: ai.TypeString},
			"acceptanceCriteria": {
				Type:  ai.TypeArray,
				Items: &ai.Schema{Type: ai.TypeString},
			},
			"priority": {Type: ai.TypeString, Enum: []string{"high", "medium", "low"}},
			"type":     {Type: ai.TypeString, Enum: []string{"feature", "bug", "task"}},
			"source":   {Type: ai.TypeString},
			"status":   {Type: ai.TypeString},
		},
		Required: []string{"id", "title", "description", "acceptanceCriteria", "priority", "type", "source"},
	}
}

// AnalysisSchema declares the full analysis response shape.
func AnalysisSchema() *ai.Schema {
	return &ai.Schema{
		Type: ai.TypeObject,
		Properties: map[string]*ai.Schema{
			"outcomes": {
				Type:  ai.TypeArray,
				Items: OutcomeSchema(),
			},
			"suggestedTickets": {
				Type:  ai.TypeArray,
				Items: TicketSchema(),
			},
		},
		Required: []string{"outcomes", "suggestedTickets"},
	}
}
