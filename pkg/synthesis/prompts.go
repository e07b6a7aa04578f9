package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"

	"thoreinstein.com/shadow/pkg/board"
)

// SystemPrompt frames every synthesis call.
const SystemPrompt = `You are ShadowPM, an expert Agentic Product Manager.
Your goal is to bridge the gap between spoken meeting context and a structured engineering backlog.`

// ContextBundle is everything the analysis prompt is built from.
type ContextBundle struct {
	Team    board.TeamConfig
	Backlog []board.BacklogItem
	Commits []board.CommitItem
	Notes   string
}

// BuildAnalysisPrompt creates the prompt for analyzing meeting notes against
// the existing backlog and recent commits.
func BuildAnalysisPrompt(bundle *ContextBundle) string {
	var sb strings.Builder

	sb.WriteString("TEAM & PRODUCT CONTEXT:\n")
	sb.WriteString(FormatTeamContext(bundle.Team))
	sb.WriteString("\n\n")

	sb.WriteString("EXISTING BACKLOG (REFERENCE):\n")
	sb.WriteString(FormatBacklogCSV(bundle.Backlog))
	sb.WriteString("\n\n")

	sb.WriteString("RECENT ENGINEERING ACTIVITY (COMMITS):\n")
	sb.WriteString(FormatCommitsCSV(bundle.Commits))
	sb.WriteString("\n\n")

	sb.WriteString("NEW MEETING TRANSCRIPT/NOTES:\n")
	sb.WriteString(bundle.Notes)
	sb.WriteString("\n\n")

	sb.WriteString(`INSTRUCTIONS:
1. EXTRACT STRUCTURED OUTCOMES: Identify clear decisions, risks, or priorities.
2. GENERATE SYNC-READY TICKETS: Create 3-6 high-quality backlog items based on the notes.
   - Each ticket must be detailed enough for an engineer to start work.
   - Include Acceptance Criteria (AC) that are testable.
   - Map work to specific platforms (Shortcut/Linear/Jira/Github) based on content.
   - Provide a source citation (e.g., "Ref: Conversation between Dev A and PM B").
3. RECONCILE: If an item mentioned in the meeting is already in the backlog or appears completed in the commits, mention that in the description.`)

	return sb.String()
}

// BuildRefinePrompt creates the prompt for refining a single card per a user
// instruction. The item is embedded as JSON so ids survive the round trip.
func BuildRefinePrompt(item board.Item, instruction string) (string, error) {
	var (
		payload []byte
		label   string
		err     error
	)
	switch item.Kind {
	case board.KindTicket:
		label = "Product Ticket"
		payload, err = json.Marshal(item.Ticket)
	case board.KindOutcome:
		label = "Meeting Outcome"
		payload, err = json.Marshal(item.Outcome)
	default:
		return "", fmt.Errorf("unknown item kind %q", item.Kind)
	}
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Refine the following ")
	sb.WriteString(label)
	sb.WriteString(" based on the user instruction.\n")
	sb.WriteString("Maintain high quality, professionalism, and engineering detail.\n\n")
	sb.WriteString("ITEM:\n")
	sb.Write(payload)
	sb.WriteString("\n\nINSTRUCTION:\n")
	sb.WriteString(instruction)

	return sb.String(), nil
}

// FormatTeamContext renders the team profile as a prompt fragment.
func FormatTeamContext(team board.TeamConfig) string {
	return fmt.Sprintf("Team: %s. Product: %s. Members: %s",
		team.Name, team.ProductDescription, strings.Join(team.Members, ", "))
}

// FormatBacklogCSV renders backlog items as a headed CSV block.
func FormatBacklogCSV(items []board.BacklogItem) string {
	var sb strings.Builder
	sb.WriteString("id,summary,status")
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("\n%s,%s,%s", item.ID, item.Summary, item.Status))
	}
	return sb.String()
}

// FormatCommitsCSV renders commits as a headed CSV block.
func FormatCommitsCSV(commits []board.CommitItem) string {
	var sb strings.Builder
	sb.WriteString("hash,message,author")
	for _, c := range commits {
		sb.WriteString(fmt.Sprintf("\n%s,%s,%s", c.Hash, c.Message, c.Author))
	}
	return sb.String()
}
