// Package demo provides hand-authored sample datasets used to pre-populate
// the UI for demonstration purposes.
package demo

import "thoreinstein.com/shadow/pkg/board"

// Dataset bundles a team config with the reference context and sample notes
// that make a convincing demo run.
type Dataset struct {
	ID          string
	Name        string
	Team        board.TeamConfig
	Backlog     []board.BacklogItem
	Commits     []board.CommitItem
	SampleNotes string
}

// DefaultID is the dataset loaded when none is configured.
const DefaultID = "reewild"

// Datasets returns all demo datasets in display order.
func Datasets() []Dataset {
	return datasets
}

// ByID returns the dataset with the given id, falling back to the default.
func ByID(id string) Dataset {
	for _, d := range datasets {
		if d.ID == id {
			return d
		}
	}
	return ByID(DefaultID)
}

var datasets = []Dataset{
	{
		ID:   "granola",
		Name: "Granola (Meeting Notepad)",
		Team: board.TeamConfig{
			Name:               "Granola",
			ProductDescription: "The AI notepad for people in meetings. Granola takes rough notes and turns them into a polished summary, extracting decisions and action items while preserving technical nuances and engineering context.",
			Members:            []string{"Sam (Lead Eng)", "Jordan (Design)", "Chris (Product)"},
			GithubConnected:    true,
			JiraConnected:      true,
			SlackConnected:     true,
		},
		Backlog: []board.BacklogItem{
			{ID: "GRA-402", Summary: "Optimize local LLM inference for offline note processing", Status: "In Progress"},
			{ID: "GRA-405", Summary: "Fix UI flicker in the \"Shared with Team\" view", Status: "Todo"},
			{ID: "GRA-408", Summary: "Deep link Granola notes directly into Linear issues", Status: "Todo"},
			{ID: "GRA-410", Summary: "Latency spike when generating summaries for meetings > 90min", Status: "In Progress"},
			{ID: "GRA-412", Summary: "Design: New typography system for better readability", Status: "Backlog"},
			{ID: "GRA-415", Summary: "Bug: Markdown export breaks on nested lists", Status: "Done"},
			{ID: "GRA-420", Summary: "Multi-workspace support for agency users", Status: "Backlog"},
			{ID: "GRA-422", Summary: "Refactor audio capture engine for macOS Sonoma compatibility", Status: "In Progress"},
		},
		Commits: []board.CommitItem{
			{Hash: "8e2a3b", Message: "feat: add local vector store for note semantic search", Author: "Sam", Date: "2023-11-01"},
			{Hash: "4d5e1c", Message: "fix: eliminate race condition in audio buffer flush", Author: "Sam", Date: "2023-11-02"},
			{Hash: "2a9f11", Message: "style: refresh editor interface with glass styles", Author: "Jordan", Date: "2023-11-02"},
			{Hash: "0b4c32", Message: "chore: update gemini-flash model configuration", Author: "Sam", Date: "2023-11-03"},
			{Hash: "cc3a1f", Message: "refactor: decouple note editor from sync engine", Author: "Sam", Date: "2023-11-04"},
			{Hash: "ee1299", Message: "docs: clarify data privacy policy for enterprise users", Author: "Chris", Date: "2023-11-04"},
		},
		SampleNotes: `Granola Weekly Product Sync - Nov 5th

Attendees: Sam, Jordan, Chris

Product Discussion:
- Chris: We're seeing great retention on the new AI summaries, but users want even deeper integration with their engineering workflows. Specifically, linking decisions directly to GitHub commits.
- Jordan: The note-taking experience is smooth, but the "Transfer to Linear" button is buried. We need to make it more prominent in the side panel.
- Sam: I've started the refactor for the macOS audio capture engine. It's more stable but I need to ensure we're not leaking memory on the buffer re-allocation.

Decisions:
1. Priority shift: The macOS audio stability is the #1 blocker for the upcoming release.
2. New feature: Add a "ShadowPM Sync" button that reconciles notes with recent Git activity automatically.

Next Steps:
- Sam to finish the audio engine refactor and check for memory leaks.
- Jordan to prototype the enhanced "Transfer to Linear" flow.
- Chris to define the metadata we want to capture for "Technical Decisions".
`,
	},
	{
		ID:   "reewild",
		Name: "Reewild (Rewards)",
		Team: board.TeamConfig{
			Name:               "Reewild",
			ProductDescription: "Reewild app turn day-to-day purchases into unforgettable experiences and rewards - the healthier and greener your choices, the more you earn.",
			Members:            []string{"Alice (Mobile)", "Bob (Sustainability Ops)", "Sarah (Growth)"},
			GithubConnected:    true,
			JiraConnected:      true,
			SlackConnected:     true,
		},
		Backlog: []board.BacklogItem{
			{ID: "REW-101", Summary: "Integrate Carbon Metrics API for real-time checkout analysis", Status: "Todo"},
			{ID: "REW-104", Summary: "UI: Green badge animation on reward earn", Status: "In Progress"},
			{ID: "REW-109", Summary: "Referral program: Double points for planet-friendly inviting", Status: "Backlog"},
			{ID: "REW-112", Summary: "Sync loyalty cards with Apple Wallet", Status: "Todo"},
		},
		Commits: []board.CommitItem{
			{Hash: "f3a2b1", Message: "feat: add carbon impact scoring algorithm", Author: "Alice", Date: "2023-11-06"},
			{Hash: "99d2e4", Message: "fix: checkout flow timeout on high latency", Author: "Alice", Date: "2023-11-07"},
			{Hash: "a1b2c3", Message: "chore: update partner brand list", Author: "Sarah", Date: "2023-11-07"},
		},
		SampleNotes: `Reewild Product Sync - Rewards & Sustainability

Attendees: Alice, Bob, Sarah

Current State:
- Bob: Our carbon metrics API is slightly slow during peak hours. It's affecting the "impact preview" at checkout.
- Alice: I can cache the partner brand scores locally in the app to reduce API calls. It should speed up the preview significantly.
- Sarah: We need a way to visualize the "Planet Saved" stats better in the profile. Users are earning points but not feeling the impact.

Decisions:
1. Tech: Move impact scoring to an edge function or local cache.
2. Growth: Launch "Green Friday" campaign next week.

Actions:
- Alice to implement local caching for brand scores.
- Bob to refine the sustainability taxonomy for 50 new SKU categories.
- Sarah to draft the Green Friday comms for Slack.
`,
	},
	{
		ID:   "nebula-infra",
		Name: "Nebula (DevTools)",
		Team: board.TeamConfig{
			Name:               "Nebula Cloud",
			ProductDescription: "Developer infrastructure for managing multi-cloud deployments with a focus on cost-optimization and edge compute.",
			Members:            []string{"Chris (SRE)", "Elena (Backend)", "Tom (PM)"},
			GithubConnected:    true,
			JiraConnected:      false,
			SlackConnected:     true,
		},
		Backlog: []board.BacklogItem{
			{ID: "NEB-11", Summary: "Optimize cold starts for AWS Lambda targets", Status: "Done"},
			{ID: "NEB-15", Summary: "Add support for GCP Cloud Run", Status: "In Progress"},
			{ID: "NEB-22", Summary: "CLI: Fix auth token expiration bug", Status: "Todo"},
		},
		Commits: []board.CommitItem{
			{Hash: "e55d21", Message: "feat: gcp cloud run controller skeleton", Author: "Elena", Date: "2023-11-04"},
			{Hash: "ff32aa", Message: "fix: catch 403 errors in deployment flow", Author: "Chris", Date: "2023-11-05"},
		},
		SampleNotes: "Infrastructure sync: We need to prioritize GCP support as our biggest lead is asking for it.",
	},
}
