package tui

import (
	"thoreinstein.com/shadow/pkg/board"
	"thoreinstein.com/shadow/pkg/meetings"
)

// analysisDoneMsg carries the result of a synthesis run.
type analysisDoneMsg struct {
	Analysis *board.Analysis
	Err      error
}

// meetingsFetchedMsg carries the result of a meeting-log fetch. Gen ties the
// result to the fetch that produced it so stale responses can be dropped.
type meetingsFetchedMsg struct {
	Gen      int
	Meetings []meetings.Meeting
	Err      error
}

// refineDoneMsg carries the result of an AI card refinement.
type refineDoneMsg struct {
	Item board.Item
	Err  error
}
