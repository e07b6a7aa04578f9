// Package meetings fetches recorded meeting logs from the external ShadowPM
// meetings service so they can be pulled straight into an analysis run.
package meetings

// Meeting is one recorded meeting log as served by the meetings API.
type Meeting struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	CalendarEventTime string `json:"calendar_event_time"`
	CreatorName       string `json:"creator_name"`
	CreatorEmail      string `json:"creator_email"`
	Transcript        string `json:"transcript"`
	EnhancedNotes     string `json:"enhanced_notes"`
	MyNotes           string `json:"my_notes"`
}

// Notes returns the best available text content for analysis: the transcript
// when present, otherwise enhanced notes, otherwise raw notes.
func (m Meeting) Notes() string {
	if m.Transcript != "" {
		return m.Transcript
	}
	if m.EnhancedNotes != "" {
		return m.EnhancedNotes
	}
	return m.MyNotes
}

// envelope is the wire shape of the meetings endpoint.
type envelope struct {
	Status   string    `json:"status"`
	Meetings []Meeting `json:"meetings"`
}
