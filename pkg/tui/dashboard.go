package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"thoreinstein.com/shadow/pkg/app"
	"thoreinstein.com/shadow/pkg/board"
)

// dashboardModel is the landing screen: team summary, context stats, and the
// pending work pulled from the whole session history.
type dashboardModel struct {
	ctrl *app.Controller
}

func newDashboard(ctrl *app.Controller) dashboardModel {
	return dashboardModel{ctrl: ctrl}
}

func (m dashboardModel) View() string {
	var b strings.Builder

	team := m.ctrl.Team()
	b.WriteString("\n  " + TitleStyle.Render("Mission Control"))
	b.WriteString("\n  " + SubtitleStyle.Render(fmt.Sprintf(
		"System initialized. %d sessions analyzed and reconciled.", len(m.ctrl.Sessions()))))
	b.WriteString("\n\n")

	b.WriteString("  " + TitleStyle.Render(team.Name) + "\n")
	if team.ProductDescription != "" {
		b.WriteString("  " + SubtitleStyle.Render(team.ProductDescription) + "\n")
	}
	if len(team.Members) > 0 {
		b.WriteString("  " + DimStyle.Render(strings.Join(team.Members, " · ")) + "\n")
	}
	b.WriteString("\n")

	var connected []string
	if team.GithubConnected {
		connected = append(connected, "Github")
	}
	if team.JiraConnected {
		connected = append(connected, "Jira")
	}
	if team.SlackConnected {
		connected = append(connected, "Slack")
	}
	if len(connected) > 0 {
		b.WriteString("  " + SuccessStyle.Render("connected: "+strings.Join(connected, ", ")) + "\n\n")
	}

	b.WriteString(fmt.Sprintf("  Backlog items   %d\n", len(m.ctrl.Backlog())))
	b.WriteString(fmt.Sprintf("  Recent commits  %d\n", len(m.ctrl.Commits())))
	b.WriteString(fmt.Sprintf("  Pending tickets %s\n",
		SuggestedBadge.Render(fmt.Sprintf("%d", m.ctrl.PendingTicketCount()))))
	b.WriteString("\n")

	if pending := m.pendingTickets(); len(pending) > 0 {
		b.WriteString("  " + SubtitleStyle.Render("Awaiting approval") + "\n")
		for i, t := range pending {
			if i == 5 {
				b.WriteString(DimStyle.Render(fmt.Sprintf("    ... and %d more\n", len(pending)-5)))
				break
			}
			b.WriteString(fmt.Sprintf("    %s %s\n", priorityStyle(t.Priority).Render("●"), t.Title))
		}
	}

	return b.String()
}

// pendingTickets flattens suggested tickets across the session history.
func (m dashboardModel) pendingTickets() []board.Ticket {
	var out []board.Ticket
	for _, sess := range m.ctrl.Sessions() {
		for _, t := range sess.Analysis.SuggestedTickets {
			if t.Status == board.StatusSuggested {
				out = append(out, t)
			}
		}
	}
	return out
}

func priorityStyle(p board.Priority) lipgloss.Style {
	switch p {
	case board.PriorityHigh:
		return PriorityHighStyle
	case board.PriorityMedium:
		return PriorityMediumStyle
	default:
		return PriorityLowStyle
	}
}
