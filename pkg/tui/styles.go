package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Screen chrome
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF"))

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C6C6C"))

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#C0C0C0")).
			Background(lipgloss.Color("#1A1A1A")).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Underline(true)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6C6C6C"))

	// Cards
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FFFFFF")).
				Padding(0, 1)

	CursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A4A4A"))

	// Status badges
	SuggestedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7AF00")).
			Bold(true)

	ApprovedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAF5F")).
			Bold(true)

	SyncedBadge = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5F87D7")).
			Bold(true)

	PriorityHighStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D75F5F"))

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#D7AF5F"))

	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#87AF87"))

	// Feedback
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D75F5F"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FAF5F"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4A4A4A"))

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFAFD7"))
)
