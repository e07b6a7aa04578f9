package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"thoreinstein.com/shadow/pkg/board"
)

const (
	onboardFieldName = iota
	onboardFieldProduct
	onboardFieldMembers
	onboardFieldCount
)

// onboardingModel collects the team profile before the first analysis.
type onboardingModel struct {
	inputs [onboardFieldCount]textinput.Model
	focus  int
	err    string
}

func newOnboarding() onboardingModel {
	var m onboardingModel

	name := textinput.New()
	name.Placeholder = "e.g. Acme Corp"
	name.CharLimit = 80
	name.Width = 50
	name.Focus()
	m.inputs[onboardFieldName] = name

	product := textinput.New()
	product.Placeholder = "What does the team build?"
	product.CharLimit = 300
	product.Width = 50
	m.inputs[onboardFieldProduct] = product

	members := textinput.New()
	members.Placeholder = "Alice (Mobile), Bob (Backend), ..."
	members.CharLimit = 300
	members.Width = 50
	m.inputs[onboardFieldMembers] = members

	return m
}

func (m *onboardingModel) NextField() {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + 1) % onboardFieldCount
	m.inputs[m.focus].Focus()
}

func (m *onboardingModel) SetError(msg string) {
	m.err = msg
}

// Team assembles the entered profile. Members are comma-separated.
func (m onboardingModel) Team() board.TeamConfig {
	var members []string
	for _, part := range strings.Split(m.inputs[onboardFieldMembers].Value(), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			members = append(members, trimmed)
		}
	}
	return board.TeamConfig{
		Name:               strings.TrimSpace(m.inputs[onboardFieldName].Value()),
		ProductDescription: strings.TrimSpace(m.inputs[onboardFieldProduct].Value()),
		Members:            members,
	}
}

// Prefill loads a team profile into the inputs.
func (m *onboardingModel) Prefill(team board.TeamConfig) {
	m.inputs[onboardFieldName].SetValue(team.Name)
	m.inputs[onboardFieldProduct].SetValue(team.ProductDescription)
	m.inputs[onboardFieldMembers].SetValue(strings.Join(team.Members, ", "))
	m.err = ""
}

func (m onboardingModel) Update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m onboardingModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + TitleStyle.Render("ShadowPM"))
	b.WriteString("\n  " + SubtitleStyle.Render("The agentic PM for teams without a PM."))
	b.WriteString("\n\n")

	labels := [onboardFieldCount]string{"Team Identity", "Product", "Members"}
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focus {
			b.WriteString("  " + CursorStyle.Render("> "+label))
		} else {
			b.WriteString("  " + DimStyle.Render("  "+label))
		}
		b.WriteString("\n  " + in.View() + "\n\n")
	}

	if m.err != "" {
		b.WriteString("  " + ErrorStyle.Render(m.err) + "\n\n")
	}

	b.WriteString(HelpStyle.Render("  tab: next field  ctrl+d: load demo data  enter: initialize  ctrl+c: quit"))
	return b.String()
}
