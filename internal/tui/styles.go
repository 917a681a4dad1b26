package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle        = lipgloss.NewStyle().Padding(1, 2)
	titleStyle      = lipgloss.NewStyle().Bold(true)
	helpStyle       = lipgloss.NewStyle().Faint(true)
	errorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	activeStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	headerStyle     = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).PaddingBottom(0)
	overlayBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)
