package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	colorRed     = lipgloss.Color("#ff5555")
	colorGreen   = lipgloss.Color("#50fa7b")
	colorYellow  = lipgloss.Color("#f1fa8c")
	colorBlue    = lipgloss.Color("#8be9fd")
	colorPurple  = lipgloss.Color("#bd93f9")
	colorOrange  = lipgloss.Color("#ffb86c")
	colorDim     = lipgloss.Color("#6272a4")
	colorBgLight = lipgloss.Color("#343746")
	colorFg      = lipgloss.Color("#f8f8f2")
	colorBorder  = lipgloss.Color("#44475a")
)

// Style definitions.
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorBlue).
			Bold(true).
			Padding(0, 0, 1, 0)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	panelActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPurple).
				Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	labelFocusStyle = lipgloss.NewStyle().
			Foreground(colorYellow).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	itemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	itemSelectedStyle = lipgloss.NewStyle().
				Foreground(colorFg).
				Background(colorBgLight).
				Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed)

	warnStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	okStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	suggestionStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorFg).
			Background(colorBgLight).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	severityStyles = map[string]lipgloss.Style{
		"Critical":    lipgloss.NewStyle().Foreground(colorRed).Bold(true),
		"Urgent":      lipgloss.NewStyle().Foreground(colorOrange).Bold(true),
		"Semi-urgent": lipgloss.NewStyle().Foreground(colorYellow).Bold(true),
		"Non-urgent":  lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	}
)

func severityStyle(level string) lipgloss.Style {
	if s, ok := severityStyles[level]; ok {
		return s
	}
	return valueStyle
}
