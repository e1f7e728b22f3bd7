package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("#2E8B57") // bottle green
	ColorAccent  = lipgloss.Color("#F42A41") // flag red
	ColorSuccess = lipgloss.Color("#3FB950")
	ColorDanger  = lipgloss.Color("#F85149")
	ColorMuted   = lipgloss.Color("#8B949E")
	ColorBorder  = lipgloss.Color("#30363D")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SectionStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	LabelStyle        = lipgloss.NewStyle().Foreground(ColorMuted)
	FocusedLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	ValueStyle        = lipgloss.NewStyle().Bold(true)

	TableHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	IncreaseStyle    = lipgloss.NewStyle().Foreground(ColorDanger)
	DecreaseStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)

	StatusStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorDanger)
)
