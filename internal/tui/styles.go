package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	colorPrimary   = lipgloss.Color("#D01012")
	colorSecondary = lipgloss.Color("#10B981")
	colorAccent    = lipgloss.Color("#FFCF00")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#6B7280")
	colorFg        = lipgloss.Color("#F9FAFB")
)

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	BannerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 2)

	WarningStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	SuccessMessageStyle = lipgloss.NewStyle().
				Foreground(colorSecondary)

	ErrorMessageStyle = lipgloss.NewStyle().
				Foreground(colorError)

	MenuItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	KeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	PromptStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	HelpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

func RenderTitle(title string) string {
	return TitleStyle.Render(title)
}

func RenderError(err string) string {
	return ErrorMessageStyle.Render(err)
}

func RenderSuccess(msg string) string {
	return SuccessMessageStyle.Render(msg)
}

func RenderHelp(help string) string {
	return HelpStyle.Render(help)
}
