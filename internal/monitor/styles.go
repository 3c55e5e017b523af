package monitor

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rileyhilliard/logchecker/internal/config"
)

// Theme is a color palette for the dashboard.
type Theme struct {
	Name string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	TextPrimary   lipgloss.Color
	TextSecondary lipgloss.Color
	TextMuted     lipgloss.Color

	Accent    lipgloss.Color
	AccentDim lipgloss.Color

	Healthy  lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

// DarkTheme is the electric synthwave palette.
var DarkTheme = Theme{
	Name:          config.ThemeDark,
	Background:    lipgloss.Color("#0A0A0F"), // Deep void
	Surface:       lipgloss.Color("#12121A"), // Dark surface
	Border:        lipgloss.Color("#2A2A4A"), // Glass border (purple tint)
	TextPrimary:   lipgloss.Color("#FFFFFF"),
	TextSecondary: lipgloss.Color("#B4B4D0"), // Lavender gray
	TextMuted:     lipgloss.Color("#6B6B8D"), // Purple-gray
	Accent:        lipgloss.Color("#FF2E97"), // Neon pink
	AccentDim:     lipgloss.Color("#BF40FF"), // Neon purple
	Healthy:       lipgloss.Color("#39FF14"), // Neon green
	Warning:       lipgloss.Color("#FFAA00"), // Electric amber
	Critical:      lipgloss.Color("#FF0055"), // Hot red-pink
}

// LightTheme keeps the same accents on a paper background.
var LightTheme = Theme{
	Name:          config.ThemeLight,
	Background:    lipgloss.Color("#FAFAFC"),
	Surface:       lipgloss.Color("#EDEDF4"),
	Border:        lipgloss.Color("#C8C8DC"),
	TextPrimary:   lipgloss.Color("#1A1A2E"),
	TextSecondary: lipgloss.Color("#4A4A68"),
	TextMuted:     lipgloss.Color("#8A8AA3"),
	Accent:        lipgloss.Color("#D1006B"),
	AccentDim:     lipgloss.Color("#7A1FBF"),
	Healthy:       lipgloss.Color("#1E8A0E"),
	Warning:       lipgloss.Color("#B36B00"),
	Critical:      lipgloss.Color("#C8003F"),
}

// ResolveTheme maps a ui.theme value to a palette. "auto" asks the terminal
// whether its background is dark.
func ResolveTheme(name string) Theme {
	switch name {
	case config.ThemeDark:
		return DarkTheme
	case config.ThemeLight:
		return LightTheme
	default:
		if termenv.HasDarkBackground() {
			return DarkTheme
		}
		return LightTheme
	}
}

// Next returns the other palette.
func (t Theme) Next() Theme {
	if t.Name == config.ThemeLight {
		return DarkTheme
	}
	return LightTheme
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	HeaderDim lipgloss.Style
	Footer    lipgloss.Style

	Pane        lipgloss.Style
	PaneFocused lipgloss.Style
	PaneTitle   lipgloss.Style

	Label lipgloss.Style
	Value lipgloss.Style

	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	StatusError lipgloss.Style

	HelpBox   lipgloss.Style
	HelpTitle lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	Table table.Styles
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true).
		Bold(true).
		Foreground(t.Accent)
	ts.Cell = ts.Cell.
		Foreground(t.TextPrimary)
	ts.Selected = ts.Selected.
		Foreground(t.TextPrimary).
		Background(t.AccentDim).
		Bold(false)

	return Styles{
		Header: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Background(t.Surface).
			Bold(true).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),
		HeaderDim: lipgloss.NewStyle().
			Foreground(t.TextSecondary),
		Footer: lipgloss.NewStyle().
			Foreground(t.TextMuted).
			Padding(0, 1),

		Pane:        pane,
		PaneFocused: pane.BorderForeground(t.Accent),
		PaneTitle: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Label: lipgloss.NewStyle().Foreground(t.TextSecondary),
		Value: lipgloss.NewStyle().Foreground(t.TextPrimary),

		StatusOK:    lipgloss.NewStyle().Foreground(t.Healthy),
		StatusWarn:  lipgloss.NewStyle().Foreground(t.Warning),
		StatusError: lipgloss.NewStyle().Foreground(t.Critical),

		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Accent).
			Background(t.Surface).
			Padding(1, 2),
		HelpTitle: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true).
			MarginBottom(1),
		HelpKey: lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Bold(true).
			Width(14),
		HelpDesc: lipgloss.NewStyle().
			Foreground(t.TextSecondary),

		Table: ts,
	}
}
