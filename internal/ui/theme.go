package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	Text   string
	Muted  string
	Faint  string
	Accent string

	Success string
	Warning string
	Danger  string
	Info    string

	SelectionBg   string
	SelectionText string

	// StatusColors keys attendance statuses to their accent color.
	StatusColors map[string]string
}

// Styles bundles the lipgloss styles derived from a Theme.
type Styles struct {
	Header   lipgloss.Style
	Title    lipgloss.Style
	Tab      lipgloss.Style
	TabFocus lipgloss.Style

	Text   lipgloss.Style
	Muted  lipgloss.Style
	Faint  lipgloss.Style
	Accent lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style
	Info    lipgloss.Style

	Selected lipgloss.Style
	Card     lipgloss.Style
	Help     lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Tab: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		TabFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true).
			Padding(0, 1),

		Text:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Faint:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Faint)).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),
	}
}

// StatusColor returns the accent for an attendance status, falling back to
// the muted color.
func (t Theme) StatusColor(status string) lipgloss.Color {
	if c, ok := t.StatusColors[status]; ok {
		return lipgloss.Color(c)
	}
	return lipgloss.Color(t.Muted)
}

var themes = []Theme{
	{
		Name:          "Sprout",
		Background:    "#1a2318",
		Surface:       "#243020",
		Text:          "#e8f0e4",
		Muted:         "#9ab48e",
		Faint:         "#5c7054",
		Accent:        "#7fd068",
		Success:       "#7fd068",
		Warning:       "#e8c35a",
		Danger:        "#e86a5a",
		Info:          "#6ab4e8",
		SelectionBg:   "#3a5232",
		SelectionText: "#f2f8ee",
		StatusColors: map[string]string{
			"present":        "#7fd068",
			"late":           "#e8c35a",
			"absent":         "#e86a5a",
			"sick_leave":     "#6ab4e8",
			"personal_leave": "#b48ee8",
			"leave_early":    "#e8965a",
		},
	},
	{
		Name:          "Slate",
		Background:    "#20242c",
		Surface:       "#2a3040",
		Text:          "#e4e8f0",
		Muted:         "#98a4b8",
		Faint:         "#5a6478",
		Accent:        "#82aaff",
		Success:       "#7fd068",
		Warning:       "#e8c35a",
		Danger:        "#e86a5a",
		Info:          "#6ab4e8",
		SelectionBg:   "#3a4460",
		SelectionText: "#f0f4ff",
		StatusColors: map[string]string{
			"present":        "#7fd068",
			"late":           "#e8c35a",
			"absent":         "#e86a5a",
			"sick_leave":     "#6ab4e8",
			"personal_leave": "#b48ee8",
			"leave_early":    "#e8965a",
		},
	},
}

// ThemeByName returns the named theme, defaulting to the first (Sprout)
// when the name is unknown.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme cycles to the theme after the named one.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
