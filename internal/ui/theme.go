package ui

import "github.com/charmbracelet/lipgloss"

// Theme defines the dashboard color palette.
type Theme struct {
	Name string

	Text          string
	Muted         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	Border        string
	SelectionBg   string
	SelectionText string
}

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Logo        lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Footer      lipgloss.Style
}

// Styles returns the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
		TabActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectionText)).
			Background(lipgloss.Color(t.SelectionBg)).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
	}
}

var themes = []Theme{
	{
		Name:          "Garden",
		Text:          "#e8e8e3",
		Muted:         "#8a9a8a",
		Accent:        "#7dc383",
		Success:       "#a6d189",
		Warning:       "#e5c890",
		Danger:        "#e78284",
		Border:        "#4f5d4f",
		SelectionBg:   "#3a4d3a",
		SelectionText: "#d8e8d8",
	},
	{
		Name:          "Night",
		Text:          "#f8f8f2",
		Muted:         "#6272a4",
		Accent:        "#bd93f9",
		Success:       "#50fa7b",
		Warning:       "#f1fa8c",
		Danger:        "#ff5555",
		Border:        "#44475a",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
	},
}

// themeByName returns the named theme, falling back to the first theme when
// the name is unknown.
func themeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// nextTheme cycles through the available themes.
func nextTheme(current Theme) Theme {
	for i, t := range themes {
		if t.Name == current.Name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
