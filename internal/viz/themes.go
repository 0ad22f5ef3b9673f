package viz

import "github.com/charmbracelet/lipgloss"

// Theme is a terminal colour scheme.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Border    lipgloss.Color
	Playing   lipgloss.Color
	Paused    lipgloss.Color
	Error     lipgloss.Color
}

var (
	ThemeNeon = Theme{
		Name:      "neon",
		Primary:   lipgloss.Color("#00ffff"),
		Secondary: lipgloss.Color("#ff00ff"),
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666688"),
		Border:    lipgloss.Color("#444466"),
		Playing:   lipgloss.Color("#00ff88"),
		Paused:    lipgloss.Color("#ffaa00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeBlueprint = Theme{
		Name:      "blueprint",
		Primary:   lipgloss.Color("#8ecbff"),
		Secondary: lipgloss.Color("#ffffff"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Border:    lipgloss.Color("#2a5d8f"),
		Playing:   lipgloss.Color("#00ff88"),
		Paused:    lipgloss.Color("#ffcc00"),
		Error:     lipgloss.Color("#ff4444"),
	}

	ThemeAmber = Theme{
		Name:      "amber",
		Primary:   lipgloss.Color("#ffb000"),
		Secondary: lipgloss.Color("#ffcc66"),
		Accent:    lipgloss.Color("#ffffff"),
		Text:      lipgloss.Color("#ffb000"),
		Muted:     lipgloss.Color("#805800"),
		Border:    lipgloss.Color("#553a00"),
		Playing:   lipgloss.Color("#ffe080"),
		Paused:    lipgloss.Color("#ff8800"),
		Error:     lipgloss.Color("#ff0000"),
	}

	ThemeMono = Theme{
		Name:      "mono",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Accent:    lipgloss.Color("#0088ff"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Border:    lipgloss.Color("#555555"),
		Playing:   lipgloss.Color("#ffffff"),
		Paused:    lipgloss.Color("#aaaaaa"),
		Error:     lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeNeon, ThemeBlueprint, ThemeAmber, ThemeMono}
)

// GetTheme returns the named theme, or neon when the name is unknown.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
