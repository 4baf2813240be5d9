package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the bands and the surrounding UI.
type Theme struct {
	Name         string
	Primary      lipgloss.Color
	Accent       lipgloss.Color
	Text         lipgloss.Color
	Muted        lipgloss.Color
	Upper        lipgloss.Color
	Intermediate lipgloss.Color
	Lower        lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:         "cyberpunk",
		Primary:      lipgloss.Color("#ff00ff"),
		Accent:       lipgloss.Color("#00ffff"),
		Text:         lipgloss.Color("#ffffff"),
		Muted:        lipgloss.Color("#666666"),
		Upper:        lipgloss.Color("#00ff00"),
		Intermediate: lipgloss.Color("#ffff00"),
		Lower:        lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:         "retro",
		Primary:      lipgloss.Color("#00ff00"),
		Accent:       lipgloss.Color("#88ff88"),
		Text:         lipgloss.Color("#00ff00"),
		Muted:        lipgloss.Color("#005500"),
		Upper:        lipgloss.Color("#88ff88"),
		Intermediate: lipgloss.Color("#ffff00"),
		Lower:        lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:         "ocean",
		Primary:      lipgloss.Color("#0077be"),
		Accent:       lipgloss.Color("#ffd700"),
		Text:         lipgloss.Color("#e0f0ff"),
		Muted:        lipgloss.Color("#4488aa"),
		Upper:        lipgloss.Color("#00ff88"),
		Intermediate: lipgloss.Color("#ffcc00"),
		Lower:        lipgloss.Color("#ff4444"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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
