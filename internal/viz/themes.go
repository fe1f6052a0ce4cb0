package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the pendulum drawing.
type Theme struct {
	Name  string
	Links lipgloss.Color
	Trace lipgloss.Color
	Text  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:  "cyberpunk",
		Links: lipgloss.Color("#ff00ff"),
		Trace: lipgloss.Color("#00ffff"),
		Text:  lipgloss.Color("#ffffff"),
	}

	ThemeRetroGreen = Theme{
		Name:  "retro",
		Links: lipgloss.Color("#00ff00"),
		Trace: lipgloss.Color("#005500"),
		Text:  lipgloss.Color("#00ff00"),
	}

	ThemeMinimal = Theme{
		Name:  "minimal",
		Links: lipgloss.Color("#ffffff"),
		Trace: lipgloss.Color("#888888"),
		Text:  lipgloss.Color("#ffffff"),
	}

	ThemeChalkboard = Theme{
		Name:  "chalkboard",
		Links: lipgloss.Color("#f5f5f5"),
		Trace: lipgloss.Color("#ffd400"),
		Text:  lipgloss.Color("#e5e5e5"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeChalkboard,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme cycles through Themes.
func NextTheme(current Theme) Theme {
	for i, t := range Themes {
		if t.Name == current.Name {
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
