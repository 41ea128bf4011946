package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme of the pyramid view.
type Theme struct {
	Name   string
	Left   lipgloss.Color
	Right  lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeCensus = Theme{
		Name:   "census",
		Left:   lipgloss.Color("#4e79a7"),
		Right:  lipgloss.Color("#e15759"),
		Accent: lipgloss.Color("#f28e2b"),
		Text:   lipgloss.Color("#f0f0f0"),
		Muted:  lipgloss.Color("#777777"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Left:   lipgloss.Color("#00cc00"), // green phosphor
		Right:  lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#ffff00"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Left:   lipgloss.Color("#cccccc"),
		Right:  lipgloss.Color("#ffffff"),
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeOcean = Theme{
		Name:   "ocean",
		Left:   lipgloss.Color("#0077be"),
		Right:  lipgloss.Color("#00a8cc"),
		Accent: lipgloss.Color("#ffd700"),
		Text:   lipgloss.Color("#e0f0ff"),
		Muted:  lipgloss.Color("#4488aa"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Left:   lipgloss.Color("#feca57"),
		Right:  lipgloss.Color("#ff6b6b"), // coral
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Error:  lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeCensus,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the census theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCensus
}

// NextTheme returns the theme after name in Themes.
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
