package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the TUI and the maze tiles.
type Theme struct {
	Name   string
	Wall   lipgloss.Color
	Floor  lipgloss.Color
	Hidden lipgloss.Color
	Start  lipgloss.Color
	End    lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
}

// Available themes
var (
	ThemeDungeon = Theme{
		Name:   "dungeon",
		Wall:   lipgloss.Color("#8a7d6b"), // Torchlit stone
		Floor:  lipgloss.Color("#2b2620"),
		Hidden: lipgloss.Color("#14110d"),
		Start:  lipgloss.Color("#00d26a"),
		End:    lipgloss.Color("#ff4757"),
		Text:   lipgloss.Color("#e8ddc7"),
		Muted:  lipgloss.Color("#6b6154"),
		Accent: lipgloss.Color("#ffa502"),
	}

	ThemeForest = Theme{
		Name:   "forest",
		Wall:   lipgloss.Color("#2d6a4f"), // Hedge green
		Floor:  lipgloss.Color("#1b2621"),
		Hidden: lipgloss.Color("#0c120f"),
		Start:  lipgloss.Color("#ffd166"),
		End:    lipgloss.Color("#ef476f"),
		Text:   lipgloss.Color("#d8f3dc"),
		Muted:  lipgloss.Color("#52796f"),
		Accent: lipgloss.Color("#95d5b2"),
	}

	ThemeIce = Theme{
		Name:   "ice",
		Wall:   lipgloss.Color("#90e0ef"),
		Floor:  lipgloss.Color("#0d1b2a"),
		Hidden: lipgloss.Color("#060d14"),
		Start:  lipgloss.Color("#80ffdb"),
		End:    lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#e0fbfc"),
		Muted:  lipgloss.Color("#5c7a89"),
		Accent: lipgloss.Color("#48cae4"),
	}

	ThemeNeon = Theme{
		Name:   "neon",
		Wall:   lipgloss.Color("#ff00ff"), // Magenta
		Floor:  lipgloss.Color("#0a0a0a"),
		Hidden: lipgloss.Color("#050505"),
		Start:  lipgloss.Color("#00ff00"),
		End:    lipgloss.Color("#ff0000"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666666"),
		Accent: lipgloss.Color("#00ffff"),
	}

	ThemePaper = Theme{
		Name:   "paper",
		Wall:   lipgloss.Color("#3d3d3d"), // Ink on parchment
		Floor:  lipgloss.Color("#efe6d5"),
		Hidden: lipgloss.Color("#c9bfae"),
		Start:  lipgloss.Color("#2a9d8f"),
		End:    lipgloss.Color("#e76f51"),
		Text:   lipgloss.Color("#2b2b2b"),
		Muted:  lipgloss.Color("#8a8070"),
		Accent: lipgloss.Color("#264653"),
	}

	// Default theme
	CurrentTheme = ThemeDungeon

	// All available themes
	Themes = []Theme{
		ThemeDungeon,
		ThemeForest,
		ThemeIce,
		ThemeNeon,
		ThemePaper,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeDungeon
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
