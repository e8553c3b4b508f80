package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Dots    lipgloss.Color
	Lines   lipgloss.Color
	Box     lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color
}

// Available themes
var (
	ThemeMidnight = Theme{
		Name:    "midnight",
		Dots:    lipgloss.Color("#ffffff"),
		Lines:   lipgloss.Color("#7f8cff"), // Periwinkle
		Box:     lipgloss.Color("#2a2a44"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#e0e0ff"),
		Muted:   lipgloss.Color("#666688"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Dots:    lipgloss.Color("#e0f0ff"),
		Lines:   lipgloss.Color("#00a8cc"),
		Box:     lipgloss.Color("#003355"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeNeon = Theme{
		Name:    "neon",
		Dots:    lipgloss.Color("#ffff00"),
		Lines:   lipgloss.Color("#ff00ff"), // Magenta
		Box:     lipgloss.Color("#330033"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeForest = Theme{
		Name:    "forest",
		Dots:    lipgloss.Color("#ccffcc"),
		Lines:   lipgloss.Color("#33aa55"),
		Box:     lipgloss.Color("#113311"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#ddffdd"),
		Muted:   lipgloss.Color("#446644"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeMono = Theme{
		Name:    "mono",
		Dots:    lipgloss.Color("#ffffff"),
		Lines:   lipgloss.Color("#aaaaaa"),
		Box:     lipgloss.Color("#444444"),
		Accent:  lipgloss.Color("#ffffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	// All available themes
	Themes = []Theme{
		ThemeMidnight,
		ThemeOcean,
		ThemeNeon,
		ThemeForest,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to midnight.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMidnight
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// layerStyles colors each canvas layer with the theme.
func (t Theme) layerStyles() [numLayers]lipgloss.Style {
	var s [numLayers]lipgloss.Style
	s[LayerBox] = lipgloss.NewStyle().Foreground(t.Box)
	s[LayerLine] = lipgloss.NewStyle().Foreground(t.Lines)
	s[LayerDot] = lipgloss.NewStyle().Foreground(t.Dots).Bold(true)
	return s
}
