package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Miner states used for badges and the tray line.
const (
	stateOnline  = "online"
	stateOffline = "offline"
	stateError   = "error"
	stateWaiting = "waiting"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, command bar, status line
	SurfaceAlt string // Unfocused panes
	FocusBg    string // Focused pane

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string

	// StateColors maps a miner state to its badge color.
	StateColors map[string]string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

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

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		stateColors: t.StateColors,
		background:  t.Background,
		muted:       t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	Header lipgloss.Style
	Logo   lipgloss.Style

	stateColors map[string]string
	background  string
	muted       string
}

// StateBadge returns a filled badge style for the given miner state.
func (s Styles) StateBadge(minerState string) lipgloss.Style {
	color := s.stateColors[minerState]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(color)).
		Padding(0, 1)
}

// StateText returns a foreground-only style for the given miner state.
func (s Styles) StateText(minerState string) lipgloss.Style {
	color := s.stateColors[minerState]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// WithBackground returns a copy of Styles with every text style painted on
// bgColor, so adjacent segments do not leave gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)
	out := s
	out.Text = s.Text.Background(bg)
	out.MutedText = s.MutedText.Background(bg)
	out.FaintText = s.FaintText.Background(bg)
	out.AccentText = s.AccentText.Background(bg)
	out.SuccessText = s.SuccessText.Background(bg)
	out.WarningText = s.WarningText.Background(bg)
	out.DangerText = s.DangerText.Background(bg)
	out.InfoText = s.InfoText.Background(bg)
	out.Header = s.Header.Background(bg)
	out.Logo = s.Logo.Background(bg)
	return out
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Gruvbox":  gruvboxTheme(),
	"Ember":    emberTheme(),
}

var themeOrder = []string{"Nightfox", "Gruvbox", "Ember"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return append([]string(nil), themeOrder...)
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name: "Nightfox",

		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1
		SurfaceAlt: "#212e3f", // bg2
		FocusBg:    "#29394f", // bg3

		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue

		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan

		StateColors: map[string]string{
			stateOnline:  "#81b29a", // green
			stateOffline: "#c94f6d", // red
			stateError:   "#f4a261", // orange
			stateWaiting: "#738091", // comment
		},
	}
}

func gruvboxTheme() Theme {
	// Gruvbox dark palette: https://github.com/morhetz/gruvbox
	return Theme{
		Name: "Gruvbox",

		Background: "#1d2021", // bg0_h
		Surface:    "#282828", // bg0
		SurfaceAlt: "#32302f", // bg0_s
		FocusBg:    "#3c3836", // bg1

		SelectionBg:   "#504945", // bg2
		SelectionText: "#fbf1c7", // fg0

		Border:      "#665c54", // bg3
		BorderFocus: "#fabd2f", // yellow

		Text:    "#ebdbb2", // fg
		Muted:   "#a89984", // fg4
		Faint:   "#928374", // gray
		Accent:  "#fabd2f", // yellow
		Success: "#b8bb26", // green
		Warning: "#fe8019", // orange
		Danger:  "#fb4934", // red
		Info:    "#83a598", // blue

		StateColors: map[string]string{
			stateOnline:  "#b8bb26", // green
			stateOffline: "#fb4934", // red
			stateError:   "#fe8019", // orange
			stateWaiting: "#928374", // gray
		},
	}
}

// emberTheme is a high-contrast orange on zinc palette built from Tailwind's
// zinc and orange scales.
func emberTheme() Theme {
	return Theme{
		Name: "Ember",

		Background: "#09090b", // zinc-950
		Surface:    "#18181b", // zinc-900
		SurfaceAlt: "#1f1f23",
		FocusBg:    "#27272a", // zinc-800

		SelectionBg:   "#c2410c", // orange-700
		SelectionText: "#fafafa", // zinc-50

		Border:      "#3f3f46", // zinc-700
		BorderFocus: "#f97316", // orange-500

		Text:    "#e4e4e7", // zinc-200
		Muted:   "#a1a1aa", // zinc-400
		Faint:   "#71717a", // zinc-500
		Accent:  "#fb923c", // orange-400
		Success: "#4ade80", // green-400
		Warning: "#facc15", // yellow-400
		Danger:  "#f87171", // red-400
		Info:    "#38bdf8", // sky-400

		StateColors: map[string]string{
			stateOnline:  "#4ade80", // green-400
			stateOffline: "#f87171", // red-400
			stateError:   "#facc15", // yellow-400
			stateWaiting: "#71717a", // zinc-500
		},
	}
}
