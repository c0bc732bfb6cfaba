// Package theme resolves mood theme names to terminal color palettes.
package theme

// Palette defines the semantic color roles a theme provides. The TUI
// depends on these roles rather than theme-specific literals.
type Palette struct {
	Name       string `toml:"name"`
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Accent     string `toml:"accent"`
	Muted      string `toml:"muted"`
	Border     string `toml:"border"`
	Success    string `toml:"success"`
	Warning    string `toml:"warning"`
	Error      string `toml:"error"`
}

// DefaultTheme is the final fallback applied when nothing else resolves.
const DefaultTheme = "Default Dark+"

func builtinPalettes() []Palette {
	return []Palette{
		{
			Name:       "Default Dark+",
			Background: "#1e1e1e",
			Foreground: "#d4d4d4",
			Accent:     "#569cd6",
			Muted:      "#6e6e6e",
			Border:     "#3c3c3c",
			Success:    "#6a9955",
			Warning:    "#dcdcaa",
			Error:      "#f44747",
		},
		{
			Name:       "Default Light+",
			Background: "#ffffff",
			Foreground: "#000000",
			Accent:     "#0000ff",
			Muted:      "#767676",
			Border:     "#d0d0d0",
			Success:    "#008000",
			Warning:    "#795e26",
			Error:      "#cd3131",
		},
		{
			Name:       "Monokai",
			Background: "#272822",
			Foreground: "#f8f8f2",
			Accent:     "#66d9ef",
			Muted:      "#75715e",
			Border:     "#49483e",
			Success:    "#a6e22e",
			Warning:    "#e6db74",
			Error:      "#f92672",
		},
		{
			Name:       "Solarized Dark",
			Background: "#002b36",
			Foreground: "#839496",
			Accent:     "#268bd2",
			Muted:      "#586e75",
			Border:     "#073642",
			Success:    "#859900",
			Warning:    "#b58900",
			Error:      "#dc322f",
		},
		{
			Name:       "Solarized Light",
			Background: "#fdf6e3",
			Foreground: "#657b83",
			Accent:     "#268bd2",
			Muted:      "#93a1a1",
			Border:     "#eee8d5",
			Success:    "#859900",
			Warning:    "#b58900",
			Error:      "#dc322f",
		},
		{
			Name:       "Nord",
			Background: "#2e3440",
			Foreground: "#d8dee9",
			Accent:     "#88c0d0",
			Muted:      "#4c566a",
			Border:     "#3b4252",
			Success:    "#a3be8c",
			Warning:    "#ebcb8b",
			Error:      "#bf616a",
		},
		{
			Name:       "Night Owl",
			Background: "#011627",
			Foreground: "#d6deeb",
			Accent:     "#82aaff",
			Muted:      "#5f7e97",
			Border:     "#122d42",
			Success:    "#addb67",
			Warning:    "#ecc48d",
			Error:      "#ef5350",
		},
		{
			Name:       "Dracula",
			Background: "#282a36",
			Foreground: "#f8f8f2",
			Accent:     "#bd93f9",
			Muted:      "#6272a4",
			Border:     "#44475a",
			Success:    "#50fa7b",
			Warning:    "#f1fa8c",
			Error:      "#ff5555",
		},
		{
			Name:       "Atom One Dark",
			Background: "#282c34",
			Foreground: "#abb2bf",
			Accent:     "#61afef",
			Muted:      "#5c6370",
			Border:     "#3e4451",
			Success:    "#98c379",
			Warning:    "#e5c07b",
			Error:      "#e06c75",
		},
	}
}

// fallbackTable maps a normalized (lowercased) requested theme name to
// an ordered list of substitutes tried until one is available. Mood
// themes are data and frequently name third-party palettes that are
// not installed; silent failure loses the visual feedback and hard
// failure breaks mood switching, so degradation walks this chain.
var fallbackTable = map[string][]string{
	"one dark pro":  {"One Dark Pro", "Atom One Dark", "Default Dark+"},
	"dracula soft":  {"Dracula", "Dracula Soft", "Default Dark+"},
	"synthwave '84": {"SynthWave '84", "Synthwave", "Default Dark+"},
	"night owl":     {"Night Owl", "Default Dark+"},
	"nord":          {"Nord", "Arctic", "Default Dark+"},
}
