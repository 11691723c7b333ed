package colors

// Default background colors for the built-in themes.
const (
	DefaultBackgroundDark  = "#282A36"
	DefaultBackgroundLight = "#FFFFFF"
)

// FallbackGray is used when no resolution tier produces a color. It is a
// safety net, not a theme choice; hitting it logs a warning.
const FallbackGray = "#808080"

// namedColors is the accepted web color palette.
var namedColors = map[string]string{
	"red":     "#FF0000",
	"green":   "#008000",
	"blue":    "#0000FF",
	"yellow":  "#FFFF00",
	"cyan":    "#00FFFF",
	"magenta": "#FF00FF",
	"black":   "#000000",
	"white":   "#FFFFFF",
	"gray":    "#808080",
	"grey":    "#808080",
	"orange":  "#FFA500",
	"purple":  "#800080",
	"brown":   "#A52A2A",

	"lime":      "#00FF00",
	"navy":      "#000080",
	"maroon":    "#800000",
	"olive":     "#808000",
	"aqua":      "#00FFFF",
	"fuchsia":   "#FF00FF",
	"silver":    "#C0C0C0",
	"teal":      "#008080",
	"pink":      "#FFC0CB",
	"gold":      "#FFD700",
	"indigo":    "#4B0082",
	"violet":    "#EE82EE",
	"turquoise": "#40E0D0",
	"coral":     "#FF7F50",
	"salmon":    "#FA8072",
	"khaki":     "#F0E68C",
	"plum":      "#DDA0DD",
	"orchid":    "#DA70D6",
	"tan":       "#D2B48C",
	"beige":     "#F5F5DC",
	"mint":      "#98FB98",
	"lavender":  "#E6E6FA",
	"peach":     "#FFCBA4",
}

// Theme bundles the colors a render falls back to when nets carry no
// explicit assignment.
type Theme struct {
	Name       string
	Background string
	Copper     string // default copper color for unassigned nets
	Silkscreen string
	Outline    string
}

var themes = map[string]Theme{
	"dark": {
		Name:       "dark",
		Background: DefaultBackgroundDark,
		Copper:     "#C83434",
		Silkscreen: "#E8ECF0",
		Outline:    "#D0C5A3",
	},
	"light": {
		Name:       "light",
		Background: DefaultBackgroundLight,
		Copper:     "#C83434",
		Silkscreen: "#20242C",
		Outline:    "#72614B",
	},
}

// ThemeByName looks up a built-in theme.
func ThemeByName(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

// ThemeNames returns the built-in theme names, sorted.
func ThemeNames() []string {
	return []string{"dark", "light"}
}
