package styles

import (
	"image/color"
	"os"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/up/internal/config"
)

// Theme defines the color palette for UI components
type Theme struct {
	Primary color.Color // prompt labels, table borders
	Accent  color.Color // cursor and selected items
	Success color.Color
	Error   color.Color
	Muted   color.Color // disabled items, hints
	Normal  color.Color
	Info    color.Color
	Warning color.Color
}

// themeFamily groups light and dark variants of a theme
type themeFamily struct {
	Light *Theme // nil if no light variant
	Dark  *Theme // nil if no dark variant
}

func palette(primary, accent, success, errc, muted, normal, info, warning string) Theme {
	return Theme{
		Primary: lipgloss.Color(primary),
		Accent:  lipgloss.Color(accent),
		Success: lipgloss.Color(success),
		Error:   lipgloss.Color(errc),
		Muted:   lipgloss.Color(muted),
		Normal:  lipgloss.Color(normal),
		Info:    lipgloss.Color(info),
		Warning: lipgloss.Color(warning),
	}
}

var (
	DefaultTheme = palette("62", "212", "82", "196", "240", "252", "244", "214")
	DraculaTheme = palette("#bd93f9", "#ff79c6", "#50fa7b", "#ff5555", "#6272a4", "#f8f8f2", "#8be9fd", "#ffb86c")

	NordTheme      = palette("#88c0d0", "#b48ead", "#a3be8c", "#bf616a", "#4c566a", "#eceff4", "#81a1c1", "#ebcb8b")
	NordLightTheme = palette("#5e81ac", "#b48ead", "#a3be8c", "#bf616a", "#9a9a9a", "#2e3440", "#81a1c1", "#d08770")

	GruvboxTheme      = palette("#83a598", "#d3869b", "#b8bb26", "#fb4934", "#665c54", "#ebdbb2", "#8ec07c", "#fabd2f")
	GruvboxLightTheme = palette("#076678", "#8f3f71", "#79740e", "#9d0006", "#928374", "#3c3836", "#427b58", "#b57614")

	CatppuccinMochaTheme = palette("#89b4fa", "#f5c2e7", "#a6e3a1", "#f38ba8", "#6c7086", "#cdd6f4", "#94e2d5", "#fab387")
	CatppuccinLatteTheme = palette("#1e66f5", "#ea76cb", "#40a02b", "#d20f39", "#9ca0b0", "#4c4f69", "#179299", "#fe640b")

	// NoneTheme renders without colors; bold and underline are kept.
	NoneTheme = Theme{
		Primary: lipgloss.NoColor{}, Accent: lipgloss.NoColor{},
		Success: lipgloss.NoColor{}, Error: lipgloss.NoColor{},
		Muted: lipgloss.NoColor{}, Normal: lipgloss.NoColor{},
		Info: lipgloss.NoColor{}, Warning: lipgloss.NoColor{},
	}
)

// themeFamilies is keyed by config.ValidThemeNames.
var themeFamilies = map[string]themeFamily{
	"none":       {Light: &NoneTheme, Dark: &NoneTheme},
	"default":    {Dark: &DefaultTheme},
	"dracula":    {Dark: &DraculaTheme},
	"nord":       {Light: &NordLightTheme, Dark: &NordTheme},
	"gruvbox":    {Light: &GruvboxLightTheme, Dark: &GruvboxTheme},
	"catppuccin": {Light: &CatppuccinLatteTheme, Dark: &CatppuccinMochaTheme},
}

var currentTheme = DefaultTheme

// Current returns the current theme
func Current() Theme {
	return currentTheme
}

// Init selects the theme from config, applies color overrides and
// rebuilds the shared styles.
func Init(cfg config.ThemeConfig) {
	dark := true
	if cfg.Mode == "light" {
		dark = false
	} else if cfg.Mode != "dark" {
		dark = lipgloss.HasDarkBackground(os.Stdin, os.Stderr)
	}
	theme := selectTheme(cfg.Name, dark)

	overrides := []struct {
		value  string
		target *color.Color
	}{
		{cfg.Primary, &theme.Primary},
		{cfg.Accent, &theme.Accent},
		{cfg.Success, &theme.Success},
		{cfg.Error, &theme.Error},
		{cfg.Muted, &theme.Muted},
		{cfg.Normal, &theme.Normal},
		{cfg.Info, &theme.Info},
		{cfg.Warning, &theme.Warning},
	}
	for _, o := range overrides {
		if o.value != "" {
			*o.target = lipgloss.Color(o.value)
		}
	}

	currentTheme = theme
	applyTheme(theme)
	SetNerdfont(cfg.Nerdfont)
}

// selectTheme picks the variant of the named family for the background.
// Unknown names fall back to the default family; a missing variant falls
// back to the other one.
func selectTheme(name string, dark bool) Theme {
	family, ok := themeFamilies[name]
	if !ok {
		family = themeFamilies["default"]
	}
	first, second := family.Dark, family.Light
	if !dark {
		first, second = second, first
	}
	if first != nil {
		return *first
	}
	if second != nil {
		return *second
	}
	return DefaultTheme
}
