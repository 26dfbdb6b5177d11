package viz

import (
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/plexus/internal/field"
)

// Theme defines color scheme for the TUI and the field drawn behind it.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color

	Point   field.Color
	Link    field.Color
	Pointer field.Color

	// AlphaGain scales alpha before blending; terminal cells cannot show
	// fractional coverage, so faint lines need a boost to stay visible.
	AlphaGain float64

	cache *styleCache
}

type styleCache struct {
	mu     sync.Mutex
	styles map[string]*lipgloss.Style
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:       "neon",
		Primary:    lipgloss.Color("#00ffff"), // Cyan
		Secondary:  lipgloss.Color("#a855f7"), // Purple
		Accent:     lipgloss.Color("#ec4899"), // Pink
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		Point:      field.RGBA(0, 255, 255, 0.5),
		Link:       field.RGBA(0, 255, 255, 1),
		Pointer:    field.RGBA(168, 85, 247, 1),
		AlphaGain:  2.5,
		cache:      newStyleCache(),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Point:      field.RGBA(0, 255, 0, 0.5),
		Link:       field.RGBA(0, 204, 0, 1),
		Pointer:    field.RGBA(136, 255, 136, 1),
		AlphaGain:  2.5,
		cache:      newStyleCache(),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Point:      field.RGBA(255, 255, 255, 0.5),
		Link:       field.RGBA(204, 204, 204, 1),
		Pointer:    field.RGBA(0, 136, 255, 1),
		AlphaGain:  2,
		cache:      newStyleCache(),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Point:      field.RGBA(0, 168, 204, 0.5),
		Link:       field.RGBA(0, 119, 190, 1),
		Pointer:    field.RGBA(255, 215, 0, 1),
		AlphaGain:  3,
		cache:      newStyleCache(),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Point:      field.RGBA(254, 202, 87, 0.5),
		Link:       field.RGBA(255, 107, 107, 1),
		Pointer:    field.RGBA(255, 159, 243, 1),
		AlphaGain:  2.5,
		cache:      newStyleCache(),
	}

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

func newStyleCache() *styleCache {
	return &styleCache{styles: make(map[string]*lipgloss.Style)}
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeNeon
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Blend mixes c over the theme background by c's alpha times AlphaGain and
// returns the result as #rrggbb.
func (t Theme) Blend(c field.Color) string {
	br, bg, bb := parseHex(string(t.Background))
	k := math.Min(1, math.Max(0, c.A*t.AlphaGain))
	mix := func(from int, to uint8) int {
		return int(math.Round(float64(from) + (float64(to)-float64(from))*k))
	}
	return hexColor(mix(br, c.R), mix(bg, c.G), mix(bb, c.B))
}

func (t Theme) dotStyle(c field.Color) *lipgloss.Style {
	// quantize alpha so the cache stays small and adjacent cells share styles
	c.A = math.Round(c.A*32) / 32
	key := fmt.Sprintf("%d,%d,%d,%.5f", c.R, c.G, c.B, c.A)

	if t.cache == nil {
		s := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Blend(c)))
		return &s
	}
	t.cache.mu.Lock()
	defer t.cache.mu.Unlock()
	if s, ok := t.cache.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Blend(c)))
	t.cache.styles[key] = &s
	return &s
}
