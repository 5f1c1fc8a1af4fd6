package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a Theme resolved into lipgloss colors, plus the text colors
// that stay readable on the accent and warning fills.
type Palette struct {
	Bg          lipgloss.Color
	BgHighlight lipgloss.Color
	BgSelection lipgloss.Color
	Fg          lipgloss.Color
	FgMuted     lipgloss.Color
	Accent      lipgloss.Color
	Warning     lipgloss.Color

	TextOnAccent  lipgloss.Color
	TextOnWarning lipgloss.Color

	Modal ModalColors

	light bool
	bg    string
	fg    string
}

// ModalColors are the colors of modal dialogs.
type ModalColors struct {
	Bg          lipgloss.Color
	Border      lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Highlight   lipgloss.AdaptiveColor
	Panel       lipgloss.AdaptiveColor
	ReverseText lipgloss.AdaptiveColor
	Backdrop    lipgloss.Color
}

// BlockColors are the colors of one location's session blocks.
type BlockColors struct {
	Bg     lipgloss.Color // first row of a block
	BgAlt  lipgloss.Color // continuation rows
	Fg     lipgloss.Color
	Accent lipgloss.Color // the location color itself
}

// NewPalette resolves t. A nil theme uses the default one.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}
	m := t.Modal()
	panel := coalesce(t.BgSelection, t.BgHighlight, t.Bg)

	return &Palette{
		Bg:          lipgloss.Color(t.Bg),
		BgHighlight: lipgloss.Color(t.BgHighlight),
		BgSelection: lipgloss.Color(t.BgSelection),
		Fg:          lipgloss.Color(t.Fg),
		FgMuted:     lipgloss.Color(t.FgMuted),
		Accent:      lipgloss.Color(t.Accent),
		Warning:     lipgloss.Color(t.Warning),

		TextOnAccent:  lipgloss.Color(readableOn(t.Accent, t.Bg, t.Fg)),
		TextOnWarning: lipgloss.Color(readableOn(t.Warning, t.Bg, t.Fg)),

		Modal: ModalColors{
			Bg:          lipgloss.Color(m.BaseBg),
			Border:      same(m.ModalBorder),
			Text:        same(m.TextPrimary),
			Muted:       same(m.TextMuted),
			Highlight:   same(m.Highlight),
			Panel:       same(panel),
			ReverseText: lipgloss.AdaptiveColor{Dark: m.BaseBg, Light: m.TextPrimary},
			Backdrop:    lipgloss.Color(panel),
		},

		light: luminance(t.Bg) > 0.55,
		bg:    t.Bg,
		fg:    t.Fg,
	}
}

// Block derives the block colors for a location color such as "#6366f1".
// Dark themes darken the location color, light themes wash it out towards
// the background. Malformed colors fall back to the accent.
func (p *Palette) Block(locationColor string) BlockColors {
	accent := locationColor
	if _, err := colorful.Hex(accent); err != nil {
		accent = string(p.Accent)
	}

	bg := darken(accent)
	if p.light {
		bg = mix(accent, p.bg, 0.75)
	}
	return BlockColors{
		Bg:     lipgloss.Color(bg),
		BgAlt:  lipgloss.Color(continuationShade(bg, p.light)),
		Fg:     lipgloss.Color(readableOn(bg, p.fg, p.bg)),
		Accent: lipgloss.Color(accent),
	}
}

func same(hex string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Dark: hex, Light: hex}
}

// darken halves each channel, keeping at least 40/255 so blocks stay
// visible on near-black backgrounds.
func darken(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	const floor = 40.0 / 255
	return colorful.Color{
		R: max(c.R*0.5, floor),
		G: max(c.G*0.5, floor),
		B: max(c.B*0.5, floor),
	}.Hex()
}

// continuationShade is the fill of a block's rows after the first.
func continuationShade(hex string, light bool) string {
	if light {
		return mix(hex, "#000000", 0.10)
	}
	return mix(hex, "#ffffff", 0.30)
}

// mix blends a towards b by t in RGB. Unparseable input returns a.
func mix(a, b string, t float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	return ca.BlendRgb(cb, min(max(t, 0), 1)).Clamped().Hex()
}

// readableOn picks whichever of light and dark has more contrast on bg.
func readableOn(bg, light, dark string) string {
	if contrast(bg, light) >= contrast(bg, dark) {
		return light
	}
	return dark
}

func contrast(a, b string) float64 {
	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// luminance is the WCAG relative luminance of hex, or 0 if it is malformed.
func luminance(hex string) float64 {
	c, err := colorful.Hex(hex)
	if err != nil {
		return 0
	}
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
