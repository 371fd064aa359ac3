package termcolor

import (
	"math"

	"github.com/phyten/delimscan/internal/colorutil"
	"github.com/phyten/delimscan/internal/model"
)

// lightBackground approximates the page color of common light themes.
var lightBackground = colorutil.RGB{R: 249, G: 250, B: 251}

type modeColors struct {
	basic     int
	dark256   int
	light256  int
	darkTrue  string
	lightTrue string
}

var modePalette = map[model.ScanMode]modeColors{
	model.ScanModeFlat:     {basic: 6, dark256: 80, light256: 30, darkTrue: "#22d3ee", lightTrue: "#0891b2"},
	model.ScanModeEscaped:  {basic: 5, dark256: 177, light256: 127, darkTrue: "#c084fc", lightTrue: "#9333ea"},
	model.ScanModeBalanced: {basic: 2, dark256: 114, light256: 28, darkTrue: "#4ade80", lightTrue: "#16a34a"},
	model.ScanModeNested:   {basic: 3, dark256: 221, light256: 130, darkTrue: "#facc15", lightTrue: "#a16207"},
}

func HeaderStyle() Style {
	return Style{Bold: true, Underline: true}
}

// DelimStyle dims the open/close columns so the region text stands out.
func DelimStyle() Style {
	return Style{Dim: true}
}

func ErrorStyle() Style {
	red := 1
	return Style{Bold: true, FGBasic: &red}
}

// ModeStyle colors the MODE column. Light truecolor shades are pushed to
// WCAG AA contrast against a light background.
func ModeStyle(mode model.ScanMode, scheme Scheme, profile Profile) Style {
	c, ok := modePalette[mode]
	if !ok {
		return Style{}
	}
	light := scheme == SchemeLight
	switch profile {
	case ProfileTrueColor:
		hex := c.darkTrue
		if light {
			hex = c.lightTrue
		}
		rgb, err := colorutil.ParseHex(hex)
		if err != nil {
			return Style{}
		}
		if light {
			rgb = colorutil.EnsureContrast(rgb, lightBackground, 4.5)
		}
		v := [3]uint8{rgb.R, rgb.G, rgb.B}
		return Style{FGTrue: &v}
	case ProfileANSI256:
		idx := c.dark256
		if light {
			idx = c.light256
		}
		return Style{FG256: &idx}
	default:
		basic := c.basic
		return Style{FGBasic: &basic, Bold: light}
	}
}

// LengthStyle shades the LENGTH column from green (short) to red (at or
// beyond maxLen bytes).
func LengthStyle(length int, profile Profile, maxLen float64) Style {
	if length < 0 {
		length = 0
	}
	switch profile {
	case ProfileTrueColor:
		r, g, b := gradientRGB(length, maxLen)
		rgb := [3]uint8{r, g, b}
		return Style{FGTrue: &rgb}
	case ProfileANSI256:
		r, g, b := gradientRGB(length, maxLen)
		idx := rgbToANSI256(r, g, b)
		return Style{FG256: &idx}
	default:
		color := lengthBucketColor(length)
		return Style{FGBasic: &color}
	}
}

func gradientRGB(n int, max float64) (uint8, uint8, uint8) {
	if max <= 0 {
		max = 200
	}
	t := math.Max(0, math.Min(1, float64(n)/max))
	if t < 0.5 {
		return uint8(math.Round(255 * t / 0.5)), 255, 0
	}
	return 255, uint8(math.Round(255 * (1 - (t-0.5)/0.5))), 0
}

func lengthBucketColor(n int) int {
	switch {
	case n <= 16:
		return 2
	case n <= 80:
		return 3
	case n <= 400:
		return 5
	default:
		return 1
	}
}

func rgbToANSI256(r, g, b uint8) int {
	if r == g && g == b {
		if r < 8 {
			return 16
		}
		if r > 248 {
			return 231
		}
		return 232 + (int(r)-8)*24/247
	}
	rr := int(r) * 5 / 255
	gg := int(g) * 5 / 255
	bb := int(b) * 5 / 255
	return 16 + 36*rr + 6*gg + bb
}
