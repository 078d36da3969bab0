package heatfield

import (
	"image/color"
	"math"
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Color converts to the standard library color type (non-premultiplied).
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// NRGBA returns the color as non-premultiplied 8-bit channels, which is
// what the raster renderer writes directly.
func (c RGBA) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

// Thermal ramp shape. The lower segment sweeps hue from cold to hot; the
// upper segment brightens the hot color toward white.
const (
	thermalColdHue = 240.0 // blue
	thermalHotHue  = 0.0   // red
	thermalSplit   = 0.7   // intensity where the hue sweep ends

	// thermalAlphaFloor keeps faint coverage visible: any nonzero
	// intensity renders with at least this opacity.
	thermalAlphaFloor = 0.2
)

// ThermalColor maps a normalized intensity in [0, 1] to a heatmap color.
// It is a pure function of intensity: zero is exactly transparent, any
// nonzero intensity has a visible alpha floor, and alpha increases
// monotonically with intensity.
func ThermalColor(intensity float64) RGBA {
	if intensity <= 0 {
		return RGBA{}
	}
	if intensity > 1 {
		intensity = 1
	}

	var c RGBA
	if intensity <= thermalSplit {
		// Cold-to-hot hue sweep at constant saturation/lightness.
		t := intensity / thermalSplit
		hue := thermalColdHue + (thermalHotHue-thermalColdHue)*t
		c = hslColor(hue, 1.0, 0.5)
	} else {
		// Hot color brightening toward white.
		t := (intensity - thermalSplit) / (1 - thermalSplit)
		c = hslColor(thermalHotHue, 1.0, 0.5+0.5*t)
	}

	c.A = thermalAlphaFloor + (1-thermalAlphaFloor)*intensity
	return c
}

// hslColor converts HSL to RGBA. h is hue in degrees [0, 360), s is
// saturation [0, 1], l is lightness [0, 1]. Alpha is 1.
func hslColor(h, s, l float64) RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h*6, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 1.0/6:
		r, g, b = c, x, 0
	case h < 2.0/6:
		r, g, b = x, c, 0
	case h < 3.0/6:
		r, g, b = 0, c, x
	case h < 4.0/6:
		r, g, b = 0, x, c
	case h < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBA{R: r + m, G: g + m, B: b + m, A: 1}
}
