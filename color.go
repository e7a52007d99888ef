package sketch

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a linear-space (not gamma-encoded) RGBA color with float32
// components, nominally in [0, 1]. This is the color type flowing
// through the pixel codec and the draw pipeline.
type Color struct {
	R, G, B, A float32
}

// RGB creates an opaque linear color from RGB components.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA creates a linear color from RGBA components.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray linear color.
func Gray(v float32) Color {
	return Color{R: v, G: v, B: v, A: 1}
}

// White and Black are the render-state defaults for fill and stroke.
var (
	White = Color{R: 1, G: 1, B: 1, A: 1}
	Black = Color{R: 0, G: 0, B: 0, A: 1}
)

// Opaque reports whether the color's alpha is fully opaque.
func (c Color) Opaque() bool { return c.A >= 1 }

// Array returns the components as an r,g,b,a array for mesh builders.
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// FromColor converts a standard color.Color (sRGB-encoded) to a linear
// Color.
func FromColor(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Color{}
	}
	// RGBA returns alpha-premultiplied values.
	af := float32(a) / 65535
	return Color{
		R: srgbToLinear(float32(r) / 65535 / af),
		G: srgbToLinear(float32(g) / 65535 / af),
		B: srgbToLinear(float32(b) / 65535 / af),
		A: af,
	}
}

// Color converts to the standard color.Color interface, applying sRGB
// encoding.
func (c Color) Color() color.Color {
	return color.NRGBA{
		R: quantize(linearToSRGB(c.R)),
		G: quantize(linearToSRGB(c.G)),
		B: quantize(linearToSRGB(c.B)),
		A: quantize(c.A),
	}
}

// quantize maps [0,1] to [0,255] with clamping and rounding.
func quantize(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// srgbToLinear applies the sRGB electro-optical transfer function.
func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// linearToSRGB applies the inverse sRGB transfer function.
func linearToSRGB(v float32) float32 {
	if v <= 0 {
		return 0
	}
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}
