package logoemoji

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// AdjustColors applies brightness, contrast and the named filter to every
// pixel, in that order, and returns the adjusted image. Alpha is preserved.
//
// With brightness 1, contrast 1 and FilterNone the result is identical to
// the input.
func AdjustColors(img *image.NRGBA, brightness, contrast float64, f Filter) *image.NRGBA {
	brightness = clampFloat(brightness, MinBrightness, MaxBrightness, 1)
	contrast = clampFloat(contrast, MinContrast, MaxContrast, 1)

	if brightness == 1 && contrast == 1 && f != FilterGrayscale && f != FilterSepia {
		return imaging.Clone(img)
	}

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := adjustPixel(c.R, c.G, c.B, brightness, contrast, f)
		return color.NRGBA{R: r, G: g, B: b, A: c.A}
	})
}

// adjustPixel runs the fixed brightness → contrast → filter chain on one pixel.
func adjustPixel(r8, g8, b8 uint8, brightness, contrast float64, f Filter) (uint8, uint8, uint8) {
	tone := func(c uint8) float64 {
		v := clamp01(float64(c) / 255 * brightness)
		return clamp01((v-0.5)*contrast + 0.5)
	}
	r, g, b := f.apply(tone(r8), tone(g8), tone(b8))
	return to8(r), to8(g), to8(b)
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
