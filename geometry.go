package logoemoji

import (
	"image"
	"math"

	"github.com/logoemoji/logoemoji/utils"
)

// Crop is the square source window sampled into the output square.
// X and Y are the top-left corner in source pixel coordinates; the window
// may extend past the right or bottom image edge when the zoom level makes
// it larger than the image.
type Crop struct {
	X, Y float64
	Side float64
}

// ResolveCrop maps the normalized pan/zoom controls onto a source window
// of an image with the given dimensions.
//
// The zoom is inverted: the crop side is the shorter image side divided by
// zoom/100, so a higher zoom selects a smaller window. Pan is a percentage of
// the free travel along each axis. When the window is larger than the image
// on an axis there is no travel and the window is pinned to the origin.
func ResolveCrop(w, h int, panX, panY float64, zoom int) Crop {
	w, h = utils.Max(w, 1), utils.Max(h, 1)
	panX = clampFloat(panX, MinPan, MaxPan, 50)
	panY = clampFloat(panY, MinPan, MaxPan, 50)
	zoom = utils.Clamp(zoom, MinZoom, MaxZoom)

	minSide := float64(utils.Min(w, h))
	side := minSide / (float64(zoom) / 100)

	maxOffsetX := float64(w) - side
	maxOffsetY := float64(h) - side

	return Crop{
		X:    panOffset(panX, maxOffsetX),
		Y:    panOffset(panY, maxOffsetY),
		Side: side,
	}
}

// panOffset returns the window offset for a pan percentage along an axis
// with maxOffset pixels of travel.
func panOffset(pan, maxOffset float64) float64 {
	if maxOffset <= 0 {
		return 0
	}
	return utils.Clamp(pan/100*maxOffset, 0, maxOffset)
}

// Bounds returns the smallest integer rectangle covering the window.
func (c Crop) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(c.X)),
		int(math.Floor(c.Y)),
		int(math.Ceil(c.X+c.Side)),
		int(math.Ceil(c.Y+c.Side)),
	)
}

// Within reports whether the window lies entirely inside a w×h image.
func (c Crop) Within(w, h int) bool {
	return c.X >= 0 && c.Y >= 0 &&
		c.X+c.Side <= float64(w) && c.Y+c.Side <= float64(h)
}

// Scale returns the factor from source pixels to output pixels for an
// output square of the given side.
func (c Crop) Scale(size int) float64 {
	return float64(size) / c.Side
}
