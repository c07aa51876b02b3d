package logoemoji

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/logoemoji/logoemoji/imop"
	"github.com/logoemoji/logoemoji/utils"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Overlay proportions, relative to the side of the output square.
const (
	overlayFontRatio     = 0.2
	overlayBaselineRatio = 0.05
	overlayStrokeRatio   = 0.04
)

var (
	overlayFill    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	overlayOutline = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xcc}
)

var (
	fontOnce sync.Once
	fontFace *opentype.Font
	fontErr  error
)

func overlayFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		fontFace, fontErr = opentype.Parse(goregular.TTF)
	})
	return fontFace, fontErr
}

// DrawOverlay draws text as a white label with a dark outline, centered
// horizontally and sitting on a baseline 5% above the bottom edge.
// The outline is composited first and the fill on top of it.
// An empty text leaves the image untouched.
func DrawOverlay(img *image.NRGBA, text string) {
	if text == "" {
		return
	}
	b := img.Bounds()
	side := float64(utils.Min(b.Dx(), b.Dy()))
	if side < 1 {
		return
	}

	fnt, err := overlayFont()
	if err != nil {
		logger.WithError(err).Warn("overlay font unavailable, skipping text")
		return
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    math.Max(1, math.Floor(overlayFontRatio*side)),
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		logger.WithError(err).Warn("could not create overlay font face")
		return
	}
	defer face.Close()

	fill := image.NewAlpha(b)
	d := &font.Drawer{
		Dst:  fill,
		Src:  image.Opaque,
		Face: face,
	}
	adv := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: toFixed(float64(b.Min.X)+side/2) - adv/2,
		Y: toFixed(float64(b.Min.Y) + side - overlayBaselineRatio*side),
	}
	box, _ := font.BoundString(face, text)
	box = box.Add(d.Dot)
	d.DrawString(text)

	radius := math.Max(1, overlayStrokeRatio*side/2)
	area := image.Rect(
		box.Min.X.Floor(), box.Min.Y.Floor(),
		box.Max.X.Ceil(), box.Max.Y.Ceil(),
	).Inset(-int(math.Ceil(radius))).Intersect(b)
	if area.Empty() {
		return
	}
	outline := dilate(fill, area, radius)

	op := imop.InitOp()
	bmp := imop.WrapBitmap(img)
	op.Draw(bmp, imop.Layer(overlayOutline, outline), img)
	op.Draw(bmp, imop.Layer(overlayFill, fill.SubImage(area).(*image.Alpha)), img)
}

// dilate grows the coverage of mask by a disk of the given radius and
// returns the result restricted to area.
func dilate(mask *image.Alpha, area image.Rectangle, radius float64) *image.Alpha {
	r := int(math.Ceil(radius))
	var offsets []image.Point
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if float64(dx*dx+dy*dy) <= radius*radius {
				offsets = append(offsets, image.Pt(dx, dy))
			}
		}
	}

	mb := mask.Bounds()
	out := image.NewAlpha(area)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			var v uint8
			for _, o := range offsets {
				p := image.Pt(x+o.X, y+o.Y)
				if !p.In(mb) {
					continue
				}
				if a := mask.Pix[mask.PixOffset(p.X, p.Y)]; a > v {
					v = a
					if v == 0xff {
						break
					}
				}
			}
			out.Pix[out.PixOffset(x, y)] = v
		}
	}
	return out
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
