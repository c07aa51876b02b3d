// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source,
// and it does so on premultiplied colors. This package works on straight
// (non-premultiplied) alpha, which is the representation used across the emoji pipeline.
//
// It is used to layer the outline and the fill of the text overlay
// over the rendered emoji.
package imop

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// Bitmap holds the result of a composition.
type Bitmap struct {
	Img *image.NRGBA
}

// Composite holds the currently active composition operation.
type Composite struct {
	current string
	ops     []string
}

// NewBitmap allocates a transparent bitmap covering rect.
func NewBitmap(rect image.Rectangle) *Bitmap {
	return &Bitmap{
		Img: image.NewNRGBA(rect),
	}
}

// WrapBitmap uses img as the composition target, so that a composition
// can be done in place over its backdrop.
func WrapBitmap(img *image.NRGBA) *Bitmap {
	return &Bitmap{Img: img}
}

// InitOp initializes a new composite with SrcOver as the active operation.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		ops: []string{
			Clear,
			Copy,
			Dst,
			SrcOver,
			DstOver,
			SrcIn,
			DstIn,
			SrcOut,
			DstOut,
			SrcAtop,
			DstAtop,
			Xor,
		},
	}
}

// Set changes the active composition operation.
func (op *Composite) Set(cop string) error {
	for _, o := range op.ops {
		if o == cop {
			op.current = cop
			return nil
		}
	}
	return fmt.Errorf("unsupported composition operation: %q", cop)
}

// Get returns the active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// factors returns the Porter-Duff fractions of the source and the backdrop
// contributing to the result, given the source and backdrop alpha.
func (op *Composite) factors(as, ab float64) (fa, fb float64) {
	switch op.current {
	case Clear:
		return 0, 0
	case Copy:
		return 1, 0
	case Dst:
		return 0, 1
	case SrcOver:
		return 1, 1 - as
	case DstOver:
		return 1 - ab, 1
	case SrcIn:
		return ab, 0
	case DstIn:
		return 0, as
	case SrcOut:
		return 1 - ab, 0
	case DstOut:
		return 0, 1 - as
	case SrcAtop:
		return ab, 1 - as
	case DstAtop:
		return 1 - ab, as
	case Xor:
		return 1 - ab, 1 - as
	}
	return 1, 1 - as
}

// Draw composes src over dst with the active operation and writes the
// result into bitmap. Only the area shared by src and dst is processed, so
// a small layer can be applied to a region of a bigger backdrop.
// The bitmap may be the backdrop itself.
func (op *Composite) Draw(bitmap *Bitmap, src, dst *image.NRGBA) {
	r := src.Bounds().Intersect(dst.Bounds())
	if bitmap == nil {
		bitmap = NewBitmap(r)
	}
	r = r.Intersect(bitmap.Img.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		bi := bitmap.Img.PixOffset(r.Min.X, y)

		for x := r.Min.X; x < r.Max.X; x++ {
			s := src.Pix[si : si+4 : si+4]
			d := dst.Pix[di : di+4 : di+4]

			as := float64(s[3]) / 255
			ab := float64(d[3]) / 255
			fa, fb := op.factors(as, ab)

			wa, wb := as*fa, ab*fb
			ao := wa + wb

			var c color.NRGBA
			if ao > 0 {
				c = color.NRGBA{
					R: mix(s[0], d[0], wa, wb, ao),
					G: mix(s[1], d[1], wa, wb, ao),
					B: mix(s[2], d[2], wa, wb, ao),
					A: uint8(math.Round(math.Min(ao, 1) * 255)),
				}
			}
			b := bitmap.Img.Pix[bi : bi+4 : bi+4]
			b[0], b[1], b[2], b[3] = c.R, c.G, c.B, c.A

			si += 4
			di += 4
			bi += 4
		}
	}
}

// mix returns the straight-alpha channel value of two weighted contributions.
func mix(cs, cb uint8, wa, wb, ao float64) uint8 {
	v := (float64(cs)*wa + float64(cb)*wb) / ao
	return uint8(math.Round(math.Min(math.Max(v, 0), 255)))
}

// Layer builds a layer of the uniform color col whose alpha is modulated by
// the coverage mask. The layer has the bounds of the mask.
func Layer(col color.NRGBA, mask *image.Alpha) *image.NRGBA {
	r := mask.Bounds()
	layer := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		mi := mask.PixOffset(r.Min.X, y)
		li := layer.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			if cov := mask.Pix[mi]; cov > 0 {
				layer.Pix[li+0] = col.R
				layer.Pix[li+1] = col.G
				layer.Pix[li+2] = col.B
				layer.Pix[li+3] = uint8((uint32(col.A)*uint32(cov) + 127) / 255)
			}
			mi++
			li += 4
		}
	}
	return layer
}
