package logoemoji

import (
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/logoemoji/logoemoji/utils"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Interpolator names the resampling kernel used to scale the crop window.
type Interpolator string

const (
	NearestNeighbor Interpolator = "nearest"
	ApproxBiLinear  Interpolator = "approx"
	BiLinear        Interpolator = "bilinear"
	CatmullRom      Interpolator = "catmullrom"
)

// DefaultInterpolator is used when no interpolator has been chosen.
const DefaultInterpolator = BiLinear

// ParseInterpolator converts a kernel name into an Interpolator.
func ParseInterpolator(name string) (Interpolator, error) {
	i := Interpolator(strings.ToLower(strings.TrimSpace(name)))
	switch i {
	case "":
		return DefaultInterpolator, nil
	case NearestNeighbor, ApproxBiLinear, BiLinear, CatmullRom:
		return i, nil
	}
	return DefaultInterpolator, fmt.Errorf("unsupported interpolator %q", name)
}

func (i Interpolator) transformer() xdraw.Transformer {
	switch i {
	case NearestNeighbor:
		return xdraw.NearestNeighbor
	case ApproxBiLinear:
		return xdraw.ApproxBiLinear
	case CatmullRom:
		return xdraw.CatmullRom
	default:
		return xdraw.BiLinear
	}
}

// Rasterizer produces the emoji buffer of a source image for an edit state.
// Every call allocates its own output buffer, so the preview and the export
// never share pixels.
type Rasterizer struct {
	Interpolator Interpolator
}

// NewRasterizer returns a rasterizer using the default interpolator.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{Interpolator: DefaultInterpolator}
}

// Render samples the crop window of src into a size×size square and applies,
// in order, the color adjustment, the background removal and the text overlay.
// The background is removed when forceKey is set or the state asks for it.
//
// Rendering without a source does nothing and returns nil: callers are
// expected to check for a loaded image before asking for a render.
func (r *Rasterizer) Render(src *Source, st EditState, size int, forceKey bool) *image.NRGBA {
	if src == nil {
		return nil
	}
	st = st.Clamp()
	size = utils.Max(size, 1)

	out := r.sample(src.Image(), ResolveCrop(src.Width(), src.Height(), st.PanX, st.PanY, st.Zoom), size)
	out = AdjustColors(out, st.Brightness, st.Contrast, st.Filter)
	if forceKey || st.RemoveBackground {
		RemoveBackground(out)
	}
	DrawOverlay(out, st.OverlayText)

	return out
}

// RenderPreview renders the live preview: PreviewSize square with the
// background always removed, so that the keying effect can be judged
// before exporting.
func (r *Rasterizer) RenderPreview(src *Source, st EditState) *image.NRGBA {
	return r.Render(src, st, PreviewSize, true)
}

// RenderExport renders the emoji at the state output size, removing the
// background only when the state asks for it.
func (r *Rasterizer) RenderExport(src *Source, st EditState) *RenderedEmoji {
	st = st.Clamp()
	img := r.Render(src, st, st.OutputSize, false)
	if img == nil {
		return nil
	}
	return &RenderedEmoji{
		Image: img,
		Size:  st.OutputSize,
		State: st,
	}
}

// sample scales the crop window of img onto a size×size buffer in a single
// transform. Parts of the window lying outside of the image read the
// nearest edge pixel.
func (r *Rasterizer) sample(img *image.NRGBA, crop Crop, size int) *image.NRGBA {
	src := img
	if !crop.Within(img.Bounds().Dx(), img.Bounds().Dy()) {
		src = padEdges(img, crop.Bounds())
	}

	k := crop.Scale(size)
	s2d := f64.Aff3{
		k, 0, -k * crop.X,
		0, k, -k * crop.Y,
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	r.Interpolator.transformer().Transform(dst, s2d, src, src.Bounds(), xdraw.Src, nil)

	return imaging.Clone(dst)
}

// padEdges returns img grown to cover rect, the new pixels replicating the
// nearest edge pixel of img.
func padEdges(img *image.NRGBA, rect image.Rectangle) *image.NRGBA {
	b := img.Bounds()
	area := b.Union(rect)
	dst := image.NewNRGBA(area)

	for y := area.Min.Y; y < area.Max.Y; y++ {
		sy := utils.Clamp(y, b.Min.Y, b.Max.Y-1)
		di := dst.PixOffset(area.Min.X, y)
		for x := area.Min.X; x < area.Max.X; x++ {
			sx := utils.Clamp(x, b.Min.X, b.Max.X-1)
			si := img.PixOffset(sx, sy)
			copy(dst.Pix[di:di+4], img.Pix[si:si+4])
			di += 4
		}
	}
	return dst
}
