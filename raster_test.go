package logoemoji

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red  = color.NRGBA{R: 0xff, A: 0xff}
	blue = color.NRGBA{B: 0xff, A: 0xff}
)

// splitImage returns a w×h image, red on the left half and blue on the right.
func splitImage(w, h int) *image.NRGBA {
	img := solidImage(w, h, red)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			img.SetNRGBA(x, y, blue)
		}
	}
	return img
}

// gradientImage returns an opaque w×h image with a color ramp on each axis.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 0x80,
				A: 0xff,
			})
		}
	}
	return img
}

func TestRaster_ExportSizeAndOpacity(t *testing.T) {
	src := newTestSource(t, gradientImage(400, 300))

	st := DefaultEditState()
	st.RemoveBackground = false
	for _, size := range OutputSizes {
		st.OutputSize = size
		emoji := NewRasterizer().RenderExport(src, st)
		require.NotNil(t, emoji)
		assert.Equal(t, image.Rect(0, 0, size, size), emoji.Image.Bounds())
		assert.Equal(t, size, emoji.Size)

		for i := 3; i < len(emoji.Image.Pix); i += 4 {
			if emoji.Image.Pix[i] != 0xff {
				t.Fatalf("size %d: transparent pixel at offset %d", size, i)
			}
		}
	}
}

func TestRaster_PanSelectsWindow(t *testing.T) {
	src := newTestSource(t, splitImage(200, 100))
	rast := NewRasterizer()

	st := DefaultEditState()
	st.RemoveBackground = false

	st.PanX = 0
	img := rast.Render(src, st, 64, false)
	assert.Equal(t, red, img.NRGBAAt(32, 32))

	st.PanX = 100
	img = rast.Render(src, st, 64, false)
	assert.Equal(t, blue, img.NRGBAAt(32, 32))

	st.PanX = 50
	img = rast.Render(src, st, 64, false)
	assert.Equal(t, red, img.NRGBAAt(8, 32))
	assert.Equal(t, blue, img.NRGBAAt(56, 32))
}

func TestRaster_ZoomedOutReplicatesEdges(t *testing.T) {
	src := newTestSource(t, splitImage(40, 40))

	st := DefaultEditState()
	st.RemoveBackground = false
	st.Zoom = MinZoom

	for _, interp := range []Interpolator{NearestNeighbor, ApproxBiLinear, BiLinear, CatmullRom} {
		img := (&Rasterizer{Interpolator: interp}).Render(src, st, 64, false)
		// The window is twice the image: the lower right quarter reads the
		// replicated bottom-right pixel.
		assert.Equal(t, blue, img.NRGBAAt(60, 60), interp)
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0xff {
				t.Fatalf("%s: transparent pixel at offset %d", interp, i)
			}
		}
	}
}

func TestRaster_PreviewForcesKey(t *testing.T) {
	src := newTestSource(t, solidImage(50, 50, color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}))
	rast := NewRasterizer()

	st := DefaultEditState()
	st.RemoveBackground = false

	preview := rast.RenderPreview(src, st)
	require.NotNil(t, preview)
	assert.Equal(t, image.Rect(0, 0, PreviewSize, PreviewSize), preview.Bounds())
	assert.Equal(t, uint8(0), preview.NRGBAAt(100, 100).A)

	emoji := rast.RenderExport(src, st)
	assert.Equal(t, uint8(0xff), emoji.Image.NRGBAAt(10, 10).A)

	st.RemoveBackground = true
	emoji = rast.RenderExport(src, st)
	assert.Equal(t, uint8(0), emoji.Image.NRGBAAt(10, 10).A)
}

func TestRaster_PreviewMatchesExportGeometry(t *testing.T) {
	src := newTestSource(t, splitImage(300, 200))
	rast := &Rasterizer{Interpolator: NearestNeighbor}

	st := DefaultEditState()
	st.RemoveBackground = false
	st.PanX, st.Zoom = 30, 150
	st.OutputSize = 128

	preview := rast.Render(src, st, PreviewSize, false)
	emoji := rast.RenderExport(src, st)
	for y := 0; y < 128; y += 8 {
		for x := 0; x < 128; x += 8 {
			assert.Equal(t, emoji.Image.NRGBAAt(x, y), preview.NRGBAAt(2*x, 2*y), "(%d,%d)", x, y)
		}
	}
}

func TestRaster_NilSource(t *testing.T) {
	rast := NewRasterizer()
	assert.Nil(t, rast.RenderPreview(nil, DefaultEditState()))
	assert.Nil(t, rast.RenderExport(nil, DefaultEditState()))
}

func TestRaster_PadEdges(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 1, A: 0xff})
	img.SetNRGBA(1, 0, color.NRGBA{R: 2, A: 0xff})
	img.SetNRGBA(0, 1, color.NRGBA{R: 3, A: 0xff})
	img.SetNRGBA(1, 1, color.NRGBA{R: 4, A: 0xff})

	res := padEdges(img, image.Rect(0, 0, 4, 4))
	assert.Equal(t, image.Rect(0, 0, 4, 4), res.Bounds())
	assert.Equal(t, uint8(1), res.NRGBAAt(0, 0).R)
	assert.Equal(t, uint8(2), res.NRGBAAt(3, 0).R)
	assert.Equal(t, uint8(3), res.NRGBAAt(0, 3).R)
	assert.Equal(t, uint8(4), res.NRGBAAt(3, 3).R)
	assert.Equal(t, uint8(4), res.NRGBAAt(2, 2).R)
}

func TestRaster_ParseInterpolator(t *testing.T) {
	i, err := ParseInterpolator("CatmullRom")
	assert.NoError(t, err)
	assert.Equal(t, CatmullRom, i)

	i, err = ParseInterpolator("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultInterpolator, i)

	_, err = ParseInterpolator("lanczos")
	assert.Error(t, err)
}

func BenchmarkRasterizer_Render(b *testing.B) {
	src := newTestSource(b, gradientImage(1024, 768))
	rast := NewRasterizer()
	st := DefaultEditState()
	st.OverlayText = "BENCH"
	st.Filter = FilterSepia

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rast.Render(src, st, 512, false)
	}
}
