package logoemoji

import (
	"bytes"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/logoemoji/logoemoji/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestImage_ImgToNRGBA(t *testing.T) {
	rect := image.Rect(-1, -1, 15, 15)
	colors := palette.Plan9
	testCases := []struct {
		name string
		img  image.Image
	}{
		{
			name: "NRGBA",
			img:  makeNRGBAImage(rect, colors),
		},
		{
			name: "RGBA",
			img:  makeRGBAImage(rect, colors),
		},
		{
			name: "YCbCr-444",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio444),
		},
		{
			name: "YCbCr-422",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio422),
		},
		{
			name: "YCbCr-420",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio420),
		},
		{
			name: "YCbCr-440",
			img:  makeYCbCrImage(rect, colors, image.YCbCrSubsampleRatio440),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := tc.img.Bounds()
			res := imgToNRGBA(tc.img)
			if res.Bounds() != r.Sub(r.Min) {
				t.Fatalf("bounds: got %v want %v", res.Bounds(), r.Sub(r.Min))
			}
			for y := r.Min.Y; y < r.Max.Y; y++ {
				i := res.PixOffset(0, y-r.Min.Y)
				got := res.Pix[i : i+r.Dx()*4]
				want := readRow(tc.img, y)
				if !compareBytes(got, want, 1) {
					t.Errorf("horizontal line (y=%d): got %v want %v", y, got, want)
				}
			}
		})
	}
}

func TestImage_ImgToNRGBAKeepsZeroOrigin(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	assert.Same(t, img, imgToNRGBA(img))
}

func TestImage_EncodeByExtension(t *testing.T) {
	assert := assert.New(t)
	img := makeNRGBAImage(image.Rect(0, 0, 8, 8), palette.Plan9)
	dir := t.TempDir()

	for _, ext := range ExportExtensions {
		f, err := os.Create(filepath.Join(dir, "emoji"+ext))
		require.NoError(t, err)
		assert.NoError(encodeImg(f, img))
		require.NoError(t, f.Close())

		ctype, err := utils.DetectContentType(f.Name())
		assert.NoError(err)
		assert.Contains(ctype, ext[1:])
	}

	f, err := os.Create(filepath.Join(dir, "emoji.gif"))
	require.NoError(t, err)
	defer f.Close()
	assert.ErrorIs(encodeImg(f, img), ErrUnsupportedFormat)
}

func TestImage_BMPKeepsOpaquePixels(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{R: 12, G: 34, B: 56, A: 255}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	require.NoError(t, encodeExt(&buf, ".BMP", img))
	res, err := bmp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, img.Pix, imgToNRGBA(res).Pix)
}

func TestImage_DecodePNG(t *testing.T) {
	img := makeNRGBAImage(image.Rect(0, 0, 16, 16), palette.Plan9)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	res, err := decodePNG(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, img.Pix, res.Pix)

	_, err = decodePNG([]byte("not a png"))
	assert.Error(t, err)
}

func TestImage_RgbToGrayscale(t *testing.T) {
	assert := assert.New(t)

	img := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	img.SetNRGBA(1, 0, color.NRGBA{A: 255})
	img.SetNRGBA(2, 0, color.NRGBA{})

	gray := rgbToGrayscale(img)
	assert.Equal([]uint8{255, 0, 255}, gray)
}

func makeRGBAImage(rect image.Rectangle, colors []color.Color) *image.RGBA {
	img := image.NewRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func makeYCbCrImage(rect image.Rectangle, colors []color.Color, sr image.YCbCrSubsampleRatio) *image.YCbCr {
	img := image.NewYCbCr(rect, sr)
	j := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			iy := img.YOffset(x, y)
			ic := img.COffset(x, y)
			c := color.NRGBAModel.Convert(colors[j]).(color.NRGBA)
			img.Y[iy], img.Cb[ic], img.Cr[ic] = color.RGBToYCbCr(c.R, c.G, c.B)
			j++
		}
	}
	return img
}

func makeNRGBAImage(rect image.Rectangle, colors []color.Color) *image.NRGBA {
	img := image.NewNRGBA(rect)
	fillDrawImage(img, colors)
	return img
}

func fillDrawImage(img draw.Image, colors []color.Color) {
	colorsNRGBA := make([]color.NRGBA, len(colors))
	for i, c := range colors {
		nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
		nrgba.A = uint8(i % 256)
		colorsNRGBA[i] = nrgba
	}
	rect := img.Bounds()
	i := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			img.Set(x, y, colorsNRGBA[i])
			i++
		}
	}
}

func readRow(img image.Image, y int) []uint8 {
	row := make([]byte, img.Bounds().Dx()*4)
	i := 0
	for x := img.Bounds().Min.X; x < img.Bounds().Max.X; x++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		row[i+0] = c.R
		row[i+1] = c.G
		row[i+2] = c.B
		row[i+3] = c.A
		i += 4
	}
	return row
}

func readColumn(img image.Image, x int) []uint8 {
	column := make([]byte, img.Bounds().Dy()*4)
	i := 0
	for y := img.Bounds().Min.Y; y < img.Bounds().Max.Y; y++ {
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		column[i+0] = c.R
		column[i+1] = c.G
		column[i+2] = c.B
		column[i+3] = c.A
		i += 4
	}
	return column
}

func compareBytes(a, b []uint8, delta int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if utils.Abs(int(a[i])-int(b[i])) > delta {
			return false
		}
	}
	return true
}
