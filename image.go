package logoemoji

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned when exporting to an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// ExportExtensions lists the file extensions an emoji can be exported to.
var ExportExtensions = []string{".png", ".bmp"}

// encodeImg encodes an image to a destination of type io.Writer.
// Files are encoded by their extension; any other writer receives a PNG.
func encodeImg(w io.Writer, img *image.NRGBA) error {
	switch w := w.(type) {
	case *os.File:
		return encodeExt(w, filepath.Ext(w.Name()), img)
	default:
		return png.Encode(w, img)
	}
}

func encodeExt(w io.Writer, ext string, img *image.NRGBA) error {
	switch strings.ToLower(ext) {
	case "", ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// decodePNG decodes PNG bytes into a straight alpha buffer.
func decodePNG(data []byte) (*image.NRGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode the emoji: %w", err)
	}
	return imgToNRGBA(img), nil
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	default:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				c := color.NRGBAModel.Convert(img.At(srcMinX+dstX, srcMinY+dstY)).(color.NRGBA)
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	}

	return dst
}

// rgbToGrayscale converts an image to grayscale mode and
// returns the pixel values as an one dimensional array.
// Transparent pixels are treated as white.
func rgbToGrayscale(src *image.NRGBA) []uint8 {
	b := src.Bounds()
	width, height := b.Dx(), b.Dy()
	gray := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < width; x++ {
			a := float64(src.Pix[i+3]) / 255
			lum := 0.299*float64(src.Pix[i]) +
				0.587*float64(src.Pix[i+1]) +
				0.114*float64(src.Pix[i+2])
			gray[y*width+x] = uint8(lum*a + 255*(1-a) + 0.5)
			i += 4
		}
	}

	return gray
}
