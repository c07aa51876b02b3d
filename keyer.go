package logoemoji

import "image"

// KeyTolerance is the per channel distance (8-bit scale) under which a
// pixel is considered part of the background.
const KeyTolerance = 30

// RemoveBackground makes every pixel close to the top-left pixel color
// fully transparent.
//
// The top-left pixel is the only background sample and the tolerance is
// applied to the whole image, not only to the region connected to the
// corner. Interior pixels that happen to match the corner color are keyed
// out as well.
func RemoveBackground(img *image.NRGBA) {
	b := img.Bounds()
	if b.Empty() {
		return
	}

	ref := img.PixOffset(b.Min.X, b.Min.Y)
	r0, g0, b0 := int(img.Pix[ref]), int(img.Pix[ref+1]), int(img.Pix[ref+2])

	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if within(int(img.Pix[i]), r0) &&
				within(int(img.Pix[i+1]), g0) &&
				within(int(img.Pix[i+2]), b0) {
				img.Pix[i+3] = 0
			}
			i += 4
		}
	}
}

func within(v, ref int) bool {
	d := v - ref
	return d >= -KeyTolerance && d <= KeyTolerance
}
