package logoemoji

import (
	"bytes"
	"image"
	"image/png"
	"io"

	"github.com/logoemoji/logoemoji/share"
)

// DefaultFilename is the name proposed when downloading an emoji.
const DefaultFilename = "logo-emoji.png"

// RenderedEmoji is the result of an export render, together with the
// edit state it was produced from.
type RenderedEmoji struct {
	Image *image.NRGBA
	Size  int
	State EditState
}

// EncodePNG writes the emoji as a PNG image.
func (e *RenderedEmoji) EncodePNG(w io.Writer) error {
	return png.Encode(w, e.Image)
}

// PNG returns the PNG encoding of the emoji.
func (e *RenderedEmoji) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := e.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL returns the emoji as a base64 PNG data URL.
func (e *RenderedEmoji) DataURL() (string, error) {
	data, err := e.PNG()
	if err != nil {
		return "", err
	}
	return share.EncodeDataURL(share.PNGType, data), nil
}
