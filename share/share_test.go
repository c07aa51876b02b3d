package share

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestPNG(t *testing.T) ([]byte, *image.NRGBA) {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 16), G: uint8(y * 16), B: 0x80, A: uint8(x*y) | 0x0f})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes(), img
}

func TestDataURL_RoundTrip(t *testing.T) {
	assert := assert.New(t)
	data, _ := encodeTestPNG(t)

	s := EncodeDataURL(PNGType, data)
	assert.Contains(s, "data:image/png;base64,")

	mime, got, err := DecodeDataURL(s)
	assert.NoError(err)
	assert.Equal(PNGType, mime)
	assert.Equal(data, got)
}

func TestDataURL_Invalid(t *testing.T) {
	for _, s := range []string{
		"",
		"image/png;base64,AAAA",
		"data:image/png;base64",
		"data:image/png,AAAA",
		"data:image/png;base64,!!!",
	} {
		_, _, err := DecodeDataURL(s)
		assert.ErrorIs(t, err, ErrInvalidDataURL, s)
	}
}

func TestLink_RoundTripRebuildsImage(t *testing.T) {
	assert := assert.New(t)
	data, img := encodeTestPNG(t)
	dataURL := EncodeDataURL(PNGType, data)

	link := Link("https://example.com/emoji/#old", dataURL)
	assert.Contains(link, "https://example.com/emoji/#img=")
	assert.NotContains(link, "#old")
	assert.NotContains(link, "+")

	got, err := ParseLink(link)
	assert.NoError(err)
	assert.Equal(dataURL, got)

	_, decoded, err := DecodeDataURL(got)
	assert.NoError(err)
	res, err := png.Decode(bytes.NewReader(decoded))
	assert.NoError(err)

	nrgba, ok := res.(*image.NRGBA)
	if assert.True(ok) {
		assert.Equal(img.Pix, nrgba.Pix)
	}
}

func TestParseLink_NoFragment(t *testing.T) {
	_, err := ParseLink("https://example.com/emoji/")
	assert.ErrorIs(t, err, ErrNoImageFragment)

	_, err = ParseLink("#img=%zz")
	assert.Error(t, err)
}

type imageClipboard struct {
	mime string
	data []byte
}

func (c *imageClipboard) WriteImage(mime string, data []byte) error {
	c.mime, c.data = mime, data
	return nil
}

type textClipboard struct {
	text string
	err  error
}

func (c *textClipboard) WriteText(s string) error {
	c.text = s
	return c.err
}

func TestCopy(t *testing.T) {
	assert := assert.New(t)
	data, _ := encodeTestPNG(t)

	img := &imageClipboard{}
	kind, err := Copy(img, data)
	assert.NoError(err)
	assert.Equal(CopiedImage, kind)
	assert.Equal(PNGType, img.mime)
	assert.Equal(data, img.data)

	txt := &textClipboard{}
	kind, err = Copy(txt, data)
	assert.NoError(err)
	assert.Equal(CopiedText, kind)
	assert.Equal(EncodeDataURL(PNGType, data), txt.text)

	kind, err = Copy(struct{}{}, data)
	assert.ErrorIs(err, ErrClipboardUnavailable)
	assert.Equal(CopiedNothing, kind)

	failing := &textClipboard{err: errors.New("denied")}
	_, err = Copy(failing, data)
	assert.Error(err)
}

func TestStreamClipboard(t *testing.T) {
	var buf bytes.Buffer
	kind, err := Copy(StreamClipboard{W: &buf}, []byte{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, CopiedText, kind)
	assert.Equal(t, "data:image/png;base64,AQID\n", buf.String())
}

func TestShare_CancelIgnored(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	var got Payload
	ok := SharerFunc(func(_ context.Context, p Payload) error {
		got = p
		return nil
	})
	assert.NoError(Share(ctx, ok, "https://example.com/#img=x"))
	assert.Equal("https://example.com/#img=x", got.URL)
	assert.Equal(Title, got.Title)

	cancelled := SharerFunc(func(context.Context, Payload) error {
		return ErrCancelled
	})
	assert.NoError(Share(ctx, cancelled, "link"))

	broken := SharerFunc(func(context.Context, Payload) error {
		return errors.New("boom")
	})
	assert.Error(Share(ctx, broken, "link"))

	assert.NoError(Share(ctx, nil, "link"))
}
