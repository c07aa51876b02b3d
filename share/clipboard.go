package share

import (
	"errors"
	"fmt"
	"io"
)

// ErrClipboardUnavailable is returned when the clipboard accepts neither images nor text.
var ErrClipboardUnavailable = errors.New("clipboard not supported on this platform")

// ImageWriter is a clipboard able to hold an image.
type ImageWriter interface {
	WriteImage(mime string, data []byte) error
}

// TextWriter is a clipboard able to hold text.
type TextWriter interface {
	WriteText(s string) error
}

// Copied tells what ended up in the clipboard.
type Copied int

const (
	CopiedNothing Copied = iota
	CopiedImage
	CopiedText
)

func (c Copied) String() string {
	switch c {
	case CopiedImage:
		return "emoji image copied to clipboard"
	case CopiedText:
		return "emoji data URL copied to clipboard"
	}
	return "nothing copied"
}

// Copy places the PNG image in the clipboard. Clipboards that cannot hold
// images receive the image as a data URL instead.
func Copy(clip any, png []byte) (Copied, error) {
	if w, ok := clip.(ImageWriter); ok {
		if err := w.WriteImage(PNGType, png); err != nil {
			return CopiedNothing, fmt.Errorf("unable to copy to clipboard: %w", err)
		}
		return CopiedImage, nil
	}
	if w, ok := clip.(TextWriter); ok {
		if err := w.WriteText(EncodeDataURL(PNGType, png)); err != nil {
			return CopiedNothing, fmt.Errorf("unable to copy to clipboard: %w", err)
		}
		return CopiedText, nil
	}
	return CopiedNothing, ErrClipboardUnavailable
}

// StreamClipboard is a text clipboard writing to a stream, one entry per
// line. It lets a pipe stand in for the system clipboard.
type StreamClipboard struct {
	W io.Writer
}

// WriteText implements TextWriter.
func (c StreamClipboard) WriteText(s string) error {
	_, err := fmt.Fprintln(c.W, s)
	return err
}
