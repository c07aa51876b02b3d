package logoemoji

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/logoemoji/logoemoji/utils"
)

// MaxFileSize is the largest accepted upload, in bytes.
const MaxFileSize = 10 << 20

// AcceptedTypes lists the MIME types of the accepted uploads.
var AcceptedTypes = []string{"image/png", "image/jpeg"}

var (
	// ErrUnsupportedType is returned for uploads that are neither PNG nor JPEG.
	ErrUnsupportedType = errors.New("unsupported file type, use PNG or JPG")
	// ErrFileTooLarge is returned for uploads larger than MaxFileSize.
	ErrFileTooLarge = errors.New("file is too large, max 10 MB")
	// ErrNoImage is returned when an action needs a loaded logo.
	ErrNoImage = errors.New("upload and edit a logo first")
	// ErrNoResult is returned when an action needs a generated emoji.
	ErrNoResult = errors.New("generate an emoji first")
)

// Source is a decoded logo. It is never modified once created.
type Source struct {
	img  *image.NRGBA
	Name string
	Size int64
	MIME string
}

// NewSource wraps an already decoded image. The pixels are copied into a
// straight alpha buffer with its origin at (0, 0).
func NewSource(img image.Image) (*Source, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("empty image")
	}
	return &Source{img: imaging.Clone(img)}, nil
}

// ValidateUpload checks the type and the size of an upload before decoding.
// The type is sniffed from the content, not taken from the file name.
func ValidateUpload(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !isAccepted(mtype) {
		return mtype.String(), fmt.Errorf("%w (got %s)", ErrUnsupportedType, mtype.String())
	}
	if len(data) > MaxFileSize {
		return mtype.String(), fmt.Errorf("%w (got %s)", ErrFileTooLarge, utils.FormatSize(int64(len(data))))
	}
	return mtype.String(), nil
}

func isAccepted(mtype *mimetype.MIME) bool {
	for _, t := range AcceptedTypes {
		if mtype.Is(t) {
			return true
		}
	}
	return false
}

// LoadSource reads, validates and decodes an upload.
// At most MaxFileSize+1 bytes are read from r.
func LoadSource(r io.Reader, name string) (*Source, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", name, err)
	}
	mtype, err := ValidateUpload(data)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode %q: %w", name, err)
	}
	src, err := NewSource(img)
	if err != nil {
		return nil, fmt.Errorf("could not load %q: %w", name, err)
	}
	src.Name = name
	src.Size = int64(len(data))
	src.MIME = mtype
	return src, nil
}

// Image returns the decoded pixels. The buffer must not be modified.
func (s *Source) Image() *image.NRGBA {
	return s.img
}

// Width returns the width of the image in pixels.
func (s *Source) Width() int { return s.img.Bounds().Dx() }

// Height returns the height of the image in pixels.
func (s *Source) Height() int { return s.img.Bounds().Dy() }
