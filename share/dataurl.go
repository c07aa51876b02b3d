// Package share moves a finished emoji out of the application: data URLs,
// self-contained share links and clipboard placement.
package share

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// PNGType is the MIME type of the encoded emoji.
const PNGType = "image/png"

// ErrInvalidDataURL is returned for strings that are not base64 data URLs.
var ErrInvalidDataURL = errors.New("invalid data URL")

// EncodeDataURL returns data as a base64 data URL of the given MIME type.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL splits a base64 data URL into its MIME type and payload.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mime, data, nil
}
