package share

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Fragment introduces the embedded image in a share link.
const Fragment = "#img="

// Default texts attached to a shared link.
const (
	Title = "My custom logo emoji"
	Text  = "Check out this custom emoji I created."
)

var (
	// ErrNoImageFragment is returned by ParseLink for links without an embedded image.
	ErrNoImageFragment = errors.New("link does not embed an image")
	// ErrCancelled is returned by a Sharer when the user dismissed the share.
	ErrCancelled = errors.New("share cancelled")
)

// Link embeds dataURL into the fragment of base. Any fragment already
// present in base is replaced. The link alone is enough to rebuild the image.
func Link(base, dataURL string) string {
	if i := strings.IndexByte(base, '#'); i >= 0 {
		base = base[:i]
	}
	return base + Fragment + url.QueryEscape(dataURL)
}

// ParseLink extracts the data URL embedded by Link.
// A bare fragment ("#img=...") is accepted as well.
func ParseLink(link string) (string, error) {
	i := strings.Index(link, Fragment)
	if i < 0 {
		return "", ErrNoImageFragment
	}
	dataURL, err := url.QueryUnescape(link[i+len(Fragment):])
	if err != nil {
		return "", fmt.Errorf("malformed share link: %w", err)
	}
	return dataURL, nil
}

// Payload is what gets handed to a platform share target.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// Sharer hands a link to a platform share target.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// SharerFunc adapts a function to the Sharer interface.
type SharerFunc func(ctx context.Context, p Payload) error

// Share calls f.
func (f SharerFunc) Share(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// Share offers link to the share target s, when there is one.
// A share cancelled by the user is not an error.
func Share(ctx context.Context, s Sharer, link string) error {
	if s == nil {
		return nil
	}
	err := s.Share(ctx, Payload{Title: Title, Text: Text, URL: link})
	if errors.Is(err, ErrCancelled) {
		return nil
	}
	return err
}
