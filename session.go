package logoemoji

import (
	"context"
	"fmt"
	"image"
	"io"

	"github.com/logoemoji/logoemoji/gallery"
	"github.com/logoemoji/logoemoji/share"
	"github.com/sirupsen/logrus"
)

// Listener is notified with the new preview every time it is re-rendered.
type Listener func(preview *image.NRGBA, st EditState)

// Session is one editing session: a loaded logo, its edit state, the live
// preview, the last generated emoji and the gallery.
//
// A session is driven by a single goroutine. Every change of the image or of
// the edit state re-renders the preview synchronously before returning.
type Session struct {
	Rasterizer *Rasterizer
	// BaseURL is the address share links are built on.
	BaseURL string

	store   gallery.Store
	gallery gallery.List

	src     *Source
	state   EditState
	preview *image.NRGBA

	result    *RenderedEmoji
	resultURL string
	resultPNG []byte
	shareURL  string

	listeners map[int]Listener
	nextID    int
}

// NewSession starts a session with the default edit state. The gallery is
// read from store; a nil store keeps the gallery in memory only.
func NewSession(store gallery.Store) *Session {
	if store == nil {
		store = &gallery.MemStore{}
	}
	s := &Session{
		Rasterizer: NewRasterizer(),
		store:      store,
		state:      DefaultEditState(),
		listeners:  make(map[int]Listener),
	}
	if list, ok := store.Load(); ok {
		s.gallery = list
	}
	return s
}

// Subscribe registers fn to be called after every preview render.
// The returned function removes the subscription.
func (s *Session) Subscribe(fn Listener) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

// Load replaces the logo of the session. The previous emoji, share link and
// overlay text are discarded, the other edit parameters are kept.
func (s *Session) Load(src *Source) {
	s.src = src
	s.clearResult()
	s.state.OverlayText = ""
	s.render()
}

// LoadFile validates and decodes an upload, then loads it. A rejected
// upload leaves the session untouched.
func (s *Session) LoadFile(r io.Reader, name string) error {
	src, err := LoadSource(r, name)
	if err != nil {
		return err
	}
	s.Load(src)
	return nil
}

// Source returns the loaded logo, or nil.
func (s *Session) Source() *Source {
	return s.src
}

// State returns the current edit state.
func (s *Session) State() EditState {
	return s.state
}

// SetState replaces the edit state.
func (s *Session) SetState(st EditState) {
	s.state = st.Clamp()
	s.render()
}

// Update changes the edit state through fn. The result is clamped.
func (s *Session) Update(fn func(st *EditState)) {
	st := s.state
	fn(&st)
	s.SetState(st)
}

// Preview returns the last rendered preview, or nil without a logo.
func (s *Session) Preview() *image.NRGBA {
	return s.preview
}

func (s *Session) render() {
	if s.src == nil {
		s.preview = nil
		return
	}
	s.preview = s.Rasterizer.RenderPreview(s.src, s.state)
	for _, fn := range s.listeners {
		fn(s.preview, s.state)
	}
}

func (s *Session) clearResult() {
	s.result = nil
	s.resultURL = ""
	s.resultPNG = nil
	s.shareURL = ""
}

// Generate renders the emoji at the chosen output size.
func (s *Session) Generate() (*RenderedEmoji, error) {
	if s.src == nil {
		return nil, ErrNoImage
	}
	emoji := s.Rasterizer.RenderExport(s.src, s.state)
	data, err := emoji.PNG()
	if err != nil {
		return nil, fmt.Errorf("could not encode the emoji: %w", err)
	}
	s.setResult(emoji, data)
	return emoji, nil
}

func (s *Session) setResult(emoji *RenderedEmoji, data []byte) {
	s.clearResult()
	s.result = emoji
	s.resultPNG = data
	s.resultURL = share.EncodeDataURL(share.PNGType, data)
}

// Result returns the last generated emoji, or nil.
func (s *Session) Result() *RenderedEmoji {
	return s.result
}

// ResultDataURL returns the last generated emoji as a data URL.
func (s *Session) ResultDataURL() (string, error) {
	if s.result == nil {
		return "", ErrNoResult
	}
	return s.resultURL, nil
}

// Download writes the last generated emoji as PNG.
// The file is expected to be saved as DefaultFilename.
func (s *Session) Download(w io.Writer) error {
	if s.result == nil {
		return ErrNoResult
	}
	_, err := w.Write(s.resultPNG)
	return err
}

// Copy places the last generated emoji in the clipboard.
func (s *Session) Copy(clip any) (share.Copied, error) {
	if s.result == nil {
		return share.CopiedNothing, ErrNoResult
	}
	return share.Copy(clip, s.resultPNG)
}

// ShareLink builds a link embedding the last generated emoji and offers it
// to sharer, when not nil.
func (s *Session) ShareLink(ctx context.Context, sharer share.Sharer) (string, error) {
	if s.result == nil {
		return "", ErrNoResult
	}
	s.shareURL = share.Link(s.BaseURL, s.resultURL)
	if err := share.Share(ctx, sharer, s.shareURL); err != nil {
		return s.shareURL, err
	}
	return s.shareURL, nil
}

// SharedURL returns the last link built by ShareLink.
func (s *Session) SharedURL() string {
	return s.shareURL
}

// SaveToGallery adds the last generated emoji to the gallery.
// The gallery is kept in memory even when it cannot be persisted.
func (s *Session) SaveToGallery() (gallery.Entry, error) {
	if s.result == nil {
		return gallery.Entry{}, ErrNoResult
	}
	entry := gallery.NewEntry(s.resultURL, s.result.Size)
	s.gallery = s.gallery.Add(entry)
	if err := s.store.Save(s.gallery); err != nil {
		logger.WithError(err).Debug("gallery not persisted")
	}
	return entry, nil
}

// Gallery returns the saved emojis, newest first.
func (s *Session) Gallery() gallery.List {
	return s.gallery
}

// UseFromGallery makes a saved emoji the current result.
func (s *Session) UseFromGallery(id string) error {
	entry, ok := s.gallery.Find(id)
	if !ok {
		return fmt.Errorf("no gallery entry with id %q", id)
	}
	return s.useDataURL(entry.DataURL)
}

// RestoreFromLink makes the emoji embedded in a share link the current
// result. It reports whether the link could be restored; broken links are
// ignored.
func (s *Session) RestoreFromLink(link string) bool {
	dataURL, err := share.ParseLink(link)
	if err == nil {
		err = s.useDataURL(dataURL)
	}
	if err != nil {
		logger.WithError(err).Debug("share link not restored")
		return false
	}
	return true
}

func (s *Session) useDataURL(dataURL string) error {
	_, data, err := share.DecodeDataURL(dataURL)
	if err != nil {
		return err
	}
	img, err := decodePNG(data)
	if err != nil {
		return err
	}
	s.setResult(&RenderedEmoji{
		Image: img,
		Size:  img.Bounds().Dx(),
		State: s.state,
	}, data)
	s.resultURL = dataURL
	logger.WithFields(logrus.Fields{
		"size":  img.Bounds().Dx(),
		"bytes": len(data),
	}).Debug("emoji restored")
	return nil
}
