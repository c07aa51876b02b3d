package logoemoji

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/logoemoji/logoemoji/utils"
)

// Processor options
type Processor struct {
	State        EditState
	Interpolator Interpolator
	FaceFocus    *FaceFocus
	Spinner      *utils.Spinner
}

// NewProcessor returns a processor rendering with the given edit state.
func NewProcessor(st EditState) *Processor {
	return &Processor{
		State:        st.Clamp(),
		Interpolator: DefaultInterpolator,
	}
}

// Process reads a logo from r and encodes the generated emoji into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
// Files are encoded by their extension (PNG or BMP), anything else as PNG.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	emoji, err := p.Render(r)
	if err != nil {
		return err
	}
	return encodeImg(w, emoji.Image)
}

// Render reads a logo from r and renders the emoji.
func (p *Processor) Render(r io.Reader) (*RenderedEmoji, error) {
	name := "stdin"
	if f, ok := r.(*os.File); ok && f != os.Stdin {
		name = filepath.Base(f.Name())
	}

	src, err := LoadSource(r, name)
	if err != nil {
		return nil, err
	}

	st := p.State
	if p.FaceFocus != nil {
		st = p.FaceFocus.Apply(src, st)
	}

	rast := &Rasterizer{Interpolator: p.Interpolator}
	emoji := rast.RenderExport(src, st)
	if emoji == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoImage, name)
	}
	return emoji, nil
}
