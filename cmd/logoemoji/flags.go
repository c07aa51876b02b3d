package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/logoemoji/logoemoji"
	"github.com/logoemoji/logoemoji/gallery"
	"github.com/logoemoji/logoemoji/utils"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// editFlags override the edit state of the configuration.
// A flag is applied only when it is set on the command line.
type editFlags struct {
	panX, panY           float64
	zoom                 int
	brightness, contrast float64
	filter               string
	removeBackground     bool
	text                 string
	size                 int
}

func (e *editFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&e.panX, "pan-x", 50, "Horizontal position of the crop window (0-100)")
	f.Float64Var(&e.panY, "pan-y", 50, "Vertical position of the crop window (0-100)")
	f.IntVar(&e.zoom, "zoom", 100, "Zoom percentage (50-200)")
	f.Float64Var(&e.brightness, "brightness", 1, "Brightness multiplier (0.5-1.5)")
	f.Float64Var(&e.contrast, "contrast", 1, "Contrast multiplier (0.5-1.5)")
	f.StringVar(&e.filter, "filter", string(logoemoji.FilterNone), "Color filter: none, grayscale or sepia")
	f.BoolVar(&e.removeBackground, "remove-bg", true, "Remove the background color")
	f.StringVar(&e.text, "text", "", "Overlay text, at most 8 characters")
	f.IntVar(&e.size, "size", logoemoji.DefaultOutputSize, "Output size: 64, 128, 256 or 512")
}

// state returns the configured edit state with the command line overrides.
func (e *editFlags) state(cmd *cobra.Command) (logoemoji.EditState, error) {
	st := cfg.Edit
	f := cmd.Flags()

	if f.Changed("pan-x") {
		st.PanX = e.panX
	}
	if f.Changed("pan-y") {
		st.PanY = e.panY
	}
	if f.Changed("zoom") {
		st.Zoom = e.zoom
	}
	if f.Changed("brightness") {
		st.Brightness = e.brightness
	}
	if f.Changed("contrast") {
		st.Contrast = e.contrast
	}
	if f.Changed("filter") {
		filter, err := logoemoji.ParseFilter(e.filter)
		if err != nil {
			return st, err
		}
		st.Filter = filter
	}
	if f.Changed("remove-bg") {
		st.RemoveBackground = e.removeBackground
	}
	if f.Changed("text") {
		st.OverlayText = e.text
	}
	if f.Changed("size") {
		if !logoemoji.IsOutputSize(e.size) {
			return st, fmt.Errorf("unsupported output size %d, use one of %v", e.size, logoemoji.OutputSizes)
		}
		st.OutputSize = e.size
	}
	return st.Clamp(), nil
}

// renderFlags select the source logo and how it is rendered.
type renderFlags struct {
	in      string
	face    bool
	cascade string
	angle   float64
	interp  string
	edit    editFlags
}

func (r *renderFlags) register(cmd *cobra.Command, inUsage string) {
	f := cmd.Flags()
	f.StringVarP(&r.in, "in", "i", pipeName, inUsage)
	f.BoolVar(&r.face, "face", false, "Center the crop window on the detected face")
	f.StringVar(&r.cascade, "cc", "", "Face detection cascade classifier")
	f.Float64Var(&r.angle, "angle", 0.0, "Plane rotated faces angle")
	f.StringVar(&r.interp, "interp", "", "Resampling: nearest, approx, bilinear or catmullrom")
	r.edit.register(cmd)
}

func (r *renderFlags) interpolator() (logoemoji.Interpolator, error) {
	if r.interp == "" {
		return cfg.Interpolator(), nil
	}
	return logoemoji.ParseInterpolator(r.interp)
}

func (r *renderFlags) faceFocus() (*logoemoji.FaceFocus, error) {
	if !r.face {
		return nil, nil
	}
	if r.cascade == "" {
		return nil, errors.New("please specify a face classifier in case you are using the --face flag")
	}
	ff, err := logoemoji.LoadFaceFocus(r.cascade)
	if err != nil {
		return nil, err
	}
	ff.Angle = r.angle
	return ff, nil
}

// processor returns a batch processor configured by the flags.
func (r *renderFlags) processor(cmd *cobra.Command) (*logoemoji.Processor, error) {
	st, err := r.edit.state(cmd)
	if err != nil {
		return nil, err
	}
	proc := logoemoji.NewProcessor(st)
	if proc.Interpolator, err = r.interpolator(); err != nil {
		return nil, err
	}
	if proc.FaceFocus, err = r.faceFocus(); err != nil {
		return nil, err
	}
	return proc, nil
}

// load opens the source logo in the session and applies the edit state.
func (r *renderFlags) load(cmd *cobra.Command, sess *logoemoji.Session) error {
	st, err := r.edit.state(cmd)
	if err != nil {
		return err
	}
	if sess.Rasterizer.Interpolator, err = r.interpolator(); err != nil {
		return err
	}
	ff, err := r.faceFocus()
	if err != nil {
		return err
	}

	src, err := openSource(cmd.Context(), r.in)
	if err != nil {
		return err
	}
	sess.Load(src)
	if ff != nil {
		st = ff.Apply(src, st)
	}
	sess.SetState(st)

	return nil
}

// newSession starts a session over the configured gallery file.
func newSession() *logoemoji.Session {
	store := gallery.NewOsFileStore(cfg.Gallery.Path).WithLogger(log)
	sess := logoemoji.NewSession(store)
	sess.BaseURL = cfg.Share.BaseURL

	return sess
}

// openSource reads the logo from a file, an URL or the stdin pipe.
func openSource(ctx context.Context, in string) (*logoemoji.Source, error) {
	switch {
	case utils.IsValidUrl(in):
		f, err := utils.DownloadImage(ctx, in, logoemoji.MaxFileSize)
		if err != nil {
			return nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		defer func() {
			f.Close()
			os.Remove(f.Name())
		}()
		return logoemoji.LoadSource(f, path.Base(in))
	case in == pipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return logoemoji.LoadSource(os.Stdin, "stdin")
	default:
		f, err := os.Open(in)
		if err != nil {
			return nil, fmt.Errorf("failed to load the source image: %w", err)
		}
		defer f.Close()
		return logoemoji.LoadSource(f, filepath.Base(in))
	}
}

// writeEmoji saves the emoji as a PNG file, or to stdout for the pipe name.
func writeEmoji(sess *logoemoji.Session, out string) error {
	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return sess.Download(os.Stdout)
	}
	if ext := strings.ToLower(filepath.Ext(out)); ext != ".png" {
		return fmt.Errorf("%w: %q", logoemoji.ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := sess.Download(f); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}
	return f.Close()
}

// printf writes the progress messages on stderr, unless quiet.
func printf(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
