package logoemoji

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/logoemoji/logoemoji/share"
	"github.com/logoemoji/logoemoji/utils"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

const (
	guiWidth  = 820
	guiHeight = 460
)

// guiKeys lists the keys handled by the preview window.
const guiKeys = key.Set("⎋|(Shift)-[←,→,↑,↓,B,C,Z]|F|R|G|S|L|P")

var (
	defaultBkgColor  = color.NRGBA{R: 0x1e, G: 0x20, B: 0x24, A: 0xff}
	defaultTextColor = color.NRGBA{R: 0xe8, G: 0xea, B: 0xed, A: 0xff}
	defaultErrColor  = color.NRGBA{R: 0xff, G: 0x6b, B: 0x6b, A: 0xff}
)

// Gui is a live preview window over a session. The left pane shows the
// logo with the crop window, the right pane the emoji preview over a
// checkerboard, so that the removed background is visible.
type Gui struct {
	cfg struct {
		title string
		color struct {
			background color.NRGBA
			text       color.NRGBA
			err        color.NRGBA
		}
	}
	session *Session
	theme   *material.Theme
	ops     op.Ops

	status struct {
		msg   string
		isErr bool
	}

	// Export receives the emoji generated with the G key.
	Export func(*RenderedEmoji) error
	// Sharer receives the links built with the L key.
	Sharer share.Sharer
}

// NewGUI initializes the Gio interface of a session.
func NewGUI(s *Session) *Gui {
	gui := &Gui{
		session: s,
		theme:   material.NewTheme(gofont.Collection()),
	}
	gui.cfg.title = "Logo → Emoji"
	gui.cfg.color.background = defaultBkgColor
	gui.cfg.color.text = defaultTextColor
	gui.cfg.color.err = defaultErrColor
	gui.setStatus(helpLine, false)

	return gui
}

const helpLine = "←→↑↓ pan · Z zoom · B/C brightness/contrast (Shift lowers) · F filter · R background · G export · S save · L link · P copy"

func (g *Gui) setStatus(msg string, isErr bool) {
	g.status.msg, g.status.isErr = msg, isErr
}

// Run is the core method of the Gio GUI application.
// It blocks until the window is closed, either by the user or with the Esc key.
// As with every Gio window, app.Main must be running on the main goroutine.
func (g *Gui) Run() error {
	w := app.NewWindow(
		app.Title(g.cfg.title),
		app.Size(unit.Dp(guiWidth), unit.Dp(guiHeight)),
	)

	cancel := g.session.Subscribe(func(*image.NRGBA, EditState) {
		w.Invalidate()
	})
	defer cancel()

	for e := range w.Events() {
		switch e := e.(type) {
		case system.FrameEvent:
			gtx := layout.NewContext(&g.ops, e)
			for _, ev := range gtx.Events(g) {
				if ke, ok := ev.(key.Event); ok && ke.State == key.Press {
					if g.handleKey(windowClipboard{w}, ke) {
						w.Perform(system.ActionClose)
					}
				}
			}
			key.InputOp{Tag: g, Keys: guiKeys}.Add(gtx.Ops)
			g.draw(gtx)
			e.Frame(gtx.Ops)
		case system.DestroyEvent:
			return e.Err
		}
	}
	return nil
}

// handleKey applies a key press to the session. It reports whether the
// window should be closed.
func (g *Gui) handleKey(clip share.TextWriter, e key.Event) bool {
	shift := e.Modifiers.Contain(key.ModShift)
	s := g.session

	switch e.Name {
	case key.NameEscape:
		return true
	case "G":
		emoji, err := s.Generate()
		if err == nil && g.Export != nil {
			err = g.Export(emoji)
		}
		g.report(err, fmt.Sprintf("emoji generated (%dx%d)", s.State().OutputSize, s.State().OutputSize))
	case "S":
		_, err := s.SaveToGallery()
		g.report(err, fmt.Sprintf("saved to gallery (%d entries)", len(s.Gallery())))
	case "L":
		link, err := s.ShareLink(context.Background(), g.Sharer)
		if err == nil {
			err = clip.WriteText(link)
		}
		g.report(err, "shareable link copied to clipboard")
	case "P":
		kind, err := s.Copy(clip)
		g.report(err, kind.String())
	default:
		st := s.State()
		if applyEditKey(&st, string(e.Name), shift) {
			s.SetState(st)
			st = s.State()
			g.setStatus(fmt.Sprintf("pan %.0f/%.0f · zoom %d%% · brightness %.1f · contrast %.1f · %s · background removal %v",
				st.PanX, st.PanY, st.Zoom, st.Brightness, st.Contrast, st.Filter, st.RemoveBackground), false)
		}
	}
	return false
}

func (g *Gui) report(err error, success string) {
	if err != nil {
		g.setStatus(err.Error(), true)
		return
	}
	g.setStatus(success, false)
}

// windowClipboard writes text to the clipboard of a Gio window.
type windowClipboard struct {
	w *app.Window
}

func (c windowClipboard) WriteText(s string) error {
	c.w.WriteClipboard(s)
	return nil
}

// Edit steps of the keyboard controls.
const (
	panStep     = 5.0
	panFineStep = 1.0
	zoomStep    = 10
	toneStep    = 0.1
)

// applyEditKey changes the edit state for a key of the preview window.
// It reports whether the key is an edit key.
func applyEditKey(st *EditState, name string, shift bool) bool {
	pan := panStep
	if shift {
		pan = panFineStep
	}
	tone := toneStep
	if shift {
		tone = -toneStep
	}

	switch name {
	case key.NameLeftArrow:
		st.PanX -= pan
	case key.NameRightArrow:
		st.PanX += pan
	case key.NameUpArrow:
		st.PanY -= pan
	case key.NameDownArrow:
		st.PanY += pan
	case "Z":
		if shift {
			st.Zoom -= zoomStep
		} else {
			st.Zoom += zoomStep
		}
	case "B":
		st.Brightness = utils.Clamp(st.Brightness+tone, MinBrightness, MaxBrightness)
	case "C":
		st.Contrast = utils.Clamp(st.Contrast+tone, MinContrast, MaxContrast)
	case "F":
		st.Filter = st.Filter.Next()
	case "R":
		st.RemoveBackground = !st.RemoveBackground
	default:
		return false
	}
	return true
}
