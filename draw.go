package logoemoji

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/logoemoji/logoemoji/utils"
)

const (
	paneMargin  = 16
	statusLine  = 36
	checkerCell = 8
)

var (
	checkerLight = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	checkerDark  = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	frameColor   = color.NRGBA{R: 0xff, G: 0x40, B: 0x81, A: 0xff}
)

// draw lays out the two panes and the status line.
func (g *Gui) draw(gtx C) {
	paint.Fill(gtx.Ops, g.cfg.color.background)

	size := gtx.Constraints.Max
	paneH := size.Y - statusLine - 2*paneMargin
	paneW := (size.X - 3*paneMargin) / 2
	if paneW <= 0 || paneH <= 0 {
		return
	}
	left := image.Rect(paneMargin, paneMargin, paneMargin+paneW, paneMargin+paneH)
	right := left.Add(image.Pt(paneW+paneMargin, 0))

	if src := g.session.Source(); src != nil {
		st := g.session.State()
		crop := ResolveCrop(src.Width(), src.Height(), st.PanX, st.PanY, st.Zoom)
		scale := g.drawImage(gtx, src.Image(), left, false)
		g.drawCropFrame(gtx, left, src.Image().Bounds().Size(), scale, crop)
	}
	if preview := g.session.Preview(); preview != nil {
		g.drawImage(gtx, preview, right, true)
	}

	g.drawStatus(gtx, image.Pt(paneMargin, size.Y-statusLine))
}

// fitRect returns the largest rectangle of the given size ratio centered in
// area, and the scale applied to the size.
func fitRect(area image.Rectangle, size image.Point) (image.Rectangle, float32) {
	if size.X <= 0 || size.Y <= 0 {
		return image.Rectangle{}, 0
	}
	scale := float32(math.Min(
		float64(area.Dx())/float64(size.X),
		float64(area.Dy())/float64(size.Y),
	))
	w := int(float32(size.X) * scale)
	h := int(float32(size.Y) * scale)
	origin := area.Min.Add(image.Pt((area.Dx()-w)/2, (area.Dy()-h)/2))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(w, h))}, scale
}

// drawImage paints img scaled to fit in area, optionally over a
// checkerboard. It returns the scale applied to the image.
func (g *Gui) drawImage(gtx C, img *image.NRGBA, area image.Rectangle, checker bool) float32 {
	r, scale := fitRect(area, img.Bounds().Size())
	if r.Empty() {
		return 0
	}
	if checker {
		g.drawChecker(gtx, r)
	}

	defer op.Affine(f32.Affine2D{}.
		Scale(f32.Point{}, f32.Pt(scale, scale)).
		Offset(toF32(r.Min)),
	).Push(gtx.Ops).Pop()
	defer clip.Rect{Max: img.Bounds().Size()}.Push(gtx.Ops).Pop()

	paint.NewImageOp(img).Add(gtx.Ops)
	paint.PaintOp{}.Add(gtx.Ops)

	return scale
}

// drawChecker fills area with a checkerboard.
func (g *Gui) drawChecker(gtx C, area image.Rectangle) {
	paint.FillShape(gtx.Ops, checkerLight, clip.Rect(area).Op())
	for y := area.Min.Y; y < area.Max.Y; y += checkerCell {
		for x := area.Min.X; x < area.Max.X; x += checkerCell {
			if ((x-area.Min.X)/checkerCell+(y-area.Min.Y)/checkerCell)%2 == 0 {
				continue
			}
			cell := image.Rect(x, y, x+checkerCell, y+checkerCell).Intersect(area)
			paint.FillShape(gtx.Ops, checkerDark, clip.Rect(cell).Op())
		}
	}
}

// drawCropFrame outlines the crop window over the logo pane. The window
// may overflow the logo when zoomed out; it is clipped to the pane.
func (g *Gui) drawCropFrame(gtx C, area image.Rectangle, size image.Point, scale float32, crop Crop) {
	r, _ := fitRect(area, size)
	if r.Empty() {
		return
	}
	defer clip.Rect(area).Push(gtx.Ops).Pop()

	orig := toF32(r.Min)
	p0 := orig.Add(f32.Pt(float32(crop.X)*scale, float32(crop.Y)*scale))
	side := float32(crop.Side) * scale

	var path clip.Path
	path.Begin(gtx.Ops)
	path.MoveTo(p0)
	path.LineTo(p0.Add(f32.Pt(side, 0)))
	path.LineTo(p0.Add(f32.Pt(side, side)))
	path.LineTo(p0.Add(f32.Pt(0, side)))
	path.Close()

	width := float32(utils.Max(2, gtx.Dp(unit.Dp(2))))
	paint.FillShape(gtx.Ops, frameColor, clip.Stroke{Path: path.End(), Width: width}.Op())
}

// drawStatus prints the status line at pos.
func (g *Gui) drawStatus(gtx C, pos image.Point) {
	defer op.Affine(f32.Affine2D{}.Offset(toF32(pos))).Push(gtx.Ops).Pop()

	lbl := material.Label(g.theme, unit.Sp(13), g.status.msg)
	lbl.Color = g.cfg.color.text
	if g.status.isErr {
		lbl.Color = g.cfg.color.err
	}
	gtx.Constraints.Min = image.Point{}
	lbl.Layout(gtx)
}

func toF32(p image.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}
