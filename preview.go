package logoemoji

import (
	"gioui.org/app"
)

// ShowPreview opens the preview window and hands the main goroutine over to
// Gio. It never returns: done is called from the window goroutine once the
// window is closed, and is expected to exit the program.
func ShowPreview(g *Gui, done func(error)) {
	go func() {
		done(g.Run())
	}()
	app.Main()
}
