/*
Package logoemoji turns a logo into a small square emoji. The logo is cropped
to a square with pan and zoom controls, its colors are adjusted (brightness,
contrast, grayscale or sepia), the background is keyed out from the color of
the top-left pixel and an optional outlined label is written at the bottom.
The same pipeline renders a 256×256 live preview and the 64 to 512 pixels
exports, so both always agree geometrically.

The package provides a command line interface, supporting a live preview window,
batch rendering of directories and a local gallery. To check the supported commands type:

	$ logoemoji --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"fmt"
		"os"

		"github.com/logoemoji/logoemoji"
	)

	func main() {
		st := logoemoji.DefaultEditState()
		st.OverlayText = "GO"
		st.OutputSize = 128

		p := logoemoji.NewProcessor(st)
		if err := p.Process(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating the emoji: %s", err.Error())
		}
	}
*/
package logoemoji
