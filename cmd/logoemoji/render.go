package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/logoemoji/logoemoji"
	"github.com/logoemoji/logoemoji/utils"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var (
		flags   renderFlags
		out     string
		workers int
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the emoji of a logo file, URL or directory",
		Example: `  logoemoji render -i logo.png -o emoji.png --size 256 --text GO
  logoemoji render -i logos/ -o emojis/ --conc 4
  cat logo.png | logoemoji render > emoji.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			proc, err := flags.processor(cmd)
			if err != nil {
				return err
			}
			if !quiet {
				spinnerText := fmt.Sprintf("%s %s",
					utils.DecorateText("☺ LOGOEMOJI", utils.StatusMessage),
					utils.DecorateText("is rendering the emoji...", utils.DefaultMessage))
				proc.Spinner = utils.NewSpinner(spinnerText, time.Millisecond*200, true)
				restoreCursorOnExit(proc.Spinner)
			}

			return proc.Execute(cmd.Context(), &logoemoji.Ops{
				Src:      flags.in,
				Dst:      out,
				PipeName: pipeName,
				Workers:  workers,
				Quiet:    quiet,
			})
		},
	}
	flags.register(cmd, "Source file, directory or URL")
	cmd.Flags().StringVarP(&out, "out", "o", pipeName, "Destination file or directory")
	cmd.Flags().IntVar(&workers, "conc", runtime.NumCPU(), "Number of files to process concurrently")

	return cmd
}

// restoreCursorOnExit captures the CTRL-C signal and restores the cursor
// visibility hidden by the spinner.
func restoreCursorOnExit(s *utils.Spinner) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-signalChan
		s.RestoreCursor()
		os.Exit(1)
	}()
}

func newPreviewCmd() *cobra.Command {
	var (
		flags renderFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Edit the emoji of a logo in a live preview window",
		Long: `Opens the logo in a window showing the crop window and the live preview.

Keys:
  ←→↑↓     pan the crop window (Shift for fine steps)
  Z        zoom in (Shift to zoom out)
  B, C     raise brightness, contrast (Shift lowers)
  F        cycle the color filter
  R        toggle the background removal
  G        generate the emoji and save it to the output file
  S        save the generated emoji to the gallery
  L        copy a shareable link to the clipboard
  P        copy the emoji to the clipboard
  Esc      close the window`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := newSession()
			if err := flags.load(cmd, sess); err != nil {
				return err
			}

			gui := logoemoji.NewGUI(sess)
			gui.Export = func(*logoemoji.RenderedEmoji) error {
				return writeEmoji(sess, out)
			}
			logoemoji.ShowPreview(gui, func(err error) {
				if err != nil {
					fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
					os.Exit(1)
				}
				os.Exit(0)
			})
			return nil
		},
	}
	flags.register(cmd, "Source file or URL")
	cmd.Flags().StringVarP(&out, "out", "o", logoemoji.DefaultFilename, "File the generated emoji is saved to")

	return cmd
}
