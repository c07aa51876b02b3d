package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/logoemoji/logoemoji"
	"github.com/logoemoji/logoemoji/share"
	"github.com/logoemoji/logoemoji/utils"
	"github.com/spf13/cobra"
)

// generate makes the session result either the gallery entry id or a new
// emoji rendered from the source flags.
func generate(cmd *cobra.Command, sess *logoemoji.Session, flags *renderFlags, id string) error {
	if id != "" {
		return sess.UseFromGallery(id)
	}
	if err := flags.load(cmd, sess); err != nil {
		return err
	}
	_, err := sess.Generate()
	return err
}

func newGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Manage the saved emojis",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the saved emojis, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := newSession()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSIZE\tCREATED\tDATA")
			for _, e := range sess.Gallery() {
				fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\n",
					e.ID, e.Size, e.Size,
					e.CreatedAt.Local().Format(time.DateTime),
					utils.FormatSize(int64(len(e.DataURL))),
				)
			}
			return w.Flush()
		},
	}

	var saveFlags renderFlags
	save := &cobra.Command{
		Use:   "save",
		Short: "Render the emoji of a logo and save it to the gallery",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := newSession()
			if err := generate(cmd, sess, &saveFlags, ""); err != nil {
				return err
			}
			entry, err := sess.SaveToGallery()
			if err != nil {
				return err
			}
			printf("\nThe emoji has been saved to the gallery as: %s\n",
				utils.DecorateText(entry.ID, utils.SuccessMessage))
			fmt.Fprintln(cmd.OutOrStdout(), entry.ID)
			return nil
		},
	}
	saveFlags.register(save, "Source file or URL")

	var out string
	export := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a saved emoji as a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession()
			if err := sess.UseFromGallery(args[0]); err != nil {
				return err
			}
			if err := writeEmoji(sess, out); err != nil {
				return err
			}
			if out != pipeName {
				printf("\nThe emoji has been saved as: %s\n", utils.DecorateText(out, utils.SuccessMessage))
			}
			return nil
		},
	}
	export.Flags().StringVarP(&out, "out", "o", logoemoji.DefaultFilename, "Destination file")

	cmd.AddCommand(list, save, export)
	return cmd
}

func newShareCmd() *cobra.Command {
	var (
		flags renderFlags
		id    string
	)
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a shareable link embedding the emoji",
		Long: `Prints a link carrying the emoji in its fragment. Opening the link
with the open command, or in the web app, restores the emoji.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := newSession()
			if err := generate(cmd, sess, &flags, id); err != nil {
				return err
			}
			link, err := sess.ShareLink(cmd.Context(), nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	flags.register(cmd, "Source file or URL")
	cmd.Flags().StringVar(&id, "id", "", "Share a gallery entry instead of rendering a logo")

	return cmd
}

func newOpenCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "open <link>",
		Short: "Restore the emoji embedded in a shared link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := newSession()
			if !sess.RestoreFromLink(args[0]) {
				return errors.New("the link does not carry a valid emoji")
			}
			if err := writeEmoji(sess, out); err != nil {
				return err
			}
			if out != pipeName {
				printf("\nThe emoji has been saved as: %s\n", utils.DecorateText(out, utils.SuccessMessage))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", logoemoji.DefaultFilename, "Destination file")

	return cmd
}

func newCopyCmd() *cobra.Command {
	var (
		flags renderFlags
		id    string
	)
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Print the emoji as a data URL, ready to be pasted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := newSession()
			if err := generate(cmd, sess, &flags, id); err != nil {
				return err
			}
			kind, err := sess.Copy(share.StreamClipboard{W: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			log.WithField("copied", kind.String()).Debug("emoji copied")
			return nil
		},
	}
	flags.register(cmd, "Source file or URL")
	cmd.Flags().StringVar(&id, "id", "", "Copy a gallery entry instead of rendering a logo")

	return cmd
}
