package main

import (
	"fmt"
	"os"

	"github.com/logoemoji/logoemoji"
	"github.com/logoemoji/logoemoji/config"
	"github.com/logoemoji/logoemoji/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const HelpBanner = `
┬  ┌─┐┌─┐┌─┐  ┌─┐┌┬┐┌─┐ ┬┬
│  │ ││ ┬│ │  ├┤ ││││ │ ││
┴─┘└─┘└─┘└─┘  └─┘┴ ┴└─┘└┘┴

Turn a logo into a custom emoji.
    Version: %s

`

// pipeName is the file name that indicates stdin/stdout is being used.
const pipeName = "-"

// Version indicates the current build version.
var Version string

var (
	cfgFile  string
	logLevel string
	quiet    bool

	cfg     *config.Config
	log     *logrus.Logger
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "logoemoji",
		Short: "Turn a logo into a custom emoji",
		Long: fmt.Sprintf(HelpBanner, Version) +
			"Crop, adjust and label a PNG or JPG logo, remove its background\n" +
			"and export it as a 64 to 512 pixels square emoji.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file (default is ./logoemoji.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level, overrides the configuration")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the progress")

	rootCmd.AddCommand(
		newRenderCmd(),
		newPreviewCmd(),
		newGalleryCmd(),
		newShareCmd(),
		newOpenCmd(),
		newCopyCmd(),
	)
}

// setup loads the configuration and the logger shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	v, err := config.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		v.Set("log.level", logLevel)
	}
	if cfg, err = config.ParseConfig(v); err != nil {
		return err
	}

	log = cfg.Logger()
	logoemoji.SetLogger(log)
	log.WithField("config", v.ConfigFileUsed()).Debug("configuration loaded")

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
		os.Exit(1)
	}
}
