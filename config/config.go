// Package config loads the application settings from an optional
// logoemoji.yaml file and LOGOEMOJI_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/logoemoji/logoemoji"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables overriding the settings.
const EnvPrefix = "LOGOEMOJI"

type Config struct {
	Edit    logoemoji.EditState `mapstructure:"edit"`
	Gallery GalleryConfig       `mapstructure:"gallery"`
	Share   ShareConfig         `mapstructure:"share"`
	Log     LogConfig           `mapstructure:"log"`
	Render  RenderConfig        `mapstructure:"render"`
}

type GalleryConfig struct {
	Path string `mapstructure:"path"`
}

type ShareConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type RenderConfig struct {
	Interpolator string `mapstructure:"interpolator"`
}

// DefaultGalleryPath returns the gallery file location used when none is configured.
func DefaultGalleryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "logoemoji", "gallery.json")
}

// LoadConfig prepares a viper instance with the defaults and reads the
// configuration file when there is one. The file is searched in the working
// directory and in the user configuration directory, unless path names it.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("logoemoji")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "logoemoji"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read the configuration: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	def := logoemoji.DefaultEditState()

	v.SetDefault("edit.pan_x", def.PanX)
	v.SetDefault("edit.pan_y", def.PanY)
	v.SetDefault("edit.zoom", def.Zoom)
	v.SetDefault("edit.brightness", def.Brightness)
	v.SetDefault("edit.contrast", def.Contrast)
	v.SetDefault("edit.filter", string(def.Filter))
	v.SetDefault("edit.remove_background", def.RemoveBackground)
	v.SetDefault("edit.overlay_text", def.OverlayText)
	v.SetDefault("edit.output_size", def.OutputSize)

	v.SetDefault("gallery.path", DefaultGalleryPath())
	v.SetDefault("share.base_url", "https://logoemoji.app/")
	v.SetDefault("log.level", logrus.InfoLevel.String())
	v.SetDefault("render.interpolator", string(logoemoji.DefaultInterpolator))
}

// ParseConfig decodes the settings and validates them.
// The edit state is clamped into its valid ranges.
func ParseConfig(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if _, err := logoemoji.ParseFilter(string(c.Edit.Filter)); err != nil {
		return nil, err
	}
	if _, err := logoemoji.ParseInterpolator(c.Render.Interpolator); err != nil {
		return nil, err
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return nil, err
	}
	c.Edit = c.Edit.Clamp()

	return &c, nil
}

// Logger returns a logrus logger configured with the log level.
func (c *Config) Logger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// Interpolator returns the configured resampling kernel.
func (c *Config) Interpolator() logoemoji.Interpolator {
	i, _ := logoemoji.ParseInterpolator(c.Render.Interpolator)
	return i
}
