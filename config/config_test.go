package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/logoemoji/logoemoji"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	assert := assert.New(t)
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	v, err := LoadConfig("")
	require.NoError(t, err)
	c, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(logoemoji.DefaultEditState(), c.Edit)
	assert.Equal(logoemoji.BiLinear, c.Interpolator())
	assert.Equal(logrus.InfoLevel, c.Logger().GetLevel())
	assert.NotEmpty(c.Gallery.Path)
	assert.NotEmpty(c.Share.BaseURL)
}

func TestConfig_FileAndEnv(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "logoemoji.yaml")
	yaml := []byte(`edit:
  zoom: 150
  filter: Sepia
  remove_background: false
  overlay_text: "TOO LONG LABEL"
  output_size: 300
gallery:
  path: /tmp/gallery.json
render:
  interpolator: catmullrom
`)
	require.NoError(t, os.WriteFile(path, yaml, 0644))
	t.Setenv("LOGOEMOJI_LOG_LEVEL", "debug")

	v, err := LoadConfig(path)
	require.NoError(t, err)
	c, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(150, c.Edit.Zoom)
	assert.Equal(logoemoji.FilterSepia, c.Edit.Filter)
	assert.False(c.Edit.RemoveBackground)
	assert.Equal("TOO LONG", c.Edit.OverlayText)
	assert.Equal(256, c.Edit.OutputSize)
	assert.Equal(50.0, c.Edit.PanX)
	assert.Equal("/tmp/gallery.json", c.Gallery.Path)
	assert.Equal(logoemoji.CatmullRom, c.Interpolator())
	assert.Equal(logrus.DebugLevel, c.Logger().GetLevel())
}

func TestConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logoemoji.yaml")
	require.NoError(t, os.WriteFile(path, []byte("edit:\n  filter: vintage\n"), 0644))

	v, err := LoadConfig(path)
	require.NoError(t, err)
	_, err = ParseConfig(v)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
