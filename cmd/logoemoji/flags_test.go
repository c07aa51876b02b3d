package main

import (
	"testing"

	"github.com/logoemoji/logoemoji"
	"github.com/logoemoji/logoemoji/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagsCmd(t *testing.T, args ...string) (*cobra.Command, *editFlags) {
	t.Helper()

	base := logoemoji.DefaultEditState()
	base.Zoom = 120
	base.OverlayText = "CFG"
	cfg = &config.Config{Edit: base}

	cmd := &cobra.Command{Use: "test"}
	var e editFlags
	e.register(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd, &e
}

func TestFlags_ConfigIsKeptWhenUnset(t *testing.T) {
	cmd, e := newFlagsCmd(t)

	st, err := e.state(cmd)
	require.NoError(t, err)
	assert.Equal(t, 120, st.Zoom)
	assert.Equal(t, "CFG", st.OverlayText)
	assert.True(t, st.RemoveBackground)
}

func TestFlags_Override(t *testing.T) {
	cmd, e := newFlagsCmd(t,
		"--zoom", "150",
		"--filter", "Sepia",
		"--remove-bg=false",
		"--text", "LONGERTEXT",
		"--size", "512",
		"--pan-x", "10",
	)

	st, err := e.state(cmd)
	require.NoError(t, err)
	assert.Equal(t, 150, st.Zoom)
	assert.Equal(t, logoemoji.FilterSepia, st.Filter)
	assert.False(t, st.RemoveBackground)
	assert.Equal(t, "LONGERTE", st.OverlayText)
	assert.Equal(t, 512, st.OutputSize)
	assert.Equal(t, 10.0, st.PanX)
	assert.Equal(t, 50.0, st.PanY)
}

func TestFlags_Invalid(t *testing.T) {
	cmd, e := newFlagsCmd(t, "--size", "300")
	_, err := e.state(cmd)
	assert.Error(t, err)

	cmd, e = newFlagsCmd(t, "--filter", "vintage")
	_, err = e.state(cmd)
	assert.Error(t, err)
}
