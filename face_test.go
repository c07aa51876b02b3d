package logoemoji

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFace_PanToward(t *testing.T) {
	testCases := []struct {
		name         string
		w, h, zoom   int
		x, y         float64
		wantX, wantY float64
	}{
		{"centered", 400, 300, 100, 200, 150, 50, 50},
		{"left edge", 400, 300, 100, 10, 150, 0, 50},
		{"right edge", 400, 300, 100, 390, 150, 100, 50},
		{"zoomed in", 400, 300, 200, 300, 100, 90, 1.0 / 6 * 100},
		{"no travel", 100, 100, 50, 10, 90, 50, 50},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			px, py := panToward(tc.w, tc.h, tc.zoom, tc.x, tc.y)
			assert.InDelta(t, tc.wantX, px, 1e-9)
			assert.InDelta(t, tc.wantY, py, 1e-9)
		})
	}
}

func TestFace_PanTowardCentersTheCrop(t *testing.T) {
	px, py := panToward(640, 480, 150, 420, 200)
	c := ResolveCrop(640, 480, px, py, 150)

	assert.InDelta(t, 420, c.X+c.Side/2, 1e-9)
	assert.InDelta(t, 200, c.Y+c.Side/2, 1e-9)
}

func TestFace_InvalidCascade(t *testing.T) {
	_, err := NewFaceFocus([]byte{1, 2, 3})
	assert.Error(t, err)

	_, err = LoadFaceFocus("testdata/missing-cascade")
	assert.Error(t, err)
}
