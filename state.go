package logoemoji

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/logoemoji/logoemoji/utils"
)

// Filter is the named color filter applied after brightness and contrast.
type Filter string

const (
	FilterNone      Filter = "none"
	FilterGrayscale Filter = "grayscale"
	FilterSepia     Filter = "sepia"
)

// Filters lists the supported filters in their cycling order.
var Filters = []Filter{FilterNone, FilterGrayscale, FilterSepia}

// ParseFilter converts a filter name into a Filter.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	if f == "" {
		return FilterNone, nil
	}
	for _, v := range Filters {
		if f == v {
			return f, nil
		}
	}
	return FilterNone, fmt.Errorf("unsupported filter %q (use none, grayscale or sepia)", name)
}

// Next returns the filter following f in the cycling order.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterNone
}

// Parameter ranges of the edit controls.
const (
	MinPan        = 0.0
	MaxPan        = 100.0
	MinZoom       = 50
	MaxZoom       = 200
	MinBrightness = 0.5
	MaxBrightness = 1.5
	MinContrast   = 0.5
	MaxContrast   = 1.5

	// MaxOverlayRunes is the maximum length of the overlay label.
	MaxOverlayRunes = 8
	// PreviewSize is the side of the live preview square.
	PreviewSize = 256
	// DefaultOutputSize is the export side used when nothing else was chosen.
	DefaultOutputSize = 128
)

// OutputSizes are the export sides the emoji can be rasterized at.
var OutputSizes = []int{64, 128, 256, 512}

// EditState holds every parameter of the render pipeline.
// The zero value is not meaningful, use DefaultEditState.
type EditState struct {
	PanX             float64 `json:"panX" mapstructure:"pan_x"`
	PanY             float64 `json:"panY" mapstructure:"pan_y"`
	Zoom             int     `json:"zoom" mapstructure:"zoom"`
	Brightness       float64 `json:"brightness" mapstructure:"brightness"`
	Contrast         float64 `json:"contrast" mapstructure:"contrast"`
	Filter           Filter  `json:"filter" mapstructure:"filter"`
	RemoveBackground bool    `json:"removeBackground" mapstructure:"remove_background"`
	OverlayText      string  `json:"overlayText" mapstructure:"overlay_text"`
	OutputSize       int     `json:"outputSize" mapstructure:"output_size"`
}

// DefaultEditState returns the initial state of a new editing session.
func DefaultEditState() EditState {
	return EditState{
		PanX:             50,
		PanY:             50,
		Zoom:             100,
		Brightness:       1,
		Contrast:         1,
		Filter:           FilterNone,
		RemoveBackground: true,
		OutputSize:       DefaultOutputSize,
	}
}

// Clamp returns a copy of the state with every field forced into its valid range.
func (st EditState) Clamp() EditState {
	def := DefaultEditState()

	st.PanX = clampFloat(st.PanX, MinPan, MaxPan, def.PanX)
	st.PanY = clampFloat(st.PanY, MinPan, MaxPan, def.PanY)
	st.Zoom = utils.Clamp(st.Zoom, MinZoom, MaxZoom)
	st.Brightness = clampFloat(st.Brightness, MinBrightness, MaxBrightness, def.Brightness)
	st.Contrast = clampFloat(st.Contrast, MinContrast, MaxContrast, def.Contrast)

	f, err := ParseFilter(string(st.Filter))
	if err != nil {
		f = FilterNone
	}
	st.Filter = f
	st.OverlayText = TruncateOverlay(st.OverlayText)
	st.OutputSize = NearestOutputSize(st.OutputSize)
	return st
}

// clampFloat is utils.Clamp with NaN mapped to fallback.
func clampFloat(v, lo, hi, fallback float64) float64 {
	if math.IsNaN(v) {
		return fallback
	}
	return utils.Clamp(v, lo, hi)
}

// TruncateOverlay cuts the label down to MaxOverlayRunes characters.
func TruncateOverlay(s string) string {
	if utf8.RuneCountInString(s) <= MaxOverlayRunes {
		return s
	}
	return string([]rune(s)[:MaxOverlayRunes])
}

// NearestOutputSize snaps size to the closest supported export side.
func NearestOutputSize(size int) int {
	best := OutputSizes[0]
	for _, s := range OutputSizes[1:] {
		if utils.Abs(s-size) < utils.Abs(best-size) {
			best = s
		}
	}
	return best
}

// IsOutputSize reports whether size is one of the supported export sides.
func IsOutputSize(size int) bool {
	for _, s := range OutputSizes {
		if s == size {
			return true
		}
	}
	return false
}
