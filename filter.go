package logoemoji

// Luma weights of the grayscale filter.
const (
	lumaR = 0.2126
	lumaG = 0.7152
	lumaB = 0.0722
)

// sepiaMatrix is the row-major RGB mixing matrix of the sepia filter.
var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// grayscale replaces the three channels with their luma.
// Channels are normalized to [0, 1].
func grayscale(r, g, b float64) (float64, float64, float64) {
	y := clamp01(lumaR*r + lumaG*g + lumaB*b)
	return y, y, y
}

// sepia applies the sepia mixing matrix, clamping every output channel.
func sepia(r, g, b float64) (float64, float64, float64) {
	m := &sepiaMatrix
	return clamp01(m[0][0]*r + m[0][1]*g + m[0][2]*b),
		clamp01(m[1][0]*r + m[1][1]*g + m[1][2]*b),
		clamp01(m[2][0]*r + m[2][1]*g + m[2][2]*b)
}

// apply runs the filter over one normalized pixel.
func (f Filter) apply(r, g, b float64) (float64, float64, float64) {
	switch f {
	case FilterGrayscale:
		return grayscale(r, g, b)
	case FilterSepia:
		return sepia(r, g, b)
	default:
		return r, g, b
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
