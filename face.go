package logoemoji

import (
	"fmt"
	"os"

	pigo "github.com/esimov/pigo/core"
	"github.com/logoemoji/logoemoji/utils"
	"github.com/sirupsen/logrus"
)

// FaceFocus moves the crop window over the most confident face found in the
// source image. It is meant for avatars and mascot logos.
type FaceFocus struct {
	detector *pigo.Pigo

	// Angle is the in-plane rotation searched for, as a fraction of a full turn.
	Angle float64
	// MinQuality discards the detections scoring below it.
	MinQuality float32
}

// NewFaceFocus unpacks a pigo cascade file.
func NewFaceFocus(cascade []byte) (*FaceFocus, error) {
	// pigo reads the tree depth and count past an 8 bytes header without
	// checking the length.
	if len(cascade) < 16 {
		return nil, fmt.Errorf("error unpacking the cascade file: %d bytes is too short", len(cascade))
	}
	p := pigo.NewPigo()
	// Unpack the binary file. This will return the number of cascade trees,
	// the tree depth, the threshold and the prediction from tree's leaf nodes.
	detector, err := p.Unpack(cascade)
	if err != nil {
		return nil, fmt.Errorf("error unpacking the cascade file: %w", err)
	}
	return &FaceFocus{
		detector:   detector,
		MinQuality: 5.0,
	}, nil
}

// LoadFaceFocus reads the cascade file at path.
func LoadFaceFocus(path string) (*FaceFocus, error) {
	cascade, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read the cascade file: %w", err)
	}
	return NewFaceFocus(cascade)
}

// Detect returns the best scoring face of the source, if any.
func (f *FaceFocus) Detect(src *Source) (pigo.Detection, bool) {
	img := src.Image()
	dx, dy := src.Width(), src.Height()

	cParams := pigo.CascadeParams{
		MinSize:     utils.Max(utils.Min(dx, dy)/10, 20),
		MaxSize:     utils.Max(dx, dy),
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,

		ImageParams: pigo.ImageParams{
			Pixels: rgbToGrayscale(img),
			Rows:   dy,
			Cols:   dx,
			Dim:    dx,
		},
	}

	// Run the classifier over the obtained leaf nodes and return the detection results.
	// The result contains quadruplets representing the row, column, scale and detection score.
	faces := f.detector.RunCascade(cParams, f.Angle)

	// Calculate the intersection over union (IoU) of two clusters.
	faces = f.detector.ClusterDetections(faces, 0.2)

	var (
		best  pigo.Detection
		found bool
	)
	for _, face := range faces {
		if face.Q < f.MinQuality {
			continue
		}
		if !found || face.Q > best.Q {
			best, found = face, true
		}
	}
	return best, found
}

// Apply returns st with the pan centered on the best face of src.
// The state is returned unchanged when no face is found.
func (f *FaceFocus) Apply(src *Source, st EditState) EditState {
	face, ok := f.Detect(src)
	if !ok {
		logger.WithField("source", src.Name).Debug("no face detected")
		return st
	}
	st.PanX, st.PanY = panToward(src.Width(), src.Height(), st.Zoom, float64(face.Col), float64(face.Row))
	logger.WithFields(logrus.Fields{
		"source": src.Name,
		"row":    face.Row,
		"col":    face.Col,
		"score":  face.Q,
	}).Debug("crop centered on face")
	return st
}

// panToward returns the pan values placing the point (x, y) as close to the
// center of the crop window as the image bounds allow.
func panToward(w, h, zoom int, x, y float64) (float64, float64) {
	crop := ResolveCrop(w, h, 0, 0, zoom)

	pan := func(c float64, dim int) float64 {
		maxOffset := float64(dim) - crop.Side
		if maxOffset <= 0 {
			return 50
		}
		return utils.Clamp((c-crop.Side/2)/maxOffset*100, MinPan, MaxPan)
	}
	return pan(x, w), pan(y, h)
}
