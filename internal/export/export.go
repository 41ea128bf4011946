// Package export writes datasets and single frames to files: JSON and CSV
// for the numbers, SVG and PNG for a picture of one frame.
package export

import (
	"errors"
	"fmt"

	"github.com/san-kum/pyramid/internal/dataset"
)

var ErrFrameRange = errors.New("export: frame out of range")

// Colors used for the left and right groups in pictures.
const (
	LeftColor  = "#4e79a7"
	RightColor = "#e15759"
)

func checkFrame(ds *dataset.Dataset, frame int) error {
	if frame < 0 || frame >= ds.Frames() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrFrameRange, frame, ds.Frames())
	}
	return nil
}
