package metrics

import "github.com/san-kum/pyramid/internal/dataset"

// FrameRatio is the left group per 100 of the right group in one frame, or
// 0 when the right group is empty.
func FrameRatio(ds *dataset.Dataset, frame int) float64 {
	right := ds.TotalsRight[frame]
	if right == 0 {
		return 0
	}
	return -ds.TotalsLeft[frame] / right * 100
}

// Ratio is the mean FrameRatio over the frames where it is defined.
type Ratio struct {
	name    string
	sum     float64
	samples int
}

func NewRatio() *Ratio {
	return &Ratio{name: "ratio"}
}

func (r *Ratio) Name() string {
	return r.name
}

func (r *Ratio) Observe(ds *dataset.Dataset, frame int) {
	if ds.TotalsRight[frame] == 0 {
		return
	}
	r.sum += FrameRatio(ds, frame)
	r.samples++
}

func (r *Ratio) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *Ratio) Reset() {
	r.sum = 0
	r.samples = 0
}
