package metrics

import "github.com/san-kum/pyramid/internal/dataset"

// Change is the percent change of the total from the previous frame. The
// first frame, and frames after a zero total, have no change.
func Change(ds *dataset.Dataset, frame int) float64 {
	if frame <= 0 || frame >= ds.Frames() {
		return 0
	}
	prev := ds.Totals[frame-1]
	if prev == 0 {
		return 0
	}
	return (ds.Totals[frame] - prev) / prev * 100
}

// Growth is the percent change of the total between the first and the
// last observed frame.
type Growth struct {
	name        string
	first, last float64
	samples     int
}

func NewGrowth() *Growth {
	return &Growth{name: "growth"}
}

func (g *Growth) Name() string {
	return g.name
}

func (g *Growth) Observe(ds *dataset.Dataset, frame int) {
	if g.samples == 0 {
		g.first = ds.Totals[frame]
	}
	g.last = ds.Totals[frame]
	g.samples++
}

func (g *Growth) Value() float64 {
	if g.samples < 2 || g.first == 0 {
		return 0
	}
	return (g.last - g.first) / g.first * 100
}

func (g *Growth) Reset() {
	g.first, g.last = 0, 0
	g.samples = 0
}

// Peak is the largest frame total seen.
type Peak struct {
	name  string
	value float64
	frame int
	seen  bool
}

func NewPeak() *Peak {
	return &Peak{name: "peak"}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(ds *dataset.Dataset, frame int) {
	if v := ds.Totals[frame]; !p.seen || v > p.value {
		p.value, p.frame, p.seen = v, frame, true
	}
}

func (p *Peak) Value() float64 {
	return p.value
}

// Frame returns the frame holding the peak, or -1 before any observation.
func (p *Peak) Frame() int {
	if !p.seen {
		return -1
	}
	return p.frame
}

func (p *Peak) Reset() {
	p.value, p.frame, p.seen = 0, 0, false
}
