// Package metrics computes summary indicators over the frames of a dataset.
package metrics

import "github.com/san-kum/pyramid/internal/dataset"

// Metric accumulates one indicator over observed frames.
type Metric interface {
	Name() string
	Observe(ds *dataset.Dataset, frame int)
	Value() float64
	Reset()
}

type Result struct {
	Name  string
	Value float64
}

// Defaults returns a fresh set of the standard metrics.
func Defaults() []Metric {
	return []Metric{NewRatio(), NewGrowth(), NewPeak()}
}

// Summarize observes every frame of ds with ms and returns their values.
func Summarize(ds *dataset.Dataset, ms ...Metric) []Result {
	if len(ms) == 0 {
		ms = Defaults()
	}
	results := make([]Result, len(ms))
	for i, m := range ms {
		m.Reset()
		for f := 0; f < ds.Frames(); f++ {
			m.Observe(ds, f)
		}
		results[i] = Result{Name: m.Name(), Value: m.Value()}
	}
	return results
}
