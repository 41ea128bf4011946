package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pyramid/internal/dataset"
)

func build(t *testing.T, text string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Build(text)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return ds
}

const sample = "T\n,s\n,a,b,c\ng,100,110,0\nMujeres\ng,100,90,0\n"

func TestFrameRatio(t *testing.T) {
	ds := build(t, sample)
	tests := []struct {
		frame int
		want  float64
	}{
		{0, 100},
		{1, 110.0 / 90 * 100},
		{2, 0},
	}
	for _, tt := range tests {
		if got := FrameRatio(ds, tt.frame); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("frame %d: expected %f, got %f", tt.frame, tt.want, got)
		}
	}
}

func TestChange(t *testing.T) {
	ds := build(t, sample)
	if got := Change(ds, 0); got != 0 {
		t.Errorf("first frame should have no change, got %f", got)
	}
	if got := Change(ds, 1); got != 0 {
		t.Errorf("200 to 200 should be 0%%, got %f", got)
	}
	if got := Change(ds, 2); got != -100 {
		t.Errorf("200 to 0 should be -100%%, got %f", got)
	}
}

func TestSummarize(t *testing.T) {
	ds := build(t, "T\n,s\n,a,b\ng,100,150\nMujeres\ng,100,150\n")
	results := Summarize(ds)

	want := map[string]float64{"ratio": 100, "growth": 50, "peak": 300}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for _, r := range results {
		if math.Abs(r.Value-want[r.Name]) > 1e-9 {
			t.Errorf("%s: expected %f, got %f", r.Name, want[r.Name], r.Value)
		}
	}
}

func TestSummarizeResets(t *testing.T) {
	ds := build(t, sample)
	p := NewPeak()
	Summarize(ds, p)
	Summarize(ds, p)
	if p.Value() != 200 || p.Frame() != 0 {
		t.Errorf("expected peak 200 at frame 0, got %f at %d", p.Value(), p.Frame())
	}
}

func TestEmptyMetrics(t *testing.T) {
	for _, m := range Defaults() {
		if v := m.Value(); v != 0 {
			t.Errorf("%s: expected 0 before observing, got %f", m.Name(), v)
		}
	}
	if NewPeak().Frame() != -1 {
		t.Error("expected no peak frame")
	}
}
