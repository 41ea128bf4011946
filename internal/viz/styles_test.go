package viz

import "testing"

func TestBar(t *testing.T) {
	tests := []struct {
		fraction float64
		width    int
		want     string
	}{
		{0, 4, ""},
		{0.5, 4, "██"},
		{1, 3, "███"},
		{2, 3, "███"},
		{-1, 3, ""},
		{0.5 / 4, 4, "▌"},
		{1, 0, ""},
	}
	for _, tt := range tests {
		if got := Bar(tt.fraction, tt.width); got != tt.want {
			t.Errorf("Bar(%v, %d) = %q, want %q", tt.fraction, tt.width, got, tt.want)
		}
	}
}

func TestBarLeft(t *testing.T) {
	tests := []struct {
		fraction float64
		width    int
		want     string
	}{
		{0, 4, ""},
		{0.25, 4, "█"},
		{0.375, 4, "▐█"},
		{1, 2, "██"},
	}
	for _, tt := range tests {
		if got := BarLeft(tt.fraction, tt.width); got != tt.want {
			t.Errorf("BarLeft(%v, %d) = %q, want %q", tt.fraction, tt.width, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0, 2, 4); got != "━━──" {
		t.Errorf("unexpected progress %q", got)
	}
	if got := ProgressBar(1, 2, 4); got != "━━━━" {
		t.Errorf("unexpected progress %q", got)
	}
	if got := ProgressBar(0, 0, 4); got != "" {
		t.Errorf("expected empty bar without frames, got %q", got)
	}
}

func TestPadding(t *testing.T) {
	if got := padLeft("ab", 4); got != "  ab" {
		t.Errorf("padLeft = %q", got)
	}
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := center("ab", 5); got != " ab  " {
		t.Errorf("center = %q", got)
	}
	if got := center("abcdef", 3); got != "abcdef" {
		t.Errorf("center must not truncate, got %q", got)
	}
}

func TestNextTheme(t *testing.T) {
	names := ThemeNames()
	name := names[0]
	for range names {
		name = NextTheme(name).Name
	}
	if name != names[0] {
		t.Errorf("expected cycle back to %s, got %s", names[0], name)
	}
	if GetTheme("nope").Name != ThemeCensus.Name {
		t.Error("expected fallback to census theme")
	}
}

func TestFormatter(t *testing.T) {
	f := NewFormatter("en")
	if got := f.Number(1234567); got != "1,234,567" {
		t.Errorf("Number = %q", got)
	}
	if got := f.Percent(50); got != "50.0%" {
		t.Errorf("Percent = %q", got)
	}

	// an invalid tag falls back instead of panicking
	if got := NewFormatter("!!").Number(12); got != "12" {
		t.Errorf("fallback Number = %q", got)
	}
}
