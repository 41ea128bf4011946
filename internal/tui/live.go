// Package tui renders pyramid frames as plain terminal text, for playback
// without the interactive view.
package tui

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/pyramid/internal/dataset"
	"github.com/san-kum/pyramid/internal/playback"
	"github.com/san-kum/pyramid/internal/viz"
)

const (
	width       = 70
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

type LiveRenderer struct {
	w      io.Writer
	num    viz.Formatter
	ansi   bool
	canvas [][]rune
}

// NewLiveRenderer writes frames to w. With ansi set every frame redraws the
// screen in place; otherwise frames are appended one after another.
func NewLiveRenderer(w io.Writer, locale string, ansi bool) *LiveRenderer {
	return &LiveRenderer{w: w, num: viz.NewFormatter(locale), ansi: ansi}
}

func (r *LiveRenderer) resize(rows int) {
	if len(r.canvas) == rows {
		return
	}
	r.canvas = make([][]rune, rows)
	for i := range r.canvas {
		r.canvas[i] = make([]rune, width)
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if y >= 0 && y < len(r.canvas) && x >= 0 && x < width {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) text(x, y int, s string) {
	for i, c := range []rune(s) {
		r.set(x+i, y, c)
	}
}

// draw fills the canvas with one frame, last group on the top row.
func (r *LiveRenderer) draw(ds *dataset.Dataset, frame int) {
	groups := ds.Groups()
	r.resize(len(groups))
	r.clear()

	labelW := 2
	for _, g := range groups {
		labelW = max(labelW, len([]rune(g))+2)
	}
	barW := (width - labelW) / 2
	mid := barW + labelW/2

	for i, g := range groups {
		y := len(groups) - 1 - i
		if i < len(ds.Left) {
			n := cells(-ds.Left[i].Values[frame], ds.MaxValue, barW)
			for x := 0; x < n; x++ {
				r.set(barW-1-x, y, '█')
			}
		}
		if i < len(ds.Right) {
			n := cells(ds.Right[i].Values[frame], ds.MaxValue, barW)
			for x := 0; x < n; x++ {
				r.set(barW+labelW+x, y, '█')
			}
		}
		g := []rune(g)
		r.text(mid-len(g)/2, y, string(g))
	}
}

func cells(v, maxValue float64, w int) int {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	return min(int(math.Round(v/maxValue*float64(w))), w)
}

// Render draws frame of ds to the writer.
func (r *LiveRenderer) Render(ds *dataset.Dataset, frame int) {
	r.draw(ds, frame)

	var b strings.Builder
	if r.ansi {
		b.WriteString(clearScreen)
	}
	b.WriteString(fmt.Sprintf("  %s  %s  %d/%d\n", ds.Title, ds.Times[frame], frame+1, ds.Frames()))
	if src := ds.Sources[frame]; src != "" {
		b.WriteString("  " + src + "\n")
	}
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(strings.TrimRight(string(row), " "))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	left, right := ds.Shares(frame)
	b.WriteString(fmt.Sprintf("  < %s   %s %s   %s >\n",
		r.num.Percent(left), r.num.Number(ds.Scaled(ds.Totals[frame])), ds.Label, r.num.Percent(right)))

	fmt.Fprint(r.w, b.String())
}

func (r *LiveRenderer) Start() {
	if r.ansi {
		fmt.Fprint(r.w, hideCursor)
	}
}

func (r *LiveRenderer) Stop() {
	if r.ansi {
		fmt.Fprint(r.w, showCursor)
	}
}

// Play renders every frame of ds as the playback timer advances. It returns
// when playback stops at the last frame, or with ctx's error when ctx ends
// first, which is the only way out when opts.Repeat is set.
func Play(ctx context.Context, ds *dataset.Dataset, r *LiveRenderer, opts playback.Options) error {
	ticks := make(chan playback.Timer)
	done := make(chan struct{})
	defer close(done)

	sched := playback.NewTickerScheduler(func(t playback.Timer) {
		select {
		case ticks <- t:
		case <-done:
		}
	})
	ctrl := playback.NewController(sched, opts)
	defer ctrl.Close()

	ctrl.Load(ds.Frames())
	r.Start()
	defer r.Stop()
	r.Render(ds, ctrl.Frame())

	ctrl.TogglePlay()
	for ctrl.Playing() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-ticks:
			if ctrl.Tick(t) {
				r.Render(ds, ctrl.Frame())
			}
		}
	}
	return nil
}
