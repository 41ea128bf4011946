package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	muted  lipgloss.Style
	left   lipgloss.Style
	right  lipgloss.Style
	status lipgloss.Style
	err    lipgloss.Style
	graph  lipgloss.Style
	panel  lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.Accent).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		muted:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		left:   lipgloss.NewStyle().Foreground(t.Left),
		right:  lipgloss.NewStyle().Foreground(t.Right),
		status: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		err:    lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		graph:  lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
	}
}

// Bar returns a bar of cells filled in proportion to fraction, clamped to
// [0, 1]. Partial cells use eighth blocks.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	eighths := int(fraction*float64(width*8) + 0.5)
	full, part := eighths/8, eighths%8

	var b strings.Builder
	b.WriteString(strings.Repeat("█", full))
	if part > 0 {
		b.WriteRune(partialBlocks[part])
	}
	return b.String()
}

// partialBlocks are left-aligned blocks from 0 to 7 eighths.
var partialBlocks = []rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉'}

// BarLeft is Bar growing leftward. Unicode has no right-aligned eighths, so
// it resolves to half cells.
func BarLeft(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	fraction = min(max(fraction, 0), 1)
	halves := int(fraction*float64(width*2) + 0.5)
	full, half := halves/2, halves%2

	var b strings.Builder
	if half > 0 {
		b.WriteRune('▐')
	}
	b.WriteString(strings.Repeat("█", full))
	return b.String()
}

// ProgressBar renders the position of frame among n frames.
func ProgressBar(frame, n, width int) string {
	if n <= 0 || width <= 0 {
		return ""
	}
	filled := (frame + 1) * width / n
	filled = min(max(filled, 0), width)
	return strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
}

// padLeft right-aligns s in width cells.
func padLeft(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func center(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}
