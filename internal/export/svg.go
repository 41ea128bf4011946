package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/san-kum/pyramid/internal/dataset"
)

const (
	svgWidth  = 800
	svgRowH   = 22
	svgLabelW = 90
	svgHeader = 60
	svgFooter = 40
)

// FrameToSVG draws one frame as a horizontal pyramid, last group on top.
func FrameToSVG(ds *dataset.Dataset, frame int) (string, error) {
	if err := checkFrame(ds, frame); err != nil {
		return "", err
	}
	groups := ds.Groups()
	height := svgHeader + len(groups)*svgRowH + svgFooter
	half := float64(svgWidth-svgLabelW) / 2
	mid := half + svgLabelW/2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%.1f" y="24" font-size="18" text-anchor="middle">%s</text>
<text x="%.1f" y="44" font-size="13" text-anchor="middle" fill="#555555">%s</text>
`, svgWidth, height, svgWidth, height, mid, html.EscapeString(ds.Title), mid, html.EscapeString(caption(ds, frame))))

	for i := len(groups) - 1; i >= 0; i-- {
		g := groups[i]
		y := float64(svgHeader + (len(groups)-1-i)*svgRowH)
		if i < len(ds.Left) {
			w := scaled(-ds.Left[i].Values[frame], ds.MaxValue, half)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%d" fill="%s"/>
`, half-w, y+2, w, svgRowH-4, LeftColor))
		}
		if i < len(ds.Right) {
			w := scaled(ds.Right[i].Values[frame], ds.MaxValue, half)
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%d" fill="%s"/>
`, half+svgLabelW, y+2, w, svgRowH-4, RightColor))
		}
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="12" text-anchor="middle">%s</text>
`, mid, y+svgRowH-7, html.EscapeString(g)))
	}

	left, right := ds.Shares(frame)
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="12" text-anchor="middle" fill="#555555">%.1f%% | %g %s | %.1f%%</text>
</svg>`, mid, height-14, left, ds.Scaled(ds.Totals[frame]), html.EscapeString(ds.Label), right))
	return sb.String(), nil
}

// WriteSVG writes FrameToSVG to w.
func WriteSVG(w io.Writer, ds *dataset.Dataset, frame int) error {
	svg, err := FrameToSVG(ds, frame)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, svg)
	return err
}

func caption(ds *dataset.Dataset, frame int) string {
	if src := ds.Sources[frame]; src != "" {
		return ds.Times[frame] + " · " + src
	}
	return ds.Times[frame]
}

func scaled(v, maxValue, width float64) float64 {
	if maxValue <= 0 || v <= 0 {
		return 0
	}
	return min(v/maxValue, 1) * width
}
