package dataset

import (
	"math"
	"strings"
)

// DefaultSentinel is the first field of the row separating the two groups
// in the census tables: everything after it belongs to the female group.
const DefaultSentinel = "Mujeres"

// Dialect holds the dataset conventions that are not structural.
type Dialect struct {
	Sentinel string
	Labels   Labels
}

// DefaultDialect returns the dialect of the census tables.
func DefaultDialect() Dialect {
	return Dialect{Sentinel: DefaultSentinel, Labels: DefaultLabels()}
}

// Build parses text with the default dialect.
func Build(text string) (*Dataset, error) {
	return DefaultDialect().Build(text)
}

// Build parses a whole document. It is a pure function of text.
func (d Dialect) Build(text string) (*Dataset, error) {
	lines := strings.Split(text, "\n")
	rows := make([][]string, len(lines))
	for i, line := range lines {
		rows[i] = Tokenize(line)
	}
	return d.BuildRows(rows)
}

// BuildRows builds a dataset from already tokenized rows. rows is not
// modified.
func (d Dialect) BuildRows(rows [][]string) (*Dataset, error) {
	if len(rows) < 3 {
		return nil, &MalformedError{Rows: len(rows), Reason: "missing title, source or time row"}
	}

	c := &cursor{rows: rows}
	title, _ := c.next()
	rawSources, _ := c.next()
	rawTimes, _ := c.next()

	times := clone(tail(rawTimes))
	n := len(times)
	if n == 0 {
		return nil, &MalformedError{Rows: len(rows), Reason: "time row has no columns"}
	}

	ds := &Dataset{
		Times:   times,
		Sources: fillSources(tail(rawSources), n),
	}
	if len(title) > 0 {
		ds.Title = title[0]
	}

	var peak float64
	for row, ok := c.next(); ok; row, ok = c.next() {
		if len(row) == 0 {
			continue
		}
		if row[0] == d.Sentinel {
			break
		}
		s, m := parseSeries(row, n, true)
		ds.Left = append(ds.Left, s)
		peak = math.Max(peak, m)
	}
	for row, ok := c.next(); ok; row, ok = c.next() {
		if len(row) == 0 {
			continue
		}
		s, m := parseSeries(row, n, false)
		ds.Right = append(ds.Right, s)
		peak = math.Max(peak, m)
	}

	ds.TotalsLeft = columnSums(ds.Left, n)
	ds.TotalsRight = columnSums(ds.Right, n)
	ds.Totals = make([]float64, n)
	for i := range ds.Totals {
		ds.Totals[i] = ds.TotalsRight[i] - ds.TotalsLeft[i]
	}

	scale := ScaleFor(peak, d.Labels)
	ds.MaxValue, ds.Factor, ds.Label = scale.MaxValue, scale.Factor, scale.Label

	return ds, nil
}

// cursor reads rows in order without consuming the underlying slice.
type cursor struct {
	rows [][]string
	pos  int
}

func (c *cursor) next() ([]string, bool) {
	if c.pos >= len(c.rows) {
		return nil, false
	}
	row := c.rows[c.pos]
	c.pos++
	return row, true
}

// parseSeries reads a group row into exactly n values and returns the
// largest absolute value seen.
func parseSeries(row []string, n int, negate bool) (Series, float64) {
	s := Series{Group: row[0], Values: make([]float64, n)}
	var peak float64
	for i, field := range tail(row) {
		if i >= n {
			break
		}
		v, _ := ParseNumber(field)
		peak = math.Max(peak, math.Abs(v))
		if negate && v != 0 {
			v = -v
		}
		s.Values[i] = v
	}
	return s, peak
}

func columnSums(series []Series, n int) []float64 {
	sums := make([]float64, n)
	for _, s := range series {
		for i, v := range s.Values {
			sums[i] += v
		}
	}
	return sums
}

// fillSources carries the last non-empty source to the right, over empty
// cells and over columns missing from a short row.
func fillSources(raw []string, n int) []string {
	out := make([]string, n)
	last := ""
	for i := range out {
		if i < len(raw) && raw[i] != "" {
			last = raw[i]
		}
		out[i] = last
	}
	return out
}

func tail(row []string) []string {
	if len(row) == 0 {
		return nil
	}
	return row[1:]
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
