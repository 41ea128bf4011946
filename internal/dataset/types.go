package dataset

// Series is one category row: a group label and one value per frame.
type Series struct {
	Group  string    `json:"group"`
	Values []float64 `json:"values"`
}

// Dataset is the result of a successful [Dialect.Build]. It is never
// modified after construction; loading another file builds a new one.
type Dataset struct {
	Title   string   `json:"title"`
	Sources []string `json:"sources"`
	Times   []string `json:"times"`

	// Left values are stored negated so both groups can share one axis.
	Left  []Series `json:"left"`
	Right []Series `json:"right"`

	TotalsLeft  []float64 `json:"totals_left"`
	TotalsRight []float64 `json:"totals_right"`
	// Totals is TotalsRight[i] - TotalsLeft[i]. Because TotalsLeft is
	// negative this is the combined population of the frame.
	Totals []float64 `json:"totals"`

	MaxValue float64 `json:"max_value"`
	Factor   float64 `json:"factor"`
	Label    string  `json:"label"`
}

// Frames returns the number of time columns.
func (d *Dataset) Frames() int {
	if d == nil {
		return 0
	}
	return len(d.Times)
}

// Shares returns the percentage of the frame total held by the left and
// right groups.
func (d *Dataset) Shares(frame int) (left, right float64) {
	if frame < 0 || frame >= d.Frames() || d.Totals[frame] == 0 {
		return 0, 0
	}
	total := d.Totals[frame]
	return -d.TotalsLeft[frame] / total * 100, d.TotalsRight[frame] / total * 100
}

// Scaled converts a raw value into display units.
func (d *Dataset) Scaled(v float64) float64 {
	if d.Factor == 0 {
		return v
	}
	return v / d.Factor
}

// Groups returns one label per pyramid row, preferring the right group's
// labels and falling back to the left group's where the right is shorter.
func (d *Dataset) Groups() []string {
	n := max(len(d.Left), len(d.Right))
	groups := make([]string, n)
	for i := range groups {
		switch {
		case i < len(d.Right) && d.Right[i].Group != "":
			groups[i] = d.Right[i].Group
		case i < len(d.Left):
			groups[i] = d.Left[i].Group
		}
	}
	return groups
}
