package dataset

import "math"

// Labels names the display unit for each magnitude tier.
type Labels struct {
	Units     string `yaml:"units" json:"units"`
	Thousands string `yaml:"thousands" json:"thousands"`
	Millions  string `yaml:"millions" json:"millions"`
	Billions  string `yaml:"billions" json:"billions"`
}

// DefaultLabels are the captions used by the census tables the dialect
// comes from.
func DefaultLabels() Labels {
	return Labels{
		Units:     "Personas",
		Thousands: "Miles de personas",
		Millions:  "Millones de personas",
		Billions:  "Miles de millones de personas",
	}
}

// Scale fixes the chart domain for a dataset.
type Scale struct {
	MaxValue float64
	Factor   float64
	Label    string
}

// ScaleFor rounds max up to d×10^k and picks the unit tier from k.
// A non-positive max yields a zero domain in units.
func ScaleFor(max float64, labels Labels) Scale {
	if !(max > 0) || math.IsInf(max, 0) {
		return Scale{MaxValue: 0, Factor: 1, Label: labels.Units}
	}

	radix := int(math.Floor(math.Log10(max)))
	// Log10 can land just below an exact power of ten.
	if max/math.Pow10(radix) >= 10 {
		radix++
	}
	mantissa := math.Ceil(max / math.Pow10(radix))
	if mantissa >= 10 {
		mantissa = 1
		radix++
	}

	s := Scale{MaxValue: mantissa * math.Pow10(radix)}
	switch {
	case radix >= 9:
		s.Factor, s.Label = 1e9, labels.Billions
	case radix >= 6:
		s.Factor, s.Label = 1e6, labels.Millions
	case radix >= 3:
		s.Factor, s.Label = 1e3, labels.Thousands
	default:
		s.Factor, s.Label = 1, labels.Units
	}
	return s
}
