package viz

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a locale tag cannot be parsed.
const DefaultLocale = "es-MX"

// Formatter prints numbers for one locale.
type Formatter struct {
	p *message.Printer
}

func NewFormatter(locale string) Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	return Formatter{p: message.NewPrinter(tag)}
}

// Number prints integral values with grouping and anything else with one
// decimal.
func (f Formatter) Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return f.p.Sprintf("%d", int64(v))
	}
	return f.p.Sprintf("%.1f", v)
}

func (f Formatter) Percent(v float64) string {
	return f.p.Sprintf("%.1f%%", v)
}
