package dataset

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// ParseNumber reads the longest numeric prefix of s, the way spreadsheet
// exports are usually read: "12.5%" is 12.5, "1e3 hab" is 1000.
// ok is false when no finite number could be read; v is then 0.
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	n := numericPrefix(s)
	if n == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(s[:n], 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// numericPrefix returns the length of [+-]digits[.digits][e[+-]digits]
// at the start of s, or 0 when s does not start with a number.
func numericPrefix(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := countDigits(s[i:])
	i += intDigits
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = countDigits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if d := countDigits(s[j:]); d > 0 {
			i = j + d
		}
	}
	return i
}

func countDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}
