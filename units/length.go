package units

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"ubelt/common"
)

// DefaultPrecision is number of decimal digits used when displaying results.
const DefaultPrecision = 4

// Length is a magnitude with CSS unit.
type Length struct {
	Value float64
	Unit  Unit
}

// String formats length with DefaultPrecision, e.g. "1.3333pt".
func (l Length) String() string {
	return l.Format(DefaultPrecision)
}

// Format formats length value with requested precision followed by unit
// suffix.
func (l Length) Format(precision int) string {
	return FormatValue(l.Value, precision) + l.Unit.Suffix()
}

// FormatValue renders v with at most precision decimal digits, trailing
// zeros are dropped: 1.33333 -> "1.3333", 2.5000 -> "2.5", 3.0 -> "3".
func FormatValue(v float64, precision int) string {
	if precision < 0 {
		precision = DefaultPrecision
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

// ParseLength parses CSS length text such as "16px", "-1.5rem", "50%" or
// "12" (unitless numbers are pixels).
func ParseLength(s string) (Length, error) {
	lex := css.NewLexer(parse.NewInputString(s))

	var (
		tt   css.TokenType
		data []byte
	)
	found := false
	for {
		t, d := lex.Next()
		if t == css.ErrorToken {
			break
		}
		switch t {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.NumberToken, css.PercentageToken, css.DimensionToken:
			if !found {
				tt, data, found = t, d, true
				continue
			}
		}
		return Length{}, common.InvalidArgument("length", s, "expected a single CSS number, percentage or dimension")
	}
	if !found {
		return Length{}, common.InvalidArgument("length", s, "no numeric value")
	}

	var (
		num  = string(data)
		unit = UnitPx
	)
	switch tt {
	case css.PercentageToken:
		num, unit = strings.TrimSuffix(num, "%"), UnitPercent
	case css.DimensionToken:
		var suffix string
		num, suffix = splitDimension(num)
		u, err := LookupUnit(suffix)
		if err != nil {
			return Length{}, err
		}
		unit = u
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, common.InvalidArgument("length", s, err.Error())
	}
	return Length{Value: v, Unit: unit}, nil
}

// splitDimension separates trailing unit identifier from number. Exponent
// markers are part of the number because the identifier is scanned from the
// end and stops on first digit.
func splitDimension(s string) (string, string) {
	i := len(s)
	for i > 0 {
		r := rune(s[i-1])
		if unicode.IsDigit(r) || r == '.' {
			break
		}
		i--
	}
	return s[:i], s[i:]
}
