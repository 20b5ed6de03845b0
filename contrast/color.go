package contrast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"

	"ubelt/common"
)

// ParseColor accepts "#rgb", "#rrggbb" (leading # is optional), "rgb(r, g, b)"
// and "r,g,b" forms.
func ParseColor(s string) (RGB, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return RGB{}, common.InvalidArgument("color", s, "empty")
	}

	if inner, ok := strings.CutPrefix(in, "rgb("); ok {
		inner, ok = strings.CutSuffix(inner, ")")
		if !ok {
			return RGB{}, common.InvalidArgument("color", s, "unbalanced parenthesis")
		}
		return parseTriplet(s, inner)
	}
	if strings.ContainsRune(in, ',') {
		return parseTriplet(s, in)
	}

	if !strings.HasPrefix(in, "#") {
		in = "#" + in
	}
	if len(in) != 4 && len(in) != 7 {
		return RGB{}, common.InvalidArgument("color", s, "hex color must have 3 or 6 digits")
	}
	c, err := colorful.Hex(in)
	if err != nil {
		return RGB{}, common.InvalidArgument("color", s, err.Error())
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, nil
}

func parseTriplet(orig, list string) (RGB, error) {
	parts := strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(parts) != 3 {
		return RGB{}, common.InvalidArgument("color", orig, "expected exactly 3 channels")
	}

	var (
		ch  [3]int
		err error
	)
	for i, p := range parts {
		v, perr := strconv.ParseFloat(p, 64)
		switch {
		case perr != nil:
			err = multierr.Append(err, common.InvalidArgument("color channel", p, "not a number"))
		case v != math.Trunc(v):
			err = multierr.Append(err, common.InvalidArgument("color channel", p, "must be an integer"))
		default:
			ch[i] = int(v)
		}
	}
	if err != nil {
		return RGB{}, err
	}

	c := RGB{ch[0], ch[1], ch[2]}
	if err := c.Validate(); err != nil {
		return RGB{}, err
	}
	return c, nil
}

// Hex returns "#rrggbb" form. Channels are clamped for display.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(c.R), clamp(c.G), clamp(c.B))
}

func (c RGB) String() string {
	return c.Hex()
}

func clamp(v int) int {
	return max(0, min(255, v))
}

// FormatRatio renders ratio WCAG style, e.g. "4.54:1". Digits past the
// second decimal are dropped, not rounded, so the displayed ratio never
// reaches a threshold the actual ratio misses.
func FormatRatio(ratio float64) string {
	// tolerance absorbs float noise like 20.999999999999996
	s := strconv.FormatFloat(math.Floor((ratio+1e-9)*100)/100, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s + ":1"
}
