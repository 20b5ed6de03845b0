package units

import (
	"math"

	"go.uber.org/multierr"

	"ubelt/common"
)

// pxPerPt is CSS reference ratio: 96px per inch, 72pt per inch.
const pxPerPt = 96.0 / 72.0

// Context supplies dimensions relative units are resolved against. All
// values are in pixels.
type Context struct {
	BaseFontSize   float64 // must be > 0, used for both em and rem
	ViewportWidth  float64
	ViewportHeight float64
}

// DefaultContext mirrors common browser defaults.
var DefaultContext = Context{BaseFontSize: 16, ViewportWidth: 1920, ViewportHeight: 1080}

// Validate reports every problem with the context at once.
func (c Context) Validate() (err error) {
	if !finite(c.BaseFontSize) || c.BaseFontSize <= 0 {
		err = multierr.Append(err, common.InvalidArgument("base font size", c.BaseFontSize, "must be a finite number greater than 0"))
	}
	if !finite(c.ViewportWidth) || c.ViewportWidth < 0 {
		err = multierr.Append(err, common.InvalidArgument("viewport width", c.ViewportWidth, "must be a finite non-negative number"))
	}
	if !finite(c.ViewportHeight) || c.ViewportHeight < 0 {
		err = multierr.Append(err, common.InvalidArgument("viewport height", c.ViewportHeight, "must be a finite non-negative number"))
	}
	return err
}

// Convert converts value from one unit to another going through pixels.
// Result is not rounded. Percent as either unit fails with
// *common.UnsupportedUnitError, bad numbers fail with
// *common.InvalidArgumentError.
func Convert(value float64, from, to Unit, ctx Context) (float64, error) {
	if err := multierr.Append(checkConvertible(from), checkConvertible(to)); err != nil {
		return 0, err
	}

	var err error
	if !finite(value) {
		err = common.InvalidArgument("value", value, "must be a finite number")
	}
	if err = multierr.Append(err, ctx.Validate()); err != nil {
		return 0, err
	}

	if from == to {
		return value, nil
	}
	px, err := toPx(value, from, ctx)
	if err != nil {
		return 0, err
	}
	res, err := fromPx(px, to, ctx)
	if err != nil {
		return 0, err
	}
	if !finite(res) {
		return 0, common.InvalidArgument("value", value, "result is out of range")
	}
	return res, nil
}

func toPx(value float64, from Unit, ctx Context) (float64, error) {
	switch from {
	case UnitPt:
		return value * pxPerPt, nil
	case UnitEm, UnitRem:
		return value * ctx.BaseFontSize, nil
	case UnitVw:
		if ctx.ViewportWidth == 0 {
			return 0, common.InvalidArgument("viewport width", ctx.ViewportWidth, "cannot convert from vw with zero viewport width")
		}
		return value / 100 * ctx.ViewportWidth, nil
	case UnitVh:
		if ctx.ViewportHeight == 0 {
			return 0, common.InvalidArgument("viewport height", ctx.ViewportHeight, "cannot convert from vh with zero viewport height")
		}
		return value / 100 * ctx.ViewportHeight, nil
	default:
		return value, nil
	}
}

func fromPx(px float64, to Unit, ctx Context) (float64, error) {
	switch to {
	case UnitPt:
		return px / pxPerPt, nil
	case UnitEm, UnitRem:
		return px / ctx.BaseFontSize, nil
	case UnitVw:
		if ctx.ViewportWidth == 0 {
			return 0, common.InvalidArgument("viewport width", ctx.ViewportWidth, "cannot convert to vw with zero viewport width")
		}
		return px / ctx.ViewportWidth * 100, nil
	case UnitVh:
		if ctx.ViewportHeight == 0 {
			return 0, common.InvalidArgument("viewport height", ctx.ViewportHeight, "cannot convert to vh with zero viewport height")
		}
		return px / ctx.ViewportHeight * 100, nil
	default:
		return px, nil
	}
}

// ConvertLength is Convert for Length values.
func ConvertLength(l Length, to Unit, ctx Context) (Length, error) {
	v, err := Convert(l.Value, l.Unit, to, ctx)
	if err != nil {
		return Length{}, err
	}
	return Length{Value: v, Unit: to}, nil
}

// ConvertAll returns l expressed in every convertible unit, in the order of
// Convertible. Targets which cannot be reached in the given context (vw or
// vh with zero viewport) are omitted, a source in such unit is an error.
func ConvertAll(l Length, ctx Context) ([]Length, error) {
	// px is always reachable, failure here rejects the source
	if _, err := ConvertLength(l, UnitPx, ctx); err != nil {
		return nil, err
	}
	res := make([]Length, 0, len(Convertible))
	for _, u := range Convertible {
		if (u == UnitVw && ctx.ViewportWidth == 0) || (u == UnitVh && ctx.ViewportHeight == 0) {
			continue
		}
		out, err := ConvertLength(l, u, ctx)
		if err != nil {
			return nil, err
		}
		res = append(res, out)
	}
	return res, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
