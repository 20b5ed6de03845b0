// Package units converts CSS lengths between unit kinds using pixels as the
// common intermediate unit.
package units

//go:generate go tool go-enum --marshal --names --values

import (
	"strings"

	"ubelt/common"
)

// Specification of CSS length unit. Percent is recognized but cannot be
// converted: percentage is relative to a parent dimension which is not part
// of Context.
// ENUM(px, pt, em, rem, vw, vh, percent)
type Unit int

// Convertible lists units which take part in conversion, in display order.
var Convertible = []Unit{UnitPx, UnitPt, UnitEm, UnitRem, UnitVw, UnitVh}

// Suffix returns unit as written in stylesheets.
func (u Unit) Suffix() string {
	if u == UnitPercent {
		return "%"
	}
	return u.String()
}

// LookupUnit maps CSS unit suffix (case insensitive, "%" is accepted for
// percent) to Unit.
func LookupUnit(name string) (Unit, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "%" {
		return UnitPercent, nil
	}
	u, err := ParseUnit(s)
	if err != nil {
		return u, common.UnsupportedUnit(name, "try one of "+strings.Join(UnitNames(), ", "))
	}
	return u, nil
}

// checkConvertible fails for percent and for values outside of the enum.
func checkConvertible(u Unit) error {
	switch {
	case u == UnitPercent:
		return common.UnsupportedUnit(u.Suffix(), "percentage has no fixed pixel equivalent")
	case !u.IsValid():
		return common.UnsupportedUnit(u.String(), "")
	}
	return nil
}
