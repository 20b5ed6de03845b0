// Package contrast computes WCAG 2.x relative luminance and contrast ratio
// of two sRGB colors.
package contrast

import (
	"math"

	"go.uber.org/multierr"

	"ubelt/common"
)

// Normal text thresholds. Large text thresholds are not supported.
const (
	MinRatioAA  = 4.5
	MinRatioAAA = 7.0
)

// RGB is 8 bit per channel sRGB color.
type RGB struct {
	R, G, B int
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// Result is classified contrast ratio.
type Result struct {
	Ratio float64 // in [1, 21]
	AA    bool
	AAA   bool
}

// Validate checks that every channel is within [0, 255].
func (c RGB) Validate() (err error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"red channel", c.R}, {"green channel", c.G}, {"blue channel", c.B}} {
		if ch.v < 0 || ch.v > 255 {
			err = multierr.Append(err, common.InvalidArgument(ch.name, ch.v, "must be within [0, 255]"))
		}
	}
	return err
}

func linearize(ch int) float64 {
	n := float64(ch) / 255
	if n <= 0.03928 {
		return n / 12.92
	}
	return math.Pow((n+0.055)/1.055, 2.4)
}

// RelativeLuminance returns WCAG relative luminance of c in [0, 1].
func RelativeLuminance(c RGB) (float64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B), nil
}

// Ratio returns contrast ratio between two colors. Order of arguments does
// not matter.
func Ratio(a, b RGB) (float64, error) {
	la, err := RelativeLuminance(a)
	if err != nil {
		return 0, err
	}
	lb, err := RelativeLuminance(b)
	if err != nil {
		return 0, err
	}
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05), nil
}

// Classify checks ratio against normal text AA and AAA thresholds.
func Classify(ratio float64) Result {
	return Result{
		Ratio: ratio,
		AA:    ratio >= MinRatioAA,
		AAA:   ratio >= MinRatioAAA,
	}
}

// Evaluate computes and classifies contrast of foreground on background.
func Evaluate(fg, bg RGB) (Result, error) {
	r, err := Ratio(fg, bg)
	if err != nil {
		return Result{}, err
	}
	return Classify(r), nil
}

// SuggestText picks black or white, whichever contrasts more with bg. Ties
// go to black.
func SuggestText(bg RGB) (RGB, error) {
	onBlack, err := Ratio(Black, bg)
	if err != nil {
		return RGB{}, err
	}
	onWhite, err := Ratio(White, bg)
	if err != nil {
		return RGB{}, err
	}
	if onBlack >= onWhite {
		return Black, nil
	}
	return White, nil
}
