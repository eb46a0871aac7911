// Package convert implements the serving-basis conversions and the
// government-mandated display rounding from the nutrition labeling
// notification (ฉบับที่ 445 พ.ศ. 2566).
package convert

import (
	"fmt"
	"math"
	"strconv"

	"github.com/siripat/labelcheck/internal/model"
)

// Sentinel marks a rounded value that must be displayed as a "less than X"
// phrase instead of a number.
type Sentinel int

const (
	SentinelNone Sentinel = iota
	SentinelLessThanHalf // trans fat below 0.5 g
	SentinelLessThanOne  // protein/carbohydrate/fiber/sugar below 1 g
	SentinelLessThanFive // cholesterol below 5 mg
)

// limit returns the display cutoff the sentinel stands for.
func (s Sentinel) limit() float64 {
	switch s {
	case SentinelLessThanHalf:
		return 0.5
	case SentinelLessThanOne:
		return 1
	case SentinelLessThanFive:
		return 5
	default:
		return 0
	}
}

// Rounded is a display-rounded nutrient value: either a finite number or a
// "less than X" sentinel. For sentinel values, Value keeps the unrounded
// input so that re-rounding reproduces the same sentinel.
type Rounded struct {
	Value    float64
	Sentinel Sentinel
}

// IsZero reports whether the value rounds to exactly zero. Sentinel values
// are small but not zero.
func (r Rounded) IsZero() bool {
	return r.Sentinel == SentinelNone && r.Value == 0
}

// Exceeds reports whether the rounded value is strictly greater than the
// threshold. Sentinel values sit below their cutoff and never exceed a
// non-negative threshold.
func (r Rounded) Exceeds(threshold float64) bool {
	if r.Sentinel != SentinelNone {
		return threshold < 0
	}
	return r.Value > threshold
}

// Display renders the rounded value for a label: a plain number, or the
// localized "น้อยกว่า X" phrase for sentinel values.
func (r Rounded) Display() string {
	if r.Sentinel != SentinelNone {
		return "น้อยกว่า " + formatNumber(r.Sentinel.limit())
	}
	return formatNumber(r.Value)
}

// DisplayWithUnit is Display with the nutrient's unit appended.
func (r Rounded) DisplayWithUnit(unit string) string {
	if unit == "" {
		return r.Display()
	}
	return r.Display() + " " + unit
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	if math.Abs(v) >= 10 {
		return fmt.Sprintf("%.1f", v)
	}
	s := fmt.Sprintf("%.2f", v)
	// Drop a trailing zero so 0.5 does not render as 0.50.
	if s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	return s
}

// nearest rounds v to the nearest multiple of step.
func nearest(v, step float64) float64 {
	return math.Round(v/step) * step
}

// decimals rounds v to n decimal places.
func decimals(v float64, n int) float64 {
	pow := math.Pow(10, float64(n))
	return math.Round(v*pow) / pow
}

// Round applies the nutrient-specific display rounding. The regime
// boundaries are exact legal thresholds. Rounding is idempotent:
// Round(Round(v).Value) yields the same result for non-sentinel values,
// and sentinel inputs stay within their sentinel band.
func Round(value float64, n model.Nutrient) Rounded {
	switch n {
	case model.NutrientEnergy:
		switch {
		case value < 5:
			return Rounded{Value: 0}
		case value < 50:
			return Rounded{Value: nearest(value, 5)}
		default:
			return Rounded{Value: nearest(value, 10)}
		}

	case model.NutrientFat, model.NutrientSaturatedFat:
		switch {
		case value < 0.5:
			return Rounded{Value: 0}
		case value < 5:
			return Rounded{Value: nearest(value, 0.5)}
		default:
			return Rounded{Value: nearest(value, 1)}
		}

	case model.NutrientTransFat:
		switch {
		case value == 0:
			return Rounded{Value: 0}
		case value < 0.5:
			return Rounded{Value: value, Sentinel: SentinelLessThanHalf}
		case value < 5:
			return Rounded{Value: nearest(value, 0.5)}
		default:
			return Rounded{Value: nearest(value, 1)}
		}

	case model.NutrientCholesterol:
		switch {
		case value < 2:
			return Rounded{Value: 0}
		case value < 5:
			return Rounded{Value: value, Sentinel: SentinelLessThanFive}
		default:
			return Rounded{Value: nearest(value, 5)}
		}

	case model.NutrientProtein, model.NutrientCarbohydrate, model.NutrientFiber, model.NutrientSugar:
		switch {
		case value < 0.5:
			return Rounded{Value: 0}
		case value < 1:
			return Rounded{Value: value, Sentinel: SentinelLessThanOne}
		default:
			return Rounded{Value: nearest(value, 1)}
		}

	case model.NutrientSodium, model.NutrientPotassium:
		switch {
		case value < 5:
			return Rounded{Value: 0}
		case value <= 140:
			return Rounded{Value: nearest(value, 5)}
		default:
			return Rounded{Value: nearest(value, 10)}
		}

	default:
		// Vitamins, minerals, and anything else: precision scales with
		// magnitude.
		switch {
		case value >= 100:
			return Rounded{Value: nearest(value, 1)}
		case value >= 10:
			return Rounded{Value: decimals(value, 1)}
		default:
			return Rounded{Value: decimals(value, 2)}
		}
	}
}

// RoundRDIPercent applies the %RDI rounding for vitamins and minerals:
// 5-steps between 5 and 50, 10-steps above 50, one decimal place below 5.
func RoundRDIPercent(percent float64) float64 {
	switch {
	case percent >= 5 && percent <= 50:
		return nearest(percent, 5)
	case percent > 50:
		return nearest(percent, 10)
	default:
		return decimals(percent, 1)
	}
}
