package records

import (
	"maps"
	"slices"
)

// View maps day-of-month to value for one identity and one month.
type View map[int]float64

// Days returns the days that carry a value, ascending.
func (v View) Days() []int {
	return slices.Sorted(maps.Keys(v))
}

// Trend is the direction of change across a month.
type Trend int

const (
	TrendFlat Trend = iota
	TrendUp
	TrendDown
)

// String returns a short label for the trend
func (t Trend) String() string {
	switch t {
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	default:
		return "flat"
	}
}

// Summary describes a month: first recorded value, latest recorded value and
// the difference between them.
type Summary struct {
	Start   float64
	Current float64
	Change  float64
	Trend   Trend
}

// Summary computes the month summary. ok is false for an empty view.
func (v View) Summary() (summary Summary, ok bool) {
	days := v.Days()
	if len(days) == 0 {
		return Summary{}, false
	}

	summary.Start = v[days[0]]
	summary.Current = v[days[len(days)-1]]
	summary.Change = summary.Current - summary.Start

	switch {
	case summary.Change > 0:
		summary.Trend = TrendUp
	case summary.Change < 0:
		summary.Trend = TrendDown
	default:
		summary.Trend = TrendFlat
	}

	return summary, true
}
