package forecast

import (
	"math"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

const (
	// trendDeadband is the relative slope below which consumption counts as flat.
	trendDeadband = 0.05
	// trendCap limits how far a detected trend may move the average.
	trendCap = 0.15
)

// TrendCoefficient returns the ordinary least-squares slope of value over the
// actual calendar month index, normalized by the mean value so it is
// dimensionless. Gaps between months matter: x is the month index, not the
// sequence position. Fewer than three points, a degenerate x spread, or a
// zero mean all yield 0 (no trend).
func TrendCoefficient(months []ValidMonth) float64 {
	if len(months) < 3 {
		return 0
	}

	n := float64(len(months))
	var sumX, sumY, sumXY, sumXX float64
	for _, m := range months {
		x := float64(m.Month)
		sumX += x
		sumY += m.Value
		sumXY += x * m.Value
		sumXX += x * x
	}

	// Cannot occur with distinct month indices, but guard anyway.
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / den

	mean := sumY / n
	if mean == 0 {
		return 0
	}

	return slope / mean
}

// ClassifyTrend maps a relative trend coefficient to a direction and the
// multiplier applied to the weighted average. Rising consumption boosts the
// estimate by at most +15%, falling consumption cuts it by at most -15%.
func ClassifyTrend(coefficient float64) (domain.TrendDirection, float64) {
	switch {
	case coefficient > trendDeadband:
		return domain.TrendUp, 1 + math.Min(trendCap, coefficient)
	case coefficient < -trendDeadband:
		return domain.TrendDown, 1 + math.Max(-trendCap, coefficient)
	default:
		return domain.TrendStable, 1
	}
}
