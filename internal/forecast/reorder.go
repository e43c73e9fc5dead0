package forecast

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// Coverage status notes shown in the raw-material overview.
const (
	noteNoConsumption = "Kein Verbrauch / Unendlich"
	noteUnlimited     = "Ausreichend (∞)"
	noteCritical      = "Kritisch"
	noteWarning       = "Warnung"
	noteAttention     = "Aufmerksamkeit"
	noteSufficient    = "Ausreichend"
)

// ReorderAnalyzer classifies raw materials by how many months the current
// stock covers at the trend-adjusted consumption rate.
type ReorderAnalyzer struct {
	clamp ClampStrategy
}

func NewReorderAnalyzer() *ReorderAnalyzer {
	return &ReorderAnalyzer{clamp: IQRClamp{Multiplier: 1.5}}
}

// Analyze computes the coverage status for every snapshot and returns the
// items in presentation order. Series and lead times are keyed by
// lower-cased, trimmed SKU; a nil lead time means none on file. now anchors
// the rolling recency window.
func (a *ReorderAnalyzer) Analyze(
	snapshots []domain.SkuSnapshot,
	series map[string]domain.MonthlySeries,
	leadTimes map[string]*float64,
	now time.Time,
) []domain.ReorderItem {
	items := make([]domain.ReorderItem, 0, len(snapshots))
	for _, snap := range snapshots {
		key := strings.ToLower(strings.TrimSpace(snap.SKU))
		items = append(items, a.analyzeSKU(snap, series[key], leadTimes[key], now))
	}

	SortReorderItems(items)

	return items
}

func (a *ReorderAnalyzer) analyzeSKU(
	snap domain.SkuSnapshot,
	series domain.MonthlySeries,
	leadTimeMonths *float64,
	now time.Time,
) domain.ReorderItem {
	item := domain.ReorderItem{
		SKU:   strings.TrimSpace(snap.SKU),
		Name:  snap.Name,
		Stock: snap.CurrentStock,
		Trend: domain.TrendStable,
	}

	months := ExtractValidMonths(series)
	if len(months) == 0 {
		// Absence of data is not treated as risk.
		item.UsedFallback = true
		item.Status = domain.StatusGreen
		item.StatusNote = noteNoConsumption
		if snap.CurrentStock > 0 {
			item.CoverageMonths = nil // unlimited
		} else {
			zero := 0.0
			item.CoverageMonths = &zero
		}

		return item
	}

	cleaned := ClampMonths(months, a.clamp)
	average := WeightedRecencyAverage(cleaned, CalendarWindow{Now: now, Span: 3})

	direction, multiplier := ClassifyTrend(TrendCoefficient(cleaned))
	item.Trend = direction
	item.MonthlyUsage = average * multiplier

	// All contributing values are > 0 and the trend cut is capped at -15%,
	// so the adjusted average stays > 0 and coverage is finite.
	coverage := snap.CurrentStock / item.MonthlyUsage
	item.CoverageMonths = &coverage
	item.Status, item.StatusNote = classifyCoverage(coverage)

	// Lead-time override: escalates to red, never improves a status.
	if leadTimeMonths != nil && *leadTimeMonths > 0 &&
		!math.IsNaN(*leadTimeMonths) && !math.IsInf(*leadTimeMonths, 0) &&
		!math.IsInf(coverage, 1) && coverage < *leadTimeMonths {
		item.Status = domain.StatusRed
		item.StatusNote = fmt.Sprintf("Unter Lieferzeit (%.1f Monate)", *leadTimeMonths)
		item.LeadTimeWarning = true
	}

	return item
}

// classifyCoverage maps a coverage horizon in months to a status. Thresholds
// are checked most severe first with strict comparisons, so boundary values
// fall into the less severe bucket.
func classifyCoverage(coverage float64) (domain.CoverageStatus, string) {
	switch {
	case math.IsInf(coverage, 1):
		return domain.StatusGreen, noteUnlimited
	case coverage < 1:
		return domain.StatusRed, noteCritical
	case coverage < 2:
		return domain.StatusOrange, noteWarning
	case coverage < 3:
		return domain.StatusYellow, noteAttention
	default:
		return domain.StatusGreen, noteSufficient
	}
}

// SortReorderItems orders results for presentation: materials with real
// history first, fallback rows last; within each bucket by status severity
// (red, orange, yellow, green), then by ascending coverage with unlimited
// coverage sorting last.
func SortReorderItems(items []domain.ReorderItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.UsedFallback != b.UsedFallback {
			return !a.UsedFallback
		}
		if a.Status.Severity() != b.Status.Severity() {
			return a.Status.Severity() < b.Status.Severity()
		}

		return sortableCoverage(a) < sortableCoverage(b)
	})
}

func sortableCoverage(item domain.ReorderItem) float64 {
	if item.CoverageMonths == nil {
		return math.Inf(1)
	}

	return *item.CoverageMonths
}
