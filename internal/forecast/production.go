package forecast

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// minimumDailyUsage is the hard floor for the blended daily usage estimate.
// It stands in for "assume minimal trickle demand" so items without usable
// history still surface real stock-outs instead of being masked by a zero rate.
const minimumDailyUsage = 0.1

// PlanningConfig holds the parameters of one production planning run.
type PlanningConfig struct {
	CoverageDays    int // target days of stock to hold
	SafetyBuffer    int // days-until-stockout threshold for urgency
	HolidayLeadDays int // days before Easter/Christmas the seasonal factor activates
}

// ProductionPlanner turns stock snapshots and last year's monthly production
// series into produce/no-produce decisions with a priority tier per SKU.
type ProductionPlanner struct {
	cfg   PlanningConfig
	clamp ClampStrategy
}

func NewProductionPlanner(cfg PlanningConfig) *ProductionPlanner {
	return &ProductionPlanner{
		cfg:   cfg,
		clamp: PercentileClamp{Low: 0.10, High: 0.90},
	}
}

// Plan computes the ordered production plan for all snapshots and returns it
// together with the holiday factor applied to the run. The series map holds
// last year's monthly quantities keyed by trimmed SKU (case-sensitive);
// minStocks the per-SKU minimum stock levels, 0 when absent. now drives the
// seasonal factor and the reference month.
func (p *ProductionPlanner) Plan(
	snapshots []domain.SkuSnapshot,
	series map[string]domain.MonthlySeries,
	minStocks map[string]float64,
	now time.Time,
) ([]domain.ProductionPlanItem, float64) {
	factor := HolidayFactor(now, p.cfg.HolidayLeadDays)

	items := make([]domain.ProductionPlanItem, 0, len(snapshots))
	for _, snap := range snapshots {
		sku := strings.TrimSpace(snap.SKU)
		items = append(items, p.planSKU(snap, series[sku], minStocks[sku], factor, now))
	}

	sortPlanItems(items)

	return items, factor
}

func (p *ProductionPlanner) planSKU(
	snap domain.SkuSnapshot,
	series domain.MonthlySeries,
	minStock float64,
	holidayFactor float64,
	now time.Time,
) domain.ProductionPlanItem {
	item := domain.ProductionPlanItem{
		SKU:          strings.TrimSpace(snap.SKU),
		Name:         snap.Name,
		CurrentStock: snap.CurrentStock,
	}

	months := ExtractValidMonths(series)
	if len(months) == 0 {
		item.UsedFallback = true
		item.DailyUsage = minimumDailyUsage
	} else {
		monthIdx := int(now.Month()) - 1

		// Daily rate of the same calendar month a year ago: last year's raw
		// value over last year's days in that month.
		var monthlyDaily float64
		if v := series.Values[monthIdx]; v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0 {
			monthlyDaily = *v / float64(daysInMonth(series.Year, monthIdx))
		}

		cleaned := ClampMonths(months, p.clamp)
		annualDaily := WeightedRecencyAverage(cleaned, LastEntriesWindow{N: 3}) * 12 / 365

		item.DailyUsage = 0.7*monthlyDaily + 0.3*annualDaily
		if item.DailyUsage <= 0 {
			item.DailyUsage = minimumDailyUsage
		}
	}

	// DailyUsage > 0 by construction, so this never divides by zero.
	item.DaysUntilStockout = snap.CurrentStock / item.DailyUsage

	item.MustProduce = snap.CurrentStock < minStock ||
		item.DaysUntilStockout < float64(p.cfg.SafetyBuffer)

	item.DesiredStock = math.Max(item.DailyUsage*float64(p.cfg.CoverageDays), minStock) * holidayFactor

	if item.MustProduce && item.DesiredStock > snap.CurrentStock {
		item.AmountToProduce = int(math.Ceil(item.DesiredStock - snap.CurrentStock))
	}

	switch {
	case item.DaysUntilStockout < float64(p.cfg.SafetyBuffer):
		item.Priority = domain.PriorityHigh
	case item.DaysUntilStockout < 2*float64(p.cfg.SafetyBuffer):
		item.Priority = domain.PriorityMedium
	default:
		item.Priority = domain.PriorityLow
	}

	return item
}

// sortPlanItems orders a plan for presentation: Hoch before Mittel before
// Tief, real-history SKUs before fallback SKUs within a tier, then by
// ascending days until stockout.
func sortPlanItems(items []domain.ProductionPlanItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Priority.Rank() != b.Priority.Rank() {
			return a.Priority.Rank() < b.Priority.Rank()
		}
		if a.UsedFallback != b.UsedFallback {
			return !a.UsedFallback
		}

		return a.DaysUntilStockout < b.DaysUntilStockout
	})
}

// daysInMonth returns the number of days in the given month (0 = January) of
// the given year.
func daysInMonth(year, monthIdx int) int {
	return time.Date(year, time.Month(monthIdx+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
