package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

var analysisDay = time.Date(2025, time.April, 15, 9, 0, 0, 0, time.UTC)

func TestReorderAnalyzer_ExactCoverageBoundary(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	// 6 units on hand, 2 per month Jan-Mar, flat trend: coverage is exactly
	// 3 months and falls into the green bucket, not yellow.
	series := map[string]domain.MonthlySeries{
		"mehl-550": seriesWith(map[int]float64{0: 2, 1: 2, 2: 2}),
	}

	snapshots := []domain.SkuSnapshot{{SKU: "MEHL-550", Name: "Weizenmehl", CurrentStock: 6}}

	items := analyzer.Analyze(snapshots, series, nil, analysisDay)
	require.Len(t, items, 1)

	item := items[0]
	require.False(t, item.UsedFallback)
	require.Equal(t, domain.TrendStable, item.Trend)
	require.InDelta(t, 2.0, item.MonthlyUsage, 1e-9)
	require.NotNil(t, item.CoverageMonths)
	require.InDelta(t, 3.0, *item.CoverageMonths, 1e-9)
	require.Equal(t, domain.StatusGreen, item.Status)
	require.Equal(t, "Ausreichend", item.StatusNote)
}

func TestReorderAnalyzer_FallbackWithoutHistory(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	snapshots := []domain.SkuSnapshot{
		{SKU: "ZUCKER", CurrentStock: 12},
		{SKU: "SALZ", CurrentStock: 0},
	}

	items := analyzer.Analyze(snapshots, nil, nil, analysisDay)
	require.Len(t, items, 2)

	byKey := map[string]domain.ReorderItem{}
	for _, item := range items {
		byKey[item.SKU] = item
	}

	withStock := byKey["ZUCKER"]
	require.True(t, withStock.UsedFallback)
	require.Nil(t, withStock.CoverageMonths) // unlimited
	require.Equal(t, domain.StatusGreen, withStock.Status)
	require.Equal(t, "Kein Verbrauch / Unendlich", withStock.StatusNote)

	withoutStock := byKey["SALZ"]
	require.True(t, withoutStock.UsedFallback)
	require.NotNil(t, withoutStock.CoverageMonths)
	require.Equal(t, 0.0, *withoutStock.CoverageMonths)
	require.Equal(t, domain.StatusGreen, withoutStock.Status)
}

func TestReorderAnalyzer_StatusThresholds(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	// Flat consumption of 2 per month; stock levels chosen to hit each tier.
	// Boundary stocks (2 -> coverage 1, 4 -> coverage 2) land in the less
	// severe bucket because comparisons are strict.
	series := map[string]domain.MonthlySeries{}
	snapshots := []domain.SkuSnapshot{}
	for sku, stock := range map[string]float64{
		"crit": 1, // 0.5 months
		"warn": 2, // 1.0 months, not red
		"att":  5, // 2.5 months
		"ok":   8, // 4.0 months
	} {
		series[sku] = seriesWith(map[int]float64{0: 2, 1: 2, 2: 2})
		snapshots = append(snapshots, domain.SkuSnapshot{SKU: sku, CurrentStock: stock})
	}

	items := analyzer.Analyze(snapshots, series, nil, analysisDay)

	byKey := map[string]domain.ReorderItem{}
	for _, item := range items {
		byKey[item.SKU] = item
	}

	require.Equal(t, domain.StatusRed, byKey["crit"].Status)
	require.Equal(t, "Kritisch", byKey["crit"].StatusNote)
	require.Equal(t, domain.StatusOrange, byKey["warn"].Status)
	require.Equal(t, domain.StatusYellow, byKey["att"].Status)
	require.Equal(t, domain.StatusGreen, byKey["ok"].Status)
}

func TestReorderAnalyzer_TrendAdjustsUsage(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	// Strongly rising consumption: the boost caps at +15%.
	series := map[string]domain.MonthlySeries{
		"hefe": seriesWith(map[int]float64{0: 10, 1: 20, 2: 30}),
	}

	snapshots := []domain.SkuSnapshot{{SKU: "HEFE", CurrentStock: 100}}

	items := analyzer.Analyze(snapshots, series, nil, analysisDay)
	require.Len(t, items, 1)

	item := items[0]
	require.Equal(t, domain.TrendUp, item.Trend)

	// April run: Feb and Mar are in the calendar window, Jan is not.
	base := (10.0 + 2*20.0 + 2*30.0) / 5.0
	require.InDelta(t, base*1.15, item.MonthlyUsage, 1e-9)
	require.InDelta(t, 100.0/(base*1.15), *item.CoverageMonths, 1e-9)
}

func TestReorderAnalyzer_LeadTimeEscalatesToRed(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	series := map[string]domain.MonthlySeries{
		"vanille": seriesWith(map[int]float64{0: 2, 1: 2, 2: 2}),
	}
	lead := 4.0
	leadTimes := map[string]*float64{"vanille": &lead}

	snapshots := []domain.SkuSnapshot{{SKU: "VANILLE", CurrentStock: 6}}

	items := analyzer.Analyze(snapshots, series, leadTimes, analysisDay)
	require.Len(t, items, 1)

	// Coverage of 3 months would be green, but it is below the 4-month
	// supplier lead time.
	item := items[0]
	require.Equal(t, domain.StatusRed, item.Status)
	require.True(t, item.LeadTimeWarning)
	require.Contains(t, item.StatusNote, "4.0")
}

func TestReorderAnalyzer_LeadTimeNeverImproves(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	series := map[string]domain.MonthlySeries{
		"mohn": seriesWith(map[int]float64{0: 2, 1: 2, 2: 2}),
	}
	lead := 0.2
	leadTimes := map[string]*float64{"mohn": &lead}

	// Coverage 0.5 months is already red; the short lead time does not help.
	snapshots := []domain.SkuSnapshot{{SKU: "MOHN", CurrentStock: 1}}

	items := analyzer.Analyze(snapshots, series, leadTimes, analysisDay)

	item := items[0]
	require.Equal(t, domain.StatusRed, item.Status)
	require.False(t, item.LeadTimeWarning)
	require.Equal(t, "Kritisch", item.StatusNote)
}

func TestReorderAnalyzer_LookupIsCaseInsensitive(t *testing.T) {
	analyzer := NewReorderAnalyzer()

	series := map[string]domain.MonthlySeries{
		"butter": seriesWith(map[int]float64{0: 5, 1: 5, 2: 5}),
	}

	snapshots := []domain.SkuSnapshot{{SKU: "  BUTTER ", CurrentStock: 10}}

	items := analyzer.Analyze(snapshots, series, nil, analysisDay)

	require.False(t, items[0].UsedFallback)
	require.Equal(t, "BUTTER", items[0].SKU)
}

func TestSortReorderItems_Contract(t *testing.T) {
	inf := func() *float64 { return nil }
	cov := func(v float64) *float64 { return &v }

	items := []domain.ReorderItem{
		{SKU: "fallback", UsedFallback: true, Status: domain.StatusGreen, CoverageMonths: inf()},
		{SKU: "green-late", Status: domain.StatusGreen, CoverageMonths: cov(8)},
		{SKU: "red", Status: domain.StatusRed, CoverageMonths: cov(0.4)},
		{SKU: "green-inf", Status: domain.StatusGreen, CoverageMonths: inf()},
		{SKU: "yellow", Status: domain.StatusYellow, CoverageMonths: cov(2.5)},
		{SKU: "green-early", Status: domain.StatusGreen, CoverageMonths: cov(3.5)},
		{SKU: "orange", Status: domain.StatusOrange, CoverageMonths: cov(1.5)},
	}

	SortReorderItems(items)

	order := make([]string, len(items))
	for i, item := range items {
		order[i] = item.SKU
	}

	require.Equal(t, []string{
		"red", "orange", "yellow", "green-early", "green-late", "green-inf",
		"fallback",
	}, order)
}
