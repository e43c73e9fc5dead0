// backend-go/internal/domain/models.go
package domain

import "time"

// SkuSnapshot represents the current on-hand quantity for one SKU, as
// delivered by the upstream stock export (already normalized).
type SkuSnapshot struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	CurrentStock float64 `json:"current_stock"`
}

// MonthlySeries holds up to twelve monthly quantities for one SKU and year.
// Index 0 is January. A nil entry means "no observation for that month",
// which is not the same as zero.
type MonthlySeries struct {
	SKU    string
	Year   int
	Values [12]*float64
}

// SkuReference carries the per-SKU master data the planners need: the
// minimum stock level and, for raw materials, the supplier lead time.
// LeadTimeMonths is nil when the stored value is missing or unusable.
type SkuReference struct {
	SKU            string   `json:"sku" db:"sku"`
	Name           string   `json:"name" db:"name"`
	MinStock       float64  `json:"min_stock" db:"min_stock"`
	LeadTimeMonths *float64 `json:"lead_time_months,omitempty"`
}

// ProductionPlanItem is the per-SKU outcome of a production planning run.
type ProductionPlanItem struct {
	SKU               string   `json:"sku" db:"sku"`
	Name              string   `json:"name" db:"name"`
	CurrentStock      float64  `json:"current_stock" db:"current_stock"`
	DailyUsage        float64  `json:"daily_usage" db:"daily_usage"`
	DaysUntilStockout float64  `json:"days_until_stockout" db:"days_until_stockout"`
	DesiredStock      float64  `json:"desired_stock" db:"desired_stock"`
	AmountToProduce   int      `json:"amount_to_produce" db:"amount_to_produce"`
	MustProduce       bool     `json:"must_produce" db:"must_produce"`
	Priority          Priority `json:"priority" db:"priority"`
	UsedFallback      bool     `json:"used_fallback" db:"used_fallback"`
}

// ReorderItem is the per-SKU outcome of a raw-material reorder analysis.
// CoverageMonths is nil when the projected coverage is unlimited (no
// consumption at all); it is never negative.
type ReorderItem struct {
	SKU             string         `json:"sku" db:"sku"`
	Name            string         `json:"name" db:"name"`
	Stock           float64        `json:"stock" db:"stock"`
	MonthlyUsage    float64        `json:"monthly_usage" db:"monthly_usage"`
	CoverageMonths  *float64       `json:"coverage_months" db:"coverage_months"`
	Status          CoverageStatus `json:"status" db:"status"`
	StatusNote      string         `json:"status_note" db:"status_note"`
	Trend           TrendDirection `json:"trend" db:"trend"`
	LeadTimeWarning bool           `json:"lead_time_warning" db:"lead_time_warning"`
	UsedFallback    bool           `json:"used_fallback" db:"used_fallback"`
}

// ProductionRun is the persisted header of one production planning run.
type ProductionRun struct {
	ID               int64     `json:"id" db:"id"`
	Label            string    `json:"label" db:"label"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	CoverageDays     int       `json:"coverage_days" db:"coverage_days"`
	SafetyBufferDays int       `json:"safety_buffer_days" db:"safety_buffer_days"`
	HolidayLeadDays  int       `json:"holiday_lead_days" db:"holiday_lead_days"`
	HolidayFactor    float64   `json:"holiday_factor" db:"holiday_factor"`
	TotalSKUs        int       `json:"total_skus" db:"total_skus"`
}

// AnalysisRun is the persisted header of one reorder analysis run.
type AnalysisRun struct {
	ID         int64     `json:"id" db:"id"`
	Label      string    `json:"label" db:"label"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	TargetYear int       `json:"target_year" db:"target_year"`
	TotalSKUs  int       `json:"total_skus" db:"total_skus"`
}

// ProductionPlan bundles a run header with its ordered items.
type ProductionPlan struct {
	Run   ProductionRun        `json:"run"`
	Items []ProductionPlanItem `json:"items"`
}

// ReorderAnalysis bundles an analysis run header with its ordered items.
type ReorderAnalysis struct {
	Run   AnalysisRun   `json:"run"`
	Items []ReorderItem `json:"items"`
}
