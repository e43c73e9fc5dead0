// backend-go/internal/repository/reference_repository.go
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// ReferenceRepository loads the persisted master data the planners consume:
// monthly consumption series per year and per-SKU reference values.
type ReferenceRepository interface {
	GetMonthlySeries(ctx context.Context, year int) ([]domain.MonthlySeries, error)
	GetSkuReferences(ctx context.Context) ([]domain.SkuReference, error)
}

type referenceRepository struct {
	db *sqlx.DB
}

func NewReferenceRepository(db *sqlx.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

// monthlySeriesRow mirrors one row of monthly_consumption. Each month column
// is nullable: NULL means no observation, which the engine treats differently
// from zero.
type monthlySeriesRow struct {
	SKU  string          `db:"sku"`
	Year int             `db:"year"`
	M1   sql.NullFloat64 `db:"m1"`
	M2   sql.NullFloat64 `db:"m2"`
	M3   sql.NullFloat64 `db:"m3"`
	M4   sql.NullFloat64 `db:"m4"`
	M5   sql.NullFloat64 `db:"m5"`
	M6   sql.NullFloat64 `db:"m6"`
	M7   sql.NullFloat64 `db:"m7"`
	M8   sql.NullFloat64 `db:"m8"`
	M9   sql.NullFloat64 `db:"m9"`
	M10  sql.NullFloat64 `db:"m10"`
	M11  sql.NullFloat64 `db:"m11"`
	M12  sql.NullFloat64 `db:"m12"`
}

func (r monthlySeriesRow) toDomain() domain.MonthlySeries {
	series := domain.MonthlySeries{SKU: strings.TrimSpace(r.SKU), Year: r.Year}
	cols := [12]sql.NullFloat64{r.M1, r.M2, r.M3, r.M4, r.M5, r.M6, r.M7, r.M8, r.M9, r.M10, r.M11, r.M12}
	for i, col := range cols {
		if col.Valid {
			v := col.Float64
			series.Values[i] = &v
		}
	}

	return series
}

func (r *referenceRepository) GetMonthlySeries(ctx context.Context, year int) ([]domain.MonthlySeries, error) {
	query := `
		SELECT sku, year, m1, m2, m3, m4, m5, m6, m7, m8, m9, m10, m11, m12
		FROM monthly_consumption
		WHERE year = $1
		ORDER BY sku
	`

	var rows []monthlySeriesRow
	if err := r.db.SelectContext(ctx, &rows, query, year); err != nil {
		return nil, fmt.Errorf("error getting monthly series for %d: %w", year, err)
	}

	series := make([]domain.MonthlySeries, 0, len(rows))
	for _, row := range rows {
		series = append(series, row.toDomain())
	}

	return series, nil
}

type skuReferenceRow struct {
	SKU            string          `db:"sku"`
	Name           string          `db:"name"`
	MinStock       sql.NullFloat64 `db:"min_stock"`
	LeadTimeMonths sql.NullString  `db:"lead_time_months"`
}

func (r *referenceRepository) GetSkuReferences(ctx context.Context) ([]domain.SkuReference, error) {
	query := `
		SELECT sku, name, min_stock, lead_time_months
		FROM products
		ORDER BY sku
	`

	var rows []skuReferenceRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error getting sku references: %w", err)
	}

	refs := make([]domain.SkuReference, 0, len(rows))
	for _, row := range rows {
		ref := domain.SkuReference{
			SKU:  strings.TrimSpace(row.SKU),
			Name: row.Name,
		}
		if row.MinStock.Valid {
			ref.MinStock = row.MinStock.Float64
		}
		if row.LeadTimeMonths.Valid {
			ref.LeadTimeMonths = ParseLeadTime(row.LeadTimeMonths.String)
		}
		refs = append(refs, ref)
	}

	return refs, nil
}

// ParseLeadTime parses the stored lead-time string into months. The column
// holds free-form legacy values, so anything empty, non-numeric, NaN,
// infinite, or non-positive counts as "no lead time on file" and yields nil.
func ParseLeadTime(raw string) *float64 {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return nil
	}

	return &v
}
