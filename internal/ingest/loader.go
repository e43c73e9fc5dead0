package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// Loader upserts parsed reference data. It runs over database/sql so the CLI
// can use the pgx stdlib driver without the server's pool wrapper.
type Loader struct {
	db *sql.DB
}

func NewLoader(db *sql.DB) *Loader {
	return &Loader{db: db}
}

func (l *Loader) SeedConsumption(ctx context.Context, records []domain.MonthlySeries) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO monthly_consumption (sku, year, m1, m2, m3, m4, m5, m6, m7, m8, m9, m10, m11, m12)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (sku, year) DO UPDATE SET
			m1 = EXCLUDED.m1, m2 = EXCLUDED.m2, m3 = EXCLUDED.m3,
			m4 = EXCLUDED.m4, m5 = EXCLUDED.m5, m6 = EXCLUDED.m6,
			m7 = EXCLUDED.m7, m8 = EXCLUDED.m8, m9 = EXCLUDED.m9,
			m10 = EXCLUDED.m10, m11 = EXCLUDED.m11, m12 = EXCLUDED.m12
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare consumption statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := make([]interface{}, 0, 14)
		args = append(args, rec.SKU, rec.Year)
		for _, v := range rec.Values {
			args = append(args, nullableFloat(v))
		}

		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("failed to upsert consumption for sku %s year %d: %w", rec.SKU, rec.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Seeded %d consumption rows", len(records))
	return nil
}

func (l *Loader) SeedProducts(ctx context.Context, records []ProductRecord) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	const query = `
		INSERT INTO products (sku, name, min_stock, lead_time_months)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sku) DO UPDATE SET
			name = EXCLUDED.name,
			min_stock = EXCLUDED.min_stock,
			lead_time_months = EXCLUDED.lead_time_months
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare products statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, rec.SKU, rec.Name, rec.MinStock, nullIfEmpty(rec.LeadTime)); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", rec.SKU, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("Seeded %d products", len(records))
	return nil
}

func nullableFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
