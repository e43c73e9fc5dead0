// Package ingest loads normalized planning data: consumption history and
// product reference CSVs for seeding, and stock snapshot CSVs for the CLI.
// Upstream file conversion (XLSX exports etc.) happens outside this service.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// ProductRecord is one row of the products reference file. LeadTime stays the
// raw string; it is parsed leniently at read time, not at seed time.
type ProductRecord struct {
	SKU      string
	Name     string
	MinStock float64
	LeadTime string
}

// ReadConsumptionCSV parses rows of sku,year,m1..m12. Empty month cells mean
// "no observation" and stay nil; they are not zeroes.
func ReadConsumptionCSV(r io.Reader) ([]domain.MonthlySeries, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 14 {
		return nil, fmt.Errorf("consumption header needs 14 columns, got %d", len(header))
	}

	var result []domain.MonthlySeries
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		sku := strings.TrimSpace(record[0])
		if sku == "" {
			return nil, fmt.Errorf("line %d: sku is required", line)
		}

		year, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid year %q", line, record[1])
		}

		series := domain.MonthlySeries{SKU: sku, Year: year}
		for m := 0; m < 12; m++ {
			cell := strings.TrimSpace(record[2+m])
			if cell == "" {
				continue
			}
			v, err := parseDecimal(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid value %q for month %d", line, cell, m+1)
			}
			series.Values[m] = &v
		}

		result = append(result, series)
	}

	return result, nil
}

// ReadProductsCSV parses rows of sku,name,min_stock,lead_time_months.
func ReadProductsCSV(r io.Reader) ([]ProductRecord, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 4 {
		return nil, fmt.Errorf("products header needs 4 columns, got %d", len(header))
	}

	var result []ProductRecord
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		sku := strings.TrimSpace(record[0])
		if sku == "" {
			return nil, fmt.Errorf("line %d: sku is required", line)
		}

		minStock := 0.0
		if cell := strings.TrimSpace(record[2]); cell != "" {
			minStock, err = parseDecimal(cell)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid min_stock %q", line, cell)
			}
		}

		result = append(result, ProductRecord{
			SKU:      sku,
			Name:     strings.TrimSpace(record[1]),
			MinStock: minStock,
			LeadTime: strings.TrimSpace(record[3]),
		})
	}

	return result, nil
}

// ReadSnapshotCSV parses rows of sku,name,current_stock.
func ReadSnapshotCSV(r io.Reader) ([]domain.SkuSnapshot, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("snapshot header needs 3 columns, got %d", len(header))
	}

	var result []domain.SkuSnapshot
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		sku := strings.TrimSpace(record[0])
		if sku == "" {
			return nil, fmt.Errorf("line %d: sku is required", line)
		}

		stock, err := parseDecimal(strings.TrimSpace(record[2]))
		if err != nil || stock < 0 {
			return nil, fmt.Errorf("line %d: invalid current_stock %q", line, record[2])
		}

		result = append(result, domain.SkuSnapshot{
			SKU:          sku,
			Name:         strings.TrimSpace(record[1]),
			CurrentStock: stock,
		})
	}

	return result, nil
}

// parseDecimal accepts both dot and comma decimal separators; the exported
// files use comma decimals.
func parseDecimal(value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", value)
	}
	return v, nil
}
