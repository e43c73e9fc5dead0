package handlers

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alimenta-labs/prodplan/backend-go/internal/domain"
)

// snapshotPayload is one stock line as sent by the client. The list arrives
// already normalized; only shape is validated here.
type snapshotPayload struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	CurrentStock float64 `json:"current_stock"`
}

func toSnapshots(payload []snapshotPayload) ([]domain.SkuSnapshot, error) {
	if len(payload) == 0 {
		return nil, errors.New("snapshots must not be empty")
	}

	snapshots := make([]domain.SkuSnapshot, 0, len(payload))
	for i, p := range payload {
		if strings.TrimSpace(p.SKU) == "" {
			return nil, fmt.Errorf("snapshot %d: sku is required", i)
		}
		if math.IsNaN(p.CurrentStock) || math.IsInf(p.CurrentStock, 0) || p.CurrentStock < 0 {
			return nil, fmt.Errorf("snapshot %d: invalid current_stock", i)
		}
		snapshots = append(snapshots, domain.SkuSnapshot{
			SKU:          p.SKU,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
		})
	}

	return snapshots, nil
}
