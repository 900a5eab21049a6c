package inventory

import (
	"context"
	"fmt"
	"time"

	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryRepo "catalog.GO/model/repository/inventory"
)

// RecordSettings changes the non-counter fields of a record. Nil fields are
// left as they are; ClearThreshold removes the low-stock threshold.
type RecordSettings struct {
	BackordersAllowed *bool      `json:"backorders_allowed"`
	LowStockThreshold *int       `json:"low_stock_threshold" validate:"omitempty,min=0"`
	ClearThreshold    bool       `json:"clear_low_stock_threshold"`
	ShelfLocation     *string    `json:"shelf_location" validate:"omitempty,max=64"`
	BatchNumber       *string    `json:"batch_number" validate:"omitempty,max=64"`
	ExpiryDate        *time.Time `json:"expiry_date"`
}

// UpdateRecordSettings applies s to the record of item at warehouseID, creating
// an empty record when none exists. Quantity and reserved are never touched.
func (l *Ledger) UpdateRecordSettings(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint, s RecordSettings) (*inventoryEntity.InventoryRecord, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if s.LowStockThreshold != nil && *s.LowStockThreshold < 0 {
		return nil, fmt.Errorf("%w: negative low stock threshold", ErrInvalidSettings)
	}
	if err := l.requireWarehouse(ctx, warehouseID); err != nil {
		return nil, err
	}
	var out *inventoryEntity.InventoryRecord
	err := l.mutate(ctx, item, func(tx *inventoryRepo.InventoryRepository) error {
		rec, err := tx.FindInventoryForUpdate(ctx, item, warehouseID)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = inventoryEntity.NewRecord(item, warehouseID)
		}
		if s.BackordersAllowed != nil {
			rec.BackordersAllowed = *s.BackordersAllowed
		}
		switch {
		case s.ClearThreshold:
			rec.LowStockThreshold = nil
		case s.LowStockThreshold != nil:
			v := *s.LowStockThreshold
			rec.LowStockThreshold = &v
		}
		if s.ShelfLocation != nil {
			rec.ShelfLocation = *s.ShelfLocation
		}
		if s.BatchNumber != nil {
			rec.BatchNumber = *s.BatchNumber
		}
		if s.ExpiryDate != nil {
			rec.ExpiryDate = s.ExpiryDate
		}
		if err := tx.Save(ctx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
