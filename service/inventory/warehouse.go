package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

// CreateWarehouse registers a warehouse. Codes are unique.
func (l *Ledger) CreateWarehouse(ctx context.Context, code, name string, priority int, active bool) (*inventoryEntity.Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: warehouse code is required", ErrInvalidSettings)
	}
	if name == "" {
		name = code
	}
	w := &inventoryEntity.Warehouse{Code: code, Name: name, Priority: priority, Active: true}
	if err := l.repo.CreateWarehouse(ctx, w); err != nil {
		return nil, fmt.Errorf("create warehouse %s: %w", code, err)
	}
	if !active {
		if err := l.repo.SetWarehouseActive(ctx, w.ID, false); err != nil {
			return nil, err
		}
		w.Active = false
	}
	return w, nil
}

// Warehouses returns the active warehouses in allocation order.
func (l *Ledger) Warehouses(ctx context.Context) ([]inventoryEntity.Warehouse, error) {
	return l.repo.FindActiveWarehousesByPriority(ctx)
}

// WarehouseByCode looks a warehouse up by its code.
func (l *Ledger) WarehouseByCode(ctx context.Context, code string) (*inventoryEntity.Warehouse, error) {
	w, err := l.repo.FindWarehouseByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrWarehouseNotFound, code)
	}
	return w, err
}

// WarehousesByCodes maps each known code to its warehouse.
func (l *Ledger) WarehousesByCodes(ctx context.Context, codes []string) (map[string]inventoryEntity.Warehouse, error) {
	return l.repo.FindWarehousesByCodes(ctx, codes)
}
