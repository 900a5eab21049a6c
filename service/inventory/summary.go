package inventory

import (
	inventoryEntity "catalog.GO/model/entity/inventory"
)

// WarehouseStock is one record of a stock summary.
type WarehouseStock struct {
	WarehouseID       uint                        `json:"warehouse_id"`
	Code              string                      `json:"code"`
	Name              string                      `json:"name"`
	Priority          int                         `json:"priority"`
	Quantity          int                         `json:"quantity"`
	Reserved          int                         `json:"reserved"`
	Available         int                         `json:"available"`
	Status            inventoryEntity.StockStatus `json:"status"`
	BackordersAllowed bool                        `json:"backorders_allowed"`
	IsLowStock        bool                        `json:"is_low_stock"`
}

// StockSummary aggregates every record of one sellable item.
type StockSummary struct {
	ItemType          inventoryEntity.ItemKind    `json:"item_type"`
	ItemID            uint                        `json:"item_id"`
	TotalQuantity     int                         `json:"total_quantity"`
	TotalAvailable    int                         `json:"total_available"`
	TotalReserved     int                         `json:"total_reserved"`
	Status            inventoryEntity.StockStatus `json:"status"`
	HasStock          bool                        `json:"has_stock"`
	BackordersAllowed bool                        `json:"backorders_allowed"`
	Warehouses        []WarehouseStock            `json:"warehouses"`
}

func (s *StockSummary) Item() inventoryEntity.ItemRef {
	return inventoryEntity.ItemRef{Kind: s.ItemType, ID: s.ItemID}
}

// Sellable is true when the item can be ordered now, from stock or on backorder.
func (s *StockSummary) Sellable() bool {
	return s.HasStock || s.BackordersAllowed
}

// Summarize folds recs (already in warehouse priority order) into a summary.
// An item without records is out of stock.
func Summarize(item inventoryEntity.ItemRef, recs []inventoryEntity.InventoryRecord) *StockSummary {
	s := &StockSummary{
		ItemType:   item.Kind,
		ItemID:     item.ID,
		Warehouses: make([]WarehouseStock, 0, len(recs)),
	}
	anyInStock := false
	for i := range recs {
		rec := &recs[i]
		ws := WarehouseStock{
			WarehouseID:       rec.WarehouseID,
			Quantity:          rec.Quantity,
			Reserved:          rec.Reserved,
			Available:         rec.Available(),
			Status:            rec.Status(),
			BackordersAllowed: rec.BackordersAllowed,
			IsLowStock:        rec.IsLowStock(),
		}
		if rec.Warehouse != nil {
			ws.Code = rec.Warehouse.Code
			ws.Name = rec.Warehouse.Name
			ws.Priority = rec.Warehouse.Priority
		}
		s.Warehouses = append(s.Warehouses, ws)

		s.TotalQuantity += rec.Quantity
		s.TotalAvailable += ws.Available
		s.TotalReserved += rec.Reserved
		if rec.BackordersAllowed {
			s.BackordersAllowed = true
		}
		if ws.Available > 0 && ws.Status == inventoryEntity.StatusInStock {
			anyInStock = true
		}
	}
	s.HasStock = s.TotalAvailable > 0

	switch {
	case anyInStock:
		s.Status = inventoryEntity.StatusInStock
	case s.BackordersAllowed:
		s.Status = inventoryEntity.StatusBackorder
	default:
		s.Status = inventoryEntity.StatusOutOfStock
	}
	return s
}

func (s *StockSummary) clone() *StockSummary {
	cp := *s
	cp.Warehouses = append([]WarehouseStock(nil), s.Warehouses...)
	return &cp
}
