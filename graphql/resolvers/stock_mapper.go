package resolvers

import (
	"strconv"

	gql "github.com/graph-gophers/graphql-go"

	gqlmodels "catalog.GO/graphql/models"
	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryService "catalog.GO/service/inventory"
	productService "catalog.GO/service/product"
)

func toID(id uint) gql.ID {
	return gql.ID(strconv.FormatUint(uint64(id), 10))
}

func toWarehouse(w *inventoryEntity.Warehouse) *gqlmodels.Warehouse {
	if w == nil {
		return nil
	}
	return &gqlmodels.Warehouse{
		ID:       toID(w.ID),
		Code:     w.Code,
		Name:     w.Name,
		Priority: int32(w.Priority),
		Active:   w.Active,
	}
}

func toSummary(s *inventoryService.StockSummary, sku string) *gqlmodels.StockSummary {
	out := &gqlmodels.StockSummary{
		ItemType:          string(s.ItemType),
		ItemID:            toID(s.ItemID),
		TotalQuantity:     int32(s.TotalQuantity),
		TotalAvailable:    int32(s.TotalAvailable),
		TotalReserved:     int32(s.TotalReserved),
		Status:            string(s.Status),
		HasStock:          s.HasStock,
		BackordersAllowed: s.BackordersAllowed,
		Sellable:          s.Sellable(),
		Warehouses:        make([]*gqlmodels.WarehouseStock, 0, len(s.Warehouses)),
	}
	if sku != "" {
		out.SKU = &sku
	}
	for _, w := range s.Warehouses {
		out.Warehouses = append(out.Warehouses, &gqlmodels.WarehouseStock{
			Warehouse: &gqlmodels.Warehouse{
				ID:       toID(w.WarehouseID),
				Code:     w.Code,
				Name:     w.Name,
				Priority: int32(w.Priority),
				Active:   true,
			},
			Quantity:          int32(w.Quantity),
			Reserved:          int32(w.Reserved),
			Available:         int32(w.Available),
			Status:            string(w.Status),
			BackordersAllowed: w.BackordersAllowed,
			IsLowStock:        w.IsLowStock,
		})
	}
	return out
}

func toRecord(rec *inventoryEntity.InventoryRecord) *gqlmodels.InventoryRecord {
	item := rec.Item()
	out := &gqlmodels.InventoryRecord{
		ID:        toID(rec.ID),
		ItemType:  string(item.Kind),
		ItemID:    toID(item.ID),
		Warehouse: toWarehouse(rec.Warehouse),
		Quantity:  int32(rec.Quantity),
		Reserved:  int32(rec.Reserved),
		Available: int32(rec.Available()),
		Status:    string(rec.Status()),
	}
	if rec.LowStockThreshold != nil {
		n := int32(*rec.LowStockThreshold)
		out.LowStockThreshold = &n
	}
	if rec.ShelfLocation != "" {
		loc := rec.ShelfLocation
		out.ShelfLocation = &loc
	}
	return out
}

func toMoney(amount int64, currency string) *gqlmodels.Money {
	return &gqlmodels.Money{
		Amount:    int32(amount),
		Currency:  currency,
		Formatted: productService.FormatMoney(amount, currency),
	}
}
