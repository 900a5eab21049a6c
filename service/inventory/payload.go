package inventory

import (
	inventoryEntity "catalog.GO/model/entity/inventory"
)

// FormatRecord renders a record for admin screens and the records endpoint.
func FormatRecord(rec *inventoryEntity.InventoryRecord) map[string]interface{} {
	out := map[string]interface{}{
		"id":                  rec.ID,
		"warehouse":           nil,
		"quantity":            rec.Quantity,
		"reserved":            rec.Reserved,
		"available_quantity":  rec.Available(),
		"status":              rec.Status(),
		"backorders_allowed":  rec.BackordersAllowed,
		"low_stock_threshold": rec.LowStockThreshold,
		"is_low_stock":        rec.IsLowStock(),
		"shelf_location":      rec.ShelfLocation,
		"batch_number":        rec.BatchNumber,
		"expiry_date":         rec.ExpiryDate,
		"created_at":          rec.CreatedAt,
		"updated_at":          rec.UpdatedAt,
	}
	if rec.Warehouse != nil {
		out["warehouse"] = map[string]interface{}{
			"id":   rec.Warehouse.ID,
			"name": rec.Warehouse.Name,
			"code": rec.Warehouse.Code,
		}
	}
	item := rec.Item()
	out["item_type"] = item.Kind
	out["item_id"] = item.ID
	return out
}

func FormatRecords(recs []inventoryEntity.InventoryRecord) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(recs))
	for i := range recs {
		out = append(out, FormatRecord(&recs[i]))
	}
	return out
}
