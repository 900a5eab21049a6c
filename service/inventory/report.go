package inventory

import (
	"context"

	"go.uber.org/zap"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

// LowStock lists records with 0 < quantity <= threshold, lowest quantity first.
func (l *Ledger) LowStock(ctx context.Context) ([]inventoryEntity.InventoryRecord, error) {
	return l.repo.FindLowStock(ctx)
}

// ReportLowStock logs one warning per low-stock record and returns the count.
func (l *Ledger) ReportLowStock(ctx context.Context) (int, error) {
	recs, err := l.LowStock(ctx)
	if err != nil {
		return 0, err
	}
	for i := range recs {
		rec := &recs[i]
		fields := []zap.Field{
			zap.Stringer("item", rec.Item()),
			zap.Uint("warehouse_id", rec.WarehouseID),
			zap.Int("quantity", rec.Quantity),
			zap.Int("reserved", rec.Reserved),
			zap.Intp("threshold", rec.LowStockThreshold),
		}
		if rec.Warehouse != nil {
			fields = append(fields, zap.String("warehouse", rec.Warehouse.Code))
		}
		l.logger.Warn("low stock", fields...)
	}
	l.logger.Info("low stock report done", zap.Int("records", len(recs)))
	return len(recs), nil
}
