package inventory

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

// InventoryRepository is the persistence side of the ledger. A repository
// obtained through WithTx runs every call inside that transaction.
type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// WithTx runs fn inside a single transaction. Returning an error rolls back
// everything fn wrote.
func (r *InventoryRepository) WithTx(ctx context.Context, fn func(tx *InventoryRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&InventoryRepository{db: tx})
	})
}

// FindInventory returns the record of item at warehouseID, or nil when none exists.
func (r *InventoryRepository) FindInventory(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint) (*inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.WithContext(ctx).
		Where(item.Column()+" = ? AND warehouse_id = ?", item.ID, warehouseID).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// FindInventoryForUpdate is FindInventory with a row lock held until the transaction ends.
func (r *InventoryRepository) FindInventoryForUpdate(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint) (*inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(item.Column()+" = ? AND warehouse_id = ?", item.ID, warehouseID).
		Limit(1).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// FindByItem returns all records of item with their warehouse, ordered by
// warehouse priority then warehouse id.
func (r *InventoryRepository) FindByItem(ctx context.Context, item inventoryEntity.ItemRef) ([]inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Joins("JOIN warehouse ON warehouse.id = inventory_record.warehouse_id").
		Where("inventory_record."+item.Column()+" = ?", item.ID).
		Order("warehouse.priority ASC, warehouse.id ASC").
		Find(&recs).Error
	return recs, err
}

// LockByItem row-locks every record of item. Rows are locked in id order so
// that concurrent callers never wait on each other in opposite orders.
func (r *InventoryRepository) LockByItem(ctx context.Context, item inventoryEntity.ItemRef) ([]inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(item.Column()+" = ?", item.ID).
		Order("id ASC").
		Find(&recs).Error
	return recs, err
}

// Save inserts or updates rec. Status is synced by the entity's BeforeSave hook.
func (r *InventoryRepository) Save(ctx context.Context, rec *inventoryEntity.InventoryRecord) error {
	if rec.ProductID == nil && rec.VariationID == nil {
		return fmt.Errorf("%w: record has neither product nor variation", inventoryEntity.ErrInvalidItem)
	}
	if rec.ProductID != nil && rec.VariationID != nil {
		return fmt.Errorf("%w: record has both product and variation", inventoryEntity.ErrInvalidItem)
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rec).Error
}

// DeleteByItem removes every record of item, used when the item itself is removed.
func (r *InventoryRepository) DeleteByItem(ctx context.Context, item inventoryEntity.ItemRef) (int64, error) {
	res := r.db.WithContext(ctx).
		Where(item.Column()+" = ?", item.ID).
		Delete(&inventoryEntity.InventoryRecord{})
	return res.RowsAffected, res.Error
}

// FindActiveWarehousesByPriority returns active warehouses, lowest priority
// first. Equal priorities keep insertion (id) order.
func (r *InventoryRepository) FindActiveWarehousesByPriority(ctx context.Context) ([]inventoryEntity.Warehouse, error) {
	var ws []inventoryEntity.Warehouse
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("priority ASC, id ASC").
		Find(&ws).Error
	return ws, err
}

func (r *InventoryRepository) FindWarehouse(ctx context.Context, id uint) (*inventoryEntity.Warehouse, error) {
	var w inventoryEntity.Warehouse
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *InventoryRepository) FindWarehouseByCode(ctx context.Context, code string) (*inventoryEntity.Warehouse, error) {
	var w inventoryEntity.Warehouse
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// FindWarehousesByCodes maps code to warehouse for the given codes.
func (r *InventoryRepository) FindWarehousesByCodes(ctx context.Context, codes []string) (map[string]inventoryEntity.Warehouse, error) {
	out := make(map[string]inventoryEntity.Warehouse, len(codes))
	if len(codes) == 0 {
		return out, nil
	}
	var ws []inventoryEntity.Warehouse
	if err := r.db.WithContext(ctx).Where("code IN ?", codes).Find(&ws).Error; err != nil {
		return nil, err
	}
	for _, w := range ws {
		out[w.Code] = w
	}
	return out, nil
}

func (r *InventoryRepository) CreateWarehouse(ctx context.Context, w *inventoryEntity.Warehouse) error {
	return r.db.WithContext(ctx).Create(w).Error
}

// SetWarehouseActive toggles a warehouse; Create cannot store false over the column default.
func (r *InventoryRepository) SetWarehouseActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&inventoryEntity.Warehouse{}).
		Where("id = ?", id).
		Update("active", active).Error
}

// FindLowStock returns records with 0 < quantity <= low_stock_threshold.
func (r *InventoryRepository) FindLowStock(ctx context.Context) ([]inventoryEntity.InventoryRecord, error) {
	var recs []inventoryEntity.InventoryRecord
	err := r.db.WithContext(ctx).
		Preload("Warehouse").
		Where("low_stock_threshold IS NOT NULL AND quantity > 0 AND quantity <= low_stock_threshold").
		Order("quantity ASC, id ASC").
		Find(&recs).Error
	return recs, err
}

// ListItems returns every sellable item that has at least one record.
func (r *InventoryRepository) ListItems(ctx context.Context) ([]inventoryEntity.ItemRef, error) {
	type row struct {
		ProductID   *uint
		VariationID *uint
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&inventoryEntity.InventoryRecord{}).
		Distinct("product_id", "variation_id").
		Order("product_id, variation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	items := make([]inventoryEntity.ItemRef, 0, len(rows))
	for _, rw := range rows {
		switch {
		case rw.VariationID != nil:
			items = append(items, inventoryEntity.Variation(*rw.VariationID))
		case rw.ProductID != nil:
			items = append(items, inventoryEntity.Product(*rw.ProductID))
		}
	}
	return items, nil
}
