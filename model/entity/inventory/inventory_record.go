package inventory

import (
	"time"

	"gorm.io/gorm"
)

// StockStatus is derived from the counters, never set on its own.
type StockStatus string

const (
	StatusInStock      StockStatus = "in_stock"
	StatusOutOfStock   StockStatus = "out_of_stock"
	StatusBackorder    StockStatus = "backorder"
	StatusReserved     StockStatus = "reserved"
	StatusDiscontinued StockStatus = "discontinued"
)

// InventoryRecord holds the counters of one sellable item in one warehouse.
// Exactly one of ProductID and VariationID is set.
type InventoryRecord struct {
	ID                uint        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID         *uint       `gorm:"column:product_id;uniqueIndex:idx_inventory_product_warehouse,priority:1;check:chk_inventory_item,(product_id IS NULL) <> (variation_id IS NULL)" json:"product_id,omitempty"`
	VariationID       *uint       `gorm:"column:variation_id;uniqueIndex:idx_inventory_variation_warehouse,priority:1" json:"variation_id,omitempty"`
	WarehouseID       uint        `gorm:"column:warehouse_id;not null;uniqueIndex:idx_inventory_product_warehouse,priority:2;uniqueIndex:idx_inventory_variation_warehouse,priority:2" json:"warehouse_id"`
	Quantity          int         `gorm:"column:quantity;not null;default:0;check:chk_inventory_quantity,quantity >= 0" json:"quantity"`
	Reserved          int         `gorm:"column:reserved;not null;default:0;check:chk_inventory_reserved,reserved >= 0" json:"reserved"`
	StoredStatus      StockStatus `gorm:"column:status;type:varchar(32);not null;default:out_of_stock;index" json:"-"`
	BackordersAllowed bool        `gorm:"column:backorders_allowed;not null;default:false" json:"backorders_allowed"`
	LowStockThreshold *int        `gorm:"column:low_stock_threshold" json:"low_stock_threshold"`
	ShelfLocation     string      `gorm:"column:shelf_location;type:varchar(64)" json:"shelf_location,omitempty"`
	BatchNumber       string      `gorm:"column:batch_number;type:varchar(64)" json:"batch_number,omitempty"`
	ExpiryDate        *time.Time  `gorm:"column:expiry_date" json:"expiry_date,omitempty"`
	CreatedAt         time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (InventoryRecord) TableName() string {
	return "inventory_record"
}

// NewRecord returns an empty record for item at warehouseID.
func NewRecord(item ItemRef, warehouseID uint) *InventoryRecord {
	r := &InventoryRecord{WarehouseID: warehouseID}
	id := item.ID
	if item.Kind == KindVariation {
		r.VariationID = &id
	} else {
		r.ProductID = &id
	}
	r.StoredStatus = r.Status()
	return r
}

// Item returns the sellable item the record belongs to.
func (r *InventoryRecord) Item() ItemRef {
	if r.VariationID != nil {
		return Variation(*r.VariationID)
	}
	if r.ProductID != nil {
		return Product(*r.ProductID)
	}
	return ItemRef{}
}

// Available is max(0, quantity - reserved).
func (r *InventoryRecord) Available() int {
	if a := r.Quantity - r.Reserved; a > 0 {
		return a
	}
	return 0
}

func (r *InventoryRecord) Status() StockStatus {
	if r.Quantity <= 0 {
		if r.BackordersAllowed {
			return StatusBackorder
		}
		return StatusOutOfStock
	}
	return StatusInStock
}

// IsLowStock reports 0 < quantity <= threshold. It is a display flag, not a status.
func (r *InventoryRecord) IsLowStock() bool {
	return r.LowStockThreshold != nil && r.Quantity > 0 && r.Quantity <= *r.LowStockThreshold
}

// BeforeSave keeps the persisted status column in step with the counters.
func (r *InventoryRecord) BeforeSave(*gorm.DB) error {
	r.StoredStatus = r.Status()
	return nil
}
