package catalog

import "time"

// ProductVariation is one concrete, sellable combination of a configurable product.
type ProductVariation struct {
	ID          uint     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ParentID    uint     `gorm:"column:parent_id;not null;index" json:"parent_id"`
	SKU         string   `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Weight      *float64 `gorm:"column:weight" json:"weight,omitempty"`
	Active      bool     `gorm:"column:active;not null;default:true" json:"active"`
	PricingInfo `gorm:"embedded"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	AttributeValues []VariationAttributeValue `gorm:"foreignKey:VariationID" json:"attribute_values,omitempty"`
}

func (ProductVariation) TableName() string {
	return "product_variation"
}

// OptionSet returns the attribute option ids this variation embodies.
func (v *ProductVariation) OptionSet() map[uint]struct{} {
	set := make(map[uint]struct{}, len(v.AttributeValues))
	for _, av := range v.AttributeValues {
		set[av.AttributeOptionID] = struct{}{}
	}
	return set
}

// VariationAttributeValue pins one attribute of a variation to one option.
type VariationAttributeValue struct {
	ID                uint `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	VariationID       uint `gorm:"column:variation_id;not null;uniqueIndex:idx_variation_attribute,priority:1" json:"variation_id"`
	AttributeID       uint `gorm:"column:attribute_id;not null;uniqueIndex:idx_variation_attribute,priority:2" json:"attribute_id"`
	AttributeOptionID uint `gorm:"column:attribute_option_id;not null;index" json:"attribute_option_id"`
}

func (VariationAttributeValue) TableName() string {
	return "product_variation_attribute_value"
}
