package catalog

import "time"

type ProductType string

const (
	TypeSimple       ProductType = "simple"
	TypeConfigurable ProductType = "configurable"
	TypeVirtual      ProductType = "virtual"
	TypeDownloadable ProductType = "downloadable"
	TypeBundle       ProductType = "bundle"
)

type Product struct {
	ID            uint        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SKU           string      `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	Name          string      `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Type          ProductType `gorm:"column:type;type:varchar(32);not null;default:simple" json:"type"`
	Active        bool        `gorm:"column:active;not null;default:true" json:"active"`
	Weight        *float64    `gorm:"column:weight" json:"weight,omitempty"`
	AvailableFrom *time.Time  `gorm:"column:available_from" json:"available_from,omitempty"`
	AvailableTo   *time.Time  `gorm:"column:available_to" json:"available_to,omitempty"`
	PricingInfo   `gorm:"embedded"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Options    []ConfigurableOption `gorm:"foreignKey:ProductID" json:"options,omitempty"`
	Variations []ProductVariation   `gorm:"foreignKey:ParentID" json:"variations,omitempty"`
}

func (Product) TableName() string {
	return "product"
}

// IsAvailableAt is true for an active product inside its availability window.
func (p *Product) IsAvailableAt(t time.Time) bool {
	if !p.Active {
		return false
	}
	if p.AvailableFrom != nil && t.Before(*p.AvailableFrom) {
		return false
	}
	if p.AvailableTo != nil && t.After(*p.AvailableTo) {
		return false
	}
	return true
}

// BaseWeight treats a missing weight as zero.
func (p *Product) BaseWeight() float64 {
	if p.Weight == nil {
		return 0
	}
	return *p.Weight
}

// TracksInventory is false for items that are never shipped.
func (p *Product) TracksInventory() bool {
	return p.Type != TypeVirtual && p.Type != TypeDownloadable
}
