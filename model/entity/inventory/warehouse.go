package inventory

import "time"

// Warehouse is a stock location. Lower Priority is allocated first.
type Warehouse struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code      string    `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	Name      string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Active    bool      `gorm:"column:active;not null;default:true" json:"active"`
	Priority  int       `gorm:"column:priority;not null;default:0;index" json:"priority"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Warehouse) TableName() string {
	return "warehouse"
}
