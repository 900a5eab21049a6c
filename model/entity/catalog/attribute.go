package catalog

// Attribute is a product axis such as "color" or "size".
type Attribute struct {
	ID     uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Code   string `gorm:"column:code;type:varchar(64);not null;uniqueIndex" json:"code"`
	Name   string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Active bool   `gorm:"column:active;not null;default:true" json:"active"`

	Options []AttributeOption `gorm:"foreignKey:AttributeID" json:"options,omitempty"`
}

func (Attribute) TableName() string {
	return "attribute"
}

// AttributeOption is one selectable value of an attribute, e.g. "red".
type AttributeOption struct {
	ID          uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AttributeID uint   `gorm:"column:attribute_id;not null;index" json:"attribute_id"`
	Value       string `gorm:"column:value;type:varchar(255);not null" json:"value"`
	Label       string `gorm:"column:label;type:varchar(255)" json:"label"`
	Position    int    `gorm:"column:position;not null;default:0" json:"position"`
	Active      bool   `gorm:"column:active;not null;default:true" json:"active"`
}

func (AttributeOption) TableName() string {
	return "attribute_option"
}
