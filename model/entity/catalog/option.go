package catalog

type InputType string

const (
	InputSelect   InputType = "select"
	InputRadio    InputType = "radio"
	InputCheckbox InputType = "checkbox"
	InputColor    InputType = "color"
	InputSwatch   InputType = "swatch"
	InputText     InputType = "text"
	InputDate     InputType = "date"
	InputFile     InputType = "file"
)

type PriceType string

const (
	PriceFixed      PriceType = "fixed"
	PricePercentage PriceType = "percentage"
)

// ConfigurableOption is a selectable slot of a configurable product, bound to one attribute.
// It owns its values; there is no back-pointer from value to option.
type ConfigurableOption struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID   uint      `gorm:"column:product_id;not null;uniqueIndex:idx_option_product_attribute,priority:1" json:"product_id"`
	AttributeID uint      `gorm:"column:attribute_id;not null;uniqueIndex:idx_option_product_attribute,priority:2" json:"attribute_id"`
	InputType   InputType `gorm:"column:input_type;type:varchar(16);not null;default:select" json:"input_type"`
	Required    bool      `gorm:"column:required;not null;default:true" json:"required"`
	Position    int       `gorm:"column:position;not null;default:0" json:"position"`

	Attribute *Attribute                `gorm:"foreignKey:AttributeID" json:"attribute,omitempty"`
	Values    []ConfigurableOptionValue `gorm:"foreignKey:OptionID" json:"values,omitempty"`
	Rules     []ConfigurationRule       `gorm:"foreignKey:OptionID" json:"rules,omitempty"`
}

func (ConfigurableOption) TableName() string {
	return "configurable_option"
}

// Code is the attribute code, used as the rule target identifier.
func (o *ConfigurableOption) Code() string {
	if o.Attribute == nil {
		return ""
	}
	return o.Attribute.Code
}

// ConfigurableOptionValue is one choice of an option with its price/weight adjustment.
type ConfigurableOptionValue struct {
	ID                uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OptionID          uint      `gorm:"column:option_id;not null;index" json:"option_id"`
	AttributeOptionID uint      `gorm:"column:attribute_option_id;not null;index" json:"attribute_option_id"`
	PriceAdjustment   *int64    `gorm:"column:price_adjustment" json:"price_adjustment,omitempty"`
	PriceType         PriceType `gorm:"column:price_type;type:varchar(16);not null;default:fixed" json:"price_type"`
	WeightAdjustment  *float64  `gorm:"column:weight_adjustment" json:"weight_adjustment,omitempty"`
	IsDefault         bool      `gorm:"column:is_default;not null;default:false" json:"is_default"`
	Position          int       `gorm:"column:position;not null;default:0" json:"position"`

	AttributeOption *AttributeOption `gorm:"foreignKey:AttributeOptionID" json:"attribute_option,omitempty"`
}

func (ConfigurableOptionValue) TableName() string {
	return "configurable_option_value"
}

// Code is the attribute option value, used as the rule target value identifier.
func (v *ConfigurableOptionValue) Code() string {
	if v.AttributeOption == nil {
		return ""
	}
	return v.AttributeOption.Value
}
