package catalog

import "gorm.io/datatypes"

type RuleType string

const (
	RuleDependency       RuleType = "dependency"
	RuleExclusion        RuleType = "exclusion"
	RuleRequirement      RuleType = "requirement"
	RulePriceAdjustment  RuleType = "price_adjustment"
	RuleWeightAdjustment RuleType = "weight_adjustment"
	RuleValidation       RuleType = "validation"
	RuleCustom           RuleType = "custom"
)

// IsAdjustment reports rule types that contribute to pricing and never fail validation.
func (t RuleType) IsAdjustment() bool {
	return t == RulePriceAdjustment || t == RuleWeightAdjustment
}

// ConfigurationRule belongs to an option and, optionally, to the value that triggers it.
// A rule without ValueID fires whenever its option has any value selected.
type ConfigurationRule struct {
	ID               uint           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OptionID         uint           `gorm:"column:option_id;not null;index" json:"option_id"`
	ValueID          *uint          `gorm:"column:value_id;index" json:"value_id,omitempty"`
	Type             RuleType       `gorm:"column:type;type:varchar(32);not null" json:"type"`
	TargetOptionCode string         `gorm:"column:target_option_code;type:varchar(64)" json:"target_option_code,omitempty"`
	TargetValueCode  string         `gorm:"column:target_value_code;type:varchar(255)" json:"target_value_code,omitempty"`
	SortOrder        int            `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CustomValidation string         `gorm:"column:custom_validation;type:varchar(255)" json:"custom_validation,omitempty"`
	PriceAdjustment  *int64         `gorm:"column:price_adjustment" json:"price_adjustment,omitempty"`
	WeightAdjustment *float64       `gorm:"column:weight_adjustment" json:"weight_adjustment,omitempty"`
	ErrorMessage     string         `gorm:"column:error_message;type:varchar(255)" json:"error_message,omitempty"`
	Conditions       datatypes.JSON `gorm:"column:conditions" json:"conditions,omitempty"`
}

func (ConfigurationRule) TableName() string {
	return "configuration_rule"
}

// TriggeredBy reports whether selecting valueID of the rule's option fires this rule.
func (r *ConfigurationRule) TriggeredBy(valueID uint) bool {
	return r.ValueID == nil || *r.ValueID == valueID
}
