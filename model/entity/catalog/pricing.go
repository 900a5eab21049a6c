package catalog

import "time"

// PricingInfo is shared by products and variations. Amounts are minor currency units.
type PricingInfo struct {
	Price        int64      `gorm:"column:price;not null;default:0" json:"price"`
	SpecialPrice *int64     `gorm:"column:special_price" json:"special_price,omitempty"`
	SpecialFrom  *time.Time `gorm:"column:special_price_from" json:"special_price_from,omitempty"`
	SpecialTo    *time.Time `gorm:"column:special_price_to" json:"special_price_to,omitempty"`
	Currency     string     `gorm:"column:currency_code;type:varchar(3)" json:"currency_code,omitempty"`
}

// HasActiveSpecialPrice reports whether the special price applies at t.
// Open-ended windows are allowed on either side.
func (p PricingInfo) HasActiveSpecialPrice(t time.Time) bool {
	if p.SpecialPrice == nil {
		return false
	}
	if p.SpecialFrom != nil && t.Before(*p.SpecialFrom) {
		return false
	}
	if p.SpecialTo != nil && t.After(*p.SpecialTo) {
		return false
	}
	return true
}

// EffectivePrice is the special price inside its window, the regular price otherwise.
func (p PricingInfo) EffectivePrice(t time.Time) int64 {
	if p.HasActiveSpecialPrice(t) {
		return *p.SpecialPrice
	}
	return p.Price
}

// CurrencyOr returns the currency code or def when unset.
func (p PricingInfo) CurrencyOr(def string) string {
	if p.Currency == "" {
		return def
	}
	return p.Currency
}
