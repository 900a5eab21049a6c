package configuration

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	catalogEntity "catalog.GO/model/entity/catalog"
)

// Adjusted is the configured price in minor units and the configured weight.
type Adjusted struct {
	Price    int64   `json:"price"`
	Weight   float64 `json:"weight"`
	Currency string  `json:"currency,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// PercentOf returns round(base * pct / 100), half away from zero.
func PercentOf(base, pct int64) int64 {
	return decimal.NewFromInt(base).
		Mul(decimal.NewFromInt(pct)).
		Div(hundred).
		Round(0).
		IntPart()
}

// ComputeAdjustedPriceAndWeight starts from the product's base price and
// weight, adds every selected value's adjustment (percentages always taken of
// the base price) and then the rule-level adjustments fired by those values.
func (e *Engine) ComputeAdjustedPriceAndWeight(ctx context.Context, productID uint, sel Selection) (Adjusted, error) {
	g, err := e.load(ctx, productID)
	if err != nil {
		return Adjusted{}, err
	}
	choices, err := g.resolve(sel)
	if err != nil {
		return Adjusted{}, err
	}

	base := g.product.Price
	out := Adjusted{
		Price:    base,
		Weight:   g.product.BaseWeight(),
		Currency: g.product.Currency,
	}
	for _, c := range choices {
		v := c.value
		if v.PriceAdjustment != nil {
			out.Price += valuePriceDelta(base, v)
		}
		if v.WeightAdjustment != nil {
			out.Weight += *v.WeightAdjustment
		}
	}
	for _, c := range choices {
		rules, err := e.catalog.FindRulesFor(ctx, *c.value)
		if err != nil {
			return Adjusted{}, fmt.Errorf("load rules of option %d: %w", c.option.ID, err)
		}
		for _, r := range rules {
			switch r.Type {
			case catalogEntity.RulePriceAdjustment:
				if r.PriceAdjustment != nil {
					out.Price += *r.PriceAdjustment
				}
			case catalogEntity.RuleWeightAdjustment:
				if r.WeightAdjustment != nil {
					out.Weight += *r.WeightAdjustment
				}
			}
		}
	}
	return out, nil
}

func valuePriceDelta(base int64, v *catalogEntity.ConfigurableOptionValue) int64 {
	if v.PriceType == catalogEntity.PricePercentage {
		return PercentOf(base, *v.PriceAdjustment)
	}
	return *v.PriceAdjustment
}
