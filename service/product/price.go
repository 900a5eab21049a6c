package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	catalogEntity "catalog.GO/model/entity/catalog"
	inventoryEntity "catalog.GO/model/entity/inventory"
)

// ErrPriceNotFound is returned when the item does not exist.
var ErrPriceNotFound = errors.New("price not found")

// PriceCatalog is the read side needed to price an item.
type PriceCatalog interface {
	FindProduct(ctx context.Context, id uint) (*catalogEntity.Product, error)
	FindVariation(ctx context.Context, id uint) (*catalogEntity.ProductVariation, error)
}

// ItemPrice is an effective price ready for display.
type ItemPrice struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

// PriceOf returns the effective price of item at t. A variation without a
// price of its own sells at its parent's price.
func PriceOf(ctx context.Context, catalog PriceCatalog, item inventoryEntity.ItemRef, at time.Time, defaultCurrency string) (ItemPrice, error) {
	var info catalogEntity.PricingInfo
	switch item.Kind {
	case inventoryEntity.KindVariation:
		v, err := catalog.FindVariation(ctx, item.ID)
		if err != nil {
			return ItemPrice{}, notFound(item, err)
		}
		info = v.PricingInfo
		if info.Price == 0 && info.SpecialPrice == nil {
			p, err := catalog.FindProduct(ctx, v.ParentID)
			if err != nil {
				return ItemPrice{}, notFound(item, err)
			}
			info.Price, info.SpecialPrice = p.Price, p.SpecialPrice
			info.SpecialFrom, info.SpecialTo = p.SpecialFrom, p.SpecialTo
			if info.Currency == "" {
				info.Currency = p.Currency
			}
		}
	default:
		p, err := catalog.FindProduct(ctx, item.ID)
		if err != nil {
			return ItemPrice{}, notFound(item, err)
		}
		info = p.PricingInfo
	}

	currency := info.CurrencyOr(defaultCurrency)
	amount := info.EffectivePrice(at)
	return ItemPrice{Amount: amount, Currency: currency, Formatted: FormatMoney(amount, currency)}, nil
}

func notFound(item inventoryEntity.ItemRef, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrPriceNotFound, item)
	}
	return err
}
