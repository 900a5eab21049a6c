package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

// Items lists every item that has at least one inventory record.
func (l *Ledger) Items(ctx context.Context) ([]inventoryEntity.ItemRef, error) {
	return l.repo.ListItems(ctx)
}

// SKUOf returns the SKU of a product or variation.
func (l *Ledger) SKUOf(ctx context.Context, item inventoryEntity.ItemRef) (string, error) {
	if err := item.Validate(); err != nil {
		return "", err
	}
	var (
		sku string
		err error
	)
	if item.Kind == inventoryEntity.KindVariation {
		v, ferr := l.catalog.FindVariation(ctx, item.ID)
		if ferr == nil {
			sku = v.SKU
		}
		err = ferr
	} else {
		p, ferr := l.catalog.FindProduct(ctx, item.ID)
		if ferr == nil {
			sku = p.SKU
		}
		err = ferr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: %s", ErrItemNotFound, item)
	}
	return sku, err
}
