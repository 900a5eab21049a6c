package inventory

import (
	"errors"
	"fmt"
)

// ItemKind tells which sellable entity an inventory record belongs to.
type ItemKind string

const (
	KindProduct   ItemKind = "product"
	KindVariation ItemKind = "variation"
)

// ItemRef addresses a sellable item: a simple product or a product variation.
type ItemRef struct {
	Kind ItemKind
	ID   uint
}

var ErrInvalidItem = errors.New("invalid sellable item")

func Product(id uint) ItemRef   { return ItemRef{Kind: KindProduct, ID: id} }
func Variation(id uint) ItemRef { return ItemRef{Kind: KindVariation, ID: id} }

// ParseKind accepts "product" or "variation".
func ParseKind(s string) (ItemKind, error) {
	switch ItemKind(s) {
	case KindProduct, KindVariation:
		return ItemKind(s), nil
	}
	return "", fmt.Errorf("%w: kind %q", ErrInvalidItem, s)
}

func (r ItemRef) Validate() error {
	if r.ID == 0 {
		return fmt.Errorf("%w: zero id", ErrInvalidItem)
	}
	if _, err := ParseKind(string(r.Kind)); err != nil {
		return err
	}
	return nil
}

// Column is the inventory_record column holding this item's id.
func (r ItemRef) Column() string {
	if r.Kind == KindVariation {
		return "variation_id"
	}
	return "product_id"
}

// Tag is the cache invalidation tag for the item.
func (r ItemRef) Tag() string {
	return fmt.Sprintf("%s_%d", r.Kind, r.ID)
}

func (r ItemRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}
