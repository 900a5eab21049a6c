package configuration

import (
	"context"
	"fmt"
	"strings"

	catalogEntity "catalog.GO/model/entity/catalog"
)

// ResolveVariation returns the one active variation whose attribute values
// are exactly the selected values.
func (e *Engine) ResolveVariation(ctx context.Context, productID uint, sel Selection) (*catalogEntity.ProductVariation, error) {
	g, err := e.load(ctx, productID)
	if err != nil {
		return nil, err
	}
	if g.product.Type != catalogEntity.TypeConfigurable {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigurable, g.product.SKU)
	}
	choices, err := g.resolve(sel)
	if err != nil {
		return nil, err
	}
	if len(choices) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrVariationNotFound)
	}

	want := make(map[uint]struct{}, len(choices))
	optionIDs := make([]uint, 0, len(choices))
	for _, c := range choices {
		want[c.value.AttributeOptionID] = struct{}{}
		optionIDs = append(optionIDs, c.value.AttributeOptionID)
	}

	ids, err := e.catalog.FindVariationIDsByAttributeOptions(ctx, g.product.ID, optionIDs)
	if err != nil {
		return nil, fmt.Errorf("find variations of product %d: %w", g.product.ID, err)
	}
	candidates, err := e.catalog.FindVariationsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var matches []catalogEntity.ProductVariation
	for _, v := range candidates {
		if v.Active && sameSet(v.OptionSet(), want) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: product %d", ErrVariationNotFound, g.product.ID)
	case 1:
		return &matches[0], nil
	}
	skus := make([]string, len(matches))
	for i, m := range matches {
		skus[i] = m.SKU
	}
	return nil, fmt.Errorf("%w: %s", ErrAmbiguousVariation, strings.Join(skus, ", "))
}

func sameSet(a, b map[uint]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
