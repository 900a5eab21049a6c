package resolvers

import (
	"context"
	"errors"
	"time"

	"catalog.GO/graphql"
	gqlmodels "catalog.GO/graphql/models"
	inventoryEntity "catalog.GO/model/entity/inventory"
	configService "catalog.GO/service/configuration"
	productService "catalog.GO/service/product"
)

func (r *Resolver) selection(ctx context.Context, args graphql.ConfigurationArgs) (uint, configService.Selection, error) {
	id, err := parseID(args.ProductID)
	if err != nil {
		return 0, nil, err
	}
	sel, err := r.svc.Engine.SelectionByCodes(ctx, id, args.Codes())
	return id, sel, err
}

func (r *Resolver) ConfigurationPrice(ctx context.Context, args graphql.ConfigurationArgs) (*gqlmodels.ConfiguredPrice, error) {
	id, sel, err := r.selection(ctx, args)
	if err != nil {
		return nil, err
	}
	adj, err := r.svc.Engine.ComputeAdjustedPriceAndWeight(ctx, id, sel)
	if err != nil {
		return nil, err
	}
	currency := adj.Currency
	if currency == "" {
		currency = r.currency(ctx)
	}
	return &gqlmodels.ConfiguredPrice{Price: toMoney(adj.Price, currency), Weight: adj.Weight}, nil
}

func (r *Resolver) ValidateConfiguration(ctx context.Context, args graphql.ConfigurationArgs) (*gqlmodels.ValidationResult, error) {
	id, sel, err := r.selection(ctx, args)
	if err != nil {
		return nil, err
	}
	res, err := r.svc.Engine.Validate(ctx, id, sel)
	if err != nil {
		return nil, err
	}
	out := &gqlmodels.ValidationResult{OK: res.OK, Violations: make([]*gqlmodels.Violation, 0, len(res.Violations))}
	for _, v := range res.Violations {
		gv := &gqlmodels.Violation{OptionCode: v.OptionCode, Message: v.Message}
		if v.RuleID != 0 {
			rid := toID(v.RuleID)
			rt := string(v.RuleType)
			gv.RuleID, gv.RuleType = &rid, &rt
		}
		out.Violations = append(out.Violations, gv)
	}
	return out, nil
}

// ResolveVariation returns null when no variation matches.
func (r *Resolver) ResolveVariation(ctx context.Context, args graphql.ConfigurationArgs) (*gqlmodels.Variation, error) {
	id, sel, err := r.selection(ctx, args)
	if err != nil {
		return nil, err
	}
	v, err := r.svc.Engine.ResolveVariation(ctx, id, sel)
	if errors.Is(err, configService.ErrVariationNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	item := inventoryEntity.Variation(v.ID)
	price, err := productService.PriceOf(ctx, r.svc.Catalog, item, time.Now(), r.currency(ctx))
	if err != nil {
		return nil, err
	}
	s, err := r.svc.Ledger.GetStock(ctx, item)
	if err != nil {
		return nil, err
	}
	return &gqlmodels.Variation{
		ID:    toID(v.ID),
		SKU:   v.SKU,
		Price: toMoney(price.Amount, price.Currency),
		Stock: toSummary(s, v.SKU),
	}, nil
}
