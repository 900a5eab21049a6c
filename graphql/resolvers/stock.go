package resolvers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog.GO/graphql"
	gqlmodels "catalog.GO/graphql/models"
	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryService "catalog.GO/service/inventory"
)

// Stock returns null for an unknown SKU.
func (r *Resolver) Stock(ctx context.Context, args graphql.SKUArgs) (*gqlmodels.StockSummary, error) {
	item, err := r.svc.Ledger.ResolveSKU(ctx, args.SKU)
	if errors.Is(err, inventoryService.ErrItemNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s, err := r.svc.Ledger.GetStock(ctx, item)
	if err != nil {
		return nil, err
	}
	return toSummary(s, args.SKU), nil
}

func (r *Resolver) StockByItem(ctx context.Context, args graphql.ItemArgs) (*gqlmodels.StockSummary, error) {
	kind, err := inventoryEntity.ParseKind(strings.ToLower(args.Type))
	if err != nil {
		return nil, err
	}
	id, err := parseID(args.ID)
	if err != nil {
		return nil, err
	}
	s, err := r.svc.Ledger.GetStock(ctx, inventoryEntity.ItemRef{Kind: kind, ID: id})
	if err != nil {
		return nil, err
	}
	return toSummary(s, ""), nil
}

func (r *Resolver) IsInStock(ctx context.Context, args graphql.ProductArgs) (bool, error) {
	id, err := parseID(args.ProductID)
	if err != nil {
		return false, err
	}
	return r.svc.Ledger.IsInStock(ctx, id)
}

func (r *Resolver) Warehouses(ctx context.Context) ([]*gqlmodels.Warehouse, error) {
	ws, err := r.svc.Ledger.Warehouses(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.Warehouse, 0, len(ws))
	for i := range ws {
		out = append(out, toWarehouse(&ws[i]))
	}
	return out, nil
}

func (r *Resolver) LowStock(ctx context.Context) ([]*gqlmodels.InventoryRecord, error) {
	recs, err := r.svc.Ledger.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.InventoryRecord, 0, len(recs))
	for i := range recs {
		out = append(out, toRecord(&recs[i]))
	}
	return out, nil
}

// --- Mutations ---

func (r *Resolver) UpdateStock(ctx context.Context, args graphql.UpdateStockArgs) (*gqlmodels.StockSummary, error) {
	item, err := r.svc.Ledger.ResolveSKU(ctx, args.SKU)
	if err != nil {
		return nil, err
	}
	w, err := r.svc.Ledger.WarehouseByCode(ctx, args.Warehouse)
	if err != nil {
		return nil, err
	}
	if err := r.svc.Ledger.UpdateStock(ctx, item, w.ID, int(args.Quantity)); err != nil {
		return nil, err
	}
	s, err := r.svc.Ledger.GetStock(ctx, item)
	if err != nil {
		return nil, err
	}
	return toSummary(s, args.SKU), nil
}

func (r *Resolver) ReserveStock(ctx context.Context, args graphql.QuantityArgs) (bool, error) {
	item, err := r.svc.Ledger.ResolveSKU(ctx, args.SKU)
	if err != nil {
		return false, err
	}
	return r.svc.Ledger.Reserve(ctx, item, int(args.Quantity))
}

func (r *Resolver) ReleaseStock(ctx context.Context, args graphql.QuantityArgs) (bool, error) {
	item, err := r.svc.Ledger.ResolveSKU(ctx, args.SKU)
	if err != nil {
		return false, err
	}
	ok, err := r.svc.Ledger.Release(ctx, item, int(args.Quantity))
	if err != nil {
		return false, fmt.Errorf("release %s: %w", args.SKU, err)
	}
	return ok, nil
}
