package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog.GO/config"
	"catalog.GO/core/lock"
	catalogEntity "catalog.GO/model/entity/catalog"
	inventoryEntity "catalog.GO/model/entity/inventory"
	catalogRepo "catalog.GO/model/repository/catalog"
	inventoryRepo "catalog.GO/model/repository/inventory"
)

// Options tune lock acquisition and retries.
type Options struct {
	LockRetries int
	LockBackoff time.Duration
	LockTTL     time.Duration
	Now         func() time.Time
}

// OptionsFromConfig reads the LEDGER_LOCK_* settings.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		LockRetries: cfg.LockRetries,
		LockBackoff: cfg.LockBackoff,
		LockTTL:     cfg.LockTTL,
	}
}

// Ledger owns every stock counter mutation. Each mutation runs under an
// item-scoped lock and in one transaction with the touched rows locked.
type Ledger struct {
	repo    *inventoryRepo.InventoryRepository
	catalog *catalogRepo.CatalogRepository
	locker  lock.Locker
	cache   *StockCache
	logger  *zap.Logger
	opts    Options
}

// NewLedger wires a ledger. locker defaults to an in-process locker, cache
// may be nil to disable summary caching.
func NewLedger(repo *inventoryRepo.InventoryRepository, catalog *catalogRepo.CatalogRepository, locker lock.Locker, stockCache *StockCache, logger *zap.Logger, opts Options) *Ledger {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.LockRetries < 1 {
		opts.LockRetries = 3
	}
	if opts.LockBackoff <= 0 {
		opts.LockBackoff = 25 * time.Millisecond
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 5 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Ledger{
		repo:    repo,
		catalog: catalog,
		locker:  locker,
		cache:   stockCache,
		logger:  logger,
		opts:    opts,
	}
}

// GetStock returns the summary of item across all warehouses.
func (l *Ledger) GetStock(ctx context.Context, item inventoryEntity.ItemRef) (*StockSummary, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if s, ok := l.cache.Get(ctx, item); ok {
		return s, nil
	}
	gen, cacheable := l.cache.Generation(ctx, item)
	recs, err := l.repo.FindByItem(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("load inventory of %s: %w", item, err)
	}
	s := Summarize(item, recs)
	if cacheable {
		l.cache.Set(ctx, item, gen, s)
	}
	return s, nil
}

// Records returns the raw records of item in warehouse priority order.
func (l *Ledger) Records(ctx context.Context, item inventoryEntity.ItemRef) ([]inventoryEntity.InventoryRecord, error) {
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return l.repo.FindByItem(ctx, item)
}

// UpdateStock overwrites the on-hand quantity of item at warehouseID, creating
// the record when missing. Reservations are left alone.
func (l *Ledger) UpdateStock(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint, quantity int) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if quantity < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if err := l.requireWarehouse(ctx, warehouseID); err != nil {
		return err
	}
	if err := l.checkItem(ctx, item); err != nil {
		return err
	}
	err := l.mutate(ctx, item, func(tx *inventoryRepo.InventoryRepository) error {
		rec, err := tx.FindInventoryForUpdate(ctx, item, warehouseID)
		if err != nil {
			return err
		}
		if rec == nil {
			rec = inventoryEntity.NewRecord(item, warehouseID)
		}
		rec.Quantity = quantity
		return tx.Save(ctx, rec)
	})
	if err != nil {
		return err
	}
	l.logger.Debug("stock updated",
		zap.Stringer("item", item),
		zap.Uint("warehouse_id", warehouseID),
		zap.Int("quantity", quantity))
	return nil
}

// Reserve holds quantity units of item, drawing from active warehouses in
// priority order. A warehouse that runs dry and allows backorders absorbs the
// rest. It returns false, with nothing written, when the stock cannot cover
// the request.
func (l *Ledger) Reserve(ctx context.Context, item inventoryEntity.ItemRef, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, ErrInvalidQuantity
	}
	if err := item.Validate(); err != nil {
		return false, err
	}
	if err := l.checkItem(ctx, item); err != nil {
		if errors.Is(err, ErrNotStockable) {
			l.logger.Info("reservation refused", zap.Stringer("item", item), zap.Error(err))
			return false, nil
		}
		return false, err
	}
	err := l.mutate(ctx, item, func(tx *inventoryRepo.InventoryRepository) error {
		warehouses, err := tx.FindActiveWarehousesByPriority(ctx)
		if err != nil {
			return err
		}
		recs, err := tx.LockByItem(ctx, item)
		if err != nil {
			return err
		}
		byWarehouse := make(map[uint]*inventoryEntity.InventoryRecord, len(recs))
		for i := range recs {
			byWarehouse[recs[i].WarehouseID] = &recs[i]
		}

		remaining := quantity
		for _, w := range warehouses {
			rec, ok := byWarehouse[w.ID]
			if !ok {
				continue
			}
			take := rec.Available()
			if take > remaining {
				take = remaining
			}
			before := rec.Reserved
			rec.Reserved += take
			remaining -= take
			if remaining > 0 && rec.BackordersAllowed {
				rec.Reserved += remaining
				remaining = 0
			}
			if rec.Reserved != before {
				if err := tx.Save(ctx, rec); err != nil {
					return err
				}
			}
			if remaining == 0 {
				return nil
			}
		}
		return errInsufficientStock
	})
	if errors.Is(err, errInsufficientStock) {
		l.logger.Info("reservation declined",
			zap.Stringer("item", item),
			zap.Int("quantity", quantity))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Release returns up to quantity reserved units of item, in the same
// warehouse order as Reserve. It reports whether anything was released.
func (l *Ledger) Release(ctx context.Context, item inventoryEntity.ItemRef, quantity int) (bool, error) {
	if quantity <= 0 {
		return false, nil
	}
	if err := item.Validate(); err != nil {
		return false, err
	}
	released := 0
	err := l.mutate(ctx, item, func(tx *inventoryRepo.InventoryRepository) error {
		released = 0
		if _, err := tx.LockByItem(ctx, item); err != nil {
			return err
		}
		recs, err := tx.FindByItem(ctx, item)
		if err != nil {
			return err
		}
		remaining := quantity
		for i := range recs {
			rec := &recs[i]
			if rec.Reserved <= 0 {
				continue
			}
			give := rec.Reserved
			if give > remaining {
				give = remaining
			}
			rec.Reserved -= give
			remaining -= give
			released += give
			if err := tx.Save(ctx, rec); err != nil {
				return err
			}
			if remaining == 0 {
				break
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return released > 0, nil
}

// IsInStock reports whether the product can be sold right now.
func (l *Ledger) IsInStock(ctx context.Context, productID uint) (bool, error) {
	p, err := l.catalog.FindProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("%w: %d", ErrProductNotFound, productID)
	}
	if err != nil {
		return false, err
	}
	if !p.IsAvailableAt(l.opts.Now()) {
		return false, nil
	}

	switch p.Type {
	case catalogEntity.TypeVirtual, catalogEntity.TypeDownloadable:
		return true, nil
	case catalogEntity.TypeConfigurable:
		vs, err := l.catalog.FindVariationsFor(ctx, p.ID)
		if err != nil {
			return false, err
		}
		for _, v := range vs {
			if !v.Active {
				continue
			}
			s, err := l.GetStock(ctx, inventoryEntity.Variation(v.ID))
			if err != nil {
				return false, err
			}
			if s.Sellable() {
				return true, nil
			}
		}
		return false, nil
	default:
		s, err := l.GetStock(ctx, inventoryEntity.Product(p.ID))
		if err != nil {
			return false, err
		}
		return s.Sellable(), nil
	}
}

// ResolveSKU maps a product or variation SKU to its sellable item.
func (l *Ledger) ResolveSKU(ctx context.Context, sku string) (inventoryEntity.ItemRef, error) {
	v, err := l.catalog.FindVariationBySKU(ctx, sku)
	if err == nil {
		return inventoryEntity.Variation(v.ID), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return inventoryEntity.ItemRef{}, err
	}
	p, err := l.catalog.FindProductBySKU(ctx, sku)
	if err == nil {
		return inventoryEntity.Product(p.ID), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return inventoryEntity.ItemRef{}, fmt.Errorf("%w: sku %q", ErrItemNotFound, sku)
	}
	return inventoryEntity.ItemRef{}, err
}

// checkItem verifies item exists and can carry stock. Configurable parents
// sell through their variations only.
func (l *Ledger) checkItem(ctx context.Context, item inventoryEntity.ItemRef) error {
	var err error
	switch item.Kind {
	case inventoryEntity.KindVariation:
		_, err = l.catalog.FindVariation(ctx, item.ID)
	default:
		var p *catalogEntity.Product
		p, err = l.catalog.FindProduct(ctx, item.ID)
		if err == nil && p.Type == catalogEntity.TypeConfigurable {
			return fmt.Errorf("%w: configurable product %s", ErrNotStockable, p.SKU)
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item)
	}
	return err
}

func (l *Ledger) requireWarehouse(ctx context.Context, id uint) error {
	if _, err := l.repo.FindWarehouse(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: %d", ErrWarehouseNotFound, id)
		}
		return err
	}
	return nil
}

// mutate runs fn in a transaction under the item lock and drops the cached
// summary once it commits.
func (l *Ledger) mutate(ctx context.Context, item inventoryEntity.ItemRef, fn func(tx *inventoryRepo.InventoryRepository) error) error {
	unlock, err := lock.Acquire(ctx, l.locker, "inventory:"+item.String(), l.opts.LockTTL, l.opts.LockRetries, l.opts.LockBackoff)
	if errors.Is(err, lock.ErrNotAcquired) {
		return ErrLockContention
	}
	if err != nil {
		return fmt.Errorf("lock %s: %w", item, err)
	}
	defer unlock()

	err = withRetry(ctx, l.opts.LockRetries, l.opts.LockBackoff, func() error {
		return l.repo.WithTx(ctx, fn)
	})
	if err != nil {
		return err
	}
	l.cache.Invalidate(ctx, item)
	return nil
}
