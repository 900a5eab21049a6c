package inventory

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "inventory.db")), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(&inventoryEntity.Warehouse{}, &inventoryEntity.InventoryRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedWarehouse(t *testing.T, repo *InventoryRepository, code string, priority int, active bool) inventoryEntity.Warehouse {
	t.Helper()
	w := inventoryEntity.Warehouse{Code: code, Name: code, Priority: priority, Active: true}
	if err := repo.CreateWarehouse(context.Background(), &w); err != nil {
		t.Fatalf("create warehouse %s: %v", code, err)
	}
	if !active {
		if err := repo.SetWarehouseActive(context.Background(), w.ID, false); err != nil {
			t.Fatalf("deactivate %s: %v", code, err)
		}
		w.Active = false
	}
	return w
}

func TestFindActiveWarehousesByPriority_TieBreakByInsertion(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	seedWarehouse(t, repo, "B", 2, true)
	seedWarehouse(t, repo, "A1", 1, true)
	seedWarehouse(t, repo, "OFF", 0, false)
	seedWarehouse(t, repo, "A2", 1, true)

	ws, err := repo.FindActiveWarehousesByPriority(context.Background())
	if err != nil {
		t.Fatalf("FindActiveWarehousesByPriority: %v", err)
	}
	var codes []string
	for _, w := range ws {
		codes = append(codes, w.Code)
	}
	want := []string{"A1", "A2", "B"}
	if len(codes) != len(want) {
		t.Fatalf("codes = %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %s, want %s (all: %v)", i, codes[i], want[i], codes)
		}
	}
}

func TestFindInventory_MissingReturnsNil(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	w := seedWarehouse(t, repo, "W", 1, true)

	rec, err := repo.FindInventory(context.Background(), inventoryEntity.Product(1), w.ID)
	if err != nil {
		t.Fatalf("FindInventory: %v", err)
	}
	if rec != nil {
		t.Errorf("FindInventory = %+v, want nil", rec)
	}
}

func TestSave_PersistsDerivedStatus(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w := seedWarehouse(t, repo, "W", 1, true)

	rec := inventoryEntity.NewRecord(inventoryEntity.Variation(3), w.ID)
	rec.Quantity = 4
	if err := repo.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.FindInventory(ctx, inventoryEntity.Variation(3), w.ID)
	if err != nil || got == nil {
		t.Fatalf("FindInventory = %v, %v", got, err)
	}
	if got.StoredStatus != inventoryEntity.StatusInStock {
		t.Errorf("stored status = %s, want in_stock", got.StoredStatus)
	}
	if got.Quantity != 4 {
		t.Errorf("Quantity = %d, want 4", got.Quantity)
	}
}

func TestSave_RejectsAmbiguousItem(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	p, v := uint(1), uint(2)
	err := repo.Save(context.Background(), &inventoryEntity.InventoryRecord{ProductID: &p, VariationID: &v, WarehouseID: 1})
	if !errors.Is(err, inventoryEntity.ErrInvalidItem) {
		t.Errorf("Save both ids err = %v, want ErrInvalidItem", err)
	}
	err = repo.Save(context.Background(), &inventoryEntity.InventoryRecord{WarehouseID: 1})
	if !errors.Is(err, inventoryEntity.ErrInvalidItem) {
		t.Errorf("Save no ids err = %v, want ErrInvalidItem", err)
	}
}

func TestUniquePerItemAndWarehouse(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w := seedWarehouse(t, repo, "W", 1, true)

	if err := repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Product(1), w.ID)); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Product(1), w.ID)); err == nil {
		t.Error("duplicate (product, warehouse): want unique violation")
	}
	// same id as a variation is a different item
	if err := repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Variation(1), w.ID)); err != nil {
		t.Errorf("variation with same id: %v", err)
	}
}

func TestFindByItem_OrderedByPriority(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w2 := seedWarehouse(t, repo, "W2", 2, true)
	w1 := seedWarehouse(t, repo, "W1", 1, true)
	item := inventoryEntity.Product(7)

	for _, w := range []inventoryEntity.Warehouse{w2, w1} {
		rec := inventoryEntity.NewRecord(item, w.ID)
		rec.Quantity = 1
		if err := repo.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	recs, err := repo.FindByItem(ctx, item)
	if err != nil {
		t.Fatalf("FindByItem: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2", len(recs))
	}
	if recs[0].WarehouseID != w1.ID || recs[1].WarehouseID != w2.ID {
		t.Errorf("order = [%d %d], want [%d %d]", recs[0].WarehouseID, recs[1].WarehouseID, w1.ID, w2.ID)
	}
	if recs[0].Warehouse == nil || recs[0].Warehouse.Code != "W1" {
		t.Errorf("Warehouse not preloaded: %+v", recs[0].Warehouse)
	}
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w := seedWarehouse(t, repo, "W", 1, true)
	item := inventoryEntity.Product(1)

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx *InventoryRepository) error {
		rec := inventoryEntity.NewRecord(item, w.ID)
		rec.Quantity = 9
		if err := tx.Save(ctx, rec); err != nil {
			return err
		}
		locked, err := tx.LockByItem(ctx, item)
		if err != nil {
			return err
		}
		if len(locked) != 1 {
			t.Errorf("LockByItem inside tx = %d records, want 1", len(locked))
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx err = %v, want boom", err)
	}

	rec, err := repo.FindInventory(ctx, item, w.ID)
	if err != nil {
		t.Fatalf("FindInventory: %v", err)
	}
	if rec != nil {
		t.Errorf("record survived rollback: %+v", rec)
	}
}

func TestFindLowStock(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w := seedWarehouse(t, repo, "W", 1, true)
	threshold := 5

	low := inventoryEntity.NewRecord(inventoryEntity.Product(1), w.ID)
	low.Quantity, low.LowStockThreshold = 3, &threshold
	plenty := inventoryEntity.NewRecord(inventoryEntity.Product(2), w.ID)
	plenty.Quantity, plenty.LowStockThreshold = 50, &threshold
	empty := inventoryEntity.NewRecord(inventoryEntity.Product(3), w.ID)
	empty.LowStockThreshold = &threshold
	for _, r := range []*inventoryEntity.InventoryRecord{low, plenty, empty} {
		if err := repo.Save(ctx, r); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	recs, err := repo.FindLowStock(ctx)
	if err != nil {
		t.Fatalf("FindLowStock: %v", err)
	}
	if len(recs) != 1 || *recs[0].ProductID != 1 {
		t.Errorf("FindLowStock = %+v, want only product 1", recs)
	}
}

func TestListItemsAndDeleteByItem(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	w1 := seedWarehouse(t, repo, "W1", 1, true)
	w2 := seedWarehouse(t, repo, "W2", 2, true)

	repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Product(1), w1.ID))
	repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Product(1), w2.ID))
	repo.Save(ctx, inventoryEntity.NewRecord(inventoryEntity.Variation(4), w1.ID))

	items, err := repo.ListItems(ctx)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("ListItems = %v, want 2 items", items)
	}

	n, err := repo.DeleteByItem(ctx, inventoryEntity.Product(1))
	if err != nil {
		t.Fatalf("DeleteByItem: %v", err)
	}
	if n != 2 {
		t.Errorf("DeleteByItem removed %d, want 2", n)
	}
}

func TestFindWarehousesByCodes(t *testing.T) {
	repo := NewInventoryRepository(testDB(t))
	ctx := context.Background()
	seedWarehouse(t, repo, "EU", 1, true)
	seedWarehouse(t, repo, "US", 2, true)

	got, err := repo.FindWarehousesByCodes(ctx, []string{"EU", "XX"})
	if err != nil {
		t.Fatalf("FindWarehousesByCodes: %v", err)
	}
	if _, ok := got["EU"]; !ok || len(got) != 1 {
		t.Errorf("FindWarehousesByCodes = %v, want only EU", got)
	}
	if _, err := repo.FindWarehouseByCode(ctx, "XX"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("FindWarehouseByCode missing err = %v, want ErrRecordNotFound", err)
	}
}
