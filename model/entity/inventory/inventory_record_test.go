package inventory

import "testing"

func intPtr(v int) *int { return &v }

func TestAvailable_NeverNegative(t *testing.T) {
	cases := []struct {
		qty, reserved, want int
	}{
		{10, 0, 10},
		{10, 4, 6},
		{5, 5, 0},
		{5, 7, 0}, // backorder reservation beyond on-hand
		{0, 0, 0},
	}
	for _, c := range cases {
		r := InventoryRecord{Quantity: c.qty, Reserved: c.reserved}
		if got := r.Available(); got != c.want {
			t.Errorf("Available(q=%d,r=%d) = %d, want %d", c.qty, c.reserved, got, c.want)
		}
	}
}

func TestStatus_Derived(t *testing.T) {
	cases := []struct {
		name string
		rec  InventoryRecord
		want StockStatus
	}{
		{"in stock", InventoryRecord{Quantity: 3}, StatusInStock},
		{"fully reserved stays in stock", InventoryRecord{Quantity: 3, Reserved: 3}, StatusInStock},
		{"empty", InventoryRecord{Quantity: 0}, StatusOutOfStock},
		{"empty with backorders", InventoryRecord{Quantity: 0, BackordersAllowed: true}, StatusBackorder},
	}
	for _, c := range cases {
		if got := c.rec.Status(); got != c.want {
			t.Errorf("%s: Status = %s, want %s", c.name, got, c.want)
		}
	}
}

func TestIsLowStock(t *testing.T) {
	if (&InventoryRecord{Quantity: 2}).IsLowStock() {
		t.Error("no threshold: want false")
	}
	if !(&InventoryRecord{Quantity: 2, LowStockThreshold: intPtr(5)}).IsLowStock() {
		t.Error("2 <= 5: want true")
	}
	if !(&InventoryRecord{Quantity: 5, LowStockThreshold: intPtr(5)}).IsLowStock() {
		t.Error("5 <= 5: want true")
	}
	if (&InventoryRecord{Quantity: 0, LowStockThreshold: intPtr(5)}).IsLowStock() {
		t.Error("empty is out of stock, not low: want false")
	}
	r := &InventoryRecord{Quantity: 2, LowStockThreshold: intPtr(5)}
	if r.Status() != StatusInStock {
		t.Errorf("low stock record Status = %s, want in_stock", r.Status())
	}
}

func TestNewRecord_ItemColumns(t *testing.T) {
	p := NewRecord(Product(4), 1)
	if p.ProductID == nil || *p.ProductID != 4 || p.VariationID != nil {
		t.Errorf("product record ids = %v/%v", p.ProductID, p.VariationID)
	}
	if p.Item() != Product(4) {
		t.Errorf("Item = %v, want product:4", p.Item())
	}
	if p.StoredStatus != StatusOutOfStock {
		t.Errorf("new record status = %s, want out_of_stock", p.StoredStatus)
	}

	v := NewRecord(Variation(9), 2)
	if v.VariationID == nil || *v.VariationID != 9 || v.ProductID != nil {
		t.Errorf("variation record ids = %v/%v", v.ProductID, v.VariationID)
	}
	if v.Item().Column() != "variation_id" {
		t.Errorf("Column = %s, want variation_id", v.Item().Column())
	}
}

func TestBeforeSave_SyncsStatus(t *testing.T) {
	r := NewRecord(Product(1), 1)
	r.Quantity = 8
	if err := r.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if r.StoredStatus != StatusInStock {
		t.Errorf("StoredStatus = %s, want in_stock", r.StoredStatus)
	}
}

func TestItemRef_Validate(t *testing.T) {
	if err := Product(0).Validate(); err == nil {
		t.Error("zero id: want error")
	}
	if err := (ItemRef{Kind: "bundle", ID: 1}).Validate(); err == nil {
		t.Error("unknown kind: want error")
	}
	if err := Variation(3).Validate(); err != nil {
		t.Errorf("valid ref: %v", err)
	}
	if Variation(3).Tag() != "variation_3" {
		t.Errorf("Tag = %s, want variation_3", Variation(3).Tag())
	}
}
