package realtime

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	catalogEntity "catalog.GO/model/entity/catalog"
	inventoryEntity "catalog.GO/model/entity/inventory"
	"catalog.GO/model/migrations"
	"catalog.GO/service"
)

func sign(key, customerID string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(customerID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyCustomerSignature(t *testing.T) {
	key := "3254cdb1ae5233a336cdec765aeb3bb6"
	sig := sign(key, "123")

	if len(sig) != 64 {
		t.Errorf("signature length = %d, want 64 hex chars", len(sig))
	}
	if !verifyCustomerSignature("123", sig, key) {
		t.Error("valid signature rejected")
	}
	if verifyCustomerSignature("124", sig, key) {
		t.Error("tampered ID should fail verification")
	}
	if verifyCustomerSignature("123", "zz", key) {
		t.Error("non-hex signature accepted")
	}
	if verifyCustomerSignature("123", sig, "") {
		t.Error("empty key must never verify")
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "realtime.db")), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	p := catalogEntity.Product{SKU: "MUG", Name: "Mug", Active: true, PricingInfo: catalogEntity.PricingInfo{Price: 1250, Currency: "EUR"}}
	w := inventoryEntity.Warehouse{Code: "EU", Name: "Europe", Active: true}
	for _, v := range []interface{}{&p, &w} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed %T: %v", v, err)
		}
	}
	if err := service.ForDB(db).Ledger.UpdateStock(context.Background(), inventoryEntity.Product(p.ID), w.ID, 4); err != nil {
		t.Fatalf("UpdateStock: %v", err)
	}

	e := echo.New()
	RegisterRealtimeRoutes(e.Group("/api"), db)
	return e
}

func get(e *echo.Echo, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAvailability(t *testing.T) {
	t.Setenv("CUSTOMER_SIGNING_KEY", "")
	e := newServer(t)

	rec := get(e, "/api/realtime/availability?sku=MUG", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp AvailabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Price.Formatted != "€12.50" || resp.Available != 4 || !resp.Sellable || resp.Status != "in_stock" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Stock != nil {
		t.Error("stock detail returned without detail=1")
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms header")
	}

	if rec := get(e, "/api/realtime/availability?sku=NOPE", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown sku: status = %d, want 404", rec.Code)
	}
	if rec := get(e, "/api/realtime/availability", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing sku: status = %d, want 400", rec.Code)
	}
}

func TestAvailability_Signature(t *testing.T) {
	t.Setenv("CUSTOMER_SIGNING_KEY", "secret")
	e := newServer(t)

	if rec := get(e, "/api/realtime/availability?sku=MUG", map[string]string{"X-Customer-ID": "7", "X-Customer-Sig": "00"}); rec.Code != http.StatusUnauthorized {
		t.Errorf("bad signature: status = %d, want 401", rec.Code)
	}
	rec := get(e, "/api/realtime/availability?sku=MUG&detail=1", map[string]string{"X-Customer-ID": "7", "X-Customer-Sig": sign("secret", "7")})
	if rec.Code != http.StatusOK {
		t.Fatalf("signed request: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp AvailabilityResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Stock == nil || len(resp.Stock.Warehouses) != 1 {
		t.Errorf("detail stock = %+v, want one warehouse", resp.Stock)
	}
}
