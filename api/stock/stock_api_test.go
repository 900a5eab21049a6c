package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"catalog.GO/api"
	catalogEntity "catalog.GO/model/entity/catalog"
	inventoryEntity "catalog.GO/model/entity/inventory"
	"catalog.GO/model/migrations"
	"catalog.GO/service"
)

func setup(t *testing.T) (*echo.Echo, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "stock.db")), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := db.Create(&catalogEntity.Product{SKU: "MUG", Name: "Mug", Active: true}).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := db.Create(&inventoryEntity.Warehouse{Code: "EU", Name: "Europe", Active: true}).Error; err != nil {
		t.Fatalf("seed warehouse: %v", err)
	}
	e := echo.New()
	e.Validator = api.NewValidator()
	RegisterStockRoutes(e.Group("/api"), db)
	return e, db
}

func post(e *echo.Echo, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/stock/import", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportJSON(t *testing.T) {
	e, db := setup(t)

	rec := post(e, echo.MIMEApplicationJSON, `{"items":[
		{"sku":"MUG","warehouse":"EU","qty":12},
		{"sku":"NOPE","warehouse":"EU","qty":1}
	]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var res struct {
		Imported int      `json:"imported"`
		Skipped  int      `json:"skipped"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Imported != 1 || res.Skipped != 1 {
		t.Errorf("result = %+v, want 1 imported 1 skipped", res)
	}
	if rec.Header().Get("X-Request-Duration-ms") == "" {
		t.Error("missing X-Request-Duration-ms header")
	}

	s, err := service.ForDB(db).Ledger.GetStock(context.Background(), inventoryEntity.Product(1))
	if err != nil {
		t.Fatalf("GetStock: %v", err)
	}
	if s.TotalQuantity != 12 {
		t.Errorf("TotalQuantity = %d, want 12", s.TotalQuantity)
	}
}

func TestImportCSV(t *testing.T) {
	e, _ := setup(t)

	rec := post(e, "text/csv", "sku,warehouse,qty,backorders_allowed\nMUG,EU,3,true\n")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"imported":1`) {
		t.Errorf("csv import: %d %s", rec.Code, rec.Body.String())
	}

	rec = post(e, "text/csv", "sku,qty\nMUG,3\n")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("csv without warehouse column: status = %d, want 400", rec.Code)
	}
}

func TestImportRequiresItems(t *testing.T) {
	e, _ := setup(t)
	if rec := post(e, echo.MIMEApplicationJSON, `{"items":[]}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty items: status = %d, want 400", rec.Code)
	}
}
