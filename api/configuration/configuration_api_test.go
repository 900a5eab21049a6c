package configuration

import (
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
	"catalog.GO/model/migrations"
)

// seedMug creates product 1: a configurable mug with a required color
// option (red +10%, blue) and one variation, MUG-RED.
func seedMug(t *testing.T, db *gorm.DB) {
	t.Helper()
	create := func(v interface{}) {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("create %T: %v", v, err)
		}
	}
	p := catalogEntity.Product{SKU: "MUG", Name: "Mug", Type: catalogEntity.TypeConfigurable, Active: true,
		PricingInfo: catalogEntity.PricingInfo{Price: 1000}}
	create(&p)
	attr := catalogEntity.Attribute{Code: "color", Name: "Color", Active: true}
	create(&attr)
	opt := catalogEntity.ConfigurableOption{ProductID: p.ID, AttributeID: attr.ID, Required: true}
	create(&opt)

	pct := int64(10)
	for i, code := range []string{"red", "blue"} {
		ao := catalogEntity.AttributeOption{AttributeID: attr.ID, Value: code, Label: code, Position: i, Active: true}
		create(&ao)
		v := catalogEntity.ConfigurableOptionValue{OptionID: opt.ID, AttributeOptionID: ao.ID, Position: i, PriceType: catalogEntity.PriceFixed}
		if code == "red" {
			v.PriceAdjustment, v.PriceType = &pct, catalogEntity.PricePercentage
			variation := catalogEntity.ProductVariation{ParentID: p.ID, SKU: "MUG-RED", Active: true}
			create(&variation)
			create(&catalogEntity.VariationAttributeValue{VariationID: variation.ID, AttributeID: attr.ID, AttributeOptionID: ao.ID})
		}
		create(&v)
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "config.db")), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	seedMug(t, db)
	e := echo.New()
	e.Validator = api.NewValidator()
	RegisterConfigurationRoutes(e.Group("/api"), db)
	return e
}

func post(t *testing.T, e *echo.Echo, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	out := map[string]interface{}{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("POST %s: decode %q: %v", path, rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestValidateEndpoint(t *testing.T) {
	e := newServer(t)

	status, body := post(t, e, "/api/configuration/1/validate", `{"options":{"color":"red"}}`)
	if status != http.StatusOK || body["ok"] != true {
		t.Errorf("red: %d %v", status, body)
	}

	status, body = post(t, e, "/api/configuration/1/validate", `{}`)
	violations, _ := body["violations"].([]interface{})
	if status != http.StatusOK || body["ok"] != false || len(violations) != 1 {
		t.Fatalf("empty selection: %d %v", status, body)
	}
	if msg := violations[0].(map[string]interface{})["message"]; msg != "Option Color is required" {
		t.Errorf("message = %v", msg)
	}
}

func TestPriceEndpoint(t *testing.T) {
	e := newServer(t)

	status, body := post(t, e, "/api/configuration/1/price", `{"options":{"color":"red"}}`)
	if status != http.StatusOK {
		t.Fatalf("price: %d %v", status, body)
	}
	if body["price"].(float64) != 1100 || body["formatted"] != "$11.00" {
		t.Errorf("price = %v, want 1100 / $11.00", body)
	}

	if status, _ := post(t, e, "/api/configuration/999/price", `{}`); status != http.StatusNotFound {
		t.Errorf("unknown product: status = %d, want 404", status)
	}
}

func TestVariationEndpoint(t *testing.T) {
	e := newServer(t)

	status, body := post(t, e, "/api/configuration/1/variation", `{"options":{"color":"red"}}`)
	if status != http.StatusOK {
		t.Fatalf("variation: %d %v", status, body)
	}
	if sku := body["variation"].(map[string]interface{})["sku"]; sku != "MUG-RED" {
		t.Errorf("sku = %v, want MUG-RED", sku)
	}
	if st := body["stock"].(map[string]interface{})["status"]; st != "out_of_stock" {
		t.Errorf("stock status = %v, want out_of_stock", st)
	}

	cases := []struct {
		body string
		want int
	}{
		{`{"options":{"color":"blue"}}`, http.StatusNotFound},
		{`{"options":{"color":"green"}}`, http.StatusBadRequest},
		{`{"selection":{"x":1}}`, http.StatusBadRequest},
	}
	for _, c := range cases {
		if status, body := post(t, e, "/api/configuration/1/variation", c.body); status != c.want {
			t.Errorf("%s: status = %d, want %d (%v)", c.body, status, c.want, body)
		}
	}
}
