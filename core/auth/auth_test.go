package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	entity "catalog.GO/model/entity"
	authRepo "catalog.GO/model/repository/auth"
)

func newServer(t *testing.T, db *gorm.DB) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Use(Middleware(db))
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/api/stock", func(c echo.Context) error {
		name, _ := c.Get("api_token").(string)
		return c.String(http.StatusOK, name)
	})
	return e
}

func do(e *echo.Echo, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestTokenAuth_IssuedToken(t *testing.T) {
	t.Setenv("AUTH_TYPE", "token")
	t.Setenv("API_KEY", "")
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&entity.APIToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	issued, err := authRepo.NewAuthRepository(db).IssueToken(context.Background(), "erp", 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	e := newServer(t, db)

	rec := do(e, "/api/stock", "Bearer "+issued.Token)
	if rec.Code != http.StatusOK || rec.Body.String() != "erp" {
		t.Errorf("valid token: %d %q, want 200 erp", rec.Code, rec.Body.String())
	}
	if rec := do(e, "/api/stock", "Bearer nope"); rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown token: status = %d, want 401", rec.Code)
	}
	if rec := do(e, "/health", ""); rec.Code != http.StatusOK {
		t.Errorf("skipped path: status = %d, want 200", rec.Code)
	}
}

func TestBasicAuth(t *testing.T) {
	t.Setenv("AUTH_TYPE", "")
	t.Setenv("API_USER", "ops")
	t.Setenv("API_PASS", "secret")
	e := newServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	req.SetBasicAuth("ops", "secret")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("valid credentials: status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	req.SetBasicAuth("ops", "wrong")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad credentials: status = %d, want 401", rec.Code)
	}
}
