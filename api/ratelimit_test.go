package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit_InvalidRateReturnsError(t *testing.T) {
	mw, err := RateLimit("lots-per-minute")
	if err == nil {
		t.Fatal("want error for malformed rate")
	}
	if mw != nil {
		t.Error("want nil middleware on error")
	}
	if _, err := RateLimit(DefaultRateLimit); err != nil {
		t.Fatalf("default rate: %v", err)
	}
}

func TestRateLimit_RejectsOverLimit(t *testing.T) {
	mw, err := RateLimit("1-M")
	if err != nil {
		t.Fatalf("RateLimit: %v", err)
	}
	e := echo.New()
	e.POST("/limited", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }, mw)

	codes := make([]int, 0, 2)
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/limited", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v, want [204 429]", codes)
	}
}
