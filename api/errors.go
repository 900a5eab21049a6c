package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"catalog.GO/service/configuration"
	"catalog.GO/service/inventory"
	"catalog.GO/service/product"
)

var statusByError = []struct {
	err    error
	status int
}{
	{inventory.ErrInvalidQuantity, http.StatusBadRequest},
	{inventory.ErrInvalidSettings, http.StatusBadRequest},
	{inventory.ErrInvalidItem, http.StatusBadRequest},
	{inventory.ErrNotStockable, http.StatusBadRequest},
	{inventory.ErrWarehouseNotFound, http.StatusNotFound},
	{inventory.ErrProductNotFound, http.StatusNotFound},
	{inventory.ErrItemNotFound, http.StatusNotFound},
	{inventory.ErrLockContention, http.StatusConflict},
	{configuration.ErrProductNotFound, http.StatusNotFound},
	{configuration.ErrNotConfigurable, http.StatusBadRequest},
	{configuration.ErrUnknownOption, http.StatusBadRequest},
	{configuration.ErrUnknownValue, http.StatusBadRequest},
	{configuration.ErrVariationNotFound, http.StatusNotFound},
	{configuration.ErrAmbiguousVariation, http.StatusConflict},
	{product.ErrPriceNotFound, http.StatusNotFound},
	{product.ErrInvalidCSV, http.StatusBadRequest},
}

// StatusOf maps a service error to its HTTP status.
func StatusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	for _, m := range statusByError {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}

// Error writes err as {"error": ...} with the mapped status.
func Error(c echo.Context, err error) error {
	status := StatusOf(err)
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if s, ok := he.Message.(string); ok {
			msg = s
		}
	}
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
		msg = http.StatusText(status)
	}
	return c.JSON(status, echo.Map{"error": msg})
}
