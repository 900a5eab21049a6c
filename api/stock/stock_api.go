package stock

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"catalog.GO/api"
	"catalog.GO/service"
	productService "catalog.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterStockRoutes)
}

type importRequest struct {
	Items []productService.StockItemInput `json:"items" validate:"required,min=1"`
}

func RegisterStockRoutes(apiGroup *echo.Group, db *gorm.DB) {
	ledger := service.ForDB(db).Ledger
	g := apiGroup.Group("/stock")

	// POST /api/stock/import – bulk on-hand update, JSON {"items": [...]} or a text/csv body
	g.POST("/import", func(c echo.Context) error {
		start := time.Now()
		ctx := c.Request().Context()

		var (
			res *productService.StockImportResult
			err error
		)
		if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), "text/csv") {
			res, err = productService.ImportStockCSV(ctx, ledger, c.Request().Body)
		} else {
			var body importRequest
			if err := api.BindAndValidate(c, &body); err != nil {
				return api.Error(c, err)
			}
			res, err = productService.ImportStockJSON(ctx, ledger, body.Items)
		}
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if err != nil {
			return api.Error(c, err)
		}

		return c.JSON(http.StatusOK, echo.Map{
			"total_rows":          res.TotalRows,
			"imported":            res.Imported,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	})
}
