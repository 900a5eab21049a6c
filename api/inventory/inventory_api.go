package inventory

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog.GO/api"
	inventoryEntity "catalog.GO/model/entity/inventory"
	"catalog.GO/service"
	inventoryService "catalog.GO/service/inventory"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

type warehouseRequest struct {
	Code     string `json:"code" validate:"required,max=64"`
	Name     string `json:"name" validate:"max=255"`
	Priority int    `json:"priority"`
	Active   *bool  `json:"active"`
}

type stockRequest struct {
	WarehouseID uint `json:"warehouse_id" validate:"required"`
	Quantity    int  `json:"quantity" validate:"min=0"`
}

type settingsRequest struct {
	WarehouseID uint `json:"warehouse_id" validate:"required"`
	inventoryService.RecordSettings
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// itemParam reads the :kind/:id pair of the route.
func itemParam(c echo.Context) (inventoryEntity.ItemRef, error) {
	kind, err := inventoryEntity.ParseKind(c.Param("kind"))
	if err != nil {
		return inventoryEntity.ItemRef{}, err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return inventoryEntity.ItemRef{}, fmt.Errorf("%w: id %q", inventoryEntity.ErrInvalidItem, c.Param("id"))
	}
	return inventoryEntity.ItemRef{Kind: kind, ID: uint(id)}, nil
}

// RegisterInventoryRoutes mounts the ledger under /api/inventory.
func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := service.ForDB(db)
	ledger := svc.Ledger
	g := apiGroup.Group("/inventory")
	limited, err := api.RateLimit(svc.Config.ReserveRateLimit)
	if err != nil {
		svc.Logger.Warn("invalid RESERVE_RATE_LIMIT, using default",
			zap.String("default", api.DefaultRateLimit), zap.Error(err))
		limited, _ = api.RateLimit(api.DefaultRateLimit)
	}

	g.GET("/warehouses", func(c echo.Context) error {
		ws, err := ledger.Warehouses(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"warehouses": ws})
	})

	g.POST("/warehouses", func(c echo.Context) error {
		var body warehouseRequest
		if err := api.BindAndValidate(c, &body); err != nil {
			return api.Error(c, err)
		}
		active := body.Active == nil || *body.Active
		w, err := ledger.CreateWarehouse(c.Request().Context(), body.Code, body.Name, body.Priority, active)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusCreated, w)
	})

	// GET /api/inventory/low-stock
	g.GET("/low-stock", func(c echo.Context) error {
		recs, err := ledger.LowStock(c.Request().Context())
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"records": inventoryService.FormatRecords(recs)})
	})

	// GET /api/inventory/in-stock/:productID
	g.GET("/in-stock/:productID", func(c echo.Context) error {
		id, err := strconv.ParseUint(c.Param("productID"), 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
		}
		ok, err := ledger.IsInStock(c.Request().Context(), uint(id))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"product_id": id, "in_stock": ok})
	})

	// GET /api/inventory/:kind/:id – summary across warehouses
	g.GET("/:kind/:id", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		s, err := ledger.GetStock(c.Request().Context(), item)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, s)
	})

	g.GET("/:kind/:id/records", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		recs, err := ledger.Records(c.Request().Context(), item)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"records": inventoryService.FormatRecords(recs)})
	})

	// PUT /api/inventory/:kind/:id/stock – set on-hand quantity at one warehouse
	g.PUT("/:kind/:id/stock", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		var body stockRequest
		if err := api.BindAndValidate(c, &body); err != nil {
			return api.Error(c, err)
		}
		ctx := c.Request().Context()
		if err := ledger.UpdateStock(ctx, item, body.WarehouseID, body.Quantity); err != nil {
			return api.Error(c, err)
		}
		s, err := ledger.GetStock(ctx, item)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, s)
	})

	g.PATCH("/:kind/:id/settings", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		var body settingsRequest
		if err := api.BindAndValidate(c, &body); err != nil {
			return api.Error(c, err)
		}
		rec, err := ledger.UpdateRecordSettings(c.Request().Context(), item, body.WarehouseID, body.RecordSettings)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, inventoryService.FormatRecord(rec))
	})

	// POST /api/inventory/:kind/:id/reserve – 409 when stock cannot cover it
	g.POST("/:kind/:id/reserve", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		var body quantityRequest
		if err := api.BindAndValidate(c, &body); err != nil {
			return api.Error(c, err)
		}
		ok, err := ledger.Reserve(c.Request().Context(), item, body.Quantity)
		if err != nil {
			return api.Error(c, err)
		}
		if !ok {
			return c.JSON(http.StatusConflict, echo.Map{"reserved": false, "error": "insufficient stock"})
		}
		return c.JSON(http.StatusOK, echo.Map{"reserved": true})
	}, limited)

	g.POST("/:kind/:id/release", func(c echo.Context) error {
		item, err := itemParam(c)
		if err != nil {
			return api.Error(c, err)
		}
		var body quantityRequest
		if err := api.BindAndValidate(c, &body); err != nil {
			return api.Error(c, err)
		}
		ok, err := ledger.Release(c.Request().Context(), item, body.Quantity)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"released": ok})
	}, limited)
}
