package configuration

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"catalog.GO/api"
	inventoryEntity "catalog.GO/model/entity/inventory"
	"catalog.GO/service"
	configService "catalog.GO/service/configuration"
	productService "catalog.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterConfigurationRoutes)
}

// selectionRequest accepts ids ({"selection": {"3": 12}}) or codes
// ({"options": {"color": "red"}}). Codes win when both are sent.
type selectionRequest struct {
	Selection map[string]uint   `json:"selection"`
	Options   map[string]string `json:"options"`
}

func (r selectionRequest) resolve(ctx context.Context, engine *configService.Engine, productID uint) (configService.Selection, error) {
	if len(r.Options) > 0 {
		return engine.SelectionByCodes(ctx, productID, r.Options)
	}
	return configService.ParseSelection(r.Selection)
}

// bind reads :productID and the selection body.
func bind(c echo.Context, engine *configService.Engine) (uint, configService.Selection, error) {
	id, err := strconv.ParseUint(c.Param("productID"), 10, 64)
	if err != nil {
		return 0, nil, echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	var body selectionRequest
	if err := api.BindAndValidate(c, &body); err != nil {
		return 0, nil, err
	}
	sel, err := body.resolve(c.Request().Context(), engine, uint(id))
	return uint(id), sel, err
}

func RegisterConfigurationRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := service.ForDB(db)
	engine := svc.Engine
	g := apiGroup.Group("/configuration")

	// POST /api/configuration/:productID/validate
	g.POST("/:productID/validate", func(c echo.Context) error {
		productID, sel, err := bind(c, engine)
		if err != nil {
			return api.Error(c, err)
		}
		res, err := engine.Validate(c.Request().Context(), productID, sel)
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, res)
	})

	// POST /api/configuration/:productID/price
	g.POST("/:productID/price", func(c echo.Context) error {
		productID, sel, err := bind(c, engine)
		if err != nil {
			return api.Error(c, err)
		}
		adj, err := engine.ComputeAdjustedPriceAndWeight(c.Request().Context(), productID, sel)
		if err != nil {
			return api.Error(c, err)
		}
		currency := adj.Currency
		if currency == "" {
			currency = svc.Config.DefaultCurrency
		}
		return c.JSON(http.StatusOK, echo.Map{
			"price":     adj.Price,
			"weight":    adj.Weight,
			"currency":  currency,
			"formatted": productService.FormatMoney(adj.Price, currency),
		})
	})

	// POST /api/configuration/:productID/variation – the matching variation and its stock
	g.POST("/:productID/variation", func(c echo.Context) error {
		productID, sel, err := bind(c, engine)
		if err != nil {
			return api.Error(c, err)
		}
		ctx := c.Request().Context()
		v, err := engine.ResolveVariation(ctx, productID, sel)
		if err != nil {
			return api.Error(c, err)
		}
		stock, err := svc.Ledger.GetStock(ctx, inventoryEntity.Variation(v.ID))
		if err != nil {
			return api.Error(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"variation": v, "stock": stock})
	})
}
