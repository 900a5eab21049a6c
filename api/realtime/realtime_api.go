package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"catalog.GO/api"
	"catalog.GO/config"
	"catalog.GO/service"
	inventoryService "catalog.GO/service/inventory"
	productService "catalog.GO/service/product"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// AvailabilityResponse is the storefront view of one SKU.
type AvailabilityResponse struct {
	SKU       string                         `json:"sku"`
	ItemType  string                         `json:"item_type"`
	ItemID    uint                           `json:"item_id"`
	Price     productService.ItemPrice       `json:"price"`
	Available int                            `json:"available"`
	Status    string                         `json:"status"`
	Sellable  bool                           `json:"sellable"`
	Stock     *inventoryService.StockSummary `json:"stock,omitempty"`
}

// getSigningKey returns the shared secret storefronts sign customer ids with.
func getSigningKey() string {
	return config.GetEnv("CUSTOMER_SIGNING_KEY", "")
}

// verifyCustomerSignature validates HMAC-SHA256 signature using constant-time comparison
func verifyCustomerSignature(customerID, signature, key string) bool {
	if key == "" || customerID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(customerID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the storefront availability API
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := service.ForDB(db)
	g := apiGroup.Group("/realtime")

	// GET /api/realtime/availability?sku=XXX[&detail=1]
	g.GET("/availability", func(c echo.Context) error {
		start := time.Now()

		customerID := c.Request().Header.Get("X-Customer-ID")
		customerSig := c.Request().Header.Get("X-Customer-Sig")
		if key := getSigningKey(); key != "" && !verifyCustomerSignature(customerID, customerSig, key) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}

		ctx := c.Request().Context()
		item, err := svc.Ledger.ResolveSKU(ctx, sku)
		if err != nil {
			return api.Error(c, err)
		}

		var (
			price productService.ItemPrice
			stock *inventoryService.StockSummary
		)
		eg, egCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			price, err = productService.PriceOf(egCtx, svc.Catalog, item, time.Now(), svc.Config.DefaultCurrency)
			return err
		})
		eg.Go(func() error {
			var err error
			stock, err = svc.Ledger.GetStock(egCtx, item)
			return err
		})
		if err := eg.Wait(); err != nil {
			return api.Error(c, err)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))

		resp := AvailabilityResponse{
			SKU:       sku,
			ItemType:  string(item.Kind),
			ItemID:    item.ID,
			Price:     price,
			Available: stock.TotalAvailable,
			Status:    string(stock.Status),
			Sellable:  stock.Sellable(),
		}
		if c.QueryParam("detail") != "" {
			resp.Stock = stock
		}
		return c.JSON(http.StatusOK, resp)
	})
}
