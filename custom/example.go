// Package custom shows how project code hooks into the registries without
// touching the core packages. Each hook runs from init().
package custom

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"catalog.GO/api"
	"catalog.GO/cmd"
	"catalog.GO/cron"
	gqlregistry "catalog.GO/graphql/registry"
	"catalog.GO/service/configuration"
)

func init() {
	// GraphQL extension: { _extension(name: "ping") }
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			fmt.Fprintln(c.OutOrStdout(), "Hello from custom command")
		},
	})

	// Cron job
	cron.Register("customping", "@every 1h", func(args ...string) {
		fmt.Println("Custom cron: ping", args)
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"pong": "ok"})
	})

	// Custom validation rule: custom_validation "sku_prefix" with
	// conditions {"prefix": "PRO-"}
	configuration.DefaultPredicates.Register("sku_prefix", SKUPrefix)
}

// SKUPrefix passes when the product SKU starts with the configured prefix.
func SKUPrefix(_ context.Context, in configuration.PredicateInput) (bool, error) {
	var params struct {
		Prefix string `json:"prefix"`
	}
	if err := in.Params(&params); err != nil {
		return false, err
	}
	return strings.HasPrefix(in.Product.SKU, params.Prefix), nil
}
