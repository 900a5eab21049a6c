package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	productService "catalog.GO/service/product"
)

var skuPrefix string

var skuGenerateCmd = &cobra.Command{
	Use:   "sku:generate",
	Short: "Print a SKU not used by any product or variation",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		sku, err := productService.GenerateUniqueSKU(cmd.Context(), svc.Catalog, skuPrefix)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sku)
		return nil
	},
}

func init() {
	skuGenerateCmd.Flags().StringVarP(&skuPrefix, "prefix", "p", "", "SKU prefix")
	rootCmd.AddCommand(skuGenerateCmd)
}
