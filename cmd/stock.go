package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	productService "catalog.GO/service/product"
)

var (
	whCode     string
	whName     string
	whPriority int
	whInactive bool

	stockWarehouse string
	stockFile      string
	reindexSKU     string
)

var warehouseCreateCmd = &cobra.Command{
	Use:   "warehouse:create",
	Short: "Create a warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		w, err := svc.Ledger.CreateWarehouse(cmd.Context(), whCode, whName, whPriority, !whInactive)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created warehouse %s (id=%d, priority=%d, active=%v)\n", w.Code, w.ID, w.Priority, w.Active)
		return nil
	},
}

var warehouseListCmd = &cobra.Command{
	Use:   "warehouse:list",
	Short: "List active warehouses in allocation order",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		ws, err := svc.Ledger.Warehouses(cmd.Context())
		if err != nil {
			return err
		}
		for _, w := range ws {
			fmt.Fprintf(cmd.OutOrStdout(), "%-4d %-12s %-24s priority=%d active=%v\n", w.ID, w.Code, w.Name, w.Priority, w.Active)
		}
		return nil
	},
}

var stockGetCmd = &cobra.Command{
	Use:   "stock:get <sku>",
	Short: "Print the stock summary of a SKU as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		item, err := svc.Ledger.ResolveSKU(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		s, err := svc.Ledger.GetStock(cmd.Context(), item)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

var stockUpdateCmd = &cobra.Command{
	Use:   "stock:update <sku> <qty>",
	Short: "Set the on-hand quantity of a SKU at one warehouse",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("qty: %w", err)
		}
		svc, err := services()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		item, err := svc.Ledger.ResolveSKU(ctx, args[0])
		if err != nil {
			return err
		}
		w, err := svc.Ledger.WarehouseByCode(ctx, stockWarehouse)
		if err != nil {
			return err
		}
		if err := svc.Ledger.UpdateStock(ctx, item, w.ID, qty); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s @ %s = %d\n", args[0], w.Code, qty)
		return nil
	},
}

// quantityCommand builds stock:reserve and stock:release, which share arguments.
func quantityCommand(use, short string, run func(cmd *cobra.Command, sku string, qty int) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <sku> <qty>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("qty: %w", err)
			}
			return run(cmd, args[0], qty)
		},
	}
}

var stockReserveCmd = quantityCommand("stock:reserve", "Reserve units of a SKU across warehouses", func(cmd *cobra.Command, sku string, qty int) error {
	svc, err := services()
	if err != nil {
		return err
	}
	item, err := svc.Ledger.ResolveSKU(cmd.Context(), sku)
	if err != nil {
		return err
	}
	ok, err := svc.Ledger.Reserve(cmd.Context(), item, qty)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("insufficient stock for %d x %s", qty, sku)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Reserved %d x %s\n", qty, sku)
	return nil
})

var stockReleaseCmd = quantityCommand("stock:release", "Release reserved units of a SKU", func(cmd *cobra.Command, sku string, qty int) error {
	svc, err := services()
	if err != nil {
		return err
	}
	item, err := svc.Ledger.ResolveSKU(cmd.Context(), sku)
	if err != nil {
		return err
	}
	ok, err := svc.Ledger.Release(cmd.Context(), item, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "released=%v\n", ok)
	return nil
})

var stockImportCmd = &cobra.Command{
	Use:   "stock:import",
	Short: "Import stock levels from CSV (sku,warehouse,qty[,backorders_allowed,low_stock_threshold])",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(stockFile)
		if err != nil {
			return fmt.Errorf("open CSV: %w", err)
		}
		defer f.Close()

		svc, err := services()
		if err != nil {
			return err
		}
		res, err := productService.ImportStockCSV(cmd.Context(), svc.Ledger, f)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, w := range res.Warnings {
			fmt.Fprintf(out, "  [warn] %s\n", w)
		}
		fmt.Fprintf(out, `
=== Stock Import Report ===
CSV rows:   %d
Imported:   %d
Skipped:    %d
Total time: %s
===========================
`, res.TotalRows, res.Imported, res.Skipped, res.TotalTime.Round(time.Millisecond))
		return nil
	},
}

var stockLowReportCmd = &cobra.Command{
	Use:   "stock:low-report",
	Short: "Log every record at or below its low-stock threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		n, err := svc.Ledger.ReportLowStock(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d low-stock record(s)\n", n)
		return nil
	},
}

var stockReindexCmd = &cobra.Command{
	Use:   "stock:reindex",
	Short: "Rebuild the Elasticsearch stock index, or one SKU's document with --sku",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := services()
		if err != nil {
			return err
		}
		idx, err := svc.StockIndexer()
		if err != nil {
			return err
		}
		if reindexSKU != "" {
			item, err := svc.Ledger.ResolveSKU(cmd.Context(), reindexSKU)
			if err != nil {
				return err
			}
			if err := idx.IndexItem(cmd.Context(), item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %s into %s\n", reindexSKU, idx.Index())
			return nil
		}
		n, err := idx.Reindex(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d item(s) into %s\n", n, idx.Index())
		return nil
	},
}

func init() {
	warehouseCreateCmd.Flags().StringVar(&whCode, "code", "", "Warehouse code")
	warehouseCreateCmd.Flags().StringVar(&whName, "name", "", "Warehouse name (defaults to code)")
	warehouseCreateCmd.Flags().IntVar(&whPriority, "priority", 0, "Allocation priority, lower first")
	warehouseCreateCmd.Flags().BoolVar(&whInactive, "inactive", false, "Create the warehouse inactive")
	_ = warehouseCreateCmd.MarkFlagRequired("code")

	stockUpdateCmd.Flags().StringVarP(&stockWarehouse, "warehouse", "w", "", "Warehouse code")
	_ = stockUpdateCmd.MarkFlagRequired("warehouse")

	stockReindexCmd.Flags().StringVar(&reindexSKU, "sku", "", "Index a single SKU instead of every item")

	stockImportCmd.Flags().StringVarP(&stockFile, "file", "f", "", "Path to CSV file")
	_ = stockImportCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(
		warehouseCreateCmd, warehouseListCmd,
		stockGetCmd, stockUpdateCmd, stockReserveCmd, stockReleaseCmd,
		stockImportCmd, stockLowReportCmd, stockReindexCmd,
	)
}
