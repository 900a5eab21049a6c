package product

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	inventoryEntity "catalog.GO/model/entity/inventory"
	inventoryService "catalog.GO/service/inventory"
)

// StockWriter is the slice of the inventory ledger the importer drives.
type StockWriter interface {
	ResolveSKU(ctx context.Context, sku string) (inventoryEntity.ItemRef, error)
	WarehousesByCodes(ctx context.Context, codes []string) (map[string]inventoryEntity.Warehouse, error)
	UpdateStock(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint, quantity int) error
	UpdateRecordSettings(ctx context.Context, item inventoryEntity.ItemRef, warehouseID uint, s inventoryService.RecordSettings) (*inventoryEntity.InventoryRecord, error)
}

// ErrInvalidCSV marks a stock file that cannot be read at all.
var ErrInvalidCSV = errors.New("invalid stock CSV")

var stockColumns = map[string]bool{
	"sku": true, "warehouse": true, "qty": true,
	"backorders_allowed": true, "low_stock_threshold": true,
}

// StockItemInput is one row of a stock import, from JSON or CSV.
type StockItemInput struct {
	SKU               string `json:"sku" validate:"required"`
	Warehouse         string `json:"warehouse" validate:"required"`
	Qty               *int   `json:"qty" validate:"required,min=0"`
	BackordersAllowed *bool  `json:"backorders_allowed"`
	LowStockThreshold *int   `json:"low_stock_threshold" validate:"omitempty,min=0"`
}

// StockImportResult holds the result of a stock import run.
type StockImportResult struct {
	TotalRows int           `json:"total_rows"`
	Imported  int           `json:"imported"`
	Skipped   int           `json:"skipped"`
	Warnings  []string      `json:"warnings,omitempty"`
	TotalTime time.Duration `json:"-"`
}

func (r *StockImportResult) skip(format string, args ...interface{}) {
	r.Skipped++
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// rowError reports ledger errors that only spoil one row.
func rowError(err error) bool {
	return errors.Is(err, inventoryService.ErrItemNotFound) ||
		errors.Is(err, inventoryService.ErrWarehouseNotFound) ||
		errors.Is(err, inventoryService.ErrInvalidQuantity) ||
		errors.Is(err, inventoryService.ErrInvalidSettings) ||
		errors.Is(err, inventoryService.ErrInvalidItem) ||
		errors.Is(err, inventoryService.ErrNotStockable) ||
		errors.Is(err, inventoryService.ErrLockContention)
}

// ImportStockJSON sets on-hand quantities through the ledger. Bad rows become
// warnings; a store failure aborts the run.
func ImportStockJSON(ctx context.Context, ledger StockWriter, items []StockItemInput) (*StockImportResult, error) {
	start := time.Now()
	result := &StockImportResult{TotalRows: len(items)}

	codes := make([]string, 0, len(items))
	seen := make(map[string]bool)
	for _, it := range items {
		if it.Warehouse != "" && !seen[it.Warehouse] {
			seen[it.Warehouse] = true
			codes = append(codes, it.Warehouse)
		}
	}
	warehouses, err := ledger.WarehousesByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("load warehouses: %w", err)
	}

	resolved := make(map[string]inventoryEntity.ItemRef)
	for i, it := range items {
		sku := strings.TrimSpace(it.SKU)
		if sku == "" {
			result.skip("row %d: empty sku, skipping", i+1)
			continue
		}
		if it.Qty == nil {
			result.skip("sku=%s: qty is required", sku)
			continue
		}
		w, ok := warehouses[it.Warehouse]
		if !ok {
			result.skip("sku=%s: warehouse %q not found", sku, it.Warehouse)
			continue
		}
		item, ok := resolved[sku]
		if !ok {
			item, err = ledger.ResolveSKU(ctx, sku)
			if err != nil {
				if rowError(err) {
					result.skip("sku=%s: product not found", sku)
					continue
				}
				return nil, err
			}
			resolved[sku] = item
		}

		if err := ledger.UpdateStock(ctx, item, w.ID, *it.Qty); err != nil {
			if rowError(err) {
				result.skip("sku=%s: %v", sku, err)
				continue
			}
			return nil, fmt.Errorf("sku=%s: %w", sku, err)
		}
		if it.BackordersAllowed != nil || it.LowStockThreshold != nil {
			settings := inventoryService.RecordSettings{
				BackordersAllowed: it.BackordersAllowed,
				LowStockThreshold: it.LowStockThreshold,
			}
			if _, err := ledger.UpdateRecordSettings(ctx, item, w.ID, settings); err != nil {
				if !rowError(err) {
					return nil, fmt.Errorf("sku=%s: %w", sku, err)
				}
				result.Warnings = append(result.Warnings, fmt.Sprintf("sku=%s: settings not applied: %v", sku, err))
			}
		}
		result.Imported++
	}
	result.TotalTime = time.Since(start)
	return result, nil
}

// ImportStockCSV reads sku,warehouse,qty[,backorders_allowed,low_stock_threshold]
// rows and imports them like ImportStockJSON.
func ImportStockCSV(ctx context.Context, ledger StockWriter, r io.Reader) (*StockImportResult, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidCSV, err)
	}
	colIndex := make(map[string]int, len(headers))
	var warnings []string
	for i, h := range headers {
		h = strings.TrimSpace(strings.ToLower(h))
		colIndex[h] = i
		if !stockColumns[h] {
			warnings = append(warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}
	for _, required := range []string{"sku", "warehouse", "qty"} {
		if _, ok := colIndex[required]; !ok {
			return nil, fmt.Errorf("%w: a '%s' column is required", ErrInvalidCSV, required)
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", ErrInvalidCSV, err)
	}
	items, rowWarnings := collectStock(rows, colIndex)
	result, err := ImportStockJSON(ctx, ledger, items)
	if err != nil {
		return nil, err
	}
	result.TotalRows = len(rows)
	result.Skipped += len(rowWarnings)
	result.Warnings = append(append(warnings, rowWarnings...), result.Warnings...)
	return result, nil
}

// collectStock turns CSV rows into inputs; rows with unparsable numbers are
// dropped with a warning.
func collectStock(rows [][]string, colIndex map[string]int) ([]StockItemInput, []string) {
	cell := func(row []string, col string) string {
		ci, ok := colIndex[col]
		if !ok || ci >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[ci])
	}

	var items []StockItemInput
	var warnings []string
	for _, row := range rows {
		in := StockItemInput{SKU: cell(row, "sku"), Warehouse: cell(row, "warehouse")}

		if v := cell(row, "qty"); v != "" {
			q, err := strconv.Atoi(v)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("sku=%s: invalid qty %q", in.SKU, v))
				continue
			}
			in.Qty = &q
		}
		if v := cell(row, "backorders_allowed"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("sku=%s: invalid backorders_allowed %q", in.SKU, v))
				continue
			}
			in.BackordersAllowed = &b
		}
		if v := cell(row, "low_stock_threshold"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("sku=%s: invalid low_stock_threshold %q", in.SKU, v))
				continue
			}
			in.LowStockThreshold = &n
		}
		items = append(items, in)
	}
	return items, warnings
}
