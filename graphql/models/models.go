package models

import (
	gql "github.com/graph-gophers/graphql-go"
)

// --- Inventory ---

type Warehouse struct {
	ID       gql.ID `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	Priority int32  `json:"priority"`
	Active   bool   `json:"active"`
}

type WarehouseStock struct {
	Warehouse         *Warehouse `json:"warehouse"`
	Quantity          int32      `json:"quantity"`
	Reserved          int32      `json:"reserved"`
	Available         int32      `json:"available"`
	Status            string     `json:"status"`
	BackordersAllowed bool       `json:"backorders_allowed"`
	IsLowStock        bool       `json:"is_low_stock"`
}

type StockSummary struct {
	SKU               *string           `json:"sku,omitempty"`
	ItemType          string            `json:"item_type"`
	ItemID            gql.ID            `json:"item_id"`
	TotalQuantity     int32             `json:"total_quantity"`
	TotalAvailable    int32             `json:"total_available"`
	TotalReserved     int32             `json:"total_reserved"`
	Status            string            `json:"status"`
	HasStock          bool              `json:"has_stock"`
	BackordersAllowed bool              `json:"backorders_allowed"`
	Sellable          bool              `json:"sellable"`
	Warehouses        []*WarehouseStock `json:"warehouses"`
}

type InventoryRecord struct {
	ID                gql.ID     `json:"id"`
	ItemType          string     `json:"item_type"`
	ItemID            gql.ID     `json:"item_id"`
	Warehouse         *Warehouse `json:"warehouse,omitempty"`
	Quantity          int32      `json:"quantity"`
	Reserved          int32      `json:"reserved"`
	Available         int32      `json:"available"`
	Status            string     `json:"status"`
	LowStockThreshold *int32     `json:"low_stock_threshold,omitempty"`
	ShelfLocation     *string    `json:"shelf_location,omitempty"`
}

// --- Configuration ---

type Money struct {
	Amount    int32  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type ConfiguredPrice struct {
	Price  *Money  `json:"price"`
	Weight float64 `json:"weight"`
}

type Violation struct {
	RuleID     *gql.ID `json:"rule_id,omitempty"`
	RuleType   *string `json:"rule_type,omitempty"`
	OptionCode string  `json:"option_code"`
	Message    string  `json:"message"`
}

type ValidationResult struct {
	OK         bool         `json:"ok"`
	Violations []*Violation `json:"violations"`
}

type Variation struct {
	ID    gql.ID        `json:"id"`
	SKU   string        `json:"sku"`
	Price *Money        `json:"price"`
	Stock *StockSummary `json:"stock"`
}
