package inventory

import (
	"errors"

	inventoryEntity "catalog.GO/model/entity/inventory"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInvalidSettings   = errors.New("invalid inventory settings")
	ErrLockContention    = errors.New("inventory item is busy, try again")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrItemNotFound      = errors.New("sellable item not found")
	ErrNotStockable      = errors.New("item cannot hold stock")

	ErrInvalidItem = inventoryEntity.ErrInvalidItem

	// errInsufficientStock rolls back a reservation that could not be covered.
	errInsufficientStock = errors.New("insufficient stock")
)
