package configuration

import "errors"

var (
	ErrProductNotFound    = errors.New("product not found")
	ErrNotConfigurable    = errors.New("product is not configurable")
	ErrUnknownOption      = errors.New("option does not belong to product")
	ErrUnknownValue       = errors.New("value does not belong to option")
	ErrVariationNotFound  = errors.New("no variation matches the selection")
	ErrAmbiguousVariation = errors.New("selection matches more than one variation")
)
