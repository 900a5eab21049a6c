package graphql

import (
	gql "github.com/graph-gophers/graphql-go"
)

// Argument types shared by the resolvers. graphql-go matches fields to
// schema arguments by name, ignoring case.

type SKUArgs struct {
	SKU string
}

type ItemArgs struct {
	Type string
	ID   gql.ID
}

type ProductArgs struct {
	ProductID gql.ID
}

// OptionChoice picks one value of a configurable option by codes.
type OptionChoice struct {
	Option string
	Value  string
}

type ConfigurationArgs struct {
	ProductID gql.ID
	Options   []OptionChoice
}

// Codes flattens the choices into {"color": "red"}.
func (a ConfigurationArgs) Codes() map[string]string {
	out := make(map[string]string, len(a.Options))
	for _, o := range a.Options {
		out[o.Option] = o.Value
	}
	return out
}

type UpdateStockArgs struct {
	SKU       string
	Warehouse string
	Quantity  int32
}

type QuantityArgs struct {
	SKU      string
	Quantity int32
}

type ExtensionArgs struct {
	Name string
	Args *string
}
