package resolvers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	gql "github.com/graph-gophers/graphql-go"
	"gorm.io/gorm"

	"catalog.GO/graphql"
	gqlregistry "catalog.GO/graphql/registry"
	"catalog.GO/service"
)

func init() {
	gqlregistry.RegisterQueryResolverFactory(func(db interface{}) interface{} {
		return NewResolver(service.ForDB(db.(*gorm.DB)))
	})
}

// Resolver is the root resolver for every Query and Mutation field.
// Methods live in stock.go and configuration.go. New fields: use
// RegisterSchemaExtension + add a method here, or _extension for fully
// dynamic resolvers.
type Resolver struct {
	svc *service.Container
}

func NewResolver(svc *service.Container) *Resolver {
	return &Resolver{svc: svc}
}

// currency is the request currency, falling back to DEFAULT_CURRENCY.
func (r *Resolver) currency(ctx context.Context) string {
	if c := graphql.CurrencyFromContext(ctx); c != "" {
		return c
	}
	return r.svc.Config.DefaultCurrency
}

func parseID(id gql.ID) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("invalid id %q", id)
	}
	return uint(n), nil
}

// Extension dispatches to registered custom resolvers.
func (r *Resolver) Extension(ctx context.Context, args graphql.ExtensionArgs) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, errors.New("args must be a JSON object")
		}
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
