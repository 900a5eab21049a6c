package product

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrSKUExhausted = errors.New("could not generate an unused sku")

// SKUChecker reports whether a SKU is taken by a product or a variation.
type SKUChecker interface {
	SKUExists(ctx context.Context, sku string) (bool, error)
}

const skuAttempts = 10

// GenerateUniqueSKU returns PREFIX-XXXXXXXX with a random uuid-derived suffix,
// retrying while the candidate is taken.
func GenerateUniqueSKU(ctx context.Context, checker SKUChecker, prefix string) (string, error) {
	prefix = normalizeSKUPrefix(prefix)
	for i := 0; i < skuAttempts; i++ {
		suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
		candidate := suffix
		if prefix != "" {
			candidate = prefix + "-" + suffix
		}
		taken, err := checker.SKUExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrSKUExhausted
}

func normalizeSKUPrefix(prefix string) string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	return strings.Join(strings.Fields(prefix), "-")
}
