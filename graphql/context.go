package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyCurrency contextKey = "currency"

// Display currency for items without one of their own.
// Resolved from: Currency header > __Currency query param > JSON variables.__Currency
const (
	HeaderCurrency     = "Currency"
	QueryParamCurrency = "__Currency"
	VarCurrency        = "__Currency"
)

// CurrencyFromContext returns the requested currency, "" when none was sent.
func CurrencyFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyCurrency).(string); ok {
		return v
	}
	return ""
}

// WithCurrency attaches currency to context.
func WithCurrency(ctx context.Context, currency string) context.Context {
	return context.WithValue(ctx, CtxKeyCurrency, currency)
}

// NormalizeCurrency upper-cases a three letter code; anything else is "".
func NormalizeCurrency(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return ""
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return ""
		}
	}
	return s
}

// GetCurrency reads the header, then the query param.
func GetCurrency(r *http.Request) string {
	if c := NormalizeCurrency(r.Header.Get(HeaderCurrency)); c != "" {
		return c
	}
	return NormalizeCurrency(r.URL.Query().Get(QueryParamCurrency))
}

// ParseCurrencyFromVariables reads variables.__Currency from a JSON body.
func ParseCurrencyFromVariables(body []byte) (string, bool) {
	var payload struct {
		Variables map[string]interface{} `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Variables == nil {
		return "", false
	}
	v, ok := payload.Variables[VarCurrency].(string)
	if !ok {
		return "", false
	}
	c := NormalizeCurrency(v)
	return c, c != ""
}
