package api

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// DefaultRateLimit applies when the configured rate does not parse.
const DefaultRateLimit = "300-M"

// RateLimit limits requests per client IP. rate uses the limiter format,
// e.g. "120-M" for 120 requests a minute.
func RateLimit(rate string) (echo.MiddlewareFunc, error) {
	r, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("rate limit %q: %w", rate, err)
	}
	instance := limiter.New(memory.NewStore(), r)
	return echo.WrapMiddleware(stdlib.NewMiddleware(instance).Handler), nil
}
