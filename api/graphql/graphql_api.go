package graphql

import (
	"bytes"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	graphqlpkg "catalog.GO/graphql"
	"catalog.GO/graphqlserver"
)

// GraphQLRequest is the standard GraphQL request body
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLResponse is the standard GraphQL response
type GraphQLResponse struct {
	Data   interface{}    `json:"data,omitempty"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

// RegisterGraphQLRoutes mounts /graphql and /playground. mw guards /graphql
// only (mutations write stock).
func RegisterGraphQLRoutes(e *echo.Echo, db *gorm.DB, mw ...echo.MiddlewareFunc) {
	schema, err := graphqlserver.NewSchema(db)
	if err != nil {
		panic("graphql schema: " + err.Error())
	}
	handler := graphqlserver.Handler(schema)
	h := currencyMiddleware(handler)
	e.POST("/graphql", echo.WrapHandler(h), mw...)
	e.GET("/graphql", echo.WrapHandler(h), mw...)
	e.GET("/playground", echo.WrapHandler(playgroundHandler()))
}

// currencyMiddleware puts the requested display currency on the context:
// Currency header, then __Currency query param, then variables.__Currency.
func currencyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		currency := graphqlpkg.GetCurrency(r)
		if currency == "" && r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
			if c, ok := graphqlpkg.ParseCurrencyFromVariables(body); ok {
				currency = c
			}
		}
		ctx := graphqlpkg.WithCurrency(r.Context(), currency)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func playgroundHandler() http.Handler {
	html := `<!DOCTYPE html>
<html>
<head>
	<title>GraphQL Playground</title>
	<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/css/index.css"/>
</head>
<body>
	<div id="root"/>
	<script src="https://cdn.jsdelivr.net/npm/graphql-playground-react/build/static/js/middleware.js"></script>
	<script>window.addEventListener('load', function() {
		GraphQLPlayground.init({ endpoint: '/graphql' });
	})</script>
</body>
</html>`
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	})
}
