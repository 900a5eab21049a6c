// Command graphql runs the GraphQL API alone: go run ./cmd/graphql
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"

	"catalog.GO/api"
	graphqlApi "catalog.GO/api/graphql"
	"catalog.GO/config"
	"catalog.GO/core/auth"

	_ "catalog.GO/custom"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	config.InitRedis()
	config.PingRedis(context.Background())

	db, err := config.NewDB()
	if err != nil {
		log.Fatal("db:", err)
	}

	e := echo.New()
	e.HideBanner = true
	graphqlApi.RegisterGraphQLRoutes(e, db, auth.Middleware(db))
	api.ApplyRoutes(e, db)

	// ASCII banner on start (random font each run)
	gqlFonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "doom", "larry3d", "puffy"}
	fig := figure.NewFigure("Catalog GQL ->", gqlFonts[rand.Intn(len(gqlFonts))], true)
	fig.Print()
	fmt.Println("Standalone GraphQL server")

	log.Printf("GraphQL at http://localhost:%s/graphql  Playground at http://localhost:%s/playground", cfg.Port, cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
