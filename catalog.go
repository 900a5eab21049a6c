//go:build !cli
// +build !cli

package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"catalog.GO/api"
	graphqlApi "catalog.GO/api/graphql"
	"catalog.GO/config"
	"catalog.GO/core/auth"
	"catalog.GO/model/migrations"

	_ "catalog.GO/api/configuration"
	_ "catalog.GO/api/inventory"
	_ "catalog.GO/api/realtime"
	_ "catalog.GO/api/stock"
	_ "catalog.GO/custom"
)

func main() {
	config.LoadEnv()
	cfg := config.LoadAppConfig()
	logger := config.NewLogger()
	defer logger.Sync()

	config.InitRedis()
	if config.PingRedis(context.Background()) {
		logger.Info("Redis connection successful, shared locks and stock cache enabled.")
	} else {
		logger.Info("Redis not configured or not reachable, using in-process locks and cache.")
	}

	db, err := config.NewDB()
	if err != nil {
		logger.Fatal("failed to connect to DB", zap.Error(err))
	}
	sqldb, err := db.DB()
	if err != nil {
		logger.Fatal("failed to get DB instance", zap.Error(err))
	}
	if err := sqldb.Ping(); err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	if err := migrations.Up(db); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}
	logger.Info("Database connection successful.", zap.String("dialect", db.Dialector.Name()))

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(time.Since(start).Milliseconds(), 10))
			return err
		}
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(db))
	api.ApplyModules(apiGroup, db)
	api.ApplyRoutes(e, db)
	graphqlApi.RegisterGraphQLRoutes(e, db, auth.Middleware(db))

	fonts := []string{"standard", "slant", "small", "big", "doom"}
	figure.NewFigure("catalog.GO", fonts[rand.Intn(len(fonts))], true).Print()
	fmt.Println()

	logger.Info("Server running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
