package service

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"catalog.GO/config"
	"catalog.GO/core/cache"
	"catalog.GO/core/lock"
	catalogRepo "catalog.GO/model/repository/catalog"
	inventoryRepo "catalog.GO/model/repository/inventory"
	"catalog.GO/service/configuration"
	"catalog.GO/service/inventory"
	"catalog.GO/service/search"
)

// Container holds the services shared by the HTTP, GraphQL, CLI and cron entry points.
type Container struct {
	DB      *gorm.DB
	Config  *config.Config
	Logger  *zap.Logger
	Catalog *catalogRepo.CatalogRepository
	Ledger  *inventory.Ledger
	Engine  *configuration.Engine

	indexerOnce sync.Once
	indexer     *search.StockIndexer
	indexerErr  error
}

// NewContainer wires the services over db. With a Redis client the ledger
// locks and the stock cache are shared across processes.
func NewContainer(db *gorm.DB, cfg *config.Config, rdb *redis.Client, logger *zap.Logger) *Container {
	if cfg == nil {
		cfg = config.LoadAppConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	var locker lock.Locker = lock.NewLocalLocker()
	if rdb != nil {
		locker = lock.NewRedisLocker(rdb, "lock:")
	}
	catalog := catalogRepo.NewCatalogRepository(db)
	stockCache := inventory.NewStockCache(cache.NewCache(), rdb, cfg.StockCacheTTL, logger.Named("stock_cache"))

	return &Container{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Catalog: catalog,
		Ledger: inventory.NewLedger(
			inventoryRepo.NewInventoryRepository(db),
			catalog,
			locker,
			stockCache,
			logger.Named("ledger"),
			inventory.OptionsFromConfig(cfg),
		),
		Engine: configuration.NewEngine(catalog, configuration.DefaultPredicates, logger.Named("configuration")),
	}
}

// StockIndexer connects to Elasticsearch on first use.
func (c *Container) StockIndexer() (*search.StockIndexer, error) {
	c.indexerOnce.Do(func() {
		client, err := search.NewClientFromEnv()
		if err != nil {
			c.indexerErr = err
			return
		}
		c.indexer = search.NewStockIndexer(client, c.Config.SearchIndex, c.Ledger, c.Logger.Named("search"))
	})
	return c.indexer, c.indexerErr
}

var (
	mu         sync.Mutex
	containers = map[*gorm.DB]*Container{}
	logger     *zap.Logger
)

// ForDB returns the container bound to db, built on first use from the
// global config, Redis client and logger.
func ForDB(db *gorm.DB) *Container {
	mu.Lock()
	defer mu.Unlock()
	if c, ok := containers[db]; ok {
		return c
	}
	if logger == nil {
		logger = config.NewLogger()
	}
	c := NewContainer(db, config.LoadAppConfig(), config.RedisClient, logger)
	containers[db] = c
	return c
}
