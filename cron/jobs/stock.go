// Package jobs holds the built-in scheduled jobs of the inventory ledger.
package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"catalog.GO/config"
	"catalog.GO/cron"
	"catalog.GO/service"
)

const (
	LowStockReport = "lowstockreport"
	StockReindex   = "stockreindex"
)

var registerOnce sync.Once

// Register adds the built-in jobs with schedules from cfg. Schedules come
// from the environment, so call it after config.LoadEnv.
func Register(cfg *config.Config) {
	registerOnce.Do(func() {
		cron.Register(LowStockReport, cfg.LowStockSchedule, withServices(LowStockReport, RunLowStockReport))
		cron.Register(StockReindex, cfg.ReindexSchedule, withServices(StockReindex, RunStockReindex))
	})
}

// RunLowStockReport logs every low-stock record and returns their number.
func RunLowStockReport(ctx context.Context, svc *service.Container) (int, error) {
	return svc.Ledger.ReportLowStock(ctx)
}

// RunStockReindex rebuilds the stock search index and returns the indexed item count.
func RunStockReindex(ctx context.Context, svc *service.Container) (int, error) {
	idx, err := svc.StockIndexer()
	if err != nil {
		return 0, err
	}
	return idx.Reindex(ctx)
}

func withServices(name string, run func(context.Context, *service.Container) (int, error)) func(...string) {
	return func(...string) {
		db, err := config.NewDB()
		if err != nil {
			config.NewLogger().Error("cron job: database connection failed", zap.String("job", name), zap.Error(err))
			return
		}
		svc := service.ForDB(db)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		start := time.Now()
		n, err := run(ctx, svc)
		if err != nil {
			svc.Logger.Error("cron job failed", zap.String("job", name), zap.Error(err))
			return
		}
		svc.Logger.Info("cron job done",
			zap.String("job", name),
			zap.Int("items", n),
			zap.Duration("took", time.Since(start)))
	}
}
