package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules every registered job and starts the scheduler. A job
// still running when its next tick fires is skipped.
func StartCron(logger *zap.Logger) (*cron.Cron, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	for name, j := range Jobs() {
		name, run := name, j.Run
		_, err := c.AddFunc(j.Schedule, func() {
			logger.Info("cron job started", zap.String("job", name))
			run()
		})
		if err != nil {
			return nil, fmt.Errorf("register job %s (%q): %w", name, j.Schedule, err)
		}
		logger.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}
