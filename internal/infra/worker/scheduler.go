package worker

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}

// NewScheduler returns a cron that evaluates cfg.Schedule in cfg.Timezone
// and runs p on each tick. A tick that arrives while the previous run is
// still going is skipped; panics are recovered and logged.
func NewScheduler(ctx context.Context, cfg ProbeConfig, p *Prober, logger *slog.Logger) (*cron.Cron, error) {
	cl := cronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(cfg.Location()),
		cron.WithLogger(cl),
		cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
	)
	_, err := c.AddFunc(cfg.Schedule, func() {
		// errors are logged and counted by Run
		_, _ = p.Run(ctx)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}
