package grievances

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Grievances left unresolved past this window get escalated.
const escalationSLA = 48 * time.Hour

// Escalator runs the periodic SLA sweep over open grievances.
type Escalator struct {
	repo   Repository
	cron   *cron.Cron
	logger *zap.Logger
}

func NewEscalator(repo Repository, logger *zap.Logger) *Escalator {
	return &Escalator{
		repo:   repo,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the hourly sweep. Call Stop on shutdown.
func (e *Escalator) Start() error {
	if _, err := e.cron.AddFunc("@hourly", e.sweep); err != nil {
		return err
	}
	e.cron.Start()
	return nil
}

func (e *Escalator) Stop() {
	e.cron.Stop()
}

func (e *Escalator) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := e.repo.EscalateStale(ctx, time.Now().Add(-escalationSLA))
	if err != nil {
		e.logger.Error("grievance escalation sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		e.logger.Info("escalated stale grievances", zap.Int64("count", n))
	}
}
