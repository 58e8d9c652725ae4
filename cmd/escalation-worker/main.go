package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fairclaim/portal-backend/internal/config"
	"fairclaim/portal-backend/internal/grievances"
)

// EscalationWorker sweeps unresolved grievances past the response deadline.
// It is the standalone counterpart of the in-process escalator, for
// deployments that run sweeps outside the API.
type EscalationWorker struct {
	repo   grievances.Repository
	config EscalationWorkerConfig
	logger *zap.Logger
	done   chan struct{}
}

// EscalationWorkerConfig configuration for the escalation worker
type EscalationWorkerConfig struct {
	PollInterval time.Duration
	ResponseSLA  time.Duration
	SweepTimeout time.Duration
}

// DefaultEscalationWorkerConfig returns default configuration
func DefaultEscalationWorkerConfig() EscalationWorkerConfig {
	return EscalationWorkerConfig{
		PollInterval: time.Hour,
		ResponseSLA:  48 * time.Hour,
		SweepTimeout: 30 * time.Second,
	}
}

// NewEscalationWorker creates a new escalation worker
func NewEscalationWorker(repo grievances.Repository, logger *zap.Logger, config EscalationWorkerConfig) *EscalationWorker {
	return &EscalationWorker{
		repo:   repo,
		config: config,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start runs sweeps until the context is cancelled
func (w *EscalationWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting escalation worker",
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Duration("response_sla", w.config.ResponseSLA))

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	// Sweep immediately on startup
	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Escalation worker shutting down")
			return nil
		case <-w.done:
			w.logger.Info("Escalation worker stopped")
			return nil
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

// Stop stops the escalation worker
func (w *EscalationWorker) Stop() {
	close(w.done)
}

func (w *EscalationWorker) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, w.config.SweepTimeout)
	defer cancel()

	cutoff := time.Now().Add(-w.config.ResponseSLA)
	escalated, err := w.repo.EscalateStale(sweepCtx, cutoff)
	if err != nil {
		w.logger.Error("Escalation sweep failed", zap.Error(err))
		return
	}
	if escalated > 0 {
		w.logger.Info("Escalated overdue grievances",
			zap.Int64("count", escalated),
			zap.Time("cutoff", cutoff))
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	logger.Info("Connected to database")

	worker := NewEscalationWorker(grievances.NewRepository(db), logger, DefaultEscalationWorkerConfig())

	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := worker.Start(ctx); err != nil {
		logger.Error("Worker error", zap.Error(err))
	}
	logger.Info("Escalation worker stopped")
}
