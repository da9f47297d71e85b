package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SyncRunner is the part of the ticket sync service the scheduler drives
type SyncRunner interface {
	SyncAll(ctx context.Context) error
}

// SyncScheduler runs the provider sweep on a fixed interval. One sweep
// covers every tenant with provider credentials; overlapping sweeps are
// prevented by a running flag.
type SyncScheduler struct {
	runner   SyncRunner
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewSyncScheduler creates a scheduler for the given runner
func NewSyncScheduler(runner SyncRunner, interval time.Duration, logger *zap.Logger) *SyncScheduler {
	return &SyncScheduler{
		runner:   runner,
		interval: interval,
		logger:   logger.Named("sync-scheduler"),
	}
}

// Start begins the periodic sweep. Calling Start on a running scheduler is
// a no-op.
func (s *SyncScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})

	s.wg.Add(1)
	go s.loop()

	s.logger.Info("sync scheduler started", zap.Duration("interval", s.interval))
}

// Stop halts the scheduler and waits for an in-flight sweep to finish
func (s *SyncScheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("sync scheduler stopped")
}

func (s *SyncScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

func (s *SyncScheduler) runSweep() {
	ctx := context.Background()
	start := time.Now()

	if err := s.runner.SyncAll(ctx); err != nil {
		s.logger.Error("sync sweep failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return
	}
	s.logger.Info("sync sweep completed", zap.Duration("duration", time.Since(start)))
}
