package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRunner struct {
	calls atomic.Int64
}

func (r *countingRunner) SyncAll(_ context.Context) error {
	r.calls.Add(1)
	return nil
}

func TestSyncScheduler(t *testing.T) {
	t.Run("runs the sweep on the interval", func(t *testing.T) {
		runner := &countingRunner{}
		s := NewSyncScheduler(runner, 20*time.Millisecond, zap.NewNop())

		s.Start()
		time.Sleep(110 * time.Millisecond)
		s.Stop()

		calls := runner.calls.Load()
		assert.GreaterOrEqual(t, calls, int64(3))
	})

	t.Run("double start is a no-op", func(t *testing.T) {
		runner := &countingRunner{}
		s := NewSyncScheduler(runner, time.Hour, zap.NewNop())

		s.Start()
		s.Start()
		s.Stop()
	})

	t.Run("stop without start is safe", func(t *testing.T) {
		s := NewSyncScheduler(&countingRunner{}, time.Hour, zap.NewNop())
		s.Stop()
	})
}
