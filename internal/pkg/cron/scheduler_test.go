package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSchedulerRunsJobImmediately(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("counter", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSchedulerSurvivesPanickingJob(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob("explodes", 20*time.Millisecond, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			panic("boom")
		}
		return nil
	})

	s.Start()

	// The first run panics; a later tick still fires.
	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 10*time.Millisecond)

	s.Stop()
}

func TestSchedulerStopWaitsForJobs(t *testing.T) {
	s := NewScheduler()

	done := make(chan struct{})
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		time.Sleep(30 * time.Millisecond)
		close(done)
		return nil
	})

	s.Start()
	s.Stop()

	select {
	case <-done:
	default:
		t.Fatal("Stop returned before the in-flight run finished")
	}
}
