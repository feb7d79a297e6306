package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerInvokesBothSweeps(t *testing.T) {
	statusTicks := make(chan struct{}, 16)
	reclaimTicks := make(chan struct{}, 16)

	s := New(10*time.Millisecond, 15*time.Millisecond,
		func() { statusTicks <- struct{}{} },
		func() { reclaimTicks <- struct{}{} },
	)
	s.Start()
	defer s.Stop()

	select {
	case <-statusTicks:
	case <-time.After(time.Second):
		require.Fail(t, "status sweep never fired")
	}
	select {
	case <-reclaimTicks:
	case <-time.After(time.Second):
		require.Fail(t, "reclaim sweep never fired")
	}
}

func TestSchedulerStopHaltsTicks(t *testing.T) {
	var count int64
	s := New(5*time.Millisecond, 5*time.Millisecond,
		func() { atomic.AddInt64(&count, 1) },
		func() {},
	)
	s.Start()

	time.Sleep(30 * time.Millisecond)
	s.Stop()

	// Let any in-flight tick drain before sampling.
	time.Sleep(10 * time.Millisecond)
	after := atomic.LoadInt64(&count)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, atomic.LoadInt64(&count))
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	s := New(time.Minute, time.Minute, func() {}, func() {})
	s.Start()
	s.Stop()
	assert.NotPanics(t, func() { s.Stop() })
}
