// Package scheduler owns the process-wide timers. The core sweep logic lives
// in controllers as plain functions; the scheduler only decides when to call
// them, which keeps the sweeps testable with a direct call.
package scheduler

import (
	"log"
	"sync"
	"time"
)

type Scheduler struct {
	statusInterval  time.Duration
	reclaimInterval time.Duration
	statusFn        func()
	reclaimFn       func()

	statusTicker  *time.Ticker
	reclaimTicker *time.Ticker
	stopChan      chan struct{}
	stopOnce      sync.Once
}

// New builds a scheduler driving the status sweep and the stale-lock
// reclamation on two independent intervals.
func New(statusInterval, reclaimInterval time.Duration, statusFn, reclaimFn func()) *Scheduler {
	return &Scheduler{
		statusInterval:  statusInterval,
		reclaimInterval: reclaimInterval,
		statusFn:        statusFn,
		reclaimFn:       reclaimFn,
		stopChan:        make(chan struct{}),
	}
}

// Start launches both timer loops. The two sweeps touch disjoint team fields
// and do not coordinate with each other.
func (s *Scheduler) Start() {
	s.statusTicker = time.NewTicker(s.statusInterval)
	s.reclaimTicker = time.NewTicker(s.reclaimInterval)

	go func() {
		for {
			select {
			case <-s.statusTicker.C:
				s.statusFn()
			case <-s.stopChan:
				return
			}
		}
	}()

	go func() {
		for {
			select {
			case <-s.reclaimTicker.C:
				s.reclaimFn()
			case <-s.stopChan:
				return
			}
		}
	}()

	log.Printf("scheduler started: status sweep every %s, lock reclaim every %s",
		s.statusInterval, s.reclaimInterval)
}

// Stop halts both loops. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		if s.statusTicker != nil {
			s.statusTicker.Stop()
		}
		if s.reclaimTicker != nil {
			s.reclaimTicker.Stop()
		}
		close(s.stopChan)
		log.Println("scheduler stopped")
	})
}
