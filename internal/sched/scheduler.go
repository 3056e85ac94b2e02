package sched

import (
	"time"

	"github.com/deadlyfingers/ARStudioGame/internal/logger"
)

// Handle identifies a scheduled callback. Handles are issued from a strictly
// increasing counter and are never reused within an epoch. CancelAll starts
// a new epoch and resets the counter; handles from a previous epoch are dead.
type Handle struct {
	index  int
	epoch  int
	repeat bool
}

type subscription struct {
	token  Token
	repeat bool
}

// Scheduler is the cooperative timer registry. It must only be used from the
// event loop goroutine; it does no locking of its own.
type Scheduler struct {
	clock Clock
	index int
	epoch int
	subs  map[int]*subscription
}

func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{
		clock: clock,
		subs:  make(map[int]*subscription),
	}
}

// Schedule registers fn to fire after delay, repeatedly when repeat is set.
// A fired one-shot removes itself from the registry before running.
func (s *Scheduler) Schedule(fn func(elapsed time.Duration), delay time.Duration, repeat bool) Handle {
	if fn == nil {
		logger.Error("scheduler: nil callback")
		return Handle{index: -1}
	}

	index := s.index
	epoch := s.epoch
	s.index++

	wrapped := func(elapsed time.Duration) {
		// A callback can arrive after CancelAll or Cancel voided it; the
		// registry is the source of truth for whether it may still run.
		if epoch != s.epoch {
			return
		}
		sub, ok := s.subs[index]
		if !ok {
			return
		}
		if !sub.repeat {
			delete(s.subs, index)
		}
		fn(elapsed)
	}

	s.subs[index] = &subscription{repeat: repeat}
	s.subs[index].token = s.clock.Schedule(wrapped, delay, repeat)
	return Handle{index: index, epoch: epoch, repeat: repeat}
}

// Cancel stops the timer behind h. Cancelling an already-fired or
// already-cancelled handle logs an error rather than failing, to tolerate
// double-cancellation from overlapping transition logic.
func (s *Scheduler) Cancel(h Handle) {
	if h.epoch != s.epoch {
		logger.Error("scheduler: cancel on handle from old epoch", "index", h.index)
		return
	}
	sub, ok := s.subs[h.index]
	if !ok {
		logger.Error("scheduler: cancel on unknown handle", "index", h.index)
		return
	}
	sub.token.Stop()
	delete(s.subs, h.index)
}

// CancelAll stops every outstanding timer and starts a new epoch. Idempotent;
// called on every scene transition.
func (s *Scheduler) CancelAll() {
	count := 0
	for index, sub := range s.subs {
		sub.token.Stop()
		delete(s.subs, index)
		count++
	}
	s.index = 0
	s.epoch++
	if count > 0 {
		logger.Debug("scheduler: cleared timers", "count", count)
	}
}

// Active reports the number of live subscriptions.
func (s *Scheduler) Active() int {
	return len(s.subs)
}
