package sched

import (
	"sync"
	"time"
)

// Token identifies a callback scheduled with the host clock.
type Token interface {
	// Stop cancels the underlying timer. Idempotent.
	Stop()
}

// Clock is the host-clock collaborator: schedule and cancel one-shot and
// repeating callbacks. The callback receives the elapsed time since it was
// scheduled. Tests substitute a manual implementation.
type Clock interface {
	Schedule(fn func(elapsed time.Duration), delay time.Duration, repeat bool) Token
}

// LoopClock is the production Clock. Callbacks are posted onto the event
// loop so they never run concurrently with other client code.
type LoopClock struct {
	loop *Loop
}

func NewLoopClock(loop *Loop) *LoopClock {
	return &LoopClock{loop: loop}
}

func (c *LoopClock) Schedule(fn func(elapsed time.Duration), delay time.Duration, repeat bool) Token {
	start := time.Now()

	if !repeat {
		t := time.AfterFunc(delay, func() {
			c.loop.Post(func() { fn(time.Since(start)) })
		})
		return &oneShotToken{timer: t}
	}

	tok := &repeatToken{quit: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(delay)
		defer ticker.Stop()
		for {
			select {
			case <-tok.quit:
				return
			case <-ticker.C:
				c.loop.Post(func() { fn(time.Since(start)) })
			}
		}
	}()
	return tok
}

type oneShotToken struct {
	timer *time.Timer
}

func (t *oneShotToken) Stop() {
	t.timer.Stop()
}

type repeatToken struct {
	once sync.Once
	quit chan struct{}
}

func (t *repeatToken) Stop() {
	t.once.Do(func() { close(t.quit) })
}
