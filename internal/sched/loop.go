package sched

import "context"

// Loop is a single-threaded cooperative event loop. Every callback in the
// client (timer fires, network completions, taps, gesture changes) runs on
// the loop goroutine, so state touched from callbacks needs no locking.
type Loop struct {
	tasks chan func()
}

func NewLoop() *Loop {
	return &Loop{tasks: make(chan func(), 256)}
}

// Post enqueues fn to run on the loop goroutine. Safe to call from any
// goroutine.
func (l *Loop) Post(fn func()) {
	l.tasks <- fn
}

// Run drains tasks until ctx is cancelled. Callbacks run to completion,
// never concurrently.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}
