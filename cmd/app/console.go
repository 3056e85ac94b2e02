package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/deadlyfingers/ARStudioGame/internal/gesture"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
	"github.com/deadlyfingers/ARStudioGame/internal/sched"
	"github.com/deadlyfingers/ARStudioGame/internal/stage"
)

// printStageChange renders element updates as the console "display". Hide
// events are noisy during scene swaps, so only reveals and content changes
// are shown.
func printStageChange(path, property, value string) {
	if property == "hidden" && value == "true" {
		return
	}
	fmt.Printf("  %-36s %s=%q\n", path, property, value)
}

// consoleClassifier feeds typed gesture commands into the engine's monitors.
// All calls happen on the event loop.
type consoleClassifier struct {
	nextID   int
	monitors map[int]consoleMonitor
	presence map[int]func(present bool)
}

type consoleMonitor struct {
	signal gesture.Signal
	fn     func(active bool)
}

func newConsoleClassifier() *consoleClassifier {
	return &consoleClassifier{
		monitors: make(map[int]consoleMonitor),
		presence: make(map[int]func(present bool)),
	}
}

type consoleSub struct{ cancel func() }

func (s *consoleSub) Unsubscribe() { s.cancel() }

func (c *consoleClassifier) Monitor(signal gesture.Signal, opts gesture.Options, fn func(active bool)) gesture.Subscription {
	id := c.nextID
	c.nextID++
	c.monitors[id] = consoleMonitor{signal: signal, fn: fn}
	return &consoleSub{cancel: func() { delete(c.monitors, id) }}
}

func (c *consoleClassifier) MonitorPresence(fn func(present bool)) gesture.Subscription {
	id := c.nextID
	c.nextID++
	c.presence[id] = fn
	return &consoleSub{cancel: func() { delete(c.presence, id) }}
}

func (c *consoleClassifier) fire(signal gesture.Signal) {
	for _, m := range c.monitors {
		if m.signal == signal {
			m.fn(true)
		}
	}
}

func (c *consoleClassifier) setPresent(present bool) {
	for _, fn := range c.presence {
		fn(present)
	}
}

var gestureCommands = map[string]gesture.Signal{
	"fire":  gesture.SignalMouthOpen,
	"earth": gesture.SignalSmiling,
	"water": gesture.SignalEyebrowsRaised,
}

// readCommands parses stdin lines and posts them onto the event loop.
//
//	tap <scene/element>   tap a stage element, e.g. tap menu/createLobby
//	fire | earth | water  make the matching face
//	away | back           leave or re-enter the camera frame
//	quit                  exit
func readCommands(ctx context.Context, loop *sched.Loop, st *stage.Memory, classifier *consoleClassifier, stop func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch cmd := fields[0]; {
		case cmd == "quit" || cmd == "exit":
			stop()
			return
		case cmd == "tap" && len(fields) == 2:
			path := fields[1]
			loop.Post(func() {
				if !st.Tap(path) {
					fmt.Printf("  nothing bound at %q\n", path)
				}
			})
		case cmd == "away":
			loop.Post(func() { classifier.setPresent(false) })
		case cmd == "back":
			loop.Post(func() { classifier.setPresent(true) })
		default:
			if signal, ok := gestureCommands[cmd]; ok {
				loop.Post(func() { classifier.fire(signal) })
				continue
			}
			fmt.Println("  commands: tap <path> | fire | earth | water | away | back | quit")
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("stdin read failed", "error", err)
	}
	stop()
}
