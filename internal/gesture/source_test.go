package gesture

import (
	"testing"

	"github.com/deadlyfingers/ARStudioGame/internal/game"
	"github.com/deadlyfingers/ARStudioGame/internal/stage"
)

type fakeSub struct {
	unsubscribed bool
}

func (s *fakeSub) Unsubscribe() { s.unsubscribed = true }

type fakeClassifier struct {
	signals map[Signal]func(bool)
	subs    []*fakeSub
}

func newFakeClassifier() *fakeClassifier {
	return &fakeClassifier{signals: make(map[Signal]func(bool))}
}

func (c *fakeClassifier) Monitor(signal Signal, opts Options, fn func(bool)) Subscription {
	c.signals[signal] = fn
	sub := &fakeSub{}
	c.subs = append(c.subs, sub)
	return sub
}

func (c *fakeClassifier) MonitorPresence(fn func(bool)) Subscription {
	sub := &fakeSub{}
	c.subs = append(c.subs, sub)
	return sub
}

func TestLastWriteWins(t *testing.T) {
	cls := newFakeClassifier()
	mem := stage.NewMemory()
	src := NewSource(cls, mem)
	src.Enable()

	cls.signals[SignalMouthOpen](true)
	cls.signals[SignalSmiling](true)

	move, ok := src.Pending()
	if !ok || move != game.MoveEarth {
		t.Fatalf("Pending() = %v,%v; want earth,true", move, ok)
	}
}

func TestIndicatorsAreMutuallyExclusive(t *testing.T) {
	cls := newFakeClassifier()
	mem := stage.NewMemory()
	src := NewSource(cls, mem)
	src.Enable()

	cls.signals[SignalEyebrowsRaised](true)

	if mem.Get("effects/water").Hidden {
		t.Fatal("water indicator should be visible")
	}
	if !mem.Get("effects/fire").Hidden || !mem.Get("effects/earth").Hidden {
		t.Fatal("other indicators should be hidden")
	}
}

func TestInactiveSignalIgnored(t *testing.T) {
	cls := newFakeClassifier()
	src := NewSource(cls, stage.NewMemory())
	src.Enable()

	cls.signals[SignalMouthOpen](false)
	if _, ok := src.Pending(); ok {
		t.Fatal("inactive signal must not set a move")
	}
}

func TestDisableClearsSlotAndUnsubscribes(t *testing.T) {
	cls := newFakeClassifier()
	mem := stage.NewMemory()
	src := NewSource(cls, mem)
	src.Enable()

	cls.signals[SignalMouthOpen](true)
	src.Disable()

	if _, ok := src.Pending(); ok {
		t.Fatal("pending move should be cleared on disable")
	}
	for i, sub := range cls.subs {
		if !sub.unsubscribed {
			t.Fatalf("subscription %d still live after disable", i)
		}
	}
	if !mem.Get("effects").Hidden {
		t.Fatal("effects root should be hidden")
	}
}

func TestEnableIsIdempotent(t *testing.T) {
	cls := newFakeClassifier()
	src := NewSource(cls, stage.NewMemory())
	src.Enable()
	n := len(cls.subs)
	src.Enable()
	if len(cls.subs) != n {
		t.Fatalf("second Enable resubscribed: %d -> %d", n, len(cls.subs))
	}
}

// Pending move survives entering a new round; only disabling tracking (a
// non-game scene) clears it.
func TestMoveRetainedWhileEnabled(t *testing.T) {
	cls := newFakeClassifier()
	src := NewSource(cls, stage.NewMemory())
	src.Enable()

	cls.signals[SignalSmiling](true)
	src.Enable() // ready -> game keeps the channel on

	if move, ok := src.Pending(); !ok || move != game.MoveEarth {
		t.Fatalf("move not retained: %v,%v", move, ok)
	}
}
