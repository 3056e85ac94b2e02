package gesture

import (
	"time"

	"github.com/deadlyfingers/ARStudioGame/internal/game"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
	"github.com/deadlyfingers/ARStudioGame/internal/stage"
)

// Signal names a boolean-valued expression signal of the classifier.
type Signal string

const (
	SignalMouthOpen      Signal = "mouthOpen"
	SignalSmiling        Signal = "smiling"
	SignalEyebrowsRaised Signal = "eyebrowsRaised"
)

// Options tunes a signal subscription.
type Options struct {
	Threshold         float64
	LipMix            float64
	ObservationPeriod time.Duration
}

// Subscription is an active signal monitor.
type Subscription interface {
	Unsubscribe()
}

// Classifier is the gesture-recognition collaborator: it reports boolean
// expression signals and whether a face is present at all.
type Classifier interface {
	Monitor(signal Signal, opts Options, fn func(active bool)) Subscription
	MonitorPresence(fn func(present bool)) Subscription
}

// Element paths for the move indicators.
const (
	effectsRoot = "effects"
)

// Source adapts the classifier into the per-turn pending-move slot. The slot
// is written asynchronously by gesture callbacks (delivered on the event
// loop) and read synchronously at submission time. Last write wins.
type Source struct {
	classifier Classifier
	stage      stage.Stage

	subs     []Subscription
	presence Subscription

	move    game.Move
	hasMove bool
}

func NewSource(classifier Classifier, st stage.Stage) *Source {
	return &Source{classifier: classifier, stage: st}
}

// Enable starts expression tracking. Idempotent; tracking is gated to the
// ready and gameplay scenes.
func (s *Source) Enable() {
	if len(s.subs) == 0 {
		s.hideIndicators()
		s.subs = []Subscription{
			s.classifier.Monitor(SignalMouthOpen, Options{Threshold: 0.5}, s.capture(game.MoveFire)),
			s.classifier.Monitor(SignalEyebrowsRaised, Options{Threshold: 1.0, ObservationPeriod: 250 * time.Millisecond}, s.capture(game.MoveWater)),
			s.classifier.Monitor(SignalSmiling, Options{LipMix: 0.6}, s.capture(game.MoveEarth)),
		}
		s.presence = s.classifier.MonitorPresence(func(present bool) {
			s.stage.Element(effectsRoot).SetHidden(!present)
		})
		logger.Debug("gesture tracking started")
	}
	s.stage.Element(effectsRoot).SetHidden(false)
}

// Disable stops tracking, hides all indicators and clears the pending move.
func (s *Source) Disable() {
	s.stage.Element(effectsRoot).SetHidden(true)
	for i, sub := range s.subs {
		logger.Debug("stopping gesture monitor", "index", i)
		sub.Unsubscribe()
	}
	s.subs = nil
	if s.presence != nil {
		s.presence.Unsubscribe()
		s.presence = nil
	}
	s.hasMove = false
}

// Pending returns the most recent captured move, if any.
func (s *Source) Pending() (game.Move, bool) {
	return s.move, s.hasMove
}

func (s *Source) capture(m game.Move) func(active bool) {
	return func(active bool) {
		if !active {
			return
		}
		logger.Debug("gesture detected", "move", m.String())
		s.move = m
		s.hasMove = true
		s.showIndicator(m)
	}
}

// showIndicator reveals the indicator for m and hides the others; the
// display is mutually exclusive.
func (s *Source) showIndicator(m game.Move) {
	for _, move := range []game.Move{game.MoveFire, game.MoveEarth, game.MoveWater} {
		s.stage.Element(effectsRoot+"/"+move.String()).SetHidden(move != m)
	}
}

func (s *Source) hideIndicators() {
	for _, move := range []game.Move{game.MoveFire, game.MoveEarth, game.MoveWater} {
		s.stage.Element(effectsRoot + "/" + move.String()).SetHidden(true)
	}
}
