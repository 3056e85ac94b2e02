package engine

import (
	"context"

	"github.com/deadlyfingers/ARStudioGame/internal/api"
	"github.com/deadlyfingers/ARStudioGame/internal/config"
	"github.com/deadlyfingers/ARStudioGame/internal/gesture"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
	"github.com/deadlyfingers/ARStudioGame/internal/sched"
	"github.com/deadlyfingers/ARStudioGame/internal/session"
	"github.com/deadlyfingers/ARStudioGame/internal/stage"
)

// Options wires the engine to its collaborators.
type Options struct {
	Config     *config.Config
	Service    api.Service
	Clock      sched.Clock
	Stage      stage.Stage
	Taps       stage.TapSource
	Classifier gesture.Classifier

	// Post, when set, delivers network completions onto the event loop and
	// requests run off-loop. When nil (tests), requests run inline.
	Post func(fn func())
}

// Engine drives the scene state machine and the match polling protocols.
// All methods must be called from the event loop goroutine.
type Engine struct {
	cfg     *config.Config
	service api.Service
	sched   *sched.Scheduler
	stage   stage.Stage
	taps    stage.TapSource
	moves   *gesture.Source
	session *session.Session

	scenes    map[SceneID]*scene
	dispatch  map[SceneID]map[string]Action
	current   SceneID
	activated map[SceneID]bool

	post  func(fn func())
	async bool

	// Scene-local state.
	menuPrivate bool
	invitePin   string
	entryPin    string
	lineIndex   int
	seconds     int
}

// New builds the engine and validates the dispatch table.
func New(opts Options) (*Engine, error) {
	scenes := sceneTable()
	dispatch, err := buildDispatchTable(scenes)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:         opts.Config,
		service:     opts.Service,
		sched:       sched.NewScheduler(opts.Clock),
		stage:       opts.Stage,
		taps:        opts.Taps,
		moves:       gesture.NewSource(opts.Classifier, opts.Stage),
		session:     session.New(opts.Config.JoinPlayerID),
		scenes:      scenes,
		dispatch:    dispatch,
		activated:   make(map[SceneID]bool),
		menuPrivate: true,
	}
	if opts.Post != nil {
		e.post = opts.Post
		e.async = true
	} else {
		e.post = func(fn func()) { fn() }
	}
	return e, nil
}

// Start enters the menu scene.
func (e *Engine) Start() {
	e.ChangeScene(SceneMenu)
}

// Session exposes the match identity record.
func (e *Engine) Session() *session.Session {
	return e.session
}

// Scheduler exposes the timer registry.
func (e *Engine) Scheduler() *sched.Scheduler {
	return e.sched
}

// Current returns the active scene.
func (e *Engine) Current() SceneID {
	return e.current
}

// ChangeScene transitions to target: hide everything, run the target's
// reset, void all pending timers, run the enter side effects, then reveal
// and (once per process) bind the target's buttons.
func (e *Engine) ChangeScene(target SceneID) {
	if target == e.current {
		return
	}
	sc, ok := e.scenes[target]
	if !ok {
		logger.Error("unknown scene", "scene", string(target))
		return
	}
	logger.Info("change scene", "to", string(target), "from", string(e.current))

	e.hideAllScenes()
	if sc.reset != nil {
		sc.reset(e)
	}
	e.sched.CancelAll()

	e.current = target
	e.refreshButtons(sc)
	if sc.enter != nil {
		sc.enter(e)
	}

	// The move side-channel is live only while readying up or playing.
	if target == SceneReady || target == SceneGame {
		e.moves.Enable()
	} else {
		e.moves.Disable()
	}

	e.stage.Element(string(target)).SetHidden(false)
	needsBind := !e.activated[target]
	for _, b := range sc.buttons {
		path := string(target) + "/" + b.name
		e.stage.Element(path).SetHidden(false)
		if needsBind {
			e.bindTap(target, b.name)
		}
	}
	if needsBind {
		e.activated[target] = true
	}
}

func (e *Engine) hideAllScenes() {
	for id, sc := range e.scenes {
		e.stage.Element(string(id)).SetHidden(true)
		for _, b := range sc.buttons {
			e.stage.Element(string(id) + "/" + b.name).SetHidden(true)
		}
	}
}

// refreshButtons re-renders data-driven labels and materials.
func (e *Engine) refreshButtons(sc *scene) {
	for _, b := range sc.buttons {
		if b.text != nil && b.label != "" {
			e.stage.Element(b.label).SetText(b.text(e))
		}
		if b.material != nil {
			e.stage.Element(string(sc.id) + "/" + b.name).SetMaterial(b.material(e))
		}
	}
}

func (e *Engine) bindTap(id SceneID, name string) {
	action := e.dispatch[id][name]
	path := string(id) + "/" + name
	e.taps.OnTap(path, func() {
		// Taps bound for a scene stay subscribed for the process lifetime;
		// ignore ones arriving while another scene is current.
		if e.current != id {
			logger.Debug("tap ignored, scene not current", "path", path)
			return
		}
		e.handleAction(action)
	})
}

func (e *Engine) handleAction(a Action) {
	switch a.Kind {
	case ActionCancel:
		e.ChangeScene(SceneMenu)
	case ActionCreateLobby:
		e.createLobby()
	case ActionJoinLobby:
		if e.menuPrivate {
			e.ChangeScene(SceneJoinPrivate)
		} else {
			e.ChangeScene(SceneJoin)
			e.joinLobby()
		}
	case ActionToggleLobby:
		e.menuPrivate = !e.menuPrivate
		e.refreshButtons(e.scenes[SceneMenu])
	case ActionKeyDigit:
		e.keyDigit(a.Digit)
	case ActionSubmitCode:
		e.joinLobby()
	case ActionReady:
		e.readyUp()
	}
}

// call runs op and hands its result back on the event loop. With a Post
// function configured the request runs off-loop, keeping the loop free; the
// protocols stay sequential because the next request is only issued from
// the completion callback.
func (e *Engine) call(op func(ctx context.Context) (api.Response, error), then func(res api.Response, err error)) {
	run := func() {
		res, err := op(context.Background())
		e.post(func() { then(res, err) })
	}
	if e.async {
		go run()
	} else {
		run()
	}
}
