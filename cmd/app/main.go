package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/deadlyfingers/ARStudioGame/internal/api"
	"github.com/deadlyfingers/ARStudioGame/internal/config"
	"github.com/deadlyfingers/ARStudioGame/internal/engine"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
	"github.com/deadlyfingers/ARStudioGame/internal/sched"
	"github.com/deadlyfingers/ARStudioGame/internal/stage"
)

// The app runs the match engine against a console stage: element state is
// printed as it changes and taps and face gestures are typed in as commands.
func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	loop := sched.NewLoop()
	clock := sched.NewLoopClock(loop)

	st := stage.NewMemory()
	st.Listener = printStageChange

	classifier := newConsoleClassifier()

	eng, err := engine.New(engine.Options{
		Config:     cfg,
		Service:    api.NewClient(cfg.Host, cfg.AccessCode),
		Clock:      clock,
		Stage:      st,
		Taps:       st,
		Classifier: classifier,
		Post:       loop.Post,
	})
	if err != nil {
		logger.Fatal("engine init failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loop.Post(eng.Start)
	go readCommands(ctx, loop, st, classifier, stop)

	loop.Run(ctx)
	logger.Info("app exited")
}
