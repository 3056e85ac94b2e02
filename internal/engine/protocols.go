package engine

import (
	"context"
	"strconv"
	"time"

	"github.com/deadlyfingers/ARStudioGame/internal/api"
	"github.com/deadlyfingers/ARStudioGame/internal/game"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"
)

// Scene enter hooks.

func (e *Engine) enterMenu() {
	e.session.Reset()
	logger.Info("main menu, session reset")
}

func (e *Engine) enterInviteCode() {
	if len(e.invitePin) != e.cfg.PinLength {
		logger.Error("wrong pin length", "len", len(e.invitePin), "pin", e.invitePin)
		return
	}
	for i, ch := range e.invitePin {
		digit := int(ch - '0')
		if digit < 0 || digit > 2 {
			logger.Warn("no icon for pin digit", "digit", string(ch))
			continue
		}
		e.stage.Element(pinSlotPath(SceneInviteCode, i)).SetMaterial(iconMaterial(digit))
	}
	e.pollReady(SceneInviteCode)
}

func (e *Engine) enterReady() {
	e.stage.Element(pathReadyButton).SetHidden(false)
	label := textPlay
	if e.session.Matches > 0 {
		label = textRematch
	}
	e.stage.Element(pathReadyText).SetText(label)
	e.lineIndex = 0
	e.playInstructions()
	e.pollReady(SceneReady)
}

func (e *Engine) enterGame() {
	e.seconds = 0
	e.stage.Element(pathGameTitle).SetText(textMakeAFace)
	e.stage.Element(pathGameBg).SetMaterial(MaterialLobbyPublic)
	e.runCountdown()
}

// Lobby creation: a single request, no retry. A pin in the response means a
// private lobby and the invite-code scene; otherwise straight to readiness.
func (e *Engine) createLobby() {
	private := e.menuPrivate
	pinLength := e.cfg.PinLength
	e.call(func(ctx context.Context) (api.Response, error) {
		return e.service.CreateLobby(ctx, private, pinLength)
	}, func(res api.Response, err error) {
		if err != nil {
			logger.Error("create lobby failed", "err", err)
			return
		}
		if res.ID == "" {
			logger.Error("failed to create lobby", "error", res.Error)
			return
		}
		e.session.Owner = true
		e.session.PlayerID = res.ID // the host identifies itself by lobby id
		if res.Pin != "" {
			logger.Info("private lobby created", "id", res.ID)
			e.invitePin = res.Pin
			e.ChangeScene(SceneInviteCode)
		} else {
			logger.Info("lobby created", "id", res.ID)
			e.ChangeScene(SceneReady)
		}
	})
}

// Lobby join. "Lobby not found" is an expected condition: update the status
// line and retry at a constant interval. Any other failure stops the
// protocol where it is.
func (e *Engine) joinLobby() {
	e.session.Owner = false
	e.session.PlayerID = e.cfg.JoinPlayerID
	pin := ""
	if e.menuPrivate {
		pin = e.entryPin
	} else {
		e.stage.Element(pathJoinStatus).SetText(textSearching)
	}
	playerID := e.session.PlayerID
	e.call(func(ctx context.Context) (api.Response, error) {
		return e.service.JoinLobby(ctx, pin, playerID)
	}, func(res api.Response, err error) {
		if err != nil {
			logger.Error("join lobby failed", "err", err)
			return
		}
		if res.Error == api.ErrLobbyNotFound {
			logger.Warn("no match found, retrying")
			e.stage.Element(pathJoinStatus).SetText(textNoMatch)
			e.sched.Schedule(func(time.Duration) { e.joinLobby() }, e.cfg.JoinRetryInterval, false)
			return
		}
		if res.ID == "" {
			logger.Error("failed to join match", "error", res.Error)
			return
		}
		e.session.MatchID = res.ID
		logger.Info("match joined", "id", res.ID)
		e.ChangeScene(SceneReady)
	})
}

// keyDigit appends one keypad digit to the pin entry, restarting the entry
// when it was already full. The submit control appears only at full length.
func (e *Engine) keyDigit(digit int) {
	index := len(e.entryPin)
	if index > e.cfg.PinLength-1 {
		e.resetPinEntry()
		index = 0
	}
	e.entryPin += strconv.Itoa(digit)
	logger.Debug("pin digit entered", "pin", e.entryPin)
	e.stage.Element(pinSlotPath(SceneJoinPrivate, index)).SetMaterial(iconMaterial(digit))
	e.showSubmit(len(e.entryPin) == e.cfg.PinLength)
}

func (e *Engine) resetPinEntry() {
	e.entryPin = ""
	for i := 0; i < e.cfg.PinLength; i++ {
		e.stage.Element(pinSlotPath(SceneJoinPrivate, i)).SetMaterial(MaterialDefault)
	}
}

func (e *Engine) showSubmit(valid bool) {
	submit := e.stage.Element("joinPrivate/submit")
	if valid {
		submit.SetMaterial(MaterialSubmit)
		submit.SetHidden(false)
	} else {
		submit.SetHidden(true)
	}
}

// Readiness rendezvous: sequential polling, the next request issued only
// after the previous response. From the invite-code scene any response with
// a match id advances; from the readiness scene only a response with both
// ready flags set in the same payload does. Runs until the scene changes.
func (e *Engine) pollReady(id SceneID) {
	e.sched.Schedule(func(time.Duration) {
		q := api.StatusQuery{}
		if e.session.MatchID != "" {
			q.MatchID = e.session.MatchID
		} else {
			q.PlayerID = e.session.PlayerID
		}
		e.call(func(ctx context.Context) (api.Response, error) {
			return e.service.GetStatus(ctx, q)
		}, func(res api.Response, err error) {
			if e.current != id {
				return
			}
			if err != nil {
				logger.Error("status poll failed", "err", err)
				e.pollReady(id)
				return
			}
			if res.ID == "" {
				logger.Error("failed to get match status", "error", res.Error)
				e.pollReady(id)
				return
			}
			e.session.MatchID = res.ID

			switch id {
			case SceneInviteCode:
				logger.Info("match created", "id", res.ID)
				e.ChangeScene(SceneReady)
				return
			case SceneReady:
				if res.OwnerReady && res.OpponentReady {
					e.ChangeScene(SceneGame)
					return
				}
			}
			e.pollReady(id)
		})
	}, e.cfg.ReadyPollInterval, false)
}

// playInstructions cycles the ready-scene instructional text.
func (e *Engine) playInstructions() {
	e.sched.Schedule(func(time.Duration) {
		lines := e.instructionLines()
		e.stage.Element(pathReadyTitle).SetText(lines[e.lineIndex])
		e.lineIndex = (e.lineIndex + 1) % len(lines)
	}, e.cfg.LineDuration, true)
}

func (e *Engine) instructionLines() []string {
	label := textPlay
	if e.session.Matches > 0 {
		label = textRematch
	}
	return []string{
		"Are you ready?",
		"Open mouth = Fire",
		"Smile = Earth",
		"Raise eyebrows = Water",
		"Fire burns Earth",
		"Earth drinks Water",
		"Water extinguishes Fire",
		"Tap '" + label + "' when you're ready!",
	}
}

func (e *Engine) readyUp() {
	if e.session.MatchID == "" || e.session.PlayerID == "" {
		logger.Error("ready without match or player id")
		return
	}
	matchID, playerID := e.session.MatchID, e.session.PlayerID
	e.call(func(ctx context.Context) (api.Response, error) {
		return e.service.MarkReady(ctx, matchID, playerID)
	}, func(res api.Response, err error) {
		if err != nil {
			logger.Error("mark ready failed", "err", err)
			return
		}
		if res.ID == "" {
			logger.Error("failed to ready match", "error", res.Error)
			return
		}
		logger.Info("player ready", "id", res.ID)
		e.stage.Element(pathReadyButton).SetHidden(true)
		e.stage.Element(pathReadyText).SetText(textWaiting)
	})
}

// Turn countdown: one tick per second. Expiry without a pending move
// forfeits the match locally and returns to the menu; otherwise the move is
// submitted once and result polling begins.
func (e *Engine) runCountdown() {
	e.sched.Schedule(func(time.Duration) {
		e.seconds++
		e.stage.Element(pathGameTitle).SetText(strconv.Itoa(e.cfg.CountdownTicks - e.seconds))
		if e.seconds < e.cfg.CountdownTicks {
			e.runCountdown()
			return
		}
		move, ok := e.moves.Pending()
		if !ok {
			logger.Error("no move before countdown expired", "ticks", e.seconds)
			e.ChangeScene(SceneMenu)
			return
		}
		logger.Info("countdown done", "move", move.String())
		e.submitTurn(move)
		e.pollResult()
	}, time.Second, false)
}

func (e *Engine) submitTurn(move game.Move) {
	if !move.Valid() {
		logger.Error("invalid move", "move", int(move))
		return
	}
	matchID, playerID := e.session.MatchID, e.session.PlayerID
	e.call(func(ctx context.Context) (api.Response, error) {
		return e.service.SubmitTurn(ctx, matchID, int(move), playerID)
	}, func(res api.Response, err error) {
		if err != nil {
			logger.Error("submit turn failed", "err", err)
			return
		}
		if res.ID == "" {
			logger.Error("failed to submit turn", "error", res.Error)
			return
		}
		logger.Info("turn submitted", "id", res.ID)
	})
}

// Result polling: a response whose turn counter has not advanced past the
// local count means the opponent has not resolved yet. The first response
// with a greater counter finalizes exactly one outcome and advances the
// local count by one, then offers a rematch.
func (e *Engine) pollResult() {
	e.sched.Schedule(func(time.Duration) {
		matchID := e.session.MatchID
		e.call(func(ctx context.Context) (api.Response, error) {
			return e.service.GetStatus(ctx, api.StatusQuery{MatchID: matchID, Result: true})
		}, func(res api.Response, err error) {
			if e.current != SceneGame {
				return
			}
			if err != nil {
				logger.Error("result poll failed", "err", err)
				e.pollResult()
				return
			}
			if res.ID == "" {
				logger.Error("failed to get result status", "error", res.Error)
				e.pollResult()
				return
			}
			if res.Matches <= e.session.Matches {
				e.stage.Element(pathGameTitle).SetText(textWaiting)
				e.pollResult()
				return
			}

			isWinner := (e.session.Owner && res.WinnerResult == game.ResultOwnerWins) ||
				(!e.session.Owner && res.WinnerResult == game.ResultOpponentWins)
			if res.WinnerResult == game.ResultDraw {
				msg := res.WinnerMessage
				if msg == "" {
					msg = textDraw
				}
				e.stage.Element(pathGameTitle).SetText(msg)
			} else if isWinner {
				e.stage.Element(pathGameTitle).SetText(textYouWin)
			} else {
				e.stage.Element(pathGameTitle).SetText(textYouLose)
			}
			if isWinner {
				e.stage.Element(pathGameBg).SetMaterial(MaterialWin)
			} else {
				e.stage.Element(pathGameBg).SetMaterial(MaterialLose)
			}
			e.session.Matches++
			logger.Info("turn resolved", "winnerResult", res.WinnerResult, "matches", e.session.Matches)

			e.sched.Schedule(func(time.Duration) {
				logger.Info("game over, offering rematch")
				e.ChangeScene(SceneReady)
			}, e.cfg.RematchDelay, false)
		})
	}, e.cfg.ResultPollInterval, false)
}
