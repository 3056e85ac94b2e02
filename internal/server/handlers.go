package server

import (
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/deadlyfingers/ARStudioGame/internal/api"
	"github.com/deadlyfingers/ARStudioGame/internal/config"
	"github.com/deadlyfingers/ARStudioGame/internal/game"
	"github.com/deadlyfingers/ARStudioGame/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler serves the five match endpoints. The mutex serializes
// read-modify-write sequences on match records so two players submitting at
// once cannot lose a move.
type Handler struct {
	store Store
	mu    sync.Mutex
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Router wires the dev match service: /metrics plus the /api group behind
// access-code auth.
func Router(cfg *config.ServerConfig, store Store) *gin.Engine {
	h := NewHandler(store)

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g := r.Group("/api")
	g.Use(AuthRequired(cfg), CountRequests())
	g.GET("/"+api.EndpointLobbyCreate, h.LobbyCreate)
	g.GET("/"+api.EndpointLobbyJoin, h.LobbyJoin)
	g.GET("/"+api.EndpointMatchReady, h.MatchReady)
	g.GET("/"+api.EndpointMatchStatus, h.MatchStatus)
	g.GET("/"+api.EndpointMatchTurn, h.MatchTurn)
	return r
}

// matchJSON renders a match in the wire shape clients decode.
func matchJSON(m *Match) gin.H {
	return gin.H{
		"_id":           m.ID,
		"ownerReady":    m.OwnerReady,
		"opponentReady": m.OpponentReady,
		"matches":       m.Matches,
		"winnerResult":  m.WinnerResult,
		"winnerMessage": m.WinnerMessage,
	}
}

// LobbyCreate opens a lobby. The lobby id doubles as the owner's player id.
func (h *Handler) LobbyCreate(c *gin.Context) {
	lobby := &Lobby{ID: newID()}
	if c.Query("private") == "true" {
		pinLength, err := strconv.Atoi(c.Query("pinLength"))
		if err != nil || pinLength < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pinLength"})
			return
		}
		lobby.Private = true
		lobby.Pin = newPin(pinLength)
	}

	if err := h.store.PutLobby(c.Request.Context(), lobby); err != nil {
		logger.Error("lobby create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	LobbiesCreated.Inc()

	c.JSON(http.StatusOK, gin.H{"_id": lobby.ID, "pin": lobby.Pin})
}

// LobbyJoin consumes a lobby and starts a match. A miss is an expected
// condition while the joiner waits for an owner, so it is a 200 with an error
// field rather than an HTTP failure.
func (h *Handler) LobbyJoin(c *gin.Context) {
	playerID := c.Query("playerId")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId required"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	lobby, err := h.store.TakeLobby(c.Request.Context(), c.Query("pin"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"error": api.ErrLobbyNotFound})
		return
	}
	if err != nil {
		logger.Error("lobby join failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}

	match := &Match{
		ID:         newID(),
		OwnerID:    lobby.ID,
		OpponentID: playerID,
		Moves:      make(map[string]int),
	}
	if err := h.store.PutMatch(c.Request.Context(), match); err != nil {
		logger.Error("match create failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"_id": match.ID})
}

// MatchReady flags one side ready for the next turn.
func (h *Handler) MatchReady(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	match, ok := h.findMatch(c)
	if !ok {
		return
	}

	if c.Query("playerId") == match.OwnerID {
		match.OwnerReady = true
	} else {
		match.OpponentReady = true
	}

	if err := h.store.PutMatch(c.Request.Context(), match); err != nil {
		logger.Error("match update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.JSON(http.StatusOK, matchJSON(match))
}

// MatchStatus reports match state by id, or by the owner's player id before
// the owner learns the match id.
func (h *Handler) MatchStatus(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	match, ok := h.findMatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, matchJSON(match))
}

// MatchTurn records a move. When both moves are in, the turn resolves: the
// win counter advances, moves and ready flags reset for a rematch.
func (h *Handler) MatchTurn(c *gin.Context) {
	move, err := strconv.Atoi(c.Query("move"))
	if err != nil || !game.Move(move).Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid move"})
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	match, ok := h.findMatch(c)
	if !ok {
		return
	}

	match.Moves[c.Query("playerId")] = move

	ownerMove, ownerIn := match.Moves[match.OwnerID]
	opponentMove, opponentIn := match.Moves[match.OpponentID]
	if ownerIn && opponentIn {
		result, message := game.Resolve(game.Move(ownerMove), game.Move(opponentMove))
		match.WinnerResult = result
		match.WinnerMessage = message
		match.Matches++
		match.Moves = make(map[string]int)
		match.OwnerReady = false
		match.OpponentReady = false
		MatchesResolved.Inc()
	}

	if err := h.store.PutMatch(c.Request.Context(), match); err != nil {
		logger.Error("match update failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return
	}
	c.JSON(http.StatusOK, matchJSON(match))
}

// findMatch resolves the match a request addresses and writes the miss
// response itself. Misses are 200s with an error field, matching what polling
// clients expect while a match is still forming.
func (h *Handler) findMatch(c *gin.Context) (*Match, bool) {
	var (
		match *Match
		err   error
	)
	if id := c.Query("id"); id != "" {
		match, err = h.store.GetMatch(c.Request.Context(), id)
	} else if playerID := c.Query("playerId"); playerID != "" {
		match, err = h.store.GetMatchByOwner(c.Request.Context(), playerID)
	} else {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id or playerId required"})
		return nil, false
	}

	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"error": api.ErrMatchNotFound})
		return nil, false
	}
	if err != nil {
		logger.Error("match lookup failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store failed"})
		return nil, false
	}
	return match, true
}
