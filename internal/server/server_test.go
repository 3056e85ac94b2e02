package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deadlyfingers/ARStudioGame/internal/api"
	"github.com/deadlyfingers/ARStudioGame/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg *config.ServerConfig) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(Router(cfg, NewMemoryStore()))
	t.Cleanup(ts.Close)
	return ts
}

func TestPrivateMatchFullFlow(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{AccessCode: "secret"})
	ctx := context.Background()

	owner := api.NewClient(ts.URL, "secret")
	joiner := api.NewClient(ts.URL, "secret")

	created, err := owner.CreateLobby(ctx, true, 4)
	if err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	if created.ID == "" || len(created.Pin) != 4 {
		t.Fatalf("create response %+v", created)
	}
	for _, r := range created.Pin {
		if r < '0' || r > '2' {
			t.Fatalf("pin %q has digit outside keypad alphabet", created.Pin)
		}
	}

	joined, err := joiner.JoinLobby(ctx, created.Pin, "Player2")
	if err != nil {
		t.Fatalf("JoinLobby: %v", err)
	}
	if joined.ID == "" || joined.Error != "" {
		t.Fatalf("join response %+v", joined)
	}

	// The owner only knows its lobby id, so it polls by player id.
	status, err := owner.GetStatus(ctx, api.StatusQuery{PlayerID: created.ID})
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if status.ID != joined.ID {
		t.Fatalf("owner poll found match %q, want %q", status.ID, joined.ID)
	}

	if _, err := owner.MarkReady(ctx, joined.ID, created.ID); err != nil {
		t.Fatalf("owner MarkReady: %v", err)
	}
	status, err = joiner.MarkReady(ctx, joined.ID, "Player2")
	if err != nil {
		t.Fatalf("joiner MarkReady: %v", err)
	}
	if !status.OwnerReady || !status.OpponentReady {
		t.Fatalf("after both ready: %+v", status)
	}

	// Fire beats earth, so the owner takes the round.
	if _, err := owner.SubmitTurn(ctx, joined.ID, 0, created.ID); err != nil {
		t.Fatalf("owner SubmitTurn: %v", err)
	}
	result, err := joiner.SubmitTurn(ctx, joined.ID, 1, "Player2")
	if err != nil {
		t.Fatalf("joiner SubmitTurn: %v", err)
	}
	if result.Matches != 1 || result.WinnerResult != 1 {
		t.Fatalf("turn result %+v", result)
	}
	if result.WinnerMessage != "Fire burns Earth" {
		t.Fatalf("winner message %q", result.WinnerMessage)
	}
	if result.OwnerReady || result.OpponentReady {
		t.Fatalf("ready flags not reset for rematch: %+v", result)
	}

	// A second round resolves independently.
	if _, err := owner.SubmitTurn(ctx, joined.ID, 2, created.ID); err != nil {
		t.Fatalf("owner SubmitTurn: %v", err)
	}
	result, err = joiner.SubmitTurn(ctx, joined.ID, 2, "Player2")
	if err != nil {
		t.Fatalf("joiner SubmitTurn: %v", err)
	}
	if result.Matches != 2 || result.WinnerResult != 0 {
		t.Fatalf("draw result %+v", result)
	}
}

func TestPublicJoinBeforeCreate(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{AccessCode: "secret"})
	ctx := context.Background()
	client := api.NewClient(ts.URL, "secret")

	// No lobby yet. The miss must be a 2xx with the exact retry string.
	res, err := client.JoinLobby(ctx, "", "Player2")
	if err != nil {
		t.Fatalf("JoinLobby: %v", err)
	}
	if res.Error != api.ErrLobbyNotFound || res.Status != 0 {
		t.Fatalf("join miss response %+v", res)
	}

	if _, err := client.CreateLobby(ctx, false, 0); err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	res, err = client.JoinLobby(ctx, "", "Player2")
	if err != nil {
		t.Fatalf("JoinLobby: %v", err)
	}
	if res.ID == "" || res.Error != "" {
		t.Fatalf("join response %+v", res)
	}
}

func TestMatchStatusMiss(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{AccessCode: "secret"})
	client := api.NewClient(ts.URL, "secret")

	res, err := client.GetStatus(context.Background(), api.StatusQuery{MatchID: "nope"})
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if res.Error != api.ErrMatchNotFound {
		t.Fatalf("status miss response %+v", res)
	}
}

func TestInvalidMoveRejected(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{AccessCode: "secret"})
	client := api.NewClient(ts.URL, "secret")

	res, err := client.SubmitTurn(context.Background(), "m1", 3, "Player2")
	if err != nil {
		t.Fatalf("SubmitTurn: %v", err)
	}
	if res.Status != http.StatusBadRequest {
		t.Fatalf("invalid move response %+v", res)
	}
}

func TestAccessCodeAuth(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{AccessCode: "secret"})

	resp, err := http.Get(ts.URL + "/api/LobbyCreate?code=wrong")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong code status %d", resp.StatusCode)
	}

	// The client surfaces the rejection as a normalized error.
	res, err := api.NewClient(ts.URL, "wrong").CreateLobby(context.Background(), false, 0)
	if err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	if res.Status != http.StatusUnauthorized || res.Error != "Bad request" {
		t.Fatalf("unauthorized response %+v", res)
	}
}

func TestJWTAuth(t *testing.T) {
	ts := newTestServer(t, &config.ServerConfig{JWTSecret: "topsecret"})

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "webapp",
	}).SignedString([]byte("topsecret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	res, err := api.NewClient(ts.URL, token).CreateLobby(context.Background(), false, 0)
	if err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	if res.ID == "" {
		t.Fatalf("create with valid token: %+v", res)
	}

	res, err = api.NewClient(ts.URL, "not-a-token").CreateLobby(context.Background(), false, 0)
	if err != nil {
		t.Fatalf("CreateLobby: %v", err)
	}
	if res.Status != http.StatusUnauthorized {
		t.Fatalf("bad token response %+v", res)
	}
}
