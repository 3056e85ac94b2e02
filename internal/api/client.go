package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Endpoint names under {host}/api/.
const (
	EndpointLobbyCreate = "LobbyCreate"
	EndpointLobbyJoin   = "LobbyJoin"
	EndpointMatchReady  = "MatchReady"
	EndpointMatchStatus = "MatchStatus"
	EndpointMatchTurn   = "MatchTurn"
)

// Error strings the service returns with a 2xx status. "Lobby not found" is
// an expected, retried condition during public join.
const (
	ErrLobbyNotFound = "Lobby not found"
	ErrMatchNotFound = "Match not found"
)

// codeParam is the access-code query parameter. Its value is appended
// verbatim, never URL-encoded.
const codeParam = "code"

// Response is the normalized shape of every service reply. A non-2xx HTTP
// status arrives as {Error, Status}; a missing ID on a 2xx reply is a domain
// failure the caller decides about.
type Response struct {
	ID            string `json:"_id"`
	Pin           string `json:"pin,omitempty"`
	OwnerReady    bool   `json:"ownerReady,omitempty"`
	OpponentReady bool   `json:"opponentReady,omitempty"`
	Matches       int    `json:"matches,omitempty"`
	WinnerResult  int    `json:"winnerResult,omitempty"`
	WinnerMessage string `json:"winnerMessage,omitempty"`
	Error         string `json:"error,omitempty"`
	Status        int    `json:"status,omitempty"`
}

// StatusQuery selects a match by id when known, otherwise by the owner's
// player id. Result asks the service to include the latest turn outcome.
type StatusQuery struct {
	MatchID  string
	PlayerID string
	Result   bool
}

// Service is the five-operation surface of the remote match service. The
// client carries no retry logic; callers decide.
type Service interface {
	CreateLobby(ctx context.Context, private bool, pinLength int) (Response, error)
	JoinLobby(ctx context.Context, pin, playerID string) (Response, error)
	MarkReady(ctx context.Context, matchID, playerID string) (Response, error)
	GetStatus(ctx context.Context, q StatusQuery) (Response, error)
	SubmitTurn(ctx context.Context, matchID string, move int, playerID string) (Response, error)
}

// Client talks to the match service over HTTPS GET with query parameters.
type Client struct {
	host       string
	accessCode string
	httpClient *http.Client
}

// NewClient creates a match service client. Requests carry no individual
// timeout; the polling interval bounds perceived staleness.
func NewClient(host, accessCode string) *Client {
	return &Client{
		host:       strings.TrimRight(host, "/"),
		accessCode: accessCode,
		httpClient: &http.Client{},
	}
}

type param struct {
	key, value string
}

// queryString renders params in insertion order, URL-encoding every value
// except the access code, which is appended when not supplied.
func (c *Client) queryString(params []param) string {
	hasCode := false
	for _, p := range params {
		if p.key == codeParam {
			hasCode = true
			break
		}
	}
	if !hasCode {
		params = append(params, param{codeParam, c.accessCode})
	}

	var b strings.Builder
	for i, p := range params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		if p.key == codeParam {
			b.WriteString(p.value)
		} else {
			b.WriteString(url.QueryEscape(p.value))
		}
	}
	return b.String()
}

func (c *Client) fetch(ctx context.Context, endpoint string, params []param) (Response, error) {
	uri := c.host + "/api/" + endpoint + c.queryString(params)

	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return Response{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Response{Error: "Bad request", Status: resp.StatusCode}, nil
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("%s: decode: %w", endpoint, err)
	}
	return out, nil
}

// CreateLobby opens a lobby. A private lobby gets a join pin of pinLength
// digits.
func (c *Client) CreateLobby(ctx context.Context, private bool, pinLength int) (Response, error) {
	var params []param
	if private {
		params = []param{
			{"private", "true"},
			{"pinLength", strconv.Itoa(pinLength)},
		}
	}
	return c.fetch(ctx, EndpointLobbyCreate, params)
}

// JoinLobby joins a private lobby by pin, or any open public lobby when pin
// is empty.
func (c *Client) JoinLobby(ctx context.Context, pin, playerID string) (Response, error) {
	var params []param
	if pin != "" {
		params = []param{
			{"pin", pin},
			{"playerId", playerID},
		}
	} else {
		params = []param{
			{"playerId", playerID},
		}
	}
	return c.fetch(ctx, EndpointLobbyJoin, params)
}

// MarkReady flags the player as ready for the next turn.
func (c *Client) MarkReady(ctx context.Context, matchID, playerID string) (Response, error) {
	params := []param{
		{"id", matchID},
		{"playerId", playerID},
	}
	return c.fetch(ctx, EndpointMatchReady, params)
}

// GetStatus polls match state.
func (c *Client) GetStatus(ctx context.Context, q StatusQuery) (Response, error) {
	var params []param
	if q.MatchID != "" {
		params = []param{{"id", q.MatchID}}
	} else {
		params = []param{{"playerId", q.PlayerID}}
	}
	if q.Result {
		params = append(params, param{"result", "true"})
	}
	return c.fetch(ctx, EndpointMatchStatus, params)
}

// SubmitTurn submits the player's move for the current turn.
func (c *Client) SubmitTurn(ctx context.Context, matchID string, move int, playerID string) (Response, error) {
	params := []param{
		{"id", matchID},
		{"move", strconv.Itoa(move)},
		{"playerId", playerID},
	}
	return c.fetch(ctx, EndpointMatchTurn, params)
}
