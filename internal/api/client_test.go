package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQueryStringOrderAndEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"_id":"abc"}`))
	}))
	defer srv.Close()

	// The access code may contain characters that must survive verbatim.
	c := NewClient(srv.URL, "k3y==/extra")

	cases := []struct {
		name string
		call func() (Response, error)
		want string
	}{
		{
			"create private",
			func() (Response, error) { return c.CreateLobby(context.Background(), true, 4) },
			"private=true&pinLength=4&code=k3y==/extra",
		},
		{
			"create public appends only the code",
			func() (Response, error) { return c.CreateLobby(context.Background(), false, 4) },
			"code=k3y==/extra",
		},
		{
			"join encodes values in insertion order",
			func() (Response, error) { return c.JoinLobby(context.Background(), "0120", "Player 2") },
			"pin=0120&playerId=Player+2&code=k3y==/extra",
		},
		{
			"status by id with result flag",
			func() (Response, error) {
				return c.GetStatus(context.Background(), StatusQuery{MatchID: "m1", Result: true})
			},
			"id=m1&result=true&code=k3y==/extra",
		},
		{
			"status by player id",
			func() (Response, error) {
				return c.GetStatus(context.Background(), StatusQuery{PlayerID: "lobby1"})
			},
			"playerId=lobby1&code=k3y==/extra",
		},
		{
			"turn",
			func() (Response, error) { return c.SubmitTurn(context.Background(), "m1", 2, "Player2") },
			"id=m1&move=2&playerId=Player2&code=k3y==/extra",
		},
	}

	for _, tc := range cases {
		res, err := tc.call()
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if res.ID != "abc" {
			t.Fatalf("%s: ID = %q; want abc", tc.name, res.ID)
		}
		if gotQuery != tc.want {
			t.Fatalf("%s: query = %q; want %q", tc.name, gotQuery, tc.want)
		}
	}
}

func TestNon2xxNormalizedToErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.MarkReady(context.Background(), "m1", "p1")
	if err != nil {
		t.Fatalf("transport error not expected: %v", err)
	}
	if res.Error != "Bad request" || res.Status != http.StatusInternalServerError {
		t.Fatalf("res = %+v; want Bad request / 500", res)
	}
	if res.ID != "" {
		t.Fatalf("ID should be empty on error, got %q", res.ID)
	}
}

func TestDomainErrorPassedThroughOn2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"Lobby not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.JoinLobby(context.Background(), "", "Player2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Error != ErrLobbyNotFound {
		t.Fatalf("Error = %q; want %q", res.Error, ErrLobbyNotFound)
	}
}

func TestTransportFailureReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "")
	if _, err := c.CreateLobby(context.Background(), false, 0); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestStatusFieldsDecoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"_id":"m1","ownerReady":true,"opponentReady":true,"matches":3,"winnerResult":2,"winnerMessage":"Water extinguishes Fire"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	res, err := c.GetStatus(context.Background(), StatusQuery{MatchID: "m1", Result: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.OwnerReady || !res.OpponentReady || res.Matches != 3 || res.WinnerResult != 2 {
		t.Fatalf("unexpected response: %+v", res)
	}
}
