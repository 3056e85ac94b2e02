package server

import (
	"context"
	"testing"
)

func TestMemoryStoreTakeLobbyByPin(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.PutLobby(ctx, &Lobby{ID: "a", Pin: "0120", Private: true}); err != nil {
		t.Fatalf("PutLobby: %v", err)
	}

	if _, err := s.TakeLobby(ctx, "2222"); err != ErrNotFound {
		t.Fatalf("wrong pin: got %v, want ErrNotFound", err)
	}

	lobby, err := s.TakeLobby(ctx, "0120")
	if err != nil {
		t.Fatalf("TakeLobby: %v", err)
	}
	if lobby.ID != "a" {
		t.Fatalf("took lobby %q, want a", lobby.ID)
	}

	// Consumed on take.
	if _, err := s.TakeLobby(ctx, "0120"); err != ErrNotFound {
		t.Fatalf("second take: got %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreTakeLobbySkipsPrivate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.PutLobby(ctx, &Lobby{ID: "priv", Pin: "0000", Private: true}); err != nil {
		t.Fatalf("PutLobby: %v", err)
	}

	if _, err := s.TakeLobby(ctx, ""); err != ErrNotFound {
		t.Fatalf("public take with only a private lobby: got %v, want ErrNotFound", err)
	}

	if err := s.PutLobby(ctx, &Lobby{ID: "pub"}); err != nil {
		t.Fatalf("PutLobby: %v", err)
	}
	lobby, err := s.TakeLobby(ctx, "")
	if err != nil {
		t.Fatalf("TakeLobby: %v", err)
	}
	if lobby.ID != "pub" {
		t.Fatalf("took lobby %q, want pub", lobby.ID)
	}
}

func TestMemoryStoreMatchRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	match := &Match{
		ID:      "m1",
		OwnerID: "owner",
		Moves:   map[string]int{"owner": 2},
	}
	if err := s.PutMatch(ctx, match); err != nil {
		t.Fatalf("PutMatch: %v", err)
	}

	// The store holds its own copy.
	match.Moves["owner"] = 0

	got, err := s.GetMatch(ctx, "m1")
	if err != nil {
		t.Fatalf("GetMatch: %v", err)
	}
	if got.Moves["owner"] != 2 {
		t.Fatalf("stored move mutated through caller's map: %d", got.Moves["owner"])
	}

	byOwner, err := s.GetMatchByOwner(ctx, "owner")
	if err != nil {
		t.Fatalf("GetMatchByOwner: %v", err)
	}
	if byOwner.ID != "m1" {
		t.Fatalf("owner index returned %q", byOwner.ID)
	}

	if _, err := s.GetMatch(ctx, "nope"); err != ErrNotFound {
		t.Fatalf("missing match: got %v, want ErrNotFound", err)
	}
	if _, err := s.GetMatchByOwner(ctx, "nope"); err != ErrNotFound {
		t.Fatalf("missing owner: got %v, want ErrNotFound", err)
	}
}

func TestNewPinAlphabet(t *testing.T) {
	pin := newPin(16)
	if len(pin) != 16 {
		t.Fatalf("pin length %d", len(pin))
	}
	for _, r := range pin {
		if r < '0' || r > '2' {
			t.Fatalf("pin digit %q outside keypad alphabet", r)
		}
	}
}
