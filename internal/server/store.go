package server

import (
	"context"
	"sync"
)

// Store persists lobbies and matches. Implementations: memory (default),
// redis and postgres for shared dev deployments.
type Store interface {
	PutLobby(ctx context.Context, lobby *Lobby) error
	// TakeLobby removes and returns an open lobby: the one matching pin
	// when pin is set, otherwise any public lobby. ErrNotFound when none.
	TakeLobby(ctx context.Context, pin string) (*Lobby, error)
	// PutMatch inserts or replaces a match.
	PutMatch(ctx context.Context, match *Match) error
	GetMatch(ctx context.Context, id string) (*Match, error)
	// GetMatchByOwner finds the match created from the owner's lobby.
	GetMatchByOwner(ctx context.Context, ownerID string) (*Match, error)
}

// MemoryStore keeps everything in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	lobbies map[string]*Lobby
	matches map[string]*Match
	byOwner map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		lobbies: make(map[string]*Lobby),
		matches: make(map[string]*Match),
		byOwner: make(map[string]string),
	}
}

func (s *MemoryStore) PutLobby(ctx context.Context, lobby *Lobby) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *lobby
	s.lobbies[lobby.ID] = &copy
	return nil
}

func (s *MemoryStore) TakeLobby(ctx context.Context, pin string) (*Lobby, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, lobby := range s.lobbies {
		if pin != "" {
			if lobby.Pin != pin {
				continue
			}
		} else if lobby.Private {
			continue
		}
		delete(s.lobbies, id)
		found := *lobby
		return &found, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) PutMatch(ctx context.Context, match *Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copy := *match
	copy.Moves = make(map[string]int, len(match.Moves))
	for k, v := range match.Moves {
		copy.Moves[k] = v
	}
	s.matches[match.ID] = &copy
	s.byOwner[match.OwnerID] = match.ID
	return nil
}

func (s *MemoryStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, ErrNotFound
	}
	found := *match
	found.Moves = make(map[string]int, len(match.Moves))
	for k, v := range match.Moves {
		found.Moves[k] = v
	}
	return &found, nil
}

func (s *MemoryStore) GetMatchByOwner(ctx context.Context, ownerID string) (*Match, error) {
	s.mu.Lock()
	id, ok := s.byOwner[ownerID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.GetMatch(ctx, id)
}
