package session

// Session is the per-process match identity record. It is owned by the match
// engine and only ever mutated from the event loop.
type Session struct {
	// Owner reports whether this client created the lobby.
	Owner bool
	// PlayerID identifies this client to the service. The owner adopts the
	// lobby id; a joiner uses the shared joining identifier.
	PlayerID string
	// MatchID is the opaque match reference, empty until obtained.
	MatchID string
	// Matches counts turns whose outcome this client has observed. It only
	// increases, and resets to zero only on return to the menu.
	Matches int

	joinPlayerID string
}

// New creates a session in its reset state. joinPlayerID is the shared
// identifier joining clients present to the service.
func New(joinPlayerID string) *Session {
	s := &Session{joinPlayerID: joinPlayerID}
	s.Reset()
	return s
}

// Reset restores the defaults. Idempotent; invoked whenever the menu scene
// activates.
func (s *Session) Reset() {
	s.Owner = false
	s.PlayerID = s.joinPlayerID
	s.MatchID = ""
	s.Matches = 0
}
