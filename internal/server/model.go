package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ErrNotFound is returned by stores when no record matches.
var ErrNotFound = errors.New("not found")

// Lobby is a pending match awaiting a second player.
type Lobby struct {
	ID      string `json:"id"`
	Pin     string `json:"pin,omitempty"`
	Private bool   `json:"private"`
}

// Match is a running two-player match. The owner is identified by the lobby
// id it was created from.
type Match struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"ownerId"`
	OpponentID    string         `json:"opponentId"`
	OwnerReady    bool           `json:"ownerReady"`
	OpponentReady bool           `json:"opponentReady"`
	Moves         map[string]int `json:"moves"`
	Matches       int            `json:"matches"`
	WinnerResult  int            `json:"winnerResult"`
	WinnerMessage string         `json:"winnerMessage"`
}

func newID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

// newPin draws pinLength digits from the keypad alphabet (0-2).
func newPin(pinLength int) string {
	buf := make([]byte, pinLength)
	_, _ = rand.Read(buf)
	for i := range buf {
		buf[i] = '0' + buf[i]%3
	}
	return string(buf)
}
