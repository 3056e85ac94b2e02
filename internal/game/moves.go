package game

// Move is one of the three gesture moves. The wire encoding is the integer
// value: 0 fire, 1 earth, 2 water.
type Move int

const (
	MoveFire Move = iota
	MoveEarth
	MoveWater
)

func (m Move) String() string {
	switch m {
	case MoveFire:
		return "fire"
	case MoveEarth:
		return "earth"
	case MoveWater:
		return "water"
	}
	return "unknown"
}

// Valid reports whether m is within the move set.
func (m Move) Valid() bool {
	return m >= MoveFire && m <= MoveWater
}

// Beats reports whether a defeats b: fire burns earth, earth drinks water,
// water extinguishes fire.
func Beats(a, b Move) bool {
	return b == (a+1)%3
}

// Winner indicator values carried in the match status.
const (
	ResultDraw         = 0
	ResultOwnerWins    = 1
	ResultOpponentWins = 2
)

// Resolve decides a turn from the owner's and opponent's moves, returning
// the winner indicator and a human-readable outcome message.
func Resolve(ownerMove, opponentMove Move) (int, string) {
	if ownerMove == opponentMove {
		return ResultDraw, "Draw"
	}
	if Beats(ownerMove, opponentMove) {
		return ResultOwnerWins, message(ownerMove, opponentMove)
	}
	return ResultOpponentWins, message(opponentMove, ownerMove)
}

func message(winner, loser Move) string {
	switch winner {
	case MoveFire:
		return "Fire burns Earth"
	case MoveEarth:
		return "Earth drinks Water"
	case MoveWater:
		return "Water extinguishes Fire"
	}
	return ""
}
