package game

import "testing"

func TestBeats(t *testing.T) {
	cases := []struct {
		a, b Move
		want bool
	}{
		{MoveFire, MoveEarth, true},
		{MoveEarth, MoveWater, true},
		{MoveWater, MoveFire, true},
		{MoveEarth, MoveFire, false},
		{MoveWater, MoveEarth, false},
		{MoveFire, MoveWater, false},
		{MoveFire, MoveFire, false},
	}

	for _, tc := range cases {
		if got := Beats(tc.a, tc.b); got != tc.want {
			t.Fatalf("Beats(%s,%s) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		owner, opponent Move
		want            int
	}{
		{MoveFire, MoveEarth, ResultOwnerWins},
		{MoveEarth, MoveFire, ResultOpponentWins},
		{MoveWater, MoveWater, ResultDraw},
		{MoveWater, MoveFire, ResultOwnerWins},
		{MoveEarth, MoveWater, ResultOwnerWins},
	}

	for _, tc := range cases {
		got, msg := Resolve(tc.owner, tc.opponent)
		if got != tc.want {
			t.Fatalf("Resolve(%s,%s) = %d; want %d", tc.owner, tc.opponent, got, tc.want)
		}
		if tc.want == ResultDraw && msg != "Draw" {
			t.Fatalf("draw message = %q", msg)
		}
	}
}
