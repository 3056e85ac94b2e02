package server

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `
CREATE TABLE IF NOT EXISTS lobbies (
    id      TEXT PRIMARY KEY,
    pin     TEXT NOT NULL DEFAULT '',
    private BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE TABLE IF NOT EXISTS matches (
    id             TEXT PRIMARY KEY,
    owner_id       TEXT NOT NULL,
    opponent_id    TEXT NOT NULL,
    owner_ready    BOOLEAN NOT NULL DEFAULT FALSE,
    opponent_ready BOOLEAN NOT NULL DEFAULT FALSE,
    moves          JSONB NOT NULL DEFAULT '{}',
    matches        INTEGER NOT NULL DEFAULT 0,
    winner_result  INTEGER NOT NULL DEFAULT 0,
    winner_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS matches_owner_idx ON matches (owner_id);
`

// PGStore keeps lobbies and matches in postgres.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(ctx, pgSchema); err != nil {
		db.Close()
		return nil, err
	}
	return &PGStore{db: db}, nil
}

func (s *PGStore) Close() {
	s.db.Close()
}

func (s *PGStore) PutLobby(ctx context.Context, lobby *Lobby) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO lobbies (id, pin, private)
         VALUES ($1, $2, $3)
         ON CONFLICT (id) DO UPDATE SET pin = $2, private = $3`,
		lobby.ID, lobby.Pin, lobby.Private,
	)
	return err
}

func (s *PGStore) TakeLobby(ctx context.Context, pin string) (*Lobby, error) {
	var row pgx.Row
	if pin != "" {
		row = s.db.QueryRow(ctx,
			`DELETE FROM lobbies WHERE pin = $1 RETURNING id, pin, private`,
			pin,
		)
	} else {
		row = s.db.QueryRow(ctx,
			`DELETE FROM lobbies
             WHERE id = (SELECT id FROM lobbies WHERE NOT private LIMIT 1)
             RETURNING id, pin, private`,
		)
	}

	var lobby Lobby
	err := row.Scan(&lobby.ID, &lobby.Pin, &lobby.Private)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (s *PGStore) PutMatch(ctx context.Context, match *Match) error {
	movesJSON, err := json.Marshal(match.Moves)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO matches (id, owner_id, opponent_id, owner_ready, opponent_ready,
                              moves, matches, winner_result, winner_message)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         ON CONFLICT (id) DO UPDATE SET
             owner_ready = $4, opponent_ready = $5, moves = $6,
             matches = $7, winner_result = $8, winner_message = $9`,
		match.ID, match.OwnerID, match.OpponentID,
		match.OwnerReady, match.OpponentReady,
		movesJSON, match.Matches, match.WinnerResult, match.WinnerMessage,
	)
	return err
}

func (s *PGStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, owner_id, opponent_id, owner_ready, opponent_ready,
                moves, matches, winner_result, winner_message
         FROM matches WHERE id = $1`,
		id,
	)
	return scanMatch(row)
}

func (s *PGStore) GetMatchByOwner(ctx context.Context, ownerID string) (*Match, error) {
	row := s.db.QueryRow(ctx,
		`SELECT id, owner_id, opponent_id, owner_ready, opponent_ready,
                moves, matches, winner_result, winner_message
         FROM matches WHERE owner_id = $1`,
		ownerID,
	)
	return scanMatch(row)
}

func scanMatch(row pgx.Row) (*Match, error) {
	var match Match
	var movesBytes []byte
	err := row.Scan(
		&match.ID, &match.OwnerID, &match.OpponentID,
		&match.OwnerReady, &match.OpponentReady,
		&movesBytes, &match.Matches, &match.WinnerResult, &match.WinnerMessage,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	match.Moves = make(map[string]int)
	if len(movesBytes) > 0 {
		if err := json.Unmarshal(movesBytes, &match.Moves); err != nil {
			return nil, err
		}
	}
	return &match, nil
}
