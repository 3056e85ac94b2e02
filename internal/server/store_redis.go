package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// recordTTL bounds how long abandoned lobbies and matches linger.
const recordTTL = 24 * time.Hour

// RedisStore keeps lobbies and matches in redis so several service instances
// can share state. Private lobbies are indexed by pin, public ones sit in a
// set that joiners pop from.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func lobbyKey(id string) string    { return "lobby:" + id }
func pinKey(pin string) string     { return "lobby:pin:" + pin }
func matchKey(id string) string    { return "match:" + id }
func ownerKey(owner string) string { return "match:owner:" + owner }

const publicLobbies = "lobbies:public"

func (s *RedisStore) PutLobby(ctx context.Context, lobby *Lobby) error {
	data, err := json.Marshal(lobby)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, lobbyKey(lobby.ID), data, recordTTL)
	if lobby.Private {
		pipe.Set(ctx, pinKey(lobby.Pin), lobby.ID, recordTTL)
	} else {
		pipe.SAdd(ctx, publicLobbies, lobby.ID)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) TakeLobby(ctx context.Context, pin string) (*Lobby, error) {
	var id string
	var err error
	if pin != "" {
		id, err = s.rdb.GetDel(ctx, pinKey(pin)).Result()
	} else {
		id, err = s.rdb.SPop(ctx, publicLobbies).Result()
	}
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	data, err := s.rdb.GetDel(ctx, lobbyKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var lobby Lobby
	if err := json.Unmarshal(data, &lobby); err != nil {
		return nil, err
	}
	return &lobby, nil
}

func (s *RedisStore) PutMatch(ctx context.Context, match *Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, matchKey(match.ID), data, recordTTL)
	pipe.Set(ctx, ownerKey(match.OwnerID), match.ID, recordTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) GetMatch(ctx context.Context, id string) (*Match, error) {
	data, err := s.rdb.Get(ctx, matchKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var match Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	if match.Moves == nil {
		match.Moves = make(map[string]int)
	}
	return &match, nil
}

func (s *RedisStore) GetMatchByOwner(ctx context.Context, ownerID string) (*Match, error) {
	id, err := s.rdb.Get(ctx, ownerKey(ownerID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetMatch(ctx, id)
}
