package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	tokenKeyPrefix     = "token:"
	userTokenKeyPrefix = "user_token:"
	tokenBytes         = 20
)

// TokenStore maps API tokens to user ids in Redis. Each user has exactly one
// token, created on first use and kept until revoked; keys carry no TTL.
type TokenStore struct {
	rdb *redis.Client
	sf  singleflight.Group
}

// NewTokenStore returns a new token store.
func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{rdb: rdb}
}

// GetOrCreate returns the user's token, issuing one if none exists yet.
func (s *TokenStore) GetOrCreate(ctx context.Context, userID int64) (string, error) {
	v, err, _ := s.sf.Do(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		return s.getOrCreate(ctx, userID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (s *TokenStore) getOrCreate(ctx context.Context, userID int64) (string, error) {
	uid := strconv.FormatInt(userID, 10)
	userKey := userTokenKeyPrefix + uid

	tok, err := s.rdb.Get(ctx, userKey).Result()
	if err == nil {
		return tok, nil
	}
	if !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("token lookup: %w", err)
	}

	candidate, err := newToken()
	if err != nil {
		return "", err
	}
	// The reverse key goes first so a published user_token always resolves.
	if err := s.rdb.Set(ctx, tokenKeyPrefix+candidate, uid, 0).Err(); err != nil {
		return "", fmt.Errorf("token store: %w", err)
	}
	won, err := s.rdb.SetNX(ctx, userKey, candidate, 0).Result()
	if err != nil {
		_ = s.rdb.Del(ctx, tokenKeyPrefix+candidate).Err()
		return "", fmt.Errorf("token store: %w", err)
	}
	if won {
		return candidate, nil
	}
	// Another instance issued a token first; use theirs.
	_ = s.rdb.Del(ctx, tokenKeyPrefix+candidate).Err()
	tok, err = s.rdb.Get(ctx, userKey).Result()
	if err != nil {
		return "", fmt.Errorf("token lookup: %w", err)
	}
	return tok, nil
}

// UserID resolves a token. ok is false when the token is unknown.
func (s *TokenStore) UserID(ctx context.Context, token string) (id int64, ok bool, err error) {
	v, err := s.rdb.Get(ctx, tokenKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("token resolve: %w", err)
	}
	id, err = strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("token resolve: corrupt user id %q", v)
	}
	return id, true, nil
}

// Revoke deletes the user's token, if any.
func (s *TokenStore) Revoke(ctx context.Context, userID int64) error {
	userKey := userTokenKeyPrefix + strconv.FormatInt(userID, 10)
	tok, err := s.rdb.Get(ctx, userKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	if err := s.rdb.Del(ctx, userKey, tokenKeyPrefix+tok).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
