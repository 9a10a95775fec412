/**
 * @description
 * This package provides a Redis-backed session store. Each issued token is
 * paired with a session record under a fixed key prefix; verifying a request
 * checks the record is still present, and logout deletes it, revoking every
 * copy of the token at once.
 *
 * @dependencies
 * - github.com/redis/go-redis/v9: The Redis client.
 */
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// keyPrefix is the fixed namespace for session records.
const keyPrefix = "backoffice:session:"

// Store persists sessions in Redis.
type Store struct {
	client redis.UniversalClient
}

// NewStore creates a new session store.
func NewStore(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func sessionKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Save records a session with the given time-to-live.
func (s *Store) Save(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// UserID resolves the user behind a live session.
func (s *Store) UserID(ctx context.Context, sessionID string) (string, error) {
	userID, err := s.client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read session: %w", err)
	}
	return userID, nil
}

// Revoke deletes a session. Revoking an unknown session is not an error.
func (s *Store) Revoke(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}
