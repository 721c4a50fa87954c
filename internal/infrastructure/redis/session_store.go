// Package redis provides Redis-backed infrastructure adapters.
package redis

import (
	"context"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"checkout-customizer-layer/internal/domain"
	"checkout-customizer-layer/internal/ports"
)

const sessionKeyPrefix = "oauth_session:"

// SessionStore implements SessionStore using Redis. Sessions expire via key
// TTL, so abandoned installs clean themselves up.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates a new Redis session store
func NewSessionStore(client *redis.Client, ttl time.Duration) ports.SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
	}
}

// SaveSession stores a session keyed by its OAuth state
func (s *SessionStore) SaveSession(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := s.ttl
	if !session.ExpiresAt.IsZero() {
		if remaining := time.Until(session.ExpiresAt); remaining > 0 && remaining < ttl {
			ttl = remaining
		}
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.State, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by OAuth state
func (s *SessionStore) GetSession(ctx context.Context, state string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKeyPrefix+state).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// DeleteSession removes a session by OAuth state
func (s *SessionStore) DeleteSession(ctx context.Context, state string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+state).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
