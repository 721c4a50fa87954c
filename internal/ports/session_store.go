package ports

import (
	"context"

	"checkout-customizer-layer/internal/domain"
)

// SessionStore defines the interface for OAuth session persistence. Sessions
// are short-lived and expire on their own.
type SessionStore interface {
	SaveSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, state string) (*domain.Session, error)
	DeleteSession(ctx context.Context, state string) error
}
