package repositories

import (
	"context"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
)

// SessionStore keeps ephemeral per-client sessions
type SessionStore interface {
	// Get returns usecase errors.ErrSessionNotFound when id is unknown or expired
	Get(ctx context.Context, id string) (*entities.Session, error)
	Put(ctx context.Context, session entities.Session) error
	Delete(ctx context.Context, id string) error
}
