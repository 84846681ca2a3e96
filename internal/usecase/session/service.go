package session

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

// Service loads and stores the per-client session context
type Service interface {
	// Load returns the session for id, starting an empty one if none exists
	Load(ctx context.Context, id string) (entities.Session, error)

	// Save stores the session, replacing any previous state
	Save(ctx context.Context, sess entities.Session) error

	// Reset discards the session
	Reset(ctx context.Context, id string) error
}

type sessionService struct {
	store  repositories.SessionStore
	logger *zap.Logger
}

// NewSessionService creates a session service over the given store
func NewSessionService(store repositories.SessionStore, logger *zap.Logger) Service {
	return &sessionService{store: store, logger: logger}
}

func (s *sessionService) Load(ctx context.Context, id string) (entities.Session, error) {
	if id == "" {
		return entities.Session{}, fmt.Errorf("%w: session id is empty", usecaseErrors.ErrInvalidInput)
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, usecaseErrors.ErrSessionNotFound) {
			if s.logger != nil {
				s.logger.Debug("🆕 Starting new session", zap.String("session_id", id))
			}
			return entities.NewSession(id), nil
		}
		return entities.Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	return *sess, nil
}

func (s *sessionService) Save(ctx context.Context, sess entities.Session) error {
	if sess.ID == "" {
		return fmt.Errorf("%w: session id is empty", usecaseErrors.ErrInvalidInput)
	}
	if err := s.store.Put(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *sessionService) Reset(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil && !errors.Is(err, usecaseErrors.ErrSessionNotFound) {
		return fmt.Errorf("failed to reset session: %w", err)
	}
	return nil
}
