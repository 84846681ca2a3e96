package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/domain/repositories"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/pkg/runcontext"
)

// HistoryService handles saved summary business logic
type HistoryService struct {
	repo   repositories.HistoryRepository
	logger *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(repo repositories.HistoryRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{
		repo:   repo,
		logger: logger,
	}
}

// SaveInput represents input for saving a summary
type SaveInput struct {
	VideoID    string
	VideoURL   string
	Summary    string
	Transcript *entities.Transcript
}

// Save persists a summary with its source transcript
func (s *HistoryService) Save(ctx context.Context, input SaveInput) (*entities.HistoryRecord, error) {
	if strings.TrimSpace(input.VideoID) == "" {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrInvalidVideoID)
	}
	if strings.TrimSpace(input.Summary) == "" {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrEmptySummary)
	}

	record := entities.NewHistoryRecord(input.VideoID, input.VideoURL, input.Summary, input.Transcript)
	if err := s.repo.Create(ctx, record); err != nil {
		s.logError(ctx, "save", err)
		return nil, fmt.Errorf("%w: failed to save summary: %v", usecaseErrors.ErrStorageFailure, err)
	}

	if s.logger != nil {
		s.logger.Info("💾 Summary saved to history",
			append(runcontext.Fields(ctx),
				zap.Int64("record_id", record.ID),
				zap.String("video_id", record.VideoID),
				zap.Int("segments", len(record.Timestamps)),
			)...)
	}
	return record, nil
}

// ListAll returns every saved summary, most recent first
func (s *HistoryService) ListAll(ctx context.Context) ([]entities.HistoryRecord, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		s.logError(ctx, "list", err)
		return nil, fmt.Errorf("%w: failed to list summaries: %v", usecaseErrors.ErrStorageFailure, err)
	}
	return records, nil
}

// Get retrieves a saved summary by id
func (s *HistoryService) Get(ctx context.Context, id int64) (*entities.HistoryRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrInvalidRecordID)
	}
	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, "get", err)
	}
	return record, nil
}

// ToggleFavorite flips the favorite flag of a saved summary
func (s *HistoryService) ToggleFavorite(ctx context.Context, id int64) (*entities.HistoryRecord, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrInvalidRecordID)
	}
	record, err := s.repo.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, s.wrap(ctx, "toggle_favorite", err)
	}

	if s.logger != nil {
		s.logger.Info("⭐ Favorite toggled",
			append(runcontext.Fields(ctx),
				zap.Int64("record_id", id),
				zap.Bool("is_favorite", record.IsFavorite),
			)...)
	}
	return record, nil
}

// Delete removes a saved summary
func (s *HistoryService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrInvalidRecordID)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.wrap(ctx, "delete", err)
	}

	if s.logger != nil {
		s.logger.Info("🗑️  Summary deleted from history",
			append(runcontext.Fields(ctx), zap.Int64("record_id", id))...)
	}
	return nil
}

// wrap keeps NotFound as is and reports everything else as a storage failure
func (s *HistoryService) wrap(ctx context.Context, op string, err error) error {
	if errors.Is(err, usecaseErrors.ErrNotFound) {
		return err
	}
	s.logError(ctx, op, err)
	return fmt.Errorf("%w: %s: %v", usecaseErrors.ErrStorageFailure, op, err)
}

func (s *HistoryService) logError(ctx context.Context, op string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error("❌ History store operation failed",
		append(runcontext.Fields(ctx),
			zap.String("op", op),
			zap.Error(err),
		)...)
}
