package repositories

import (
	"context"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
)

// HistoryRepository persists saved summaries in the summaries table
type HistoryRepository interface {
	// Create inserts a new record and assigns its ID and CreatedAt
	Create(ctx context.Context, record *entities.HistoryRecord) error
	// List returns every record, most recent first
	List(ctx context.Context) ([]entities.HistoryRecord, error)
	Get(ctx context.Context, id int64) (*entities.HistoryRecord, error)
	// ToggleFavorite flips is_favorite and returns the updated record
	ToggleFavorite(ctx context.Context, id int64) (*entities.HistoryRecord, error)
	Delete(ctx context.Context, id int64) error
}
