package history

import (
	"context"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
)

// Service defines the interface for the saved summary use case
type Service interface {
	// Save appends a new record and returns its assigned id
	Save(ctx context.Context, input SaveInput) (*entities.HistoryRecord, error)

	// ListAll returns every record, most recent first
	ListAll(ctx context.Context) ([]entities.HistoryRecord, error)

	// Get retrieves a record by id
	Get(ctx context.Context, id int64) (*entities.HistoryRecord, error)

	// ToggleFavorite flips the favorite flag and returns the updated record
	ToggleFavorite(ctx context.Context, id int64) (*entities.HistoryRecord, error)

	// Delete removes a record
	Delete(ctx context.Context, id int64) error
}

// Ensure HistoryService implements Service interface
var _ Service = (*HistoryService)(nil)
