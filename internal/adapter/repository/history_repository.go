package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
)

// HistoryRepository handles saved summary operations on the summaries table
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a record in a single statement, assigning ID and CreatedAt
func (r *HistoryRepository) Create(ctx context.Context, record *entities.HistoryRecord) error {
	if record == nil {
		return errors.New("history record cannot be nil")
	}
	record.ID = 0
	record.IsFavorite = false
	// Postgres keeps microseconds; truncate so the returned value matches the stored one
	record.CreatedAt = time.Now().UTC().Truncate(time.Microsecond)
	if record.Timestamps == nil {
		record.Timestamps = datatypes.JSONSlice[entities.TranscriptSegment]{}
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// List returns all records, most recent first
func (r *HistoryRepository) List(ctx context.Context) ([]entities.HistoryRecord, error) {
	var records []entities.HistoryRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Get retrieves a record by ID
func (r *HistoryRepository) Get(ctx context.Context, id int64) (*entities.HistoryRecord, error) {
	var record entities.HistoryRecord
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseErrors.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ToggleFavorite flips is_favorite and reads the row back in one transaction
func (r *HistoryRepository) ToggleFavorite(ctx context.Context, id int64) (*entities.HistoryRecord, error) {
	var record entities.HistoryRecord
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entities.HistoryRecord{}).
			Where("id = ?", id).
			Update("is_favorite", gorm.Expr("NOT is_favorite"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecaseErrors.ErrNotFound
		}
		return tx.Where("id = ?", id).First(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a record by ID
func (r *HistoryRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.HistoryRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecaseErrors.ErrNotFound
	}
	return nil
}
