package history

import (
	"time"

	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"
)

// RecordResponse represents a saved summary
type RecordResponse struct {
	ID         int64                    `json:"id"`
	VideoID    string                   `json:"video_id"`
	VideoURL   string                   `json:"video_url"`
	Title      string                   `json:"title"`
	Thumbnail  string                   `json:"thumbnail"`
	Summary    string                   `json:"summary"`
	Transcript string                   `json:"transcript,omitempty"`
	Language   string                   `json:"language"`
	Segments   []common.SegmentResponse `json:"timestamps,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	IsFavorite bool                     `json:"is_favorite"`
}

// RecordListResponse represents the saved summaries, most recent first
type RecordListResponse struct {
	Records []*RecordResponse `json:"records"`
	Total   int               `json:"total"`
}
