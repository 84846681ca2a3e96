package entities

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// HistoryRecord is a saved summary with its source transcript
type HistoryRecord struct {
	ID         int64                                  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	VideoID    string                                 `json:"video_id" gorm:"column:video_id"`
	VideoURL   string                                 `json:"video_url" gorm:"column:video_url"`
	Title      string                                 `json:"title" gorm:"column:title"`
	Summary    string                                 `json:"summary" gorm:"column:summary"`
	Transcript string                                 `json:"transcript" gorm:"column:transcript"`
	Language   string                                 `json:"language" gorm:"column:language"`
	Timestamps datatypes.JSONSlice[TranscriptSegment] `json:"timestamps" gorm:"column:timestamps"`
	CreatedAt  time.Time                              `json:"created_at" gorm:"column:created_at"`
	IsFavorite bool                                   `json:"is_favorite" gorm:"column:is_favorite"`
}

// TableName specifies the table name for GORM
func (HistoryRecord) TableName() string {
	return "summaries"
}

// NewHistoryRecord creates an unsaved record for a summarized video
func NewHistoryRecord(videoID, videoURL, summary string, transcript *Transcript) *HistoryRecord {
	rec := &HistoryRecord{
		VideoID:    videoID,
		VideoURL:   videoURL,
		Title:      fmt.Sprintf("Video %s", videoID),
		Summary:    summary,
		Timestamps: datatypes.JSONSlice[TranscriptSegment]{},
	}
	if transcript != nil {
		rec.Transcript = transcript.FullText
		rec.Language = transcript.Language
		rec.Timestamps = append(rec.Timestamps, transcript.Segments...)
	}
	return rec
}

// Segments returns the stored timestamps as a plain slice
func (r *HistoryRecord) Segments() []TranscriptSegment {
	out := make([]TranscriptSegment, len(r.Timestamps))
	copy(out, r.Timestamps)
	return out
}
