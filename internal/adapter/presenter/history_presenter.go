package presenter

import (
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/history"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/usecase/resolver"
)

// ToRecordResponse converts a HistoryRecord entity to RecordResponse DTO.
// The transcript and its segments are only included when full is set.
func ToRecordResponse(r *entities.HistoryRecord, full bool) *history.RecordResponse {
	if r == nil {
		return nil
	}

	response := &history.RecordResponse{
		ID:         r.ID,
		VideoID:    r.VideoID,
		VideoURL:   r.VideoURL,
		Title:      r.Title,
		Thumbnail:  resolver.Thumbnail(r.VideoID),
		Summary:    r.Summary,
		Language:   r.Language,
		CreatedAt:  r.CreatedAt,
		IsFavorite: r.IsFavorite,
	}
	if full {
		response.Transcript = r.Transcript
		response.Segments = ToSegmentResponses(r.Segments())
	}
	return response
}

// ToRecordListResponse converts saved records to RecordListResponse
func ToRecordListResponse(records []entities.HistoryRecord) *history.RecordListResponse {
	out := make([]*history.RecordResponse, len(records))
	for i := range records {
		out[i] = ToRecordResponse(&records[i], false)
	}
	return &history.RecordListResponse{Records: out, Total: len(out)}
}
