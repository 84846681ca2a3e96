package presenter

import (
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
)

// ToSummaryResponse converts a pipeline result to SummaryResponse DTO
func ToSummaryResponse(r *pipeline.SummaryResult) *summary.SummaryResponse {
	if r == nil {
		return nil
	}

	response := &summary.SummaryResponse{
		VideoID:    r.VideoID,
		VideoURL:   r.VideoURL,
		Thumbnail:  r.Thumbnail,
		Language:   r.Language,
		Summary:    r.Summary,
		KeyMoments: r.KeyMoments,
		Stats: summary.StatsResponse{
			SummaryWords:    r.Stats.SummaryWords,
			ReadMinutes:     r.Stats.ReadMinutes,
			TranscriptWords: r.Stats.TranscriptWords,
		},
		Segments: ToSegmentResponses(r.Segments),
	}
	if r.KeyMomentsError != nil {
		response.KeyMomentsError = "Could not extract key timestamps"
	}
	return response
}
