package presenter

import (
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/usecase/export"
)

// ToSegmentResponses converts transcript segments, adding MM:SS timestamps
func ToSegmentResponses(segments []entities.TranscriptSegment) []common.SegmentResponse {
	out := make([]common.SegmentResponse, len(segments))
	for i, s := range segments {
		out[i] = common.SegmentResponse{
			Start:     s.Start,
			Duration:  s.Duration,
			Timestamp: export.FormatTimestamp(s.Start),
			Text:      s.Text,
		}
	}
	return out
}
