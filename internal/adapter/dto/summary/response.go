package summary

import "github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"

// StatsResponse represents summary statistics
type StatsResponse struct {
	SummaryWords    int `json:"summary_words"`
	ReadMinutes     int `json:"read_minutes"`
	TranscriptWords int `json:"transcript_words"`
}

// SummaryResponse represents a generated summary
type SummaryResponse struct {
	VideoID         string                   `json:"video_id"`
	VideoURL        string                   `json:"video_url"`
	Thumbnail       string                   `json:"thumbnail"`
	Language        string                   `json:"language"`
	Summary         string                   `json:"summary"`
	KeyMoments      string                   `json:"key_moments,omitempty"`
	KeyMomentsError string                   `json:"key_moments_error,omitempty"`
	Stats           StatsResponse            `json:"stats"`
	Segments        []common.SegmentResponse `json:"segments"`
}
