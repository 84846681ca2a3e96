package session

import (
	"time"

	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"
)

// ChatTurnResponse represents one question and answer
type ChatTurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SessionResponse represents the current session context
type SessionResponse struct {
	ID              string                   `json:"id"`
	HasTranscript   bool                     `json:"has_transcript"`
	VideoID         string                   `json:"video_id,omitempty"`
	VideoURL        string                   `json:"video_url,omitempty"`
	Thumbnail       string                   `json:"thumbnail,omitempty"`
	Language        string                   `json:"language,omitempty"`
	Summary         string                   `json:"summary,omitempty"`
	KeyMoments      string                   `json:"key_moments,omitempty"`
	MindMap         string                   `json:"mind_map,omitempty"`
	TranscriptWords int                      `json:"transcript_words"`
	Segments        []common.SegmentResponse `json:"segments,omitempty"`
	Chat            []ChatTurnResponse       `json:"chat"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// MindMapResponse represents a generated graph description
type MindMapResponse struct {
	VideoID string `json:"video_id"`
	DOT     string `json:"dot"`
}

// ChatResponse represents an answer and the chat so far
type ChatResponse struct {
	Answer string             `json:"answer"`
	Chat   []ChatTurnResponse `json:"chat"`
}

// PublishResponse represents a published export
type PublishResponse struct {
	Object   string `json:"object"`
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// ExportListResponse represents the exports published by a session
type ExportListResponse struct {
	Objects []string `json:"objects"`
}
