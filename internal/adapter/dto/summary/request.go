package summary

// SummarizeRequest represents the request to summarize a video
type SummarizeRequest struct {
	URL string `json:"url" validate:"required,notblank,max=2048"`
	// Length is one of brief, medium, detailed, extensive; ignored when WordCount is set
	Length     string `json:"length,omitempty" validate:"omitempty,oneof=brief medium detailed extensive"`
	WordCount  int    `json:"word_count,omitempty" validate:"omitempty,oneof=150 250 400 800"`
	Style      string `json:"style,omitempty" validate:"omitempty,oneof=bullets paragraphs"`
	KeyMoments *bool  `json:"key_moments,omitempty"`
}
