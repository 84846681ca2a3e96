package common

// SuccessResponse is the envelope of every successful response
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope of every failed response
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SegmentResponse is one timed transcript line
type SegmentResponse struct {
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
	Timestamp string  `json:"timestamp"`
	Text      string  `json:"text"`
}
