package errors

// ErrorCode is the machine-readable code carried in every error response
type ErrorCode int32

const (
	ErrorCode_HTTP_OK ErrorCode = 200

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1003

	// Video and transcript
	ErrorCode_VIDEO_INVALID_REFERENCE ErrorCode = 2000
	ErrorCode_VIDEO_NO_TRANSCRIPT     ErrorCode = 2001
	ErrorCode_VIDEO_FETCH_FAILED      ErrorCode = 2002

	// AI generation
	ErrorCode_AI_GENERATION_FAILED ErrorCode = 3000

	// Session
	ErrorCode_SESSION_NO_ACTIVE_TRANSCRIPT ErrorCode = 4000
	ErrorCode_SESSION_FAILED               ErrorCode = 4001

	// Export
	ErrorCode_EXPORT_FAILED      ErrorCode = 5000
	ErrorCode_EXPORT_UNAVAILABLE ErrorCode = 5001

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED ErrorCode = 6000

	// Database
	ErrorCode_DB_QUERY_FAILED ErrorCode = 7000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                      "HTTP_OK",
	ErrorCode_INTERNAL:                     "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:             "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                    "NOT_FOUND",
	ErrorCode_INVALID_PAYLOAD:              "INVALID_PAYLOAD",
	ErrorCode_VIDEO_INVALID_REFERENCE:      "VIDEO_INVALID_REFERENCE",
	ErrorCode_VIDEO_NO_TRANSCRIPT:          "VIDEO_NO_TRANSCRIPT",
	ErrorCode_VIDEO_FETCH_FAILED:           "VIDEO_FETCH_FAILED",
	ErrorCode_AI_GENERATION_FAILED:         "AI_GENERATION_FAILED",
	ErrorCode_SESSION_NO_ACTIVE_TRANSCRIPT: "SESSION_NO_ACTIVE_TRANSCRIPT",
	ErrorCode_SESSION_FAILED:               "SESSION_FAILED",
	ErrorCode_EXPORT_FAILED:                "EXPORT_FAILED",
	ErrorCode_EXPORT_UNAVAILABLE:           "EXPORT_UNAVAILABLE",
	ErrorCode_INTEGRATION_STORAGE_FAILED:   "INTEGRATION_STORAGE_FAILED",
	ErrorCode_DB_QUERY_FAILED:              "DB_QUERY_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
