package runcontext

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type KeyContext string

var (
	keyRunID        KeyContext = "run_id"
	keyOperation    KeyContext = "operation"
	keySessionID    KeyContext = "session_id"
	keyVideoID      KeyContext = "video_id"
	keyRunStartTime KeyContext = "run_start_time"
)

// RunMetadata holds metadata for one pipeline run
type RunMetadata struct {
	RunID     uuid.UUID
	Operation string
	SessionID string
	VideoID   string
	StartTime time.Time
}

// RunBegin tags ctx with a fresh run id and the operation being performed.
// No deadline is added; cancellation stays with the caller's context.
func RunBegin(parentCtx context.Context, operation, sessionID string) context.Context {
	ctx := context.WithValue(parentCtx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keyOperation, operation)
	ctx = context.WithValue(ctx, keySessionID, sessionID)
	ctx = context.WithValue(ctx, keyRunStartTime, time.Now())
	return ctx
}

// WithVideoID records the resolved video id once it is known
func WithVideoID(ctx context.Context, videoID string) context.Context {
	return context.WithValue(ctx, keyVideoID, videoID)
}

// GetRunID extracts run ID from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	runID, ok := ctx.Value(keyRunID).(uuid.UUID)
	return runID, ok
}

// GetOperation extracts the operation name from context
func GetOperation(ctx context.Context) string {
	op, _ := ctx.Value(keyOperation).(string)
	return op
}

// GetSessionID extracts the session id from context
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(keySessionID).(string)
	return id
}

// GetVideoID extracts the video id from context
func GetVideoID(ctx context.Context) string {
	id, _ := ctx.Value(keyVideoID).(string)
	return id
}

// GetRunStartTime extracts run start time from context
func GetRunStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyRunStartTime).(time.Time)
	return startTime, ok
}

// GetRunMetadata extracts all run metadata from context
func GetRunMetadata(ctx context.Context) *RunMetadata {
	runID, _ := GetRunID(ctx)
	startTime, _ := GetRunStartTime(ctx)

	return &RunMetadata{
		RunID:     runID,
		Operation: GetOperation(ctx),
		SessionID: GetSessionID(ctx),
		VideoID:   GetVideoID(ctx),
		StartTime: startTime,
	}
}

// Fields returns the run metadata as zap fields for log correlation
func Fields(ctx context.Context) []zap.Field {
	md := GetRunMetadata(ctx)
	fields := make([]zap.Field, 0, 5)
	if md.RunID != uuid.Nil {
		fields = append(fields, zap.String("run_id", md.RunID.String()))
	}
	if md.Operation != "" {
		fields = append(fields, zap.String("operation", md.Operation))
	}
	if md.SessionID != "" {
		fields = append(fields, zap.String("session_id", md.SessionID))
	}
	if md.VideoID != "" {
		fields = append(fields, zap.String("video_id", md.VideoID))
	}
	if !md.StartTime.IsZero() {
		fields = append(fields, zap.Duration("elapsed", time.Since(md.StartTime)))
	}
	return fields
}
