package pipeline

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/usecase/ai"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/internal/usecase/history"
	"github.com/johnquangdev/video-summarizer/internal/usecase/resolver"
	"github.com/johnquangdev/video-summarizer/pkg/runcontext"
)

// wordsPerMinute is the reading speed used for the read time estimate
const wordsPerMinute = 200

// TranscriptAcquirer fetches the transcript of a resolved video
type TranscriptAcquirer interface {
	Acquire(ctx context.Context, videoID string) (*entities.Transcript, error)
}

// SummarizeInput represents input for a summarize run
type SummarizeInput struct {
	URL               string
	WordCount         int
	Style             entities.SummaryStyle
	IncludeKeyMoments bool
}

// Stats are the figures shown next to a generated summary
type Stats struct {
	SummaryWords    int `json:"summary_words"`
	ReadMinutes     int `json:"read_minutes"`
	TranscriptWords int `json:"transcript_words"`
}

// SummaryResult is the outcome of a summarize run
type SummaryResult struct {
	VideoID    string
	VideoURL   string
	Thumbnail  string
	Language   string
	Summary    string
	KeyMoments string
	// KeyMomentsError is set when key moments were requested but could not
	// be generated; the summary is still returned
	KeyMomentsError error
	Segments        []entities.TranscriptSegment
	Stats           Stats
}

// Pipeline runs the resolve, acquire and generate steps against a session.
// Steps run one after another; nothing is cached between runs.
type Pipeline struct {
	resolver  *resolver.Resolver
	acquirer  TranscriptAcquirer
	generator ai.Service
	history   history.Service
	logger    *zap.Logger
}

// NewPipeline creates a new pipeline
func NewPipeline(
	res *resolver.Resolver,
	acquirer TranscriptAcquirer,
	generator ai.Service,
	historySvc history.Service,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		resolver:  res,
		acquirer:  acquirer,
		generator: generator,
		history:   historySvc,
		logger:    logger,
	}
}

// Summarize resolves the reference, fetches the transcript and generates a
// summary. On success the transcript becomes the active one in the returned
// session. A key moments failure does not discard the summary.
func (p *Pipeline) Summarize(ctx context.Context, sess entities.Session, input SummarizeInput) (entities.Session, *SummaryResult, error) {
	ctx = runcontext.RunBegin(ctx, "summarize", sess.ID)

	videoID, strategy, err := p.resolver.ResolveWith(input.URL)
	if err != nil {
		return sess, nil, err
	}
	ctx = runcontext.WithVideoID(ctx, videoID)
	p.info(ctx, "🚀 Summarize started",
		zap.String("strategy", strategy),
		zap.Int("word_count", input.WordCount),
		zap.String("style", string(input.Style)),
	)

	transcript, err := p.acquirer.Acquire(ctx, videoID)
	if err != nil {
		p.fail(ctx, "acquire", err)
		return sess, nil, err
	}

	summary, err := p.generator.Summary(ctx, transcript.FullText, input.WordCount, input.Style)
	if err != nil {
		p.fail(ctx, "summary", err)
		return sess, nil, err
	}

	result := &SummaryResult{
		VideoID:   videoID,
		VideoURL:  input.URL,
		Thumbnail: resolver.Thumbnail(videoID),
		Language:  transcript.Language,
		Summary:   summary,
		Segments:  transcript.Segments,
		Stats:     ComputeStats(summary, transcript),
	}

	if input.IncludeKeyMoments {
		moments, err := p.generator.KeyMoments(ctx, transcript.FullText)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("⚠️  Key moments unavailable, keeping summary",
					append(runcontext.Fields(ctx), zap.Error(err))...)
			}
			result.KeyMomentsError = err
		} else {
			result.KeyMoments = moments
		}
	}

	next := sess.
		WithTranscript(videoID, input.URL, transcript).
		WithSummary(result.Summary, result.KeyMoments)

	p.info(ctx, "✅ Summarize completed", zap.Int("summary_words", result.Stats.SummaryWords))
	return next, result, nil
}

// MindMap generates a graph description of the active transcript
func (p *Pipeline) MindMap(ctx context.Context, sess entities.Session) (entities.Session, string, error) {
	if !sess.HasTranscript() {
		return sess, "", usecaseErrors.ErrNoActiveTranscript
	}
	ctx = runcontext.WithVideoID(runcontext.RunBegin(ctx, "mind_map", sess.ID), sess.VideoID)

	dot, err := p.generator.MindMap(ctx, sess.Transcript.FullText)
	if err != nil {
		p.fail(ctx, "mind_map", err)
		return sess, "", err
	}
	p.info(ctx, "🧠 Mind map generated", zap.Int("dot_chars", len(dot)))
	return sess.WithMindMap(dot), dot, nil
}

// Ask answers a question about the active transcript and records the turn
func (p *Pipeline) Ask(ctx context.Context, sess entities.Session, question string) (entities.Session, string, error) {
	if !sess.HasTranscript() {
		return sess, "", usecaseErrors.ErrNoActiveTranscript
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return sess, "", fmt.Errorf("%w: question is empty", usecaseErrors.ErrInvalidInput)
	}
	ctx = runcontext.WithVideoID(runcontext.RunBegin(ctx, "chat", sess.ID), sess.VideoID)

	answer, err := p.generator.Answer(ctx, sess.Transcript.FullText, question)
	if err != nil {
		p.fail(ctx, "chat", err)
		return sess, "", err
	}
	p.info(ctx, "💬 Question answered", zap.Int("turn", len(sess.Chat)+1))
	return sess.WithChatTurn(question, answer), answer, nil
}

// ClearChat drops the chat history and keeps the active transcript
func (p *Pipeline) ClearChat(sess entities.Session) entities.Session {
	return sess.ClearChat()
}

// Save persists the active summary and transcript to history
func (p *Pipeline) Save(ctx context.Context, sess entities.Session) (*entities.HistoryRecord, error) {
	if !sess.HasTranscript() {
		return nil, usecaseErrors.ErrNoActiveTranscript
	}
	if strings.TrimSpace(sess.Summary) == "" {
		return nil, fmt.Errorf("%w: %v", usecaseErrors.ErrInvalidInput, entities.ErrEmptySummary)
	}
	ctx = runcontext.WithVideoID(runcontext.RunBegin(ctx, "save", sess.ID), sess.VideoID)

	return p.history.Save(ctx, history.SaveInput{
		VideoID:    sess.VideoID,
		VideoURL:   sess.VideoURL,
		Summary:    sess.Summary,
		Transcript: sess.Transcript,
	})
}

// LoadFromHistory makes a saved transcript the active one. The chat history
// is reset and the saved summary restored.
func (p *Pipeline) LoadFromHistory(ctx context.Context, sess entities.Session, id int64) (entities.Session, *entities.HistoryRecord, error) {
	ctx = runcontext.RunBegin(ctx, "load_history", sess.ID)

	record, err := p.history.Get(ctx, id)
	if err != nil {
		return sess, nil, err
	}
	transcript := &entities.Transcript{
		FullText: record.Transcript,
		Language: record.Language,
		Segments: record.Segments(),
	}
	next := sess.
		WithTranscript(record.VideoID, record.VideoURL, transcript).
		WithSummary(record.Summary, "")

	p.info(runcontext.WithVideoID(ctx, record.VideoID), "📂 Loaded saved summary for chat", zap.Int64("record_id", id))
	return next, record, nil
}

// ComputeStats counts summary and transcript words and estimates read time
func ComputeStats(summary string, transcript *entities.Transcript) Stats {
	words := len(strings.Fields(summary))
	return Stats{
		SummaryWords:    words,
		ReadMinutes:     max(1, words/wordsPerMinute),
		TranscriptWords: transcript.WordCount(),
	}
}

func (p *Pipeline) info(ctx context.Context, msg string, fields ...zap.Field) {
	if p.logger == nil {
		return
	}
	p.logger.Info(msg, append(runcontext.Fields(ctx), fields...)...)
}

func (p *Pipeline) fail(ctx context.Context, step string, err error) {
	if p.logger == nil {
		return
	}
	p.logger.Error("❌ Pipeline step failed",
		append(runcontext.Fields(ctx),
			zap.String("step", step),
			zap.Error(err),
		)...)
}
