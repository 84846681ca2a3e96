package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/pkg/runcontext"
)

// Completer sends a single prompt to a language model
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Params carries the per-kind generation inputs
type Params struct {
	WordCount int
	Style     entities.SummaryStyle
	Question  string
}

// Service generates text artifacts from a transcript
type Service interface {
	Generate(ctx context.Context, kind entities.ArtifactKind, text string, params Params) (string, error)
	Summary(ctx context.Context, text string, wordCount int, style entities.SummaryStyle) (string, error)
	KeyMoments(ctx context.Context, text string) (string, error)
	MindMap(ctx context.Context, text string) (string, error)
	Answer(ctx context.Context, text, question string) (string, error)
}

type aiService struct {
	completer Completer
	parser    *Parser
	logger    *zap.Logger
}

// NewAIService constructs a new artifact generator
func NewAIService(completer Completer, logger *zap.Logger) Service {
	return &aiService{
		completer: completer,
		parser:    NewParser(),
		logger:    logger,
	}
}

// Generate builds the prompt for kind, sends it once and post-processes the
// output. Any failure or empty output is a generation failure; nothing is retried.
func (s *aiService) Generate(ctx context.Context, kind entities.ArtifactKind, text string, params Params) (string, error) {
	prompt, err := buildPrompt(kind, text, params)
	if err != nil {
		return "", err
	}

	start := time.Now()
	raw, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		s.logFailure(ctx, kind, err)
		return "", fmt.Errorf("%w: %s: %v", usecaseErrors.ErrGenerationFailure, kind, err)
	}

	var out string
	if kind == entities.ArtifactMindMap {
		out, err = s.parser.ParseGraph(raw)
	} else {
		out, err = s.parser.CleanText(raw)
	}
	if err != nil {
		s.logFailure(ctx, kind, err)
		return "", fmt.Errorf("%w: %s: %v", usecaseErrors.ErrGenerationFailure, kind, err)
	}

	if s.logger != nil {
		s.logger.Info("🤖 Artifact generated",
			append(runcontext.Fields(ctx),
				zap.String("kind", string(kind)),
				zap.Int("prompt_chars", len(prompt)),
				zap.Int("output_chars", len(out)),
				zap.Duration("duration", time.Since(start)),
			)...)
	}
	return out, nil
}

func (s *aiService) Summary(ctx context.Context, text string, wordCount int, style entities.SummaryStyle) (string, error) {
	return s.Generate(ctx, entities.ArtifactSummary, text, Params{WordCount: wordCount, Style: style})
}

func (s *aiService) KeyMoments(ctx context.Context, text string) (string, error) {
	return s.Generate(ctx, entities.ArtifactKeyMoments, text, Params{})
}

func (s *aiService) MindMap(ctx context.Context, text string) (string, error) {
	return s.Generate(ctx, entities.ArtifactMindMap, text, Params{})
}

func (s *aiService) Answer(ctx context.Context, text, question string) (string, error) {
	return s.Generate(ctx, entities.ArtifactChatAnswer, text, Params{Question: question})
}

func (s *aiService) logFailure(ctx context.Context, kind entities.ArtifactKind, err error) {
	if s.logger == nil {
		return
	}
	s.logger.Error("❌ Artifact generation failed",
		append(runcontext.Fields(ctx),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)...)
}

func buildPrompt(kind entities.ArtifactKind, text string, params Params) (string, error) {
	if !kind.IsValid() {
		return "", fmt.Errorf("%w: %w: %q", usecaseErrors.ErrInvalidInput, entities.ErrUnknownArtifact, kind)
	}

	switch kind {
	case entities.ArtifactSummary:
		if !validWordCount(params.WordCount) {
			return "", fmt.Errorf("%w: %w: %d", usecaseErrors.ErrInvalidInput, entities.ErrUnsupportedLength, params.WordCount)
		}
		return SummaryPrompt(params.WordCount, params.Style, text), nil
	case entities.ArtifactKeyMoments:
		return KeyMomentsPrompt(text), nil
	case entities.ArtifactMindMap:
		return MindMapPrompt(text), nil
	}

	if strings.TrimSpace(params.Question) == "" {
		return "", fmt.Errorf("%w: question is empty", usecaseErrors.ErrInvalidInput)
	}
	return ChatPrompt(text, params.Question), nil
}

func validWordCount(n int) bool {
	for _, v := range entities.SummaryLengths {
		if v == n {
			return true
		}
	}
	return false
}
