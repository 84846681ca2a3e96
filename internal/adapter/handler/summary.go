package handler

import (
	stdErrors "errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/summary"
	"github.com/johnquangdev/video-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
	pkgMiddleware "github.com/johnquangdev/video-summarizer/pkg/middleware"
)

const (
	defaultLength = "brief"
	defaultStyle  = entities.StyleBullets
)

// Summary handles summary generation requests
type Summary struct {
	pipeline *pipeline.Pipeline
	sessions sessionUsecase.Service
	logger   *zap.Logger
}

// NewSummaryHandler creates a new summary handler
func NewSummaryHandler(p *pipeline.Pipeline, sessions sessionUsecase.Service, logger *zap.Logger) *Summary {
	return &Summary{
		pipeline: p,
		sessions: sessions,
		logger:   logger,
	}
}

// Create handles POST /v1/summaries
// @Summary      Summarize a video
// @Description  Resolves the video, fetches its transcript and generates a summary. The transcript becomes the active one for the session and the chat history is cleared.
// @Tags         Summaries
// @Accept       json
// @Produce      json
// @Param        request  body      summary.SummarizeRequest  true  "Summarize request"
// @Success      200      {object}  summary.SummaryResponse  "Summary generated"
// @Failure      400      {object}  common.ErrorResponse  "Invalid request or video reference"
// @Failure      422      {object}  common.ErrorResponse  "Video has no transcript"
// @Failure      502      {object}  common.ErrorResponse  "Caption fetch or generation failed"
// @Router       /v1/summaries [post]
func (h *Summary) Create(c echo.Context) error {
	var req summary.SummarizeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrSessionFailed("load", nil))
	}

	next, result, err := h.pipeline.Summarize(c.Request().Context(), sess, toSummarizeInput(req))
	if err != nil {
		switch {
		case stdErrors.Is(err, usecaseErrors.ErrInvalidReference):
			return HandleError(h.logger, c, errors.ErrInvalidReference(req.URL, err))
		case stdErrors.Is(err, usecaseErrors.ErrNoTranscript),
			stdErrors.Is(err, usecaseErrors.ErrGenerationFailure),
			stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
			return HandleError(h.logger, c, err)
		}
		// Anything else comes from talking to the caption source
		return HandleError(h.logger, c, errors.ErrVideoFetchFailed(err))
	}

	if err := h.sessions.Save(c.Request().Context(), next); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("save", err))
	}

	return HandleSuccess(h.logger, c, presenter.ToSummaryResponse(result))
}

func toSummarizeInput(req summary.SummarizeRequest) pipeline.SummarizeInput {
	wordCount := req.WordCount
	if wordCount == 0 {
		length := req.Length
		if length == "" {
			length = defaultLength
		}
		wordCount = entities.SummaryLengths[length]
	}

	style := entities.SummaryStyle(req.Style)
	if style == "" {
		style = defaultStyle
	}

	includeKeyMoments := true
	if req.KeyMoments != nil {
		includeKeyMoments = *req.KeyMoments
	}

	return pipeline.SummarizeInput{
		URL:               req.URL,
		WordCount:         wordCount,
		Style:             style,
		IncludeKeyMoments: includeKeyMoments,
	}
}
