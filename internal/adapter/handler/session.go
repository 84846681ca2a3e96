package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/session"
	"github.com/johnquangdev/video-summarizer/internal/adapter/presenter"
	"github.com/johnquangdev/video-summarizer/internal/domain/entities"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
	pkgMiddleware "github.com/johnquangdev/video-summarizer/pkg/middleware"
)

// Session handles requests against the active video of a session
type Session struct {
	pipeline *pipeline.Pipeline
	sessions sessionUsecase.Service
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(p *pipeline.Pipeline, sessions sessionUsecase.Service, logger *zap.Logger) *Session {
	return &Session{
		pipeline: p,
		sessions: sessions,
		logger:   logger,
	}
}

// Get handles GET /v1/session
// @Summary      Get the session context
// @Description  Returns the active transcript, generated artifacts and chat history of the session
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.SessionResponse  "Session context"
// @Router       /v1/session [get]
func (h *Session) Get(c echo.Context) error {
	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrSessionFailed("load", nil))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(sess))
}

// Reset handles DELETE /v1/session
// @Summary      Reset the session
// @Description  Drops the active transcript, artifacts and chat history
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.SessionResponse  "Empty session"
// @Router       /v1/session [delete]
func (h *Session) Reset(c echo.Context) error {
	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrSessionFailed("load", nil))
	}
	if err := h.sessions.Reset(c.Request().Context(), sess.ID); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("reset", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(entities.NewSession(sess.ID)))
}

// MindMap handles POST /v1/session/mindmap
// @Summary      Generate a mind map
// @Description  Generates a Graphviz DOT mind map of the active transcript
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.MindMapResponse  "Mind map generated"
// @Failure      409  {object}  common.ErrorResponse  "No active transcript"
// @Failure      502  {object}  common.ErrorResponse  "Generation failed"
// @Router       /v1/session/mindmap [post]
func (h *Session) MindMap(c echo.Context) error {
	sess, _ := pkgMiddleware.GetSession(c)

	next, dot, err := h.pipeline.MindMap(c.Request().Context(), sess)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.sessions.Save(c.Request().Context(), next); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("save", err))
	}

	return HandleSuccess(h.logger, c, session.MindMapResponse{VideoID: next.VideoID, DOT: dot})
}

// Ask handles POST /v1/session/chat
// @Summary      Ask about the video
// @Description  Answers a question using the active transcript and appends the turn to the chat history
// @Tags         Session
// @Accept       json
// @Produce      json
// @Param        request  body      session.ChatRequest  true  "Question"
// @Success      200      {object}  session.ChatResponse  "Answer"
// @Failure      400      {object}  common.ErrorResponse  "Empty question"
// @Failure      409      {object}  common.ErrorResponse  "No active transcript"
// @Failure      502      {object}  common.ErrorResponse  "Generation failed"
// @Router       /v1/session/chat [post]
func (h *Session) Ask(c echo.Context) error {
	var req session.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}
	sess, _ := pkgMiddleware.GetSession(c)

	next, answer, err := h.pipeline.Ask(c.Request().Context(), sess, req.Question)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.sessions.Save(c.Request().Context(), next); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("save", err))
	}

	return HandleSuccess(h.logger, c, session.ChatResponse{
		Answer: answer,
		Chat:   presenter.ToChatTurnResponses(next.Chat),
	})
}

// ClearChat handles DELETE /v1/session/chat
// @Summary      Clear chat history
// @Description  Drops the chat history and keeps the active transcript
// @Tags         Session
// @Produce      json
// @Success      200  {object}  session.SessionResponse  "Session context"
// @Router       /v1/session/chat [delete]
func (h *Session) ClearChat(c echo.Context) error {
	sess, _ := pkgMiddleware.GetSession(c)

	next := h.pipeline.ClearChat(sess)
	if err := h.sessions.Save(c.Request().Context(), next); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("save", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(next))
}

// Save handles POST /v1/session/save
// @Summary      Save to history
// @Description  Stores the active summary and its transcript in the history
// @Tags         Session
// @Produce      json
// @Success      200  {object}  history.RecordResponse  "Saved record"
// @Failure      409  {object}  common.ErrorResponse  "No active transcript"
// @Failure      500  {object}  common.ErrorResponse  "Storage failure"
// @Router       /v1/session/save [post]
func (h *Session) Save(c echo.Context) error {
	sess, _ := pkgMiddleware.GetSession(c)

	record, err := h.pipeline.Save(c.Request().Context(), sess)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponse(record, false))
}
