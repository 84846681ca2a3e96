package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/presenter"
	historyUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/history"
	"github.com/johnquangdev/video-summarizer/internal/usecase/pipeline"
	sessionUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/session"
	pkgMiddleware "github.com/johnquangdev/video-summarizer/pkg/middleware"
)

// History handles saved summary requests
type History struct {
	history  historyUsecase.Service
	pipeline *pipeline.Pipeline
	sessions sessionUsecase.Service
	logger   *zap.Logger
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(
	historySvc historyUsecase.Service,
	p *pipeline.Pipeline,
	sessions sessionUsecase.Service,
	logger *zap.Logger,
) *History {
	return &History{
		history:  historySvc,
		pipeline: p,
		sessions: sessions,
		logger:   logger,
	}
}

// List handles GET /v1/history
// @Summary      List saved summaries
// @Description  Returns every saved summary, most recent first
// @Tags         History
// @Produce      json
// @Success      200  {object}  history.RecordListResponse  "Saved summaries"
// @Failure      500  {object}  common.ErrorResponse  "Storage failure"
// @Router       /v1/history [get]
func (h *History) List(c echo.Context) error {
	records, err := h.history.ListAll(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordListResponse(records))
}

// Get handles GET /v1/history/:id
// @Summary      Get a saved summary
// @Description  Returns a saved summary with its transcript and timestamps
// @Tags         History
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  history.RecordResponse  "Saved summary"
// @Failure      404  {object}  common.ErrorResponse  "Not found"
// @Router       /v1/history/{id} [get]
func (h *History) Get(c echo.Context) error {
	id, err := parseRecordID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	record, err := h.history.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponse(record, true))
}

// ToggleFavorite handles PATCH /v1/history/:id/favorite
// @Summary      Toggle favorite
// @Description  Flips the favorite flag of a saved summary
// @Tags         History
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  history.RecordResponse  "Updated record"
// @Failure      404  {object}  common.ErrorResponse  "Not found"
// @Router       /v1/history/{id}/favorite [patch]
func (h *History) ToggleFavorite(c echo.Context) error {
	id, err := parseRecordID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	record, err := h.history.ToggleFavorite(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToRecordResponse(record, false))
}

// Delete handles DELETE /v1/history/:id
// @Summary      Delete a saved summary
// @Tags         History
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  map[string]interface{}  "Deleted"
// @Failure      404  {object}  common.ErrorResponse  "Not found"
// @Router       /v1/history/{id} [delete]
func (h *History) Delete(c echo.Context) error {
	id, err := parseRecordID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.history.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, map[string]interface{}{"id": id, "deleted": true})
}

// Load handles POST /v1/history/:id/load
// @Summary      Load for chat
// @Description  Makes a saved transcript the active one for the session. The chat history is cleared.
// @Tags         History
// @Produce      json
// @Param        id   path      int  true  "Record ID"
// @Success      200  {object}  session.SessionResponse  "Session context"
// @Failure      404  {object}  common.ErrorResponse  "Not found"
// @Router       /v1/history/{id}/load [post]
func (h *History) Load(c echo.Context) error {
	id, err := parseRecordID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrSessionFailed("load", nil))
	}

	next, _, err := h.pipeline.LoadFromHistory(c.Request().Context(), sess, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if err := h.sessions.Save(c.Request().Context(), next); err != nil {
		return HandleError(h.logger, c, errors.ErrSessionFailed("save", err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(next))
}
