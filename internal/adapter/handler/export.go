package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/session"
	"github.com/johnquangdev/video-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/video-summarizer/internal/usecase/export"
	historyUsecase "github.com/johnquangdev/video-summarizer/internal/usecase/history"
	pkgMiddleware "github.com/johnquangdev/video-summarizer/pkg/middleware"
	"github.com/johnquangdev/video-summarizer/pkg/validator"
)

// ExportPublisher stores rendered exports and hands out download URLs
type ExportPublisher interface {
	UploadExport(ctx context.Context, objectName string, body []byte, contentType string) (string, error)
	ListExports(ctx context.Context, prefix string) ([]string, error)
}

// Export handles summary export requests
type Export struct {
	history   historyUsecase.Service
	publisher ExportPublisher
	now       func() time.Time
	logger    *zap.Logger
}

// NewExportHandler creates a new export handler. publisher may be nil, in
// which case publishing reports the feature as unavailable.
func NewExportHandler(historySvc historyUsecase.Service, publisher ExportPublisher, logger *zap.Logger) *Export {
	return &Export{
		history:   historySvc,
		publisher: publisher,
		now:       time.Now,
		logger:    logger,
	}
}

// Download handles GET /v1/session/export
// @Summary      Download the active summary
// @Description  Renders the active summary as txt, md or pdf
// @Tags         Export
// @Produce      plain
// @Produce      application/pdf
// @Param        format  query  string  false  "txt, md or pdf"  default(txt)
// @Success      200  {file}    file  "Export file"
// @Failure      409  {object}  common.ErrorResponse  "No active transcript"
// @Router       /v1/session/export [get]
func (h *Export) Download(c echo.Context) error {
	rendered, err := h.renderSession(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return h.attach(c, rendered)
}

// DownloadRecord handles GET /v1/history/:id/export
// @Summary      Download a saved summary
// @Description  Renders a saved summary as txt, md or pdf
// @Tags         Export
// @Produce      plain
// @Produce      application/pdf
// @Param        id      path   int     true   "Record ID"
// @Param        format  query  string  false  "txt, md or pdf"  default(txt)
// @Success      200  {file}    file  "Export file"
// @Failure      404  {object}  common.ErrorResponse  "Not found"
// @Router       /v1/history/{id}/export [get]
func (h *Export) DownloadRecord(c echo.Context) error {
	id, err := parseRecordID(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	format, err := h.format(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	record, err := h.history.Get(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	rendered, err := export.Render(format, export.FromRecord(record))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrExportFailed(string(format), err))
	}
	return h.attach(c, rendered)
}

// Publish handles POST /v1/session/export/publish
// @Summary      Publish the active summary
// @Description  Uploads the rendered export to object storage and returns a presigned download URL
// @Tags         Export
// @Produce      json
// @Param        format  query  string  false  "txt, md or pdf"  default(txt)
// @Success      200  {object}  session.PublishResponse  "Published export"
// @Failure      409  {object}  common.ErrorResponse  "No active transcript"
// @Failure      503  {object}  common.ErrorResponse  "Publishing not configured"
// @Router       /v1/session/export/publish [post]
func (h *Export) Publish(c echo.Context) error {
	if h.publisher == nil {
		return HandleError(h.logger, c, errors.ErrExportUnavailable())
	}
	rendered, err := h.renderSession(c)
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	sess, _ := pkgMiddleware.GetSession(c)
	object := storage.ExportObjectName(sess.ID, rendered.Filename, h.now())
	url, err := h.publisher.UploadExport(c.Request().Context(), object, rendered.Body, rendered.ContentType)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("upload export", err))
	}

	if h.logger != nil {
		h.logger.Info("📤 Export published",
			zap.String("session_id", sess.ID),
			zap.String("object", object),
			zap.Int("bytes", len(rendered.Body)),
		)
	}
	return HandleSuccess(h.logger, c, session.PublishResponse{
		Object:   object,
		Filename: rendered.Filename,
		URL:      url,
	})
}

// ListPublished handles GET /v1/session/exports
// @Summary      List published exports
// @Description  Lists the exports this session has published to object storage
// @Tags         Export
// @Produce      json
// @Success      200  {object}  session.ExportListResponse  "Published exports"
// @Failure      503  {object}  common.ErrorResponse  "Publishing not configured"
// @Router       /v1/session/exports [get]
func (h *Export) ListPublished(c echo.Context) error {
	if h.publisher == nil {
		return HandleError(h.logger, c, errors.ErrExportUnavailable())
	}
	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return HandleError(h.logger, c, errors.ErrSessionFailed("load", nil))
	}

	objects, err := h.publisher.ListExports(c.Request().Context(), storage.SessionExportPrefix(sess.ID))
	if err != nil {
		return HandleError(h.logger, c, errors.ErrStorageFailed("list exports", err))
	}
	if objects == nil {
		objects = []string{}
	}
	return HandleSuccess(h.logger, c, session.ExportListResponse{Objects: objects})
}

func (h *Export) renderSession(c echo.Context) (*export.Rendered, error) {
	format, err := h.format(c)
	if err != nil {
		return nil, err
	}
	sess, ok := pkgMiddleware.GetSession(c)
	if !ok {
		return nil, errors.ErrSessionFailed("load", nil)
	}
	doc, err := export.FromSession(sess, h.now())
	if err != nil {
		return nil, err
	}
	rendered, err := export.Render(format, doc)
	if err != nil {
		return nil, errors.ErrExportFailed(string(format), err)
	}
	return rendered, nil
}

func (h *Export) format(c echo.Context) (export.Format, error) {
	// Query params are bound explicitly; echo's Bind skips them on POST
	var q session.ExportQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return "", errors.ErrInvalidPayload().WithDetail("bind", err.Error())
	}
	if err := c.Validate(&q); err != nil {
		return "", errors.ErrInvalidArgument(validator.Describe(err))
	}
	if q.Format == "" {
		return export.FormatText, nil
	}
	return export.ParseFormat(q.Format)
}

func (h *Export) attach(c echo.Context, rendered *export.Rendered) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	return c.Blob(http.StatusOK, rendered.ContentType, rendered.Body)
}
