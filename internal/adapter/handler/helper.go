package handler

import (
	stdErrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/video-summarizer/errors"
	"github.com/johnquangdev/video-summarizer/internal/adapter/dto/common"
	usecaseErrors "github.com/johnquangdev/video-summarizer/internal/usecase/errors"
	"github.com/johnquangdev/video-summarizer/pkg/validator"
)

// getRequestID tries to read X-Request-ID from the request, then the response
func getRequestID(c echo.Context) string {
	if c == nil || c.Request() == nil {
		return ""
	}
	if id := c.Request().Header.Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

// HandleSuccess writes a standardized success response using provided logger
func HandleSuccess(logger *zap.Logger, c echo.Context, data interface{}) error {
	resp := common.SuccessResponse{
		Code:    int(errors.ErrorCode_HTTP_OK),
		Message: "success",
		Data:    data,
	}

	if logger != nil {
		logger.Info("http.response.success",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
		)
	}

	return c.JSON(http.StatusOK, resp)
}

// HandleError centralizes error handling and logging using provided logger
func HandleError(logger *zap.Logger, c echo.Context, err error) error {
	appErr := toAppError(err)

	if logger != nil {
		logger.Error("http.response.error",
			zap.String("request_id", getRequestID(c)),
			zap.String("path", c.Path()),
			zap.Any("app_code", appErr.Code),
			zap.Error(err),
		)
	}

	info := ""
	if appErr.Raw != nil {
		info = appErr.Raw.Error()
	}

	return c.JSON(appErr.HTTPCode, common.ErrorResponse{
		Code:    appErr.Code,
		Message: appErr.Message,
		Info:    info,
		Details: appErr.Details,
	})
}

// toAppError maps use case errors to their HTTP representation
func toAppError(err error) errors.AppError {
	var appErr errors.AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	switch {
	case stdErrors.Is(err, usecaseErrors.ErrInvalidReference):
		return errors.ErrInvalidReference("", err)
	case stdErrors.Is(err, usecaseErrors.ErrNoTranscript):
		return errors.ErrNoTranscript("", err)
	case stdErrors.Is(err, usecaseErrors.ErrGenerationFailure):
		return errors.ErrGenerationFailed("", err)
	case stdErrors.Is(err, usecaseErrors.ErrNoActiveTranscript):
		return errors.ErrNoActiveTranscript()
	case stdErrors.Is(err, usecaseErrors.ErrNotFound):
		return errors.ErrNotFound("Summary")
	case stdErrors.Is(err, usecaseErrors.ErrInvalidInput):
		return errors.ErrInvalidArgument(err.Error())
	case stdErrors.Is(err, usecaseErrors.ErrStorageFailure):
		return errors.ErrDBQueryFailed("summaries", err)
	case stdErrors.Is(err, usecaseErrors.ErrSessionNotFound):
		return errors.ErrSessionFailed("load", err)
	}
	return errors.ErrInternal(err)
}

// bindAndValidate binds the request into req and runs struct validation
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errors.ErrInvalidPayload().WithDetail("bind", err.Error())
	}
	if err := c.Validate(req); err != nil {
		return errors.ErrInvalidArgument(validator.Describe(err))
	}
	return nil
}

// parseRecordID reads the :id path parameter
func parseRecordID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidArgument("id must be a positive integer")
	}
	return id, nil
}
