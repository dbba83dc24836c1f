package http

import (
	"errors"
	"net/http"

	"backoffice/internal/core/domain/model/conflict"
	"backoffice/internal/core/domain/model/ledger"
	"backoffice/internal/core/domain/model/order"
	"backoffice/internal/core/domain/model/undo"
	"backoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeNotFound         = "NOT_FOUND"
	CodeConflict         = "CONFLICT"
	CodeInvalidState     = "INVALID_TRANSITION"
	CodeNothingToUndo    = "NOTHING_TO_UNDO"
	CodeInsufficient     = "INSUFFICIENT_STOCK"
	CodeStaleVersion     = "STALE_VERSION"
	CodeLedgerFailure    = "LEDGER_WRITE_FAILURE"
	CodeInternalError    = "INTERNAL_SERVER_ERROR"
	internalErrorMessage = "internal server error"
)

// mapError translates an application error into a status code and body.
// Not-found is checked before ledger write failures because a failed booking
// on an unknown material carries both.
func mapError(err error) (int, ErrorResponse) {
	var detected *conflict.DetectedError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &detected):
		id := detected.RecordID.Bytes()
		return http.StatusConflict, ErrorResponse{Code: CodeConflict, Message: err.Error(), ConflictID: &id}
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrOrderIsFinal),
		errors.Is(err, order.ErrItemsAreFrozen):
		return http.StatusConflict, ErrorResponse{Code: CodeInvalidState, Message: err.Error()}
	case errors.Is(err, undo.ErrNothingToUndo):
		return http.StatusConflict, ErrorResponse{Code: CodeNothingToUndo, Message: err.Error()}
	case errors.Is(err, ledger.ErrInsufficientStock):
		return http.StatusConflict, ErrorResponse{Code: CodeInsufficient, Message: err.Error()}
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict, ErrorResponse{Code: CodeStaleVersion, Message: err.Error()}
	case errors.Is(err, conflict.ErrRecordAlreadyResolved):
		return http.StatusConflict, ErrorResponse{Code: CodeConflict, Message: err.Error()}
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, ErrorResponse{Code: CodeNotFound, Message: err.Error()}
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, ErrorResponse{Code: CodeBadRequest, Message: err.Error()}
	case errors.Is(err, ledger.ErrWriteFailure):
		return http.StatusInternalServerError, ErrorResponse{Code: CodeLedgerFailure, Message: "ledger write failed"}
	case errors.As(err, &httpErr):
		code := CodeInternalError
		if httpErr.Code < http.StatusInternalServerError {
			code = CodeBadRequest
		}
		if httpErr.Code == http.StatusNotFound {
			code = CodeNotFound
		}
		return httpErr.Code, ErrorResponse{Code: code, Message: http.StatusText(httpErr.Code), Details: errorDetails(httpErr)}
	default:
		return http.StatusInternalServerError, ErrorResponse{Code: CodeInternalError, Message: internalErrorMessage}
	}
}

func errorDetails(e *echo.HTTPError) string {
	if e.Internal != nil {
		return e.Internal.Error()
	}
	if msg, ok := e.Message.(string); ok {
		return msg
	}
	return ""
}

// ErrorHandler is the echo HTTPErrorHandler for the API. Server errors are
// logged with their cause; clients only see a generic message.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := mapError(err)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Msg("request failed")
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		log.Error().Err(writeErr).Msg("write error response")
	}
}
