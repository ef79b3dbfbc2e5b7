package dto

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/logging"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
// NotConfigured also maps to 500 but keeps its message: a missing secret is a
// deployment defect the operator needs to see verbatim.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := NewErrorResponse(ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Details = validationErr.Field + ": " + validationErr.Message
		}

		return http.StatusBadRequest, resp

	case domain.IsRateLimited(err):
		return http.StatusTooManyRequests, NewErrorResponse(ErrorCodeRateLimited, err.Error())

	case domain.IsNotConfigured(err):
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeNotConfigured, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, err.Error())

	default:
		// Unknown errors get a generic message to avoid leaking internals
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// GetTraceID returns the current trace ID, or "" when tracing is disabled.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	return ""
}

// HandleError writes an error response to the gin.Context.
// It maps domain errors to HTTP responses and includes the trace ID if available.
func HandleError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	// Log internal errors with full details
	if status == http.StatusInternalServerError {
		logger := logging.FromContext(c.Request.Context())
		logger.Error("internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an error response with a specific error code.
// Use this for adapter-level errors (e.g., malformed JSON) that don't
// originate from domain errors.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := NewErrorResponse(code, message)
	errResp.TraceID = GetTraceID(c)

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// RespondWithErrorDetails writes an error response with a details string.
func RespondWithErrorDetails(c *gin.Context, code, message, details string) {
	errResp := NewErrorResponseWithDetails(code, message, details)
	errResp.TraceID = GetTraceID(c)

	c.JSON(HTTPStatusFromCode(code), errResp)
}

// AbortWithError aborts the request chain and writes an error response.
// Use this in middleware when you want to stop further processing.
func AbortWithError(c *gin.Context, err error) {
	status, errResp := MapDomainError(err)
	errResp.TraceID = GetTraceID(c)

	c.AbortWithStatusJSON(status, errResp)
}
