package dto

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
		checkDetails   bool
		expectedField  string
	}{
		{
			name:           "nil error returns 200",
			err:            nil,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "NotFoundError returns 404",
			err:            domain.NewNotFoundError("journal entry", "507f1f77bcf86cd799439011"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrorCodeNotFound,
		},
		{
			name:           "ValidationError returns 400",
			err:            domain.NewValidationError("quote", "must not be empty"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidation,
			checkDetails:   true,
			expectedField:  "quote",
		},
		{
			name:           "ValidationError without field returns 400",
			err:            domain.NewValidationError("", "invalid input"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidation,
		},
		{
			name:           "RateLimitedError returns 429",
			err:            domain.NewRateLimitedError("zen-quotes"),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   ErrorCodeRateLimited,
		},
		{
			name:           "NotConfiguredError returns 500 with its message",
			err:            domain.NewNotConfiguredError("journal", "MONGODB_URI is not set"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrorCodeNotConfigured,
		},
		{
			name:           "UnavailableError returns 503",
			err:            domain.NewUnavailableError("wikipedia", "connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   ErrorCodeUnavailable,
		},
		{
			name:           "unknown error returns 500",
			err:            errors.New("unknown error"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := MapDomainError(tt.err)

			assert.Equal(t, tt.expectedStatus, status)

			if tt.err == nil {
				assert.Nil(t, resp)
				return
			}

			require.NotNil(t, resp)
			assert.Equal(t, tt.expectedCode, resp.Code)

			if tt.checkDetails {
				assert.Contains(t, resp.Details, tt.expectedField)
			}
		})
	}
}

func TestMapDomainError_NotConfiguredKeepsMessage(t *testing.T) {
	_, resp := MapDomainError(domain.NewNotConfiguredError("mood analysis", "OPENAI_API_KEY is not set"))

	require.NotNil(t, resp)
	assert.Contains(t, resp.Message, "OPENAI_API_KEY")
}

func TestMapDomainError_UnknownErrorHidesInternals(t *testing.T) {
	_, resp := MapDomainError(errors.New("pq: password authentication failed"))

	require.NotNil(t, resp)
	assert.NotContains(t, resp.Message, "password")
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "NotFoundError",
			err:            domain.NewNotFoundError("journal entry", "456"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   ErrorCodeNotFound,
		},
		{
			name:           "ValidationError",
			err:            domain.NewValidationError("author", "required"),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   ErrorCodeValidation,
		},
		{
			name:           "RateLimitedError",
			err:            domain.NewRateLimitedError("zen-quotes"),
			expectedStatus: http.StatusTooManyRequests,
			expectedCode:   ErrorCodeRateLimited,
		},
		{
			name:           "generic error returns 500",
			err:            errors.New("internal error"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   ErrorCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

			HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestRespondWithErrorCode(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	RespondWithErrorCode(c, ErrorCodeValidation, "invalid input")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, ErrorCodeValidation, resp.Code)
	assert.Equal(t, "invalid input", resp.Message)
}

func TestRespondWithErrorDetails(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/test", nil)

	RespondWithErrorDetails(c, ErrorCodeInternal, "journal operation failed", "connection reset")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "journal operation failed", resp.Message)
	assert.Equal(t, "connection reset", resp.Details)
}

func TestAbortWithError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	AbortWithError(c, domain.NewNotFoundError("journal entry", "789"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, c.IsAborted())
}
