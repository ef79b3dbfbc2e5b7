package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/platform/ratelimit"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	r := newTestRouter(RequestID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	id := w.Header().Get(HeaderRequestID)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestID_PropagatesExisting(t *testing.T) {
	r := newTestRouter(RequestID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "upstream-id")
	r.ServeHTTP(w, req)

	assert.Equal(t, "upstream-id", w.Header().Get(HeaderRequestID))
}

func TestRequestID_AvailableToClients(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())

	var fromCtx string
	r.GET("/test", func(c *gin.Context) {
		fromCtx = RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderRequestID, "req-abc")
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-abc", fromCtx)
}

func TestCorrelationID_PropagatesExisting(t *testing.T) {
	r := newTestRouter(CorrelationID())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderCorrelationID, "txn-42")
	r.ServeHTTP(w, req)

	assert.Equal(t, "txn-42", w.Header().Get(HeaderCorrelationID))
}

func TestRecovery_ReturnsErrorEnvelope(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := gin.New()
	r.Use(Recovery(logger))
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "an internal error occurred")
}

func TestCORS_SetsHeaders(t *testing.T) {
	r := newTestRouter(CORS("https://quotes.example.com"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://quotes.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Quote-Source")
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	handlerCalled := false

	r := gin.New()
	r.Use(CORS("*"))
	r.OPTIONS("/test", func(c *gin.Context) {
		handlerCalled = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handlerCalled)
}

func TestRateLimit_DeniesOverBudget(t *testing.T) {
	limiter := ratelimit.NewFixedWindow(60*time.Second, 2)
	r := newTestRouter(RateLimit(limiter))

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.9")
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	assert.Equal(t, http.StatusOK, do().Code)

	denied := do()
	assert.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.Equal(t, "60", denied.Header().Get("Retry-After"))
	assert.Contains(t, denied.Body.String(), "too many requests")
}

func TestRateLimit_KeysClientsSeparately(t *testing.T) {
	limiter := ratelimit.NewFixedWindow(60*time.Second, 1)
	r := newTestRouter(RateLimit(limiter))

	do := func(xff string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		if xff != "" {
			req.Header.Set("X-Forwarded-For", xff)
		}
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("203.0.113.9"))
	assert.Equal(t, http.StatusTooManyRequests, do("203.0.113.9"))
	assert.Equal(t, http.StatusOK, do("198.51.100.7"))
}

func TestClientKey_HeaderPrecedence(t *testing.T) {
	newCtx := func(headers map[string]string) *gin.Context {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = req
		return c
	}

	// First hop of X-Forwarded-For wins
	c := newCtx(map[string]string{
		"X-Forwarded-For": "203.0.113.9, 10.0.0.1",
		"X-Real-IP":       "198.51.100.7",
	})
	assert.Equal(t, "203.0.113.9", clientKey(c))

	// X-Real-IP next
	c = newCtx(map[string]string{"X-Real-IP": "198.51.100.7"})
	assert.Equal(t, "198.51.100.7", clientKey(c))

	// No proxy headers: shared bucket, remote address is not consulted
	c = newCtx(nil)
	assert.Equal(t, "unknown", clientKey(c))
}

func TestSimpleTimeout_SetsDeadline(t *testing.T) {
	r := gin.New()
	r.Use(SimpleTimeout(5 * time.Second))

	var hasDeadline bool
	r.GET("/test", func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	r.ServeHTTP(w, req)

	assert.True(t, hasDeadline)
}
