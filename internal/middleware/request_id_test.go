package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveWithRequestID runs one request through RequestID and returns the
// ID the handler saw plus the recorder.
func serveWithRequestID(t *testing.T, inbound string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID())
	router.GET("/api/plans", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	if inbound != "" {
		req.Header.Set(RequestIDHeader, inbound)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String(), w
}

func TestRequestID(t *testing.T) {
	t.Run("mints a UUID when the client sends none", func(t *testing.T) {
		id, w := serveWithRequestID(t, "")

		require.NotEmpty(t, id)
		_, err := uuid.Parse(id)
		assert.NoError(t, err)
		assert.Equal(t, id, w.Header().Get(RequestIDHeader))
	})

	t.Run("an inbound ID survives end to end", func(t *testing.T) {
		id, w := serveWithRequestID(t, "req-optimize-001")

		assert.Equal(t, "req-optimize-001", id)
		assert.Equal(t, "req-optimize-001", w.Header().Get(RequestIDHeader))
	})
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func() *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/api/plans", nil)
		return c
	}

	t.Run("empty outside the middleware", func(t *testing.T) {
		assert.Empty(t, GetRequestID(newContext()))
	})

	t.Run("reads the stored ID", func(t *testing.T) {
		c := newContext()
		c.Set(string(RequestIDKey), "req-plan-save-001")

		assert.Equal(t, "req-plan-save-001", GetRequestID(c))
	})
}
