package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// serveTimed runs one request through mw against a handler that sleeps for
// delay before responding 200.
func serveTimed(t *testing.T, mw gin.HandlerFunc, delay time.Duration, inspect func(*gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(mw)
	router.GET("/api/plan/optimize", func(c *gin.Context) {
		if inspect != nil {
			inspect(c)
		}
		if delay > 0 {
			time.Sleep(delay)
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/plan/optimize", nil))
	return w
}

func TestDefaultTimeoutConfig(t *testing.T) {
	cfg := DefaultTimeoutConfig()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "Request timeout", cfg.ErrorMessage)
}

func TestTimeout_RequestCompletesInTime(t *testing.T) {
	mw := Timeout(TimeoutConfig{Timeout: time.Second, ErrorMessage: "timeout"})

	t.Run("short optimization completes", func(t *testing.T) {
		w := serveTimed(t, mw, 10*time.Millisecond, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("immediate response completes", func(t *testing.T) {
		w := serveTimed(t, mw, 0, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestTimeoutWithDuration(t *testing.T) {
	for _, timeout := range []time.Duration{time.Second, 5 * time.Second, 100 * time.Millisecond} {
		w := serveTimed(t, TimeoutWithDuration(timeout), 0, nil)
		assert.Equal(t, http.StatusOK, w.Code, "timeout %s", timeout)
	}
}

func TestTimeout_ContextHasDeadline(t *testing.T) {
	mw := Timeout(TimeoutConfig{Timeout: time.Second, ErrorMessage: "timeout"})

	hasDeadline := false
	w := serveTimed(t, mw, 0, func(c *gin.Context) {
		_, hasDeadline = c.Request.Context().Deadline()
	})

	assert.True(t, hasDeadline, "handler context should carry the deadline")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeout_FastRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Timeout(TimeoutConfig{Timeout: 100 * time.Millisecond, ErrorMessage: "timeout"}))
	router.GET("/api/foods", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// A burst of quick catalog reads all finish inside the window.
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/foods", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
