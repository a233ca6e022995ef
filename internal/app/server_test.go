//go:build !integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// startServer runs the server in the background and returns the channel
// its Run error lands on.
func startServer(server *Server) <-chan error {
	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Run()
	}()
	return errChan
}

func sendSIGTERM() {
	proc, _ := os.FindProcess(os.Getpid())
	_ = proc.Signal(syscall.SIGTERM)
}

func TestNewServer(t *testing.T) {
	server := NewServer(okHandler(), "8080")

	require.NotNil(t, server)
	require.NotNil(t, server.httpServer)
	assert.Equal(t, ":8080", server.httpServer.Addr)
	assert.Equal(t, 15*time.Second, server.httpServer.ReadTimeout)
	assert.Equal(t, 15*time.Second, server.httpServer.WriteTimeout)
	assert.Equal(t, 60*time.Second, server.httpServer.IdleTimeout)
	assert.Equal(t, 10*time.Second, server.shutdownTimeout)
}

func TestServer_Shutdown(t *testing.T) {
	server := NewServer(okHandler(), "8080")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = server.httpServer.Shutdown(ctx)
	}()

	assert.NoError(t, server.Shutdown())
}

func TestServer_Run(t *testing.T) {
	handler := okHandler()
	errChan := startServer(NewServer(handler, "0"))

	time.Sleep(100 * time.Millisecond)

	// The handler itself keeps serving while the listener is up.
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	sendSIGTERM()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestServer_Run_WithError(t *testing.T) {
	errChan := startServer(NewServer(okHandler(), "invalid-port"))

	select {
	case err := <-errChan:
		assert.Error(t, err)
	case <-time.After(time.Second):
		sendSIGTERM()
		time.Sleep(100 * time.Millisecond)
	}
}

func TestServer_Run_GracefulShutdown(t *testing.T) {
	errChan := startServer(NewServer(okHandler(), "0"))

	time.Sleep(50 * time.Millisecond)
	sendSIGTERM()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		require.Fail(t, "server did not shut down gracefully")
	}
}
