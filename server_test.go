package admin

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_Handler(t *testing.T) {
	server := NewServer(NewServerConfig(), newTestLogger()).
		WithMetrics(NewMetrics("test")).
		WithEndpoints(&pingEndpoint{})

	handler := server.Handler()
	assert.Same(t, handler, server.Handler(), "binding happens once")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Status: UP", rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping/alice", nil))
	assert.Equal(t, "pong alice", rr.Body.String())

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestServerConfig_Addr(t *testing.T) {
	assert.Equal(t, ":8080", NewServerConfig().Addr())
	assert.Equal(t, "localhost:9000", ServerConfig{Host: "localhost", Port: 9000}.Addr())
}
