package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phf/backend/internal/interfaces/http/router"
)

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping() error { return s.err }

func newSystemRouter(db *stubPinger) *gin.Engine {
	engine := gin.New()
	r := router.New(engine, "", nil)
	r.Register(NewSystemHandler(db, "pharmacy-backend", "test"))
	return engine
}

func TestHealthOK(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	w := performRequest(engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
	assert.Equal(t, "ok", data["database"])
}

func TestHealthDegradedWhenDatabaseUnreachable(t *testing.T) {
	engine := newSystemRouter(&stubPinger{err: errors.New("connection refused")})

	w := performRequest(engine, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	resp := decodeResponse(t, w)
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "degraded", data["status"])
	assert.Equal(t, "unreachable", data["database"])
}

func TestPing(t *testing.T) {
	engine := newSystemRouter(&stubPinger{})

	w := performRequest(engine, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
