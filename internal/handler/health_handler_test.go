package handler_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"claimdesk/internal/handler"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{err: errors.New("down")})

	c, w := newTestContext(nil, http.MethodGet, "/healthz", nil)
	h.Liveness(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHealthHandler_Readiness(t *testing.T) {
	c, w := newTestContext(nil, http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{}).Readiness(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newTestContext(nil, http.MethodGet, "/readyz", nil)
	handler.NewHealthHandler(stubPinger{err: errors.New("dial tcp: refused")}).Readiness(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database not reachable")
}
