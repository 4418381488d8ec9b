package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/campusmarket/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(context.Context) error {
	return p.err
}

func decodeHealth(t *testing.T, raw any) HealthResponse {
	t.Helper()
	b, err := json.Marshal(raw)
	require.NoError(t, err)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(b, &health))
	return health
}

func TestSystemHandler_Health(t *testing.T) {
	h := NewSystemHandler("campus-market", "1.2.3", fakePinger{})
	c, w := newTestContext(t)

	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	health := decodeHealth(t, resp.Data)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "campus-market", health.Name)
	assert.Equal(t, "1.2.3", health.Version)
	assert.Equal(t, "ok", health.Database)
	assert.NotEmpty(t, health.GoVersion)
}

func TestSystemHandler_HealthDatabaseDown(t *testing.T) {
	h := NewSystemHandler("campus-market", "1.2.3", fakePinger{err: errors.New("dial tcp: refused")})
	c, w := newTestContext(t)

	h.Health(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeServiceUnavailable, resp.Error.Code)
	assert.Equal(t, "unreachable", decodeHealth(t, resp.Data).Database)
}

func TestSystemHandler_HealthWithoutDatabase(t *testing.T) {
	h := NewSystemHandler("campus-market", "dev", nil)
	c, w := newTestContext(t)

	h.Health(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
