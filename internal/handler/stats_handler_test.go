package handler_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/handler"
	"claimdesk/mocks"
)

func newStatsHandler() (*handler.StatsHandler, *mocks.MockStatsService) {
	mockSvc := new(mocks.MockStatsService)
	return handler.NewStatsHandler(mockSvc), mockSvc
}

func TestStatsHandler_GetStats_Success(t *testing.T) {
	h, mockSvc := newStatsHandler()
	actor := newActor(domain.RoleStaff)

	mockSvc.On("GetStats", mock.Anything, actor).Return(&domain.Stats{TotalClaims: 7, ClaimsInReview: 3}, nil)

	c, w := newTestContext(&actor, http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["total_claims"])
	assert.Equal(t, float64(3), data["claims_in_review"])
	mockSvc.AssertExpectations(t)
}

func TestStatsHandler_GetStats_MissingAuthContext(t *testing.T) {
	h, mockSvc := newStatsHandler()

	c, w := newTestContext(nil, http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockSvc.AssertNumberOfCalls(t, "GetStats", 0)
}

func TestStatsHandler_GetStats_ServiceError(t *testing.T) {
	h, mockSvc := newStatsHandler()
	actor := newActor(domain.RoleAdmin)

	mockSvc.On("GetStats", mock.Anything, actor).Return(nil, errors.New("db error"))

	c, w := newTestContext(&actor, http.MethodGet, "/api/v1/stats", nil)
	h.GetStats(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}
