package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"claimdesk/internal/domain"
	"claimdesk/internal/handler"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

func newTrashHandler() (*handler.TrashHandler, *mocks.MockTrashService) {
	mockSvc := new(mocks.MockTrashService)
	return handler.NewTrashHandler(mockSvc), mockSvc
}

func TestTrashHandler_List(t *testing.T) {
	h, mockSvc := newTrashHandler()
	actor := newActor(domain.RoleAdmin)
	deleted := time.Now().Add(-48 * time.Hour)

	mockSvc.On("List", mock.Anything, actor.TenantID, domain.TrashKindClaim, 0, 20).Return([]domain.TrashItem{
		{ID: uuid.New(), Kind: domain.TrashKindClaim, DeletedAt: deleted, DaysRemaining: 28},
	}, 1, nil)

	c, w := newTestContext(&actor, http.MethodGet, "/api/v1/trash?kind=claim", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	items := resp.Data.([]interface{})
	assert.Equal(t, float64(28), items[0].(map[string]interface{})["days_remaining"])
	mockSvc.AssertExpectations(t)
}

func TestTrashHandler_List_InvalidKind(t *testing.T) {
	h, mockSvc := newTrashHandler()
	actor := newActor(domain.RoleAdmin)

	mockSvc.On("List", mock.Anything, actor.TenantID, domain.TrashKind("file"), 0, 20).
		Return(nil, 0, domain.ErrInvalidTrashKind)

	c, w := newTestContext(&actor, http.MethodGet, "/api/v1/trash?kind=file", nil)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_TRASH_KIND", errorCode(t, w))
}

func TestTrashHandler_Restore(t *testing.T) {
	h, mockSvc := newTrashHandler()
	actor := newActor(domain.RoleAdmin)
	id := uuid.New()

	mockSvc.On("Restore", mock.Anything, actor.TenantID, domain.TrashKindUser, id).Return(domain.ErrDuplicateEmail)

	c, w := newTestContext(&actor, http.MethodPost, "/api/v1/trash/user/x/restore", nil)
	c.Params = gin.Params{{Key: "kind", Value: "user"}, {Key: "id", Value: id.String()}}
	h.Restore(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestTrashHandler_Purge(t *testing.T) {
	h, mockSvc := newTrashHandler()
	actor := newActor(domain.RoleSuperAdmin)
	id := uuid.New()

	mockSvc.On("Purge", mock.Anything, actor.TenantID, domain.TrashKindGroup, id).Return(domain.ErrNotInTrash)

	c, w := newTestContext(&actor, http.MethodDelete, "/api/v1/trash/group/x", nil)
	c.Params = gin.Params{{Key: "kind", Value: "group"}, {Key: "id", Value: id.String()}}
	h.Purge(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_IN_TRASH", errorCode(t, w))
}

func TestTrashHandler_Empty(t *testing.T) {
	h, mockSvc := newTrashHandler()
	actor := newActor(domain.RoleAdmin)

	mockSvc.On("Empty", mock.Anything, actor.TenantID).Return(&service.BatchResult{Affected: 9}, nil)

	c, w := newTestContext(&actor, http.MethodDelete, "/api/v1/trash", nil)
	h.Empty(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(9), data["affected"])
}
