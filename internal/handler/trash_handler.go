package handler

import (
	"github.com/gin-gonic/gin"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// TrashHandler handles the trash bin endpoints.
type TrashHandler struct {
	trashService service.TrashService
}

// NewTrashHandler creates a new TrashHandler.
func NewTrashHandler(trashService service.TrashService) *TrashHandler {
	return &TrashHandler{trashService: trashService}
}

// List handles GET /api/v1/trash
// @Summary List trashed items
// @Description Every item carries expires_at and days_remaining before it is purged
// @Tags trash
// @Produce json
// @Param kind query string false "user, group or claim"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.TrashItem,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Invalid kind"
// @Security BearerAuth
// @Router /trash [get]
func (h *TrashHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	items, total, err := h.trashService.List(c.Request.Context(), actor.TenantID, domain.TrashKind(c.Query("kind")), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Restore handles POST /api/v1/trash/:kind/:id/restore
// @Summary Restore a trashed item
// @Tags trash
// @Produce json
// @Param kind path string true "user, group or claim"
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not in trash"
// @Failure 409 {object} ErrorResponseBody "Email or name taken since deletion"
// @Security BearerAuth
// @Router /trash/{kind}/{id}/restore [post]
func (h *TrashHandler) Restore(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "item")
	if !ok {
		return
	}

	if err := h.trashService.Restore(c.Request.Context(), actor.TenantID, domain.TrashKind(c.Param("kind")), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "item restored"})
}

// Purge handles DELETE /api/v1/trash/:kind/:id
// @Summary Permanently delete a trashed item
// @Tags trash
// @Produce json
// @Param kind path string true "user, group or claim"
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not in trash"
// @Security BearerAuth
// @Router /trash/{kind}/{id} [delete]
func (h *TrashHandler) Purge(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "item")
	if !ok {
		return
	}

	if err := h.trashService.Purge(c.Request.Context(), actor.TenantID, domain.TrashKind(c.Param("kind")), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "item permanently deleted"})
}

// Empty handles DELETE /api/v1/trash
// @Summary Empty the trash
// @Tags trash
// @Produce json
// @Success 200 {object} Response{data=service.BatchResult}
// @Security BearerAuth
// @Router /trash [delete]
func (h *TrashHandler) Empty(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	res, err := h.trashService.Empty(c.Request.Context(), actor.TenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}
