package handler

import (
	"github.com/gin-gonic/gin"

	"claimdesk/internal/service"
)

// GroupHandler handles client group endpoints.
type GroupHandler struct {
	groupService service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// Create handles POST /api/v1/groups
// @Summary Create a client group
// @Tags groups
// @Accept json
// @Produce json
// @Param request body CreateGroupRequest true "Group details"
// @Success 201 {object} Response{data=domain.ClientGroup}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Name already exists"
// @Security BearerAuth
// @Router /groups [post]
func (h *GroupHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.CreateGroupInput
	if !bindJSON(c, &input) {
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, group)
}

// List handles GET /api/v1/groups
// @Summary List client groups
// @Tags groups
// @Produce json
// @Param q query string false "Search by name"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.ClientGroup,meta=PagMeta}
// @Security BearerAuth
// @Router /groups [get]
func (h *GroupHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	groups, total, err := h.groupService.List(c.Request.Context(), actor.TenantID, c.Query("q"), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, groups, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/groups/:id
// @Summary Get a client group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID (UUID)"
// @Success 200 {object} Response{data=domain.ClientGroup}
// @Failure 404 {object} ErrorResponseBody "Group not found"
// @Security BearerAuth
// @Router /groups/{id} [get]
func (h *GroupHandler) GetByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id", "group")
	if !ok {
		return
	}

	group, err := h.groupService.GetByID(c.Request.Context(), actor.TenantID, groupID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, group)
}

// Update handles PUT /api/v1/groups/:id
// @Summary Update a client group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID (UUID)"
// @Param request body UpdateGroupRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.ClientGroup}
// @Failure 404 {object} ErrorResponseBody "Group not found"
// @Failure 409 {object} ErrorResponseBody "Name already exists"
// @Security BearerAuth
// @Router /groups/{id} [put]
func (h *GroupHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id", "group")
	if !ok {
		return
	}
	var input service.UpdateGroupInput
	if !bindJSON(c, &input) {
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), actor.TenantID, groupID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, group)
}

// Trash handles POST /api/v1/groups/trash
// @Summary Move groups to the trash
// @Tags groups
// @Accept json
// @Produce json
// @Param request body BatchIDsRequest true "Group IDs"
// @Success 200 {object} Response{data=service.BatchResult}
// @Security BearerAuth
// @Router /groups/trash [post]
func (h *GroupHandler) Trash(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.BatchIDsInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.groupService.Trash(c.Request.Context(), actor.TenantID, input.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// ListMembers handles GET /api/v1/groups/:id/members
// @Summary List group members
// @Tags groups
// @Produce json
// @Param id path string true "Group ID (UUID)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.User,meta=PagMeta}
// @Security BearerAuth
// @Router /groups/{id}/members [get]
func (h *GroupHandler) ListMembers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id", "group")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	users, total, err := h.groupService.ListMembers(c.Request.Context(), actor.TenantID, groupID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// AddMembers handles POST /api/v1/groups/:id/members
// @Summary Add clients to a group
// @Tags groups
// @Accept json
// @Produce json
// @Param id path string true "Group ID (UUID)"
// @Param request body GroupMembersRequest true "Client user IDs"
// @Success 200 {object} Response{data=service.BatchResult}
// @Failure 400 {object} ErrorResponseBody "Only clients can be members"
// @Security BearerAuth
// @Router /groups/{id}/members [post]
func (h *GroupHandler) AddMembers(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id", "group")
	if !ok {
		return
	}
	var input service.GroupMembersInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.groupService.AddMembers(c.Request.Context(), actor.TenantID, groupID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// RemoveMember handles DELETE /api/v1/groups/:id/members/:userId
// @Summary Remove a client from a group
// @Tags groups
// @Produce json
// @Param id path string true "Group ID (UUID)"
// @Param userId path string true "User ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Not a member"
// @Security BearerAuth
// @Router /groups/{id}/members/{userId} [delete]
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	groupID, ok := parseIDParam(c, "id", "group")
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "userId", "user")
	if !ok {
		return
	}

	if err := h.groupService.RemoveMember(c.Request.Context(), actor.TenantID, groupID, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "member removed"})
}
