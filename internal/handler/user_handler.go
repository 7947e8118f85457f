package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// UserHandler handles user and agent management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Create handles POST /api/v1/users
// @Summary Create a user
// @Description Create a user with one or more emails (admin only). Only a superadmin may create superadmins.
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User details"
// @Success 201 {object} Response{data=domain.User} "User created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Failure 409 {object} ErrorResponseBody "Email already exists"
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.CreateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, user)
}

// List handles GET /api/v1/users
// @Summary List users
// @Tags users
// @Produce json
// @Param role query string false "Role filter"
// @Param q query string false "Search over name and email"
// @Param is_active query bool false "Active flag"
// @Param group_id query string false "Group ID"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.User,meta=PagMeta} "List of users"
// @Failure 403 {object} ErrorResponseBody "Forbidden - admin only"
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	filter := domain.UserFilter{
		Role:   domain.UserRole(c.Query("role")),
		Search: c.Query("q"),
	}
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "is_active must be true or false")
			return
		}
		filter.IsActive = &active
	}
	if v := c.Query("group_id"); v != "" {
		groupID, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid group ID")
			return
		}
		filter.GroupID = &groupID
	}
	offset, limit := parsePagination(c)

	users, total, err := h.userService.List(c.Request.Context(), actor.TenantID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, users, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/users/:id
// @Summary Get user by ID
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=domain.User} "User details"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), actor.TenantID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Update handles PUT /api/v1/users/:id
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.User} "Updated user"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	var input service.UpdateUserInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), actor, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ReplaceEmails handles PUT /api/v1/users/:id/emails
// @Summary Replace a user's emails
// @Description Exactly one entry must be primary; addresses are compared case-insensitively
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param request body ReplaceEmailsRequest true "Email set"
// @Success 200 {object} Response{data=domain.User}
// @Failure 400 {object} ErrorResponseBody "Invalid email set"
// @Failure 409 {object} ErrorResponseBody "Email used by another user"
// @Security BearerAuth
// @Router /users/{id}/emails [put]
func (h *UserHandler) ReplaceEmails(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	var input service.ReplaceEmailsInput
	if !bindJSON(c, &input) {
		return
	}

	user, err := h.userService.ReplaceEmails(c.Request.Context(), actor, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// Delete handles DELETE /api/v1/users/:id
// @Summary Move a user to the trash
// @Tags users
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 400 {object} ErrorResponseBody "Cannot trash yourself"
// @Failure 404 {object} ErrorResponseBody "User not found"
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}

	if err := h.userService.Trash(c.Request.Context(), actor, userID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "user moved to trash"})
}

// Batch handles POST /api/v1/users/batch
// @Summary Apply an action to many users
// @Tags users
// @Accept json
// @Produce json
// @Param request body BatchUsersRequest true "Action and user IDs"
// @Success 200 {object} Response{data=service.BatchResult}
// @Failure 400 {object} ErrorResponseBody "Invalid action"
// @Security BearerAuth
// @Router /users/batch [post]
func (h *UserHandler) Batch(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.BatchUsersInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.userService.Batch(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// UploadAvatar handles POST /api/v1/users/:id/avatar
// @Summary Upload a user's avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "User ID (UUID)"
// @Param file formData file true "JPG or PNG image"
// @Success 200 {object} Response{data=domain.User}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /users/{id}/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id", "user")
	if !ok {
		return
	}
	upload, done, ok := formFile(c)
	if !ok {
		return
	}
	defer done()

	user, err := h.userService.UploadAvatar(c.Request.Context(), actor, userID, upload)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, user)
}

// ListAgents handles GET /api/v1/agents
// @Summary List agents with their workload
// @Tags agents
// @Produce json
// @Success 200 {object} Response{data=[]domain.AgentSummary}
// @Security BearerAuth
// @Router /agents [get]
func (h *UserHandler) ListAgents(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	agents, err := h.userService.ListAgents(c.Request.Context(), actor.TenantID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, agents)
}
