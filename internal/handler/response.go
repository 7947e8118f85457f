package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/middleware"
	"claimdesk/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings is checked in order; the message is the sentinel's text.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{domain.ErrTenantInactive, http.StatusForbidden, "TENANT_INACTIVE"},
	{domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
	{domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
	{domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
	{domain.ErrDuplicateTenantSlug, http.StatusConflict, "DUPLICATE_SLUG"},
	{domain.ErrUploadFailed, http.StatusInternalServerError, "UPLOAD_FAILED"},
	{domain.ErrInsufficientRole, http.StatusForbidden, "INSUFFICIENT_ROLE"},
	{domain.ErrInvalidRole, http.StatusBadRequest, "INVALID_ROLE"},
	{domain.ErrPasswordResetTokenInvalid, http.StatusUnauthorized, "INVALID_RESET_TOKEN"},
	{domain.ErrDuplicateCustomDomain, http.StatusConflict, "DUPLICATE_CUSTOM_DOMAIN"},
	{domain.ErrInvalidTenantSlug, http.StatusBadRequest, "INVALID_SLUG"},
	{domain.ErrInvalidColor, http.StatusBadRequest, "INVALID_COLOR"},
	{domain.ErrNoEmails, http.StatusBadRequest, "NO_EMAILS"},
	{domain.ErrPrimaryEmailCount, http.StatusBadRequest, "PRIMARY_EMAIL_COUNT"},
	{domain.ErrDuplicateUserEmail, http.StatusBadRequest, "DUPLICATE_USER_EMAIL"},
	{domain.ErrInvalidEmail, http.StatusBadRequest, "INVALID_EMAIL"},
	{domain.ErrInvalidPhone, http.StatusBadRequest, "INVALID_PHONE"},
	{domain.ErrSelfAction, http.StatusBadRequest, "SELF_ACTION"},
	{domain.ErrInvalidBatchAction, http.StatusBadRequest, "INVALID_BATCH_ACTION"},
	{domain.ErrDuplicateGroupName, http.StatusConflict, "DUPLICATE_GROUP_NAME"},
	{domain.ErrGroupMemberNotClient, http.StatusBadRequest, "GROUP_MEMBER_NOT_CLIENT"},
	{domain.ErrGroupNameRequired, http.StatusBadRequest, "GROUP_NAME_REQUIRED"},
	{domain.ErrClaimNotFound, http.StatusNotFound, "CLAIM_NOT_FOUND"},
	{domain.ErrInvalidClaimType, http.StatusBadRequest, "INVALID_CLAIM_TYPE"},
	{domain.ErrInvalidClaimStatus, http.StatusBadRequest, "INVALID_CLAIM_STATUS"},
	{domain.ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
	{domain.ErrInvalidDate, http.StatusBadRequest, "INVALID_DATE"},
	{domain.ErrInvalidCurrency, http.StatusBadRequest, "INVALID_CURRENCY"},
	{domain.ErrInvalidAssignee, http.StatusBadRequest, "INVALID_ASSIGNEE"},
	{domain.ErrClaimNotReady, http.StatusConflict, "CLAIM_NOT_READY"},
	{domain.ErrStatusRequiresVerify, http.StatusBadRequest, "STATUS_REQUIRES_VERIFY"},
	{domain.ErrClientRequired, http.StatusBadRequest, "CLIENT_REQUIRED"},
	{domain.ErrDocumentNotFound, http.StatusNotFound, "DOCUMENT_NOT_FOUND"},
	{domain.ErrInvalidDocumentTransition, http.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrRejectionReasonRequired, http.StatusBadRequest, "REJECTION_REASON_REQUIRED"},
	{domain.ErrCommentRequired, http.StatusBadRequest, "COMMENT_REQUIRED"},
	{domain.ErrClaimLocked, http.StatusConflict, "CLAIM_LOCKED"},
	{domain.ErrInvalidTrashKind, http.StatusBadRequest, "INVALID_TRASH_KIND"},
	{domain.ErrNotInTrash, http.StatusNotFound, "NOT_IN_TRASH"},
	{domain.ErrClientHasClaims, http.StatusConflict, "CLIENT_HAS_CLAIMS"},
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code, m.err.Error()
		}
	}
	return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		zap.L().Error("internal error",
			zap.String("request_id", c.GetString(middleware.ContextKeyRequestID)),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	RespondError(c, status, code, msg)
}

// actorFromContext returns the caller identity, writing a 401 when absent.
func actorFromContext(c *gin.Context) (service.Actor, bool) {
	actor, err := middleware.GetActor(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context")
		return service.Actor{}, false
	}
	return actor, true
}

// parseIDParam parses a UUID path parameter, writing a 400 when invalid.
func parseIDParam(c *gin.Context, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return false
	}
	return true
}
