package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimdesk/internal/service"
)

// DocumentHandler handles claim document review endpoints.
type DocumentHandler struct {
	reviewService service.ReviewService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(reviewService service.ReviewService) *DocumentHandler {
	return &DocumentHandler{reviewService: reviewService}
}

func claimAndDocumentIDs(c *gin.Context) (claimID, documentID uuid.UUID, ok bool) {
	if claimID, ok = parseIDParam(c, "id", "claim"); !ok {
		return
	}
	documentID, ok = parseIDParam(c, "docId", "document")
	return
}

// Upload handles POST /api/v1/claims/:id/documents/:docId/file
// @Summary Upload or re-upload a checklist document
// @Description pendiente documents accept a first upload from the claim's client or back office; rechazado documents accept a re-upload from the client only.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param docId path string true "Document ID (UUID)"
// @Param file formData file true "PDF, JPG or PNG"
// @Success 200 {object} Response{data=domain.ClaimDetail}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 409 {object} ErrorResponseBody "Invalid transition or claim locked"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /claims/{id}/documents/{docId}/file [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, documentID, ok := claimAndDocumentIDs(c)
	if !ok {
		return
	}
	upload, done, ok := formFile(c)
	if !ok {
		return
	}
	defer done()

	detail, err := h.reviewService.Upload(c.Request.Context(), actor, claimID, documentID, upload)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Review handles POST /api/v1/claims/:id/documents/:docId/review
// @Summary Approve or reject a received document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param docId path string true "Document ID (UUID)"
// @Param request body ReviewDocumentRequest true "Action and reason"
// @Success 200 {object} Response{data=domain.ClaimDetail}
// @Failure 400 {object} ErrorResponseBody "Reason required"
// @Failure 403 {object} ErrorResponseBody "Back office only"
// @Failure 409 {object} ErrorResponseBody "Invalid transition"
// @Security BearerAuth
// @Router /claims/{id}/documents/{docId}/review [post]
func (h *DocumentHandler) Review(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, documentID, ok := claimAndDocumentIDs(c)
	if !ok {
		return
	}
	var input service.ReviewInput
	if !bindJSON(c, &input) {
		return
	}

	detail, err := h.reviewService.Review(c.Request.Context(), actor, claimID, documentID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Download handles GET /api/v1/claims/:id/documents/:docId/download
// @Summary Presigned download URL for an uploaded document
// @Tags documents
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param docId path string true "Document ID (UUID)"
// @Success 200 {object} Response{data=DownloadURLResponse}
// @Failure 404 {object} ErrorResponseBody "No file uploaded"
// @Security BearerAuth
// @Router /claims/{id}/documents/{docId}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, documentID, ok := claimAndDocumentIDs(c)
	if !ok {
		return
	}

	url, err := h.reviewService.DownloadURL(c.Request.Context(), actor, claimID, documentID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, DownloadURLResponse{URL: url})
}

// Verify handles POST /api/v1/claims/:id/verify
// @Summary Mark a claim verified
// @Description Allowed once every non-pending document is approved. Emails the client.
// @Tags documents
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Success 200 {object} Response{data=domain.ClaimDetail}
// @Failure 409 {object} ErrorResponseBody "Claim not ready"
// @Security BearerAuth
// @Router /claims/{id}/verify [post]
func (h *DocumentHandler) Verify(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "id", "claim")
	if !ok {
		return
	}

	detail, err := h.reviewService.Verify(c.Request.Context(), actor, claimID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// AddComment handles POST /api/v1/claims/:id/comments
// @Summary Add a comment to a claim or one of its documents
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param request body CommentRequest true "Comment"
// @Success 201 {object} Response{data=domain.DocumentComment}
// @Failure 400 {object} ErrorResponseBody "Empty comment"
// @Security BearerAuth
// @Router /claims/{id}/comments [post]
func (h *DocumentHandler) AddComment(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "id", "claim")
	if !ok {
		return
	}
	var input service.CommentInput
	if !bindJSON(c, &input) {
		return
	}

	comment, err := h.reviewService.AddComment(c.Request.Context(), actor, claimID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, comment)
}

// ListComments handles GET /api/v1/claims/:id/comments
// @Summary Review history of a claim, newest first
// @Tags documents
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param document_id query string false "Only entries for this document"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.DocumentComment,meta=PagMeta}
// @Security BearerAuth
// @Router /claims/{id}/comments [get]
func (h *DocumentHandler) ListComments(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "id", "claim")
	if !ok {
		return
	}
	var documentID *uuid.UUID
	if v := c.Query("document_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid document ID")
			return
		}
		documentID = &id
	}
	offset, limit := parsePagination(c)

	comments, total, err := h.reviewService.ListComments(c.Request.Context(), actor, claimID, documentID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, comments, PagMeta{Total: total, Offset: offset, Limit: limit})
}
