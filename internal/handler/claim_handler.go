package handler

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"claimdesk/internal/domain"
	"claimdesk/internal/export"
	"claimdesk/internal/service"
)

// ClaimHandler handles claim endpoints.
type ClaimHandler struct {
	claimService service.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimService service.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimService: claimService}
}

var errBadFilter = errors.New("bad filter")

// parseClaimFilter reads the list filters from the query string. Dates use
// YYYY-MM-DD and both ends of the range are inclusive.
func parseClaimFilter(c *gin.Context) (domain.ClaimFilter, error) {
	filter := domain.ClaimFilter{
		Search:    c.Query("q"),
		Status:    domain.ClaimStatus(c.Query("status")),
		ClaimType: domain.ClaimType(c.Query("claim_type")),
	}
	if v := c.Query("agent_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return filter, errBadFilter
		}
		filter.AssignedAgentID = &id
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return filter, domain.ErrInvalidDate
		}
		*dst = &t
	}
	return filter, nil
}

func (h *ClaimHandler) filterOrRespond(c *gin.Context) (domain.ClaimFilter, bool) {
	filter, err := parseClaimFilter(c)
	if errors.Is(err, errBadFilter) {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid agent ID")
		return filter, false
	}
	if err != nil {
		HandleError(c, err)
		return filter, false
	}
	return filter, true
}

// Create handles POST /api/v1/claims
// @Summary Submit a claim
// @Description Clients submit for themselves; staff and admins pass client_id. The document checklist is created in pendiente.
// @Tags claims
// @Accept json
// @Produce json
// @Param request body CreateClaimRequest true "Claim details"
// @Success 201 {object} Response{data=domain.ClaimDetail}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Security BearerAuth
// @Router /claims [post]
func (h *ClaimHandler) Create(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.CreateClaimInput
	if !bindJSON(c, &input) {
		return
	}

	detail, err := h.claimService.Create(c.Request.Context(), actor, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, detail)
}

// List handles GET /api/v1/claims
// @Summary List claims visible to the caller
// @Description Clients see their own claims, staff see assigned claims, admins see the whole tenant
// @Tags claims
// @Produce json
// @Param q query string false "Search over number, title and client name"
// @Param status query string false "Claim status"
// @Param claim_type query string false "Claim type"
// @Param agent_id query string false "Assigned agent ID"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Claim,meta=PagMeta}
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /claims [get]
func (h *ClaimHandler) List(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	filter, ok := h.filterOrRespond(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	claims, total, err := h.claimService.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, claims, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/claims/:id
// @Summary Get a claim with its documents
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Success 200 {object} Response{data=domain.ClaimDetail}
// @Failure 404 {object} ErrorResponseBody "Claim not found"
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *ClaimHandler) GetByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "id", "claim")
	if !ok {
		return
	}

	detail, err := h.claimService.Get(c.Request.Context(), actor, claimID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Update handles PUT /api/v1/claims/:id
// @Summary Update a claim
// @Description Back office only. Status verificado can only be set through the verify endpoint.
// @Tags claims
// @Accept json
// @Produce json
// @Param id path string true "Claim ID (UUID)"
// @Param request body UpdateClaimRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.ClaimDetail}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Claim not found"
// @Security BearerAuth
// @Router /claims/{id} [put]
func (h *ClaimHandler) Update(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	claimID, ok := parseIDParam(c, "id", "claim")
	if !ok {
		return
	}
	var input service.UpdateClaimInput
	if !bindJSON(c, &input) {
		return
	}

	detail, err := h.claimService.Update(c.Request.Context(), actor, claimID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// Trash handles POST /api/v1/claims/trash
// @Summary Move claims to the trash
// @Tags claims
// @Accept json
// @Produce json
// @Param request body BatchIDsRequest true "Claim IDs"
// @Success 200 {object} Response{data=service.BatchResult}
// @Failure 403 {object} ErrorResponseBody "Admin only"
// @Security BearerAuth
// @Router /claims/trash [post]
func (h *ClaimHandler) Trash(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var input service.BatchIDsInput
	if !bindJSON(c, &input) {
		return
	}

	res, err := h.claimService.Trash(c.Request.Context(), actor, input.IDs)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// Export handles GET /api/v1/claims/export
// @Summary Export the filtered claim list
// @Tags claims
// @Produce octet-stream
// @Param format query string false "csv or xlsx" default(csv)
// @Param q query string false "Search over number, title and client name"
// @Param status query string false "Claim status"
// @Param claim_type query string false "Claim type"
// @Param agent_id query string false "Assigned agent ID"
// @Param from query string false "Created on or after (YYYY-MM-DD)"
// @Param to query string false "Created on or before (YYYY-MM-DD)"
// @Success 200 {file} file "CSV (UTF-8 with BOM) or XLSX file"
// @Failure 400 {object} ErrorResponseBody "Invalid filter or format"
// @Security BearerAuth
// @Router /claims/export [get]
func (h *ClaimHandler) Export(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}
	filter, ok := h.filterOrRespond(c)
	if !ok {
		return
	}

	// Buffer so a failure midway still yields a JSON error instead of a
	// truncated file.
	var buf bytes.Buffer
	if _, err := h.claimService.Export(c.Request.Context(), actor, filter, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("claims", format, time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
