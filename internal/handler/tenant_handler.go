package handler

import (
	"github.com/gin-gonic/gin"

	"claimdesk/internal/service"
)

// TenantHandler handles tenant and white-label endpoints.
type TenantHandler struct {
	tenantService service.TenantService
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(tenantService service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create handles POST /api/v1/admin/tenants
// @Summary Create a tenant
// @Description Create a new tenant (superadmin only)
// @Tags tenants
// @Accept json
// @Produce json
// @Param request body CreateTenantRequest true "Tenant details"
// @Success 201 {object} Response{data=domain.Tenant} "Tenant created"
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 403 {object} ErrorResponseBody "Forbidden - superadmin only"
// @Failure 409 {object} ErrorResponseBody "Slug already exists"
// @Security BearerAuth
// @Router /admin/tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var input service.CreateTenantInput
	if !bindJSON(c, &input) {
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tenant)
}

// List handles GET /api/v1/admin/tenants
// @Summary List tenants
// @Tags tenants
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Tenant,meta=PagMeta} "List of tenants"
// @Failure 403 {object} ErrorResponseBody "Forbidden - superadmin only"
// @Security BearerAuth
// @Router /admin/tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	tenants, total, err := h.tenantService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, tenants, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/admin/tenants/:id
// @Summary Get tenant by ID
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Success 200 {object} Response{data=domain.Tenant}
// @Failure 404 {object} ErrorResponseBody "Tenant not found"
// @Security BearerAuth
// @Router /admin/tenants/{id} [get]
func (h *TenantHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}

	tenant, err := h.tenantService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// Update handles PUT /api/v1/admin/tenants/:id
// @Summary Update a tenant
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Param request body UpdateTenantRequest true "Fields to update"
// @Success 200 {object} Response{data=domain.Tenant}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 404 {object} ErrorResponseBody "Tenant not found"
// @Failure 409 {object} ErrorResponseBody "Slug already exists"
// @Security BearerAuth
// @Router /admin/tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}
	var input service.UpdateTenantInput
	if !bindJSON(c, &input) {
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tenant)
}

// Delete handles DELETE /api/v1/admin/tenants/:id
// @Summary Delete a tenant and all its data
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse}
// @Failure 404 {object} ErrorResponseBody "Tenant not found"
// @Security BearerAuth
// @Router /admin/tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "tenant deleted"})
}

// GetBranding handles GET /api/v1/admin/tenants/:id/branding
// @Summary Get tenant branding
// @Tags tenants
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Success 200 {object} Response{data=domain.TenantBranding}
// @Security BearerAuth
// @Router /admin/tenants/{id}/branding [get]
func (h *TenantHandler) GetBranding(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}

	brand, err := h.tenantService.GetBranding(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, brand)
}

// UpdateBranding handles PUT /api/v1/admin/tenants/:id/branding
// @Summary Update tenant branding
// @Tags tenants
// @Accept json
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Param request body UpdateBrandingRequest true "Branding fields"
// @Success 200 {object} Response{data=domain.TenantBranding}
// @Failure 400 {object} ErrorResponseBody "Validation error"
// @Failure 409 {object} ErrorResponseBody "Custom domain already used"
// @Security BearerAuth
// @Router /admin/tenants/{id}/branding [put]
func (h *TenantHandler) UpdateBranding(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}
	var input service.UpdateBrandingInput
	if !bindJSON(c, &input) {
		return
	}

	brand, err := h.tenantService.UpdateBranding(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, brand)
}

// UploadLogo handles POST /api/v1/admin/tenants/:id/logo
// @Summary Upload tenant logo
// @Tags tenants
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Tenant ID (UUID)"
// @Param file formData file true "JPG or PNG image"
// @Success 200 {object} Response{data=domain.TenantBranding}
// @Failure 400 {object} ErrorResponseBody "Missing file or unsupported type"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Security BearerAuth
// @Router /admin/tenants/{id}/logo [post]
func (h *TenantHandler) UploadLogo(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "tenant")
	if !ok {
		return
	}
	upload, done, ok := formFile(c)
	if !ok {
		return
	}
	defer done()

	brand, err := h.tenantService.UploadLogo(c.Request.Context(), id, upload)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, brand)
}

// PublicBranding handles GET /api/v1/branding/:slug
// @Summary Public branding for a tenant login page
// @Tags branding
// @Produce json
// @Param slug path string true "Tenant slug"
// @Success 200 {object} Response{data=domain.TenantBranding}
// @Failure 404 {object} ErrorResponseBody "Unknown or inactive tenant"
// @Router /branding/{slug} [get]
func (h *TenantHandler) PublicBranding(c *gin.Context) {
	brand, err := h.tenantService.PublicBranding(c.Request.Context(), c.Param("slug"))
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	RespondOK(c, brand)
}
