package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/handler"
	"claimdesk/internal/middleware"
	"claimdesk/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Tenant   *handler.TenantHandler
	User     *handler.UserHandler
	Group    *handler.GroupHandler
	Claim    *handler.ClaimHandler
	Document *handler.DocumentHandler
	Trash    *handler.TrashHandler
	Stats    *handler.StatsHandler
	Health   *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string, log *zap.Logger) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)
	auth.POST("/forgot-password", h.Auth.ForgotPassword)
	auth.POST("/reset-password", h.Auth.ResetPassword)

	v1.GET("/branding/:slug", h.Tenant.PublicBranding)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc), middleware.TenantGuard())

	admins := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin)
	backOffice := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleStaff)

	// Self-service profile
	me := protected.Group("/auth/me")
	me.GET("", h.Auth.Me)
	me.PUT("", h.Auth.UpdateMe)
	me.PUT("/password", h.Auth.ChangePassword)
	me.POST("/avatar", h.Auth.UploadMyAvatar)

	// Claims and their documents. Visibility is enforced per role by the services.
	claims := protected.Group("/claims")
	claims.POST("", h.Claim.Create)
	claims.GET("", h.Claim.List)
	claims.GET("/export", backOffice, h.Claim.Export)
	claims.POST("/trash", admins, h.Claim.Trash)
	claims.GET("/:id", h.Claim.GetByID)
	claims.PUT("/:id", backOffice, h.Claim.Update)
	claims.POST("/:id/verify", backOffice, h.Document.Verify)
	claims.GET("/:id/comments", h.Document.ListComments)
	claims.POST("/:id/comments", h.Document.AddComment)
	claims.POST("/:id/documents/:docId/file", h.Document.Upload)
	claims.POST("/:id/documents/:docId/review", backOffice, h.Document.Review)
	claims.GET("/:id/documents/:docId/download", h.Document.Download)

	protected.GET("/stats", h.Stats.GetStats)
	protected.GET("/agents", backOffice, h.User.ListAgents)

	// User management (tenant-scoped)
	users := protected.Group("/users", admins)
	users.POST("", h.User.Create)
	users.GET("", h.User.List)
	users.POST("/batch", h.User.Batch)
	users.GET("/:id", h.User.GetByID)
	users.PUT("/:id", h.User.Update)
	users.PUT("/:id/emails", h.User.ReplaceEmails)
	users.POST("/:id/avatar", h.User.UploadAvatar)
	users.DELETE("/:id", h.User.Delete)

	// Client groups
	groups := protected.Group("/groups", admins)
	groups.POST("", h.Group.Create)
	groups.GET("", h.Group.List)
	groups.POST("/trash", h.Group.Trash)
	groups.GET("/:id", h.Group.GetByID)
	groups.PUT("/:id", h.Group.Update)
	groups.GET("/:id/members", h.Group.ListMembers)
	groups.POST("/:id/members", h.Group.AddMembers)
	groups.DELETE("/:id/members/:userId", h.Group.RemoveMember)

	// Trash bin
	trash := protected.Group("/trash", admins)
	trash.GET("", h.Trash.List)
	trash.DELETE("", h.Trash.Empty)
	trash.POST("/:kind/:id/restore", h.Trash.Restore)
	trash.DELETE("/:kind/:id", h.Trash.Purge)

	// Admin routes - tenant and white-label management
	admin := protected.Group("/admin", middleware.RequireRole(domain.RoleSuperAdmin))
	admin.POST("/tenants", h.Tenant.Create)
	admin.GET("/tenants", h.Tenant.List)
	admin.GET("/tenants/:id", h.Tenant.GetByID)
	admin.PUT("/tenants/:id", h.Tenant.Update)
	admin.DELETE("/tenants/:id", h.Tenant.Delete)
	admin.GET("/tenants/:id/branding", h.Tenant.GetBranding)
	admin.PUT("/tenants/:id/branding", h.Tenant.UpdateBranding)
	admin.POST("/tenants/:id/logo", h.Tenant.UploadLogo)

	return r
}
