package handler

import (
	"time"

	"github.com/google/uuid"

	"claimdesk/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// LoginRequest represents the login request body.
type LoginRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"seguros-norte"`
	Email      string `json:"email" binding:"required" example:"ana@example.com"`
	Password   string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// ForgotPasswordRequest represents the forgot password request body.
type ForgotPasswordRequest struct {
	TenantSlug string `json:"tenant_slug" binding:"required" example:"seguros-norte"`
	Email      string `json:"email" binding:"required" example:"ana@example.com"`
}

// ResetPasswordRequest represents the reset password request body.
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	NewPassword string `json:"new_password" binding:"required" example:"newsecurepassword"`
}

// UpdateProfileRequest represents the self-service profile update body.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" example:"Ana Pérez"`
	Phone    *string `json:"phone" example:"+52 55 1234 5678"`
}

// ChangePasswordRequest represents the change password request body.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required" example:"securepassword123"`
	NewPassword     string `json:"new_password" binding:"required" example:"newsecurepassword"`
}

// EmailEntryRequest is one address of a user's email set.
type EmailEntryRequest struct {
	Email     string `json:"email" example:"ana@example.com"`
	IsPrimary bool   `json:"is_primary" example:"true"`
}

// CreateUserRequest represents the create user request body.
type CreateUserRequest struct {
	Emails   []EmailEntryRequest `json:"emails" binding:"required"`
	Password string              `json:"password" binding:"required" example:"securepassword123"`
	FullName string              `json:"full_name" binding:"required" example:"Ana Pérez"`
	Phone    string              `json:"phone" example:"+52 55 1234 5678"`
	Role     domain.UserRole     `json:"role" binding:"required" example:"client"`
	GroupID  *uuid.UUID          `json:"group_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// UpdateUserRequest represents the update user request body.
type UpdateUserRequest struct {
	FullName   *string          `json:"full_name" example:"Ana Pérez López"`
	Phone      *string          `json:"phone" example:"+52 55 1234 5678"`
	Role       *domain.UserRole `json:"role" example:"staff"`
	IsActive   *bool            `json:"is_active" example:"true"`
	GroupID    *uuid.UUID       `json:"group_id"`
	ClearGroup bool             `json:"clear_group" example:"false"`
}

// ReplaceEmailsRequest represents the replace emails request body.
type ReplaceEmailsRequest struct {
	Emails []EmailEntryRequest `json:"emails" binding:"required"`
}

// BatchUsersRequest represents a batch user action.
type BatchUsersRequest struct {
	Action  domain.UserBatchAction `json:"action" binding:"required" example:"deactivate"`
	UserIDs []uuid.UUID            `json:"user_ids" binding:"required"`
}

// BatchIDsRequest represents a list of IDs for batch trash.
type BatchIDsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

// CreateTenantRequest represents the create tenant request body.
type CreateTenantRequest struct {
	Name string `json:"name" binding:"required" example:"Seguros Norte"`
	Slug string `json:"slug" binding:"required" example:"seguros-norte"`
}

// UpdateTenantRequest represents the update tenant request body.
type UpdateTenantRequest struct {
	Name     *string `json:"name" example:"Seguros Norte SA"`
	Slug     *string `json:"slug" example:"norte"`
	IsActive *bool   `json:"is_active" example:"false"`
}

// UpdateBrandingRequest represents the update branding request body.
type UpdateBrandingRequest struct {
	DisplayName    *string `json:"display_name" example:"Seguros Norte"`
	PrimaryColor   *string `json:"primary_color" example:"#1E3A8A"`
	SecondaryColor *string `json:"secondary_color" example:"#F59E0B"`
	SupportEmail   *string `json:"support_email" example:"soporte@norte.mx"`
	CustomDomain   *string `json:"custom_domain" example:"portal.norte.mx"`
}

// CreateGroupRequest represents the create group request body.
type CreateGroupRequest struct {
	Name        string `json:"name" binding:"required" example:"Acme SA de CV"`
	Description string `json:"description" example:"Empleados de Acme"`
}

// UpdateGroupRequest represents the update group request body.
type UpdateGroupRequest struct {
	Name        *string `json:"name" example:"Acme SA de CV"`
	Description *string `json:"description" example:"Empleados de Acme"`
}

// GroupMembersRequest represents the add members request body.
type GroupMembersRequest struct {
	UserIDs []uuid.UUID `json:"user_ids" binding:"required"`
}

// CreateClaimRequest represents the create claim request body.
type CreateClaimRequest struct {
	ClientID        *uuid.UUID       `json:"client_id"`
	ClaimType       domain.ClaimType `json:"claim_type" binding:"required" example:"reembolso"`
	Title           string           `json:"title" binding:"required" example:"Consulta de urgencias"`
	Description     string           `json:"description" example:"Atención el 30 de septiembre"`
	Amount          string           `json:"amount" binding:"required" example:"1250.50"`
	Currency        string           `json:"currency" example:"MXN"`
	IncidentDate    string           `json:"incident_date" example:"2026-09-30"`
	AssignedAgentID *uuid.UUID       `json:"assigned_agent_id"`
}

// UpdateClaimRequest represents the update claim request body.
type UpdateClaimRequest struct {
	Title           *string             `json:"title" example:"Consulta de urgencias"`
	Description     *string             `json:"description"`
	Amount          *string             `json:"amount" example:"1300.00"`
	Currency        *string             `json:"currency" example:"MXN"`
	IncidentDate    *string             `json:"incident_date" example:"2026-09-30"`
	Status          *domain.ClaimStatus `json:"status" example:"cerrado"`
	AssignedAgentID *uuid.UUID          `json:"assigned_agent_id"`
	ClearAgent      bool                `json:"clear_agent" example:"false"`
}

// ReviewDocumentRequest represents the review document request body.
type ReviewDocumentRequest struct {
	Action string `json:"action" binding:"required" example:"reject"`
	Reason string `json:"reason" example:"La factura no es legible"`
}

// CommentRequest represents a free-text history entry.
type CommentRequest struct {
	DocumentID *uuid.UUID `json:"document_id"`
	Body       string     `json:"body" binding:"required" example:"Se envió la factura corregida"`
}

// --- Response Types ---

// TokenResponse represents the authentication token response.
type TokenResponse struct {
	AccessToken  string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string    `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	ExpiresAt    time.Time `json:"expires_at" example:"2026-10-18T10:30:00Z"`
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Error  string `json:"error,omitempty" example:"database not reachable"`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"operation completed successfully"`
}

// DownloadURLResponse carries a presigned object URL.
type DownloadURLResponse struct {
	URL string `json:"url" example:"https://claimdesk-uploads.s3.amazonaws.com/...?X-Amz-Signature=..."`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
