package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Tenant represents an isolated customer organization.
type Tenant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Slug      string    `db:"slug" json:"slug"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// TenantBranding holds the white-label settings of a tenant.
type TenantBranding struct {
	TenantID       uuid.UUID `db:"tenant_id" json:"tenant_id"`
	DisplayName    string    `db:"display_name" json:"display_name"`
	LogoKey        string    `db:"logo_key" json:"-"`
	LogoURL        string    `db:"-" json:"logo_url,omitempty"`
	PrimaryColor   string    `db:"primary_color" json:"primary_color"`
	SecondaryColor string    `db:"secondary_color" json:"secondary_color"`
	SupportEmail   string    `db:"support_email" json:"support_email"`
	CustomDomain   string    `db:"custom_domain" json:"custom_domain"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultBranding returns the branding used before a tenant customizes it.
func DefaultBranding(tenant *Tenant) *TenantBranding {
	return &TenantBranding{
		TenantID:       tenant.ID,
		DisplayName:    tenant.Name,
		PrimaryColor:   "#1E3A8A",
		SecondaryColor: "#F59E0B",
	}
}

// User represents an authenticated user belonging to a tenant.
type User struct {
	ID                   uuid.UUID   `db:"id" json:"id"`
	TenantID             uuid.UUID   `db:"tenant_id" json:"tenant_id"`
	Email                string      `db:"email" json:"email"`
	PasswordHash         string      `db:"password_hash" json:"-"`
	FullName             string      `db:"full_name" json:"full_name"`
	Phone                string      `db:"phone" json:"phone"`
	Role                 UserRole    `db:"role" json:"role"`
	IsActive             bool        `db:"is_active" json:"is_active"`
	AvatarKey            string      `db:"avatar_key" json:"-"`
	AvatarURL            string      `db:"-" json:"avatar_url,omitempty"`
	GroupID              *uuid.UUID  `db:"group_id" json:"group_id"`
	PasswordResetTokenID *string     `db:"password_reset_token_id" json:"-"`
	DeletedAt            *time.Time  `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedAt            time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time   `db:"updated_at" json:"updated_at"`
	Emails               []UserEmail `db:"-" json:"emails,omitempty"`
}

// IsTrashed reports whether the user has been moved to the trash.
func (u *User) IsTrashed() bool {
	return u.DeletedAt != nil
}

// UserEmail is one of the addresses registered for a user.
type UserEmail struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"-"`
	Email     string    `db:"email" json:"email"`
	IsPrimary bool      `db:"is_primary" json:"is_primary"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// UserFilter narrows user listings.
type UserFilter struct {
	Role     UserRole
	Search   string
	IsActive *bool
	GroupID  *uuid.UUID
}

// AgentSummary is a staff user with their current workload.
type AgentSummary struct {
	User
	AssignedClaims int `db:"assigned_claims" json:"assigned_claims"`
	OpenClaims     int `db:"open_claims" json:"open_claims"`
}

// ClientGroup groups client users, typically by employer or policy.
type ClientGroup struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	TenantID    uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Name        string     `db:"name" json:"name"`
	Description string     `db:"description" json:"description"`
	MemberCount int        `db:"member_count" json:"member_count"`
	DeletedAt   *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Claim is an insurance reimbursement or processing request.
type Claim struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	Number          string          `db:"number" json:"number"`
	ClientID        uuid.UUID       `db:"client_id" json:"client_id"`
	ClientName      string          `db:"client_name" json:"client_name"`
	GroupID         *uuid.UUID      `db:"group_id" json:"group_id"`
	AssignedAgentID *uuid.UUID      `db:"assigned_agent_id" json:"assigned_agent_id"`
	ClaimType       ClaimType       `db:"claim_type" json:"claim_type"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Currency        string          `db:"currency" json:"currency"`
	IncidentDate    *time.Time      `db:"incident_date" json:"incident_date"`
	Status          ClaimStatus     `db:"status" json:"status"`
	VerifiedBy      *uuid.UUID      `db:"verified_by" json:"verified_by"`
	VerifiedAt      *time.Time      `db:"verified_at" json:"verified_at"`
	DeletedAt       *time.Time      `db:"deleted_at" json:"deleted_at,omitempty"`
	CreatedBy       uuid.UUID       `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// ClaimDetail is a claim together with its document checklist.
type ClaimDetail struct {
	Claim
	Documents            []ClaimDocument `json:"documents"`
	ReadyForVerification bool            `json:"ready_for_verification"`
}

// ClaimFilter narrows claim listings. Scope fields are set by the service
// from the caller's role and are never taken from the request.
type ClaimFilter struct {
	Search          string
	Status          ClaimStatus
	ClaimType       ClaimType
	AssignedAgentID *uuid.UUID
	From            *time.Time
	To              *time.Time

	ScopeClientID *uuid.UUID
	ScopeAgentID  *uuid.UUID
}

// Validate checks the filter values that came from the request.
func (f *ClaimFilter) Validate() error {
	if f.Status != "" && !ValidClaimStatuses[f.Status] {
		return ErrInvalidClaimStatus
	}
	if f.ClaimType != "" && !ValidClaimTypes[f.ClaimType] {
		return ErrInvalidClaimType
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return ErrInvalidDateRange
	}
	return nil
}

// ClaimDocument is one entry of a claim's document checklist.
type ClaimDocument struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	TenantID        uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	ClaimID         uuid.UUID      `db:"claim_id" json:"claim_id"`
	Name            string         `db:"name" json:"name"`
	Required        bool           `db:"required" json:"required"`
	Position        int            `db:"position" json:"position"`
	Status          DocumentStatus `db:"status" json:"status"`
	FileKey         string         `db:"file_key" json:"-"`
	FileName        string         `db:"file_name" json:"file_name"`
	ContentType     string         `db:"content_type" json:"content_type"`
	FileSize        int64          `db:"file_size" json:"file_size"`
	UploadedBy      *uuid.UUID     `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt      *time.Time     `db:"uploaded_at" json:"uploaded_at"`
	ReviewedBy      *uuid.UUID     `db:"reviewed_by" json:"reviewed_by"`
	ReviewedAt      *time.Time     `db:"reviewed_at" json:"reviewed_at"`
	RejectionReason string         `db:"rejection_reason" json:"rejection_reason"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// DocumentComment is an entry in a claim's review history.
type DocumentComment struct {
	ID         uuid.UUID     `db:"id" json:"id"`
	TenantID   uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	ClaimID    uuid.UUID     `db:"claim_id" json:"claim_id"`
	DocumentID *uuid.UUID    `db:"document_id" json:"document_id"`
	AuthorID   *uuid.UUID    `db:"author_id" json:"author_id"`
	AuthorName string        `db:"author_name" json:"author_name"`
	AuthorRole UserRole      `db:"author_role" json:"author_role"`
	Action     CommentAction `db:"action" json:"action"`
	Body       string        `db:"body" json:"body"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// TrashItem is a soft-deleted record as shown in the trash bin.
type TrashItem struct {
	Kind          TrashKind `db:"kind" json:"kind"`
	ID            uuid.UUID `db:"id" json:"id"`
	Label         string    `db:"label" json:"label"`
	DeletedAt     time.Time `db:"deleted_at" json:"deleted_at"`
	ExpiresAt     time.Time `db:"-" json:"expires_at"`
	DaysRemaining int       `db:"-" json:"days_remaining"`
}

// Stats holds dashboard counters for the caller's visible scope.
type Stats struct {
	TotalClaims       int `db:"total_claims" json:"total_claims"`
	ClaimsPending     int `db:"claims_pending" json:"claims_pending"`
	ClaimsInReview    int `db:"claims_in_review" json:"claims_in_review"`
	ClaimsVerified    int `db:"claims_verified" json:"claims_verified"`
	ClaimsRejected    int `db:"claims_rejected" json:"claims_rejected"`
	ClaimsClosed      int `db:"claims_closed" json:"claims_closed"`
	DocumentsPending  int `db:"documents_pending" json:"documents_pending"`
	DocumentsReceived int `db:"documents_received" json:"documents_received"`
	DocumentsApproved int `db:"documents_approved" json:"documents_approved"`
	DocumentsRejected int `db:"documents_rejected" json:"documents_rejected"`
	TrashedItems      int `db:"trashed_items" json:"trashed_items"`
}
