package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// ImageFileTypes are the file types accepted for avatars and tenant logos.
var ImageFileTypes = map[FileType]bool{
	FileTypeJPG: true,
	FileTypePNG: true,
}

// UserRole defines the role hierarchy within a tenant.
type UserRole string

const (
	RoleSuperAdmin UserRole = "superadmin"
	RoleAdmin      UserRole = "admin"
	RoleStaff      UserRole = "staff"
	RoleClient     UserRole = "client"
)

// ValidUserRoles is the set of roles a user record may carry.
var ValidUserRoles = map[UserRole]bool{
	RoleSuperAdmin: true,
	RoleAdmin:      true,
	RoleStaff:      true,
	RoleClient:     true,
}

// IsBackOffice reports whether the role works claims on behalf of the tenant.
func (r UserRole) IsBackOffice() bool {
	return r == RoleSuperAdmin || r == RoleAdmin || r == RoleStaff
}

// IsAdmin reports whether the role can manage users, groups and the trash.
func (r UserRole) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

// ClaimType distinguishes reimbursement claims from scheduled-procedure claims.
type ClaimType string

const (
	ClaimTypeReimbursement ClaimType = "reembolso"
	ClaimTypeScheduling    ClaimType = "programacion"
)

// ValidClaimTypes is the set of accepted claim types.
var ValidClaimTypes = map[ClaimType]bool{
	ClaimTypeReimbursement: true,
	ClaimTypeScheduling:    true,
}

// ClaimStatus is the overall processing state of a claim.
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pendiente"
	ClaimStatusInReview ClaimStatus = "en_revision"
	ClaimStatusVerified ClaimStatus = "verificado"
	ClaimStatusRejected ClaimStatus = "rechazado"
	ClaimStatusClosed   ClaimStatus = "cerrado"
)

// ValidClaimStatuses is the set of accepted claim statuses.
var ValidClaimStatuses = map[ClaimStatus]bool{
	ClaimStatusPending:  true,
	ClaimStatusInReview: true,
	ClaimStatusVerified: true,
	ClaimStatusRejected: true,
	ClaimStatusClosed:   true,
}

// DocumentStatus is the review state of one checklist document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pendiente"
	DocumentStatusReceived DocumentStatus = "recibido"
	DocumentStatusApproved DocumentStatus = "aprobado"
	DocumentStatusRejected DocumentStatus = "rechazado"
)

// CommentAction labels an entry in a document's history.
type CommentAction string

const (
	CommentActionComment  CommentAction = "comment"
	CommentActionUpload   CommentAction = "upload"
	CommentActionReupload CommentAction = "reupload"
	CommentActionApprove  CommentAction = "approve"
	CommentActionReject   CommentAction = "reject"
)

// TrashKind names the kinds of records that go through the trash bin.
type TrashKind string

const (
	TrashKindUser  TrashKind = "user"
	TrashKindGroup TrashKind = "group"
	TrashKindClaim TrashKind = "claim"
)

// ValidTrashKinds is the set of accepted trash kinds.
var ValidTrashKinds = map[TrashKind]bool{
	TrashKindUser:  true,
	TrashKindGroup: true,
	TrashKindClaim: true,
}

// UserBatchAction is an operation applied to many users at once.
type UserBatchAction string

const (
	UserBatchActivate   UserBatchAction = "activate"
	UserBatchDeactivate UserBatchAction = "deactivate"
	UserBatchTrash      UserBatchAction = "trash"
)

// ValidUserBatchActions is the set of accepted batch actions.
var ValidUserBatchActions = map[UserBatchAction]bool{
	UserBatchActivate:   true,
	UserBatchDeactivate: true,
	UserBatchTrash:      true,
}
