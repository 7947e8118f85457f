package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrTenantInactive      = errors.New("tenant is inactive")
	ErrUserInactive        = errors.New("user is inactive")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrDuplicateEmail      = errors.New("email already exists for this tenant")
	ErrDuplicateTenantSlug = errors.New("tenant slug already exists")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInsufficientRole    = errors.New("insufficient role for this action")
	ErrInvalidRole         = errors.New("invalid user role")

	ErrPasswordResetTokenInvalid = errors.New("password reset token is invalid or already used")
	ErrDuplicateCustomDomain     = errors.New("custom domain is already used by another tenant")
	ErrInvalidTenantSlug         = errors.New("slug must be 3-63 lowercase letters, digits or dashes")
	ErrInvalidColor              = errors.New("color must be a #RRGGBB hex value")

	ErrNoEmails             = errors.New("user must have at least one email")
	ErrPrimaryEmailCount    = errors.New("user must have exactly one primary email")
	ErrDuplicateUserEmail   = errors.New("email is listed more than once")
	ErrInvalidEmail         = errors.New("invalid email address")
	ErrInvalidPhone         = errors.New("phone must start with a country code prefix")
	ErrSelfAction           = errors.New("cannot perform this action on your own account")
	ErrInvalidBatchAction   = errors.New("invalid batch action")
	ErrDuplicateGroupName   = errors.New("group name already exists")
	ErrGroupMemberNotClient = errors.New("only clients can be group members")
	ErrGroupNameRequired    = errors.New("group name is required")

	ErrClaimNotFound        = errors.New("claim not found")
	ErrInvalidClaimType     = errors.New("invalid claim type")
	ErrInvalidClaimStatus   = errors.New("invalid claim status")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrInvalidDateRange     = errors.New("from date is after to date")
	ErrInvalidDate          = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidCurrency      = errors.New("currency must be a three letter ISO 4217 code")
	ErrInvalidAssignee      = errors.New("assignee must be an active staff or admin user")
	ErrClaimNotReady        = errors.New("claim documents are not all approved")
	ErrStatusRequiresVerify = errors.New("use the verify operation to mark a claim verified")
	ErrClientRequired       = errors.New("claim must belong to a client user")

	ErrDocumentNotFound          = errors.New("document not found")
	ErrInvalidDocumentTransition = errors.New("invalid document status transition")
	ErrRejectionReasonRequired   = errors.New("rejection reason is required")
	ErrCommentRequired           = errors.New("comment body is required")
	ErrClaimLocked               = errors.New("claim is verified or closed and its documents can no longer change")

	ErrInvalidTrashKind = errors.New("invalid trash kind")
	ErrNotInTrash       = errors.New("item is not in the trash")
	ErrClientHasClaims  = errors.New("client still has claims outside the trash")
)
