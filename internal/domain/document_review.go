package domain

// NextDocumentStatus applies a review action to a document in the current
// status and returns the resulting status.
//
//	pendiente --upload--> recibido        (owner client or back office)
//	recibido  --approve--> aprobado       (back office)
//	recibido  --reject--> rechazado       (back office)
//	rechazado --reupload--> recibido      (client only)
//
// It returns ErrInsufficientRole when the role may never perform the action
// and ErrInvalidDocumentTransition when the action does not apply to the
// current status.
func NextDocumentStatus(current DocumentStatus, action CommentAction, role UserRole) (DocumentStatus, error) {
	switch action {
	case CommentActionUpload:
		if role != RoleClient && !role.IsBackOffice() {
			return "", ErrInsufficientRole
		}
		if current != DocumentStatusPending {
			return "", ErrInvalidDocumentTransition
		}
		return DocumentStatusReceived, nil
	case CommentActionReupload:
		if role != RoleClient {
			return "", ErrInsufficientRole
		}
		if current != DocumentStatusRejected {
			return "", ErrInvalidDocumentTransition
		}
		return DocumentStatusReceived, nil
	case CommentActionApprove:
		if !role.IsBackOffice() {
			return "", ErrInsufficientRole
		}
		if current != DocumentStatusReceived {
			return "", ErrInvalidDocumentTransition
		}
		return DocumentStatusApproved, nil
	case CommentActionReject:
		if !role.IsBackOffice() {
			return "", ErrInsufficientRole
		}
		if current != DocumentStatusReceived {
			return "", ErrInvalidDocumentTransition
		}
		return DocumentStatusRejected, nil
	default:
		return "", ErrInvalidDocumentTransition
	}
}

// UploadActionFor picks the upload flavour that applies to a document in the
// given status: a first upload for pending documents, a re-upload otherwise.
func UploadActionFor(current DocumentStatus) CommentAction {
	if current == DocumentStatusRejected {
		return CommentActionReupload
	}
	return CommentActionUpload
}

// ReadyForVerification reports whether a claim's checklist allows the claim
// to be marked verified: at least one document has left pendiente and every
// such document is aprobado. Verified and closed claims are never ready.
func ReadyForVerification(status ClaimStatus, docs []ClaimDocument) bool {
	if status == ClaimStatusVerified || status == ClaimStatusClosed {
		return false
	}
	active := 0
	for i := range docs {
		if docs[i].Status == DocumentStatusPending {
			continue
		}
		if docs[i].Status != DocumentStatusApproved {
			return false
		}
		active++
	}
	return active > 0
}
