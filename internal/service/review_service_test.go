package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"claimdesk/internal/domain"
	"claimdesk/internal/port"
	"claimdesk/internal/service"
	"claimdesk/mocks"
)

type reviewDeps struct {
	claims   *mocks.MockClaimRepo
	docs     *mocks.MockClaimDocumentRepo
	comments *mocks.MockDocumentCommentRepo
	users    *mocks.MockUserRepo
	tenants  *mocks.MockTenantRepo
	storage  *mocks.MockObjectStorage
	email    *mocks.MockEmailSender
	svc      service.ReviewService
}

func setupReview() reviewDeps {
	d := reviewDeps{
		claims:   new(mocks.MockClaimRepo),
		docs:     new(mocks.MockClaimDocumentRepo),
		comments: new(mocks.MockDocumentCommentRepo),
		users:    new(mocks.MockUserRepo),
		tenants:  new(mocks.MockTenantRepo),
		storage:  new(mocks.MockObjectStorage),
		email:    new(mocks.MockEmailSender),
	}
	d.svc = service.NewReviewService(d.claims, d.docs, d.comments, d.users, d.tenants,
		d.storage, d.email, testS3Config(), zap.NewNop())
	return d
}

func claimFor(actor service.Actor, status domain.ClaimStatus) *domain.Claim {
	c := &domain.Claim{
		ID:       uuid.New(),
		TenantID: actor.TenantID,
		Number:   "CLM-2026-000007",
		ClientID: uuid.New(),
		Status:   status,
	}
	switch actor.Role {
	case domain.RoleClient:
		c.ClientID = actor.UserID
	case domain.RoleStaff:
		c.AssignedAgentID = &actor.UserID
	}
	return c
}

func docFor(claim *domain.Claim, status domain.DocumentStatus) *domain.ClaimDocument {
	return &domain.ClaimDocument{
		ID:       uuid.New(),
		TenantID: claim.TenantID,
		ClaimID:  claim.ID,
		Name:     "Factura",
		Required: true,
		Status:   status,
	}
}

func TestReviewService_Upload_FirstUploadMovesClaimToReview(t *testing.T) {
	d := setupReview()
	client := actorFor(domain.RoleClient)
	claim := claimFor(client, domain.ClaimStatusPending)
	doc := docFor(claim, domain.DocumentStatusPending)

	d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)
	d.storage.On("Put", mock.Anything, mock.MatchedBy(func(in port.PutInput) bool {
		return in.Bucket == "claimdesk-test" && in.ContentType == "application/pdf" &&
			strings.HasPrefix(in.Key, "tenants/"+client.TenantID.String()+"/claims/"+claim.ID.String()+"/") &&
			strings.HasSuffix(in.Key, ".pdf")
	})).Return(nil)
	d.docs.On("UpdateReview", mock.Anything, mock.MatchedBy(func(doc *domain.ClaimDocument) bool {
		return doc.Status == domain.DocumentStatusReceived && doc.FileName == "factura.pdf" &&
			doc.UploadedBy != nil && *doc.UploadedBy == client.UserID
	}), domain.DocumentStatusPending).Return(nil)
	d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.DocumentComment) bool {
		return c.Action == domain.CommentActionUpload && c.Body == "factura.pdf"
	})).Return(nil)
	d.claims.On("MarkInReview", mock.Anything, client.TenantID, claim.ID).Return(nil)
	d.docs.On("ListByClaim", mock.Anything, client.TenantID, claim.ID).
		Return([]domain.ClaimDocument{*doc}, nil)

	detail, err := d.svc.Upload(context.Background(), client, claim.ID, doc.ID, newUpload("factura.pdf", pdfBytes))

	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusInReview, detail.Status)
	d.claims.AssertExpectations(t)
	d.comments.AssertExpectations(t)
	d.storage.AssertNumberOfCalls(t, "DeleteMany", 0)
}

func TestReviewService_Upload_ReuploadReplacesFile(t *testing.T) {
	d := setupReview()
	client := actorFor(domain.RoleClient)
	claim := claimFor(client, domain.ClaimStatusInReview)
	doc := docFor(claim, domain.DocumentStatusRejected)
	doc.FileKey = "tenants/old.png"
	doc.RejectionReason = "ilegible"

	d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)
	d.storage.On("Put", mock.Anything, mock.Anything).Return(nil)
	d.docs.On("UpdateReview", mock.Anything, mock.MatchedBy(func(doc *domain.ClaimDocument) bool {
		return doc.Status == domain.DocumentStatusReceived && doc.RejectionReason == ""
	}), domain.DocumentStatusRejected).Return(nil)
	d.storage.On("DeleteMany", mock.Anything, "claimdesk-test", []string{"tenants/old.png"}).Return(nil)
	d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.DocumentComment) bool {
		return c.Action == domain.CommentActionReupload
	})).Return(nil)
	d.docs.On("ListByClaim", mock.Anything, client.TenantID, claim.ID).Return([]domain.ClaimDocument{*doc}, nil)

	_, err := d.svc.Upload(context.Background(), client, claim.ID, doc.ID, newUpload("foto.png", pngBytes))

	require.NoError(t, err)
	d.storage.AssertExpectations(t)
	d.claims.AssertNumberOfCalls(t, "MarkInReview", 0)
}

func TestReviewService_Upload_Rejections(t *testing.T) {
	t.Run("received document", func(t *testing.T) {
		d := setupReview()
		client := actorFor(domain.RoleClient)
		claim := claimFor(client, domain.ClaimStatusInReview)
		doc := docFor(claim, domain.DocumentStatusReceived)
		d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)

		_, err := d.svc.Upload(context.Background(), client, claim.ID, doc.ID, newUpload("a.pdf", pdfBytes))

		assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)
		d.storage.AssertNumberOfCalls(t, "Put", 0)
	})

	t.Run("staff cannot re-upload", func(t *testing.T) {
		d := setupReview()
		staff := actorFor(domain.RoleStaff)
		claim := claimFor(staff, domain.ClaimStatusInReview)
		doc := docFor(claim, domain.DocumentStatusRejected)
		d.claims.On("GetByID", mock.Anything, staff.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("GetByID", mock.Anything, staff.TenantID, claim.ID, doc.ID).Return(doc, nil)

		_, err := d.svc.Upload(context.Background(), staff, claim.ID, doc.ID, newUpload("a.pdf", pdfBytes))

		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("verified claim is locked", func(t *testing.T) {
		d := setupReview()
		client := actorFor(domain.RoleClient)
		claim := claimFor(client, domain.ClaimStatusVerified)
		d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)

		_, err := d.svc.Upload(context.Background(), client, claim.ID, uuid.New(), newUpload("a.pdf", pdfBytes))

		assert.ErrorIs(t, err, domain.ErrClaimLocked)
	})

	t.Run("unsupported file", func(t *testing.T) {
		d := setupReview()
		client := actorFor(domain.RoleClient)
		claim := claimFor(client, domain.ClaimStatusPending)
		doc := docFor(claim, domain.DocumentStatusPending)
		d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)

		_, err := d.svc.Upload(context.Background(), client, claim.ID, doc.ID, newUpload("notes.txt", []byte("hola")))

		assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
	})

	t.Run("stale status removes new object", func(t *testing.T) {
		d := setupReview()
		client := actorFor(domain.RoleClient)
		claim := claimFor(client, domain.ClaimStatusPending)
		doc := docFor(claim, domain.DocumentStatusPending)
		d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)
		d.storage.On("Put", mock.Anything, mock.Anything).Return(nil)
		d.docs.On("UpdateReview", mock.Anything, mock.Anything, domain.DocumentStatusPending).
			Return(domain.ErrInvalidDocumentTransition)
		d.storage.On("DeleteMany", mock.Anything, "claimdesk-test", mock.Anything).Return(nil)

		_, err := d.svc.Upload(context.Background(), client, claim.ID, doc.ID, newUpload("a.pdf", pdfBytes))

		assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)
		d.storage.AssertNumberOfCalls(t, "DeleteMany", 1)
	})
}

func TestReviewService_Review_Approve(t *testing.T) {
	d := setupReview()
	staff := actorFor(domain.RoleStaff)
	claim := claimFor(staff, domain.ClaimStatusInReview)
	doc := docFor(claim, domain.DocumentStatusReceived)

	d.claims.On("GetByID", mock.Anything, staff.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, staff.TenantID, claim.ID, doc.ID).Return(doc, nil)
	d.docs.On("UpdateReview", mock.Anything, mock.MatchedBy(func(doc *domain.ClaimDocument) bool {
		return doc.Status == domain.DocumentStatusApproved && *doc.ReviewedBy == staff.UserID
	}), domain.DocumentStatusReceived).Return(nil)
	d.comments.On("Create", mock.Anything, mock.Anything).Return(nil)
	approved := *doc
	approved.Status = domain.DocumentStatusApproved
	d.docs.On("ListByClaim", mock.Anything, staff.TenantID, claim.ID).Return([]domain.ClaimDocument{approved}, nil)

	detail, err := d.svc.Review(context.Background(), staff, claim.ID, doc.ID, service.ReviewInput{Action: domain.CommentActionApprove})

	require.NoError(t, err)
	assert.True(t, detail.ReadyForVerification)
	d.email.AssertNumberOfCalls(t, "SendDocumentRejectedEmail", 0)
}

func TestReviewService_Review_RejectNotifiesClient(t *testing.T) {
	d := setupReview()
	admin := actorFor(domain.RoleAdmin)
	claim := claimFor(admin, domain.ClaimStatusInReview)
	doc := docFor(claim, domain.DocumentStatusReceived)
	brand := &domain.TenantBranding{TenantID: admin.TenantID, DisplayName: "Seguros Norte"}

	d.claims.On("GetByID", mock.Anything, admin.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, admin.TenantID, claim.ID, doc.ID).Return(doc, nil)
	d.docs.On("UpdateReview", mock.Anything, mock.Anything, domain.DocumentStatusReceived).Return(nil)
	d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.DocumentComment) bool {
		return c.Action == domain.CommentActionReject && c.Body == "Documento ilegible"
	})).Return(nil)
	d.users.On("GetByID", mock.Anything, admin.TenantID, claim.ClientID).
		Return(&domain.User{ID: claim.ClientID, Email: "ana@example.com", FullName: "Ana"}, nil)
	d.tenants.On("GetBranding", mock.Anything, admin.TenantID).Return(brand, nil)
	d.email.On("SendDocumentRejectedEmail", mock.Anything, brand,
		port.EmailRecipient{Email: "ana@example.com", Name: "Ana"}, claim, "Factura", "Documento ilegible").
		Return(errors.New("ses throttled"))
	d.docs.On("ListByClaim", mock.Anything, admin.TenantID, claim.ID).Return([]domain.ClaimDocument{*doc}, nil)

	_, err := d.svc.Review(context.Background(), admin, claim.ID, doc.ID, service.ReviewInput{
		Action: domain.CommentActionReject,
		Reason: "  Documento ilegible ",
	})

	require.NoError(t, err)
	d.email.AssertExpectations(t)
}

func TestReviewService_Review_Errors(t *testing.T) {
	d := setupReview()
	staff := actorFor(domain.RoleStaff)

	_, err := d.svc.Review(context.Background(), staff, uuid.New(), uuid.New(), service.ReviewInput{Action: domain.CommentActionReject, Reason: "  "})
	assert.ErrorIs(t, err, domain.ErrRejectionReasonRequired)

	_, err = d.svc.Review(context.Background(), staff, uuid.New(), uuid.New(), service.ReviewInput{Action: domain.CommentActionUpload})
	assert.ErrorIs(t, err, domain.ErrInvalidDocumentTransition)

	client := actorFor(domain.RoleClient)
	claim := claimFor(client, domain.ClaimStatusInReview)
	doc := docFor(claim, domain.DocumentStatusReceived)
	d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, client.TenantID, claim.ID, doc.ID).Return(doc, nil)

	_, err = d.svc.Review(context.Background(), client, claim.ID, doc.ID, service.ReviewInput{Action: domain.CommentActionApprove})
	assert.ErrorIs(t, err, domain.ErrInsufficientRole)
}

func TestReviewService_Review_UnassignedStaffSeesNothing(t *testing.T) {
	d := setupReview()
	staff := actorFor(domain.RoleStaff)
	other := uuid.New()
	claim := &domain.Claim{ID: uuid.New(), TenantID: staff.TenantID, AssignedAgentID: &other, Status: domain.ClaimStatusInReview}
	d.claims.On("GetByID", mock.Anything, staff.TenantID, claim.ID).Return(claim, nil)

	_, err := d.svc.Review(context.Background(), staff, claim.ID, uuid.New(), service.ReviewInput{Action: domain.CommentActionApprove})

	assert.ErrorIs(t, err, domain.ErrClaimNotFound)
}

func TestReviewService_Verify(t *testing.T) {
	t.Run("not ready", func(t *testing.T) {
		d := setupReview()
		staff := actorFor(domain.RoleStaff)
		claim := claimFor(staff, domain.ClaimStatusInReview)
		d.claims.On("GetByID", mock.Anything, staff.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("ListByClaim", mock.Anything, staff.TenantID, claim.ID).Return([]domain.ClaimDocument{
			{Status: domain.DocumentStatusApproved},
			{Status: domain.DocumentStatusReceived},
		}, nil)

		_, err := d.svc.Verify(context.Background(), staff, claim.ID)

		assert.ErrorIs(t, err, domain.ErrClaimNotReady)
		d.claims.AssertNumberOfCalls(t, "Update", 0)
	})

	t.Run("closed claim stays closed", func(t *testing.T) {
		d := setupReview()
		admin := actorFor(domain.RoleAdmin)
		claim := claimFor(admin, domain.ClaimStatusClosed)
		d.claims.On("GetByID", mock.Anything, admin.TenantID, claim.ID).Return(claim, nil)

		_, err := d.svc.Verify(context.Background(), admin, claim.ID)

		assert.ErrorIs(t, err, domain.ErrClaimLocked)
		assert.Equal(t, domain.ClaimStatusClosed, claim.Status)
		d.claims.AssertNumberOfCalls(t, "Update", 0)
	})

	t.Run("client forbidden", func(t *testing.T) {
		d := setupReview()
		_, err := d.svc.Verify(context.Background(), actorFor(domain.RoleClient), uuid.New())
		assert.ErrorIs(t, err, domain.ErrInsufficientRole)
	})

	t.Run("ready", func(t *testing.T) {
		d := setupReview()
		staff := actorFor(domain.RoleStaff)
		claim := claimFor(staff, domain.ClaimStatusInReview)
		tenant := &domain.Tenant{ID: staff.TenantID, Name: "Seguros Norte"}
		d.claims.On("GetByID", mock.Anything, staff.TenantID, claim.ID).Return(claim, nil)
		d.docs.On("ListByClaim", mock.Anything, staff.TenantID, claim.ID).Return([]domain.ClaimDocument{
			{Status: domain.DocumentStatusApproved},
			{Status: domain.DocumentStatusPending},
		}, nil)
		d.claims.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Claim) bool {
			return c.Status == domain.ClaimStatusVerified && *c.VerifiedBy == staff.UserID && c.VerifiedAt != nil
		})).Return(nil)
		d.users.On("GetByID", mock.Anything, staff.TenantID, claim.ClientID).
			Return(&domain.User{Email: "ana@example.com", FullName: "Ana"}, nil)
		d.tenants.On("GetBranding", mock.Anything, staff.TenantID).Return(nil, domain.ErrNotFound)
		d.tenants.On("GetByID", mock.Anything, staff.TenantID).Return(tenant, nil)
		d.email.On("SendClaimVerifiedEmail", mock.Anything, domain.DefaultBranding(tenant), mock.Anything, mock.Anything).Return(nil)

		detail, err := d.svc.Verify(context.Background(), staff, claim.ID)

		require.NoError(t, err)
		assert.Equal(t, domain.ClaimStatusVerified, detail.Status)
		assert.False(t, detail.ReadyForVerification)
		d.email.AssertExpectations(t)
	})
}

func TestReviewService_AddComment(t *testing.T) {
	d := setupReview()
	client := actorFor(domain.RoleClient)
	claim := claimFor(client, domain.ClaimStatusVerified)

	_, err := d.svc.AddComment(context.Background(), client, claim.ID, service.CommentInput{Body: "   "})
	assert.ErrorIs(t, err, domain.ErrCommentRequired)

	d.claims.On("GetByID", mock.Anything, client.TenantID, claim.ID).Return(claim, nil)
	d.comments.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.DocumentComment) bool {
		return c.Action == domain.CommentActionComment && c.Body == "¿Falta algo?" &&
			c.AuthorRole == domain.RoleClient && *c.AuthorID == client.UserID
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.DocumentComment).AuthorName = "Ana"
	}).Return(nil)

	comment, err := d.svc.AddComment(context.Background(), client, claim.ID, service.CommentInput{Body: " ¿Falta algo? "})

	require.NoError(t, err)
	assert.Equal(t, "Ana", comment.AuthorName)
}

func TestReviewService_DownloadURL(t *testing.T) {
	d := setupReview()
	admin := actorFor(domain.RoleAdmin)
	claim := claimFor(admin, domain.ClaimStatusInReview)
	empty := docFor(claim, domain.DocumentStatusPending)
	stored := docFor(claim, domain.DocumentStatusReceived)
	stored.FileKey = "tenants/x/claims/y/z.pdf"

	d.claims.On("GetByID", mock.Anything, admin.TenantID, claim.ID).Return(claim, nil)
	d.docs.On("GetByID", mock.Anything, admin.TenantID, claim.ID, empty.ID).Return(empty, nil)
	d.docs.On("GetByID", mock.Anything, admin.TenantID, claim.ID, stored.ID).Return(stored, nil)
	d.storage.On("PresignGet", mock.Anything, "claimdesk-test", stored.FileKey, int64(3600)).
		Return("https://s3.example.com/z.pdf?sig", nil)

	_, err := d.svc.DownloadURL(context.Background(), admin, claim.ID, empty.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)

	url, err := d.svc.DownloadURL(context.Background(), admin, claim.ID, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/z.pdf?sig", url)
}
