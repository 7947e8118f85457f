package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"claimdesk/internal/domain"
	"claimdesk/internal/handler"
	"claimdesk/internal/middleware"
	"claimdesk/internal/service"
	"claimdesk/internal/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinValidators(); err != nil {
		panic(err)
	}
}

func setAuthContext(c *gin.Context, tenantID, userID uuid.UUID, role string) {
	c.Set(middleware.ContextKeyTenantID, tenantID)
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyRole, role)
	c.Set(middleware.ContextKeyEmail, "user@test.com")
}

func newActor(role domain.UserRole) service.Actor {
	return service.Actor{TenantID: uuid.New(), UserID: uuid.New(), Role: role}
}

// newTestContext builds a gin context for actor. A nil body sends no payload.
func newTestContext(actor *service.Actor, method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	if body == nil {
		c.Request, _ = http.NewRequest(method, target, http.NoBody)
	} else {
		raw, _ := json.Marshal(body)
		c.Request, _ = http.NewRequest(method, target, bytes.NewReader(raw))
		c.Request.Header.Set("Content-Type", "application/json")
	}
	if actor != nil {
		setAuthContext(c, actor.TenantID, actor.UserID, string(actor.Role))
	}
	return c, w
}

// newUploadContext builds a multipart request carrying content in the "file" field.
func newUploadContext(t *testing.T, actor *service.Actor, target, filename string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, target, &buf)
	c.Request.Header.Set("Content-Type", mw.FormDataContentType())
	if actor != nil {
		setAuthContext(c, actor.TenantID, actor.UserID, string(actor.Role))
	}
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}
