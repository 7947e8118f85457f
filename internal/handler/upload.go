package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"claimdesk/internal/service"
)

// formFile reads the "file" multipart field. The caller must call the
// returned close func once the upload has been handled.
func formFile(c *gin.Context) (service.FileUpload, func(), bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return service.FileUpload{}, nil, false
	}
	upload := service.FileUpload{
		File:     file,
		Filename: filepath.Base(header.Filename),
		Size:     header.Size,
	}
	return upload, func() { _ = file.Close() }, true
}
