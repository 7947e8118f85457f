package service_test

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/service"
)

// memFile satisfies multipart.File for upload tests.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func newUpload(name string, content []byte) service.FileUpload {
	return service.FileUpload{
		File:     memFile{bytes.NewReader(content)},
		Filename: name,
		Size:     int64(len(content)),
	}
}

var (
	pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

func testS3Config() *config.S3Config {
	return &config.S3Config{
		Bucket:          "claimdesk-test",
		MaxFileSizeMB:   10,
		MaxAvatarSizeMB: 2,
		PresignExpiry:   3600,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-bytes-long!!",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		Issuer:             "claimdesk-test",
	}
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}

func actorFor(role domain.UserRole) service.Actor {
	return service.Actor{TenantID: uuid.New(), UserID: uuid.New(), Role: role}
}
