package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"claimdesk/internal/config"
	"claimdesk/internal/domain"
	"claimdesk/internal/port"
)

// FileUpload is a file received from a multipart form.
type FileUpload struct {
	File     multipart.File
	Filename string
	Size     int64
}

// inspectedFile is an upload that passed extension, size and content checks.
type inspectedFile struct {
	FileType    domain.FileType
	Ext         string
	ContentType string
}

// inspectUpload validates the extension against allowed, the declared size
// against maxBytes and the sniffed content type against the extension list,
// then rewinds the file for upload.
func inspectUpload(in FileUpload, allowed map[domain.FileType]bool, maxBytes int64) (*inspectedFile, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(in.Filename), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok || (allowed != nil && !allowed[fileType]) {
		return nil, domain.ErrUnsupportedFileType
	}
	if in.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// Read first 512 bytes for magic-byte content type detection
	buf := make([]byte, 512)
	n, err := in.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	detected, ok := domain.AllowedContentTypes[http.DetectContentType(buf[:n])]
	if !ok || detected != fileType {
		return nil, domain.ErrUnsupportedFileType
	}

	if _, err := in.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	return &inspectedFile{
		FileType:    fileType,
		Ext:         string(fileType),
		ContentType: domain.AllowedFileTypes[fileType],
	}, nil
}

// objectKey builds a tenant-scoped storage key. The stored name is random so
// re-uploads never overwrite each other.
func objectKey(tenantID uuid.UUID, area string, ownerID uuid.UUID, ext string) string {
	return fmt.Sprintf("tenants/%s/%s/%s/%s.%s", tenantID, area, ownerID, uuid.New(), ext)
}

func megabytes(n int64) int64 {
	return n * 1024 * 1024
}

// objectStore wraps ObjectStorage with the bucket and presign settings.
type objectStore struct {
	storage port.ObjectStorage
	cfg     *config.S3Config
	log     *zap.Logger
}

func (o *objectStore) put(ctx context.Context, key string, in FileUpload, contentType string) error {
	err := o.storage.Put(ctx, port.PutInput{
		Bucket:      o.cfg.Bucket,
		Key:         key,
		Body:        in.File,
		ContentType: contentType,
		Size:        in.Size,
	})
	if err != nil {
		o.log.Error("uploading object", zap.String("key", key), zap.Error(err))
		return domain.ErrUploadFailed
	}
	return nil
}

// url presigns key. An empty key or a presign failure yields "".
func (o *objectStore) url(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	u, err := o.storage.PresignGet(ctx, o.cfg.Bucket, key, o.cfg.PresignExpiry)
	if err != nil {
		o.log.Warn("presigning object", zap.String("key", key), zap.Error(err))
		return ""
	}
	return u
}

// remove deletes keys best effort; leftovers are only logged.
func (o *objectStore) remove(ctx context.Context, keys ...string) {
	live := keys[:0:0]
	for _, k := range keys {
		if k != "" {
			live = append(live, k)
		}
	}
	if len(live) == 0 {
		return
	}
	if err := o.storage.DeleteMany(ctx, o.cfg.Bucket, live); err != nil {
		o.log.Warn("deleting objects", zap.Int("count", len(live)), zap.Error(err))
	}
}
