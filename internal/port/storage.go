package port

import (
	"context"
	"io"
)

// PutInput describes an object written to storage. Key is the full object
// key, e.g. tenants/<tenant>/claims/<claim>/<document>.pdf.
type PutInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
	Size        int64
}

// ObjectStorage holds claim documents, avatars and tenant logos.
type ObjectStorage interface {
	Put(ctx context.Context, input PutInput) error
	// DeleteMany removes keys in batches. Missing keys are not an error.
	DeleteMany(ctx context.Context, bucket string, keys []string) error
	PresignGet(ctx context.Context, bucket, key string, expirySeconds int64) (string, error)
}
