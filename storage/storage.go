// storage.go
package storage

import (
	"context"
	"net/http"
)

// Storage is the attachment mirror interface orchestrator.WithAttachmentMirror
// takes; storage.New's S3-backed client is the only production
// implementation, with client_test.go substituting a mock S3Client instead
// of a fake Storage.
type (
	Storage interface {
		GetFileURL(path string) string
		UploadFile(ctx context.Context, file []byte, opts UploadOptions) (File, error)
		UploadFileFromRequest(ctx context.Context, r *http.Request, opts UploadFromRequestOptions) (File, error)
		ListFiles(ctx context.Context, path string) ([]File, error)
		DeleteFile(ctx context.Context, path string) error
		DeleteDirectory(ctx context.Context, path string) error
	}

	File struct {
		Path        string
		URL         string
		Size        int64
		ContentType string
	}

	UploadOptions struct {
		ContentType string
		Path        string
		IsPublic    bool
		Metadata    map[string]string
	}

	UploadFromRequestOptions struct {
		ContentType string
		Path        string
		Field       string
		IsPublic    bool
		Metadata    map[string]string
	}
)
