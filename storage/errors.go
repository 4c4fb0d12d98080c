package storage

import "errors"

// Errors returned by the S3-backed attachment mirror storage.New builds for
// orchestrator.WithAttachmentMirror.
var (
	ErrMissingConfig          = errors.New("storage: key, secret, region, and bucket are required")
	ErrFailedToLoadConfig     = errors.New("storage: failed to load AWS config")
	ErrInvalidEndpoint        = errors.New("storage: invalid endpoint")
	ErrInvalidRequest         = errors.New("storage: invalid upload request")
	ErrFileTooLarge           = errors.New("storage: file exceeds configured max size")
	ErrFailedToUploadFile     = errors.New("failed to upload file")
	ErrFailedToListFiles      = errors.New("failed to list files")
	ErrFailedToDeleteFile     = errors.New("failed to delete file")
	ErrFailedToDeleteDirectory = errors.New("failed to delete directory")
)
