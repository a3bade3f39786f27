package service

import (
	"context"
	"io"
)

// PhotoUploader stores an uploaded image with an external provider
// and returns its public URL.
type PhotoUploader interface {
	UploadPhoto(ctx context.Context, filename string, content io.Reader) (string, error)
}

// UploadedFile is one multipart file handed down from the HTTP layer.
type UploadedFile struct {
	Name    string
	Content io.Reader
}
