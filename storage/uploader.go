package storage

import (
	"context"
	"io"
	"net/url"
	"strings"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

// FileUploader stores exported documents in object storage.
type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

// publicURL joins an object key onto a public base URL with exactly one slash
// between them. It returns "" when either part is missing or base is unparsable.
func publicURL(base, key string) string {
	if base == "" || key == "" {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil || baseURL.Scheme == "" || baseURL.Host == "" {
		return ""
	}
	baseURL.Path = strings.TrimSuffix(baseURL.Path, "/") + "/" + strings.TrimPrefix(key, "/")
	return baseURL.String()
}
