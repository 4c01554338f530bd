package dto

import (
	"io"
	"strings"
)

const FilesURLPrefix = "/api/v1/files/"

// Upload is a file received from a multipart form, detached from gin
type Upload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// FileURL turns a storage key ("avatars/avatar_x.png") into its public URL.
func FileURL(key string) string {
	if key == "" {
		return ""
	}
	return FilesURLPrefix + strings.TrimPrefix(key, "/")
}

// StoredFile is what the upload service returns for a saved blob
type StoredFile struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}
