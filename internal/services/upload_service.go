package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"freelink_backend/internal/imageprocessor"
	"freelink_backend/internal/logger"
	"freelink_backend/internal/services/dto"
	"freelink_backend/internal/storage"
	"freelink_backend/pkg/apperrors"

	"github.com/google/uuid"
)

type FileCategory string

const (
	CategoryResumes FileCategory = "resumes"
	CategoryAvatars FileCategory = "avatars"
	CategoryLogos   FileCategory = "logos"
)

type categoryRule struct {
	prefix     string
	extensions []string
	image      bool
}

var categoryRules = map[FileCategory]categoryRule{
	CategoryResumes: {prefix: "cv", extensions: []string{".pdf"}},
	CategoryAvatars: {prefix: "avatar", extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}, image: true},
	CategoryLogos:   {prefix: "logo", extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".webp"}, image: true},
}

var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

const maxOriginalNameLength = 80

type UploadService interface {
	// Save validates and stores an upload, returning its storage key and URL
	Save(ctx context.Context, userID string, category FileCategory, upload *dto.Upload) (*dto.StoredFile, error)
	// Open returns the blob behind /files/{category}/{filename}
	Open(ctx context.Context, category, filename string) (io.ReadCloser, string, error)
	// Delete removes a blob; failures are logged only
	Delete(ctx context.Context, key string)
}

type UploadServiceImpl struct {
	storage storage.Storage
	images  *imageprocessor.Processor
	maxSize int64
}

func NewUploadService(store storage.Storage, images *imageprocessor.Processor, maxSize int64) UploadService {
	return &UploadServiceImpl{
		storage: store,
		images:  images,
		maxSize: maxSize,
	}
}

func (s *UploadServiceImpl) Save(ctx context.Context, userID string, category FileCategory, upload *dto.Upload) (*dto.StoredFile, error) {
	rule, ok := categoryRules[category]
	if !ok {
		return nil, apperrors.NewBadRequestError("Unknown file category")
	}
	if upload == nil || upload.Content == nil {
		return nil, apperrors.NewBadRequestError("File is required")
	}

	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if !allowedExtension(rule, ext) {
		return nil, apperrors.ErrInvalidFileType.WithDetails(map[string]interface{}{
			"allowed": rule.extensions,
		})
	}
	if upload.Size > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxSize+1))
	if err != nil {
		return nil, apperrors.InternalError(fmt.Errorf("read upload: %w", err))
	}
	if int64(len(data)) > s.maxSize {
		return nil, apperrors.ErrFileTooLarge
	}

	if rule.image && (ext == ".png" || ext == ".jpg" || ext == ".jpeg") {
		fitted, resized, err := s.images.Fit(data)
		if err != nil {
			return nil, apperrors.ErrInvalidFileType.WithError(err)
		}
		if resized {
			logger.CtxDebug(ctx, "Image downscaled", "category", category, "from", len(data), "to", len(fitted))
		}
		data = fitted
	}

	key := string(category) + "/" + storedName(rule.prefix, userID, upload.Filename, ext)
	contentType := contentTypes[ext]
	if err := s.storage.Save(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, apperrors.ExternalServiceError(err, "file", "Failed to store file")
	}

	logger.CtxInfo(ctx, "File stored", "key", key, "size", len(data))
	return &dto.StoredFile{
		Key:         key,
		URL:         dto.FileURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

func (s *UploadServiceImpl) Open(ctx context.Context, category, filename string) (io.ReadCloser, string, error) {
	if _, ok := categoryRules[FileCategory(category)]; !ok {
		return nil, "", apperrors.ErrFileNotFound
	}
	if filename == "" || strings.ContainsAny(filename, `/\`) || strings.Contains(filename, "..") {
		return nil, "", apperrors.ErrFileNotFound
	}

	rc, err := s.storage.Get(ctx, category+"/"+filename)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, "", apperrors.ErrFileNotFound
		}
		return nil, "", apperrors.ExternalServiceError(err, "file", "Failed to read file")
	}

	contentType, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		contentType = "application/octet-stream"
	}
	return rc, contentType, nil
}

func (s *UploadServiceImpl) Delete(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.CtxWithError(ctx, "Failed to delete stored file", err, "key", key)
	}
}

func allowedExtension(rule categoryRule, ext string) bool {
	for _, allowed := range rule.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// storedName builds {prefix}_{userID}_{8 hex}_{sanitized original name}
func storedName(prefix, userID, original, ext string) string {
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "._")
	if base == "" {
		base = "file"
	}
	if len(base) > maxOriginalNameLength {
		base = base[:maxOriginalNameLength]
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s_%s_%s_%s%s", prefix, userID, random, base, ext)
}
