package service

import (
	"alcyxob/coach-studio/internal/storage"
	"context"
	"errors"
	"mime"
	"path"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMediaStorageDisabled = errors.New("media storage is not configured")
	ErrUnsupportedMediaType = errors.New("only image and video uploads are allowed")
	ErrUploadURLError       = errors.New("failed to generate upload URL")
)

// MediaUpload is returned to the client: it PUTs the file to UploadURL with the
// same Content-Type and stores MediaURL in the exercise.
type MediaUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
	MediaURL  string `json:"mediaUrl"`
}

type MediaService interface {
	GenerateMediaUploadURL(ctx context.Context, contentType string) (*MediaUpload, error)
}

type mediaService struct {
	fileStorage storage.FileStorage
}

// NewMediaService creates a new instance of mediaService. fileStorage may be nil
// when no bucket is configured; every call then fails with ErrMediaStorageDisabled.
func NewMediaService(fileStorage storage.FileStorage) MediaService {
	return &mediaService{fileStorage: fileStorage}
}

func (s *mediaService) GenerateMediaUploadURL(ctx context.Context, contentType string) (*MediaUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrMediaStorageDisabled
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, ErrUnsupportedMediaType
	}
	kind, subtype, _ := strings.Cut(mediaType, "/")
	if (kind != "image" && kind != "video") || subtype == "" {
		return nil, ErrUnsupportedMediaType
	}

	objectKey := path.Join("exercises", kind, uuid.NewString()+extensionFor(mediaType, subtype))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, mediaType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		log.Errorf("presign media upload %s: %s", objectKey, err)
		return nil, ErrUploadURLError
	}

	return &MediaUpload{
		UploadURL: uploadURL,
		ObjectKey: objectKey,
		MediaURL:  s.fileStorage.PublicURL(objectKey),
	}, nil
}

// extensionFor prefers the registered extension and falls back to the subtype.
func extensionFor(mediaType, subtype string) string {
	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	subtype, _, _ = strings.Cut(subtype, "+")
	return "." + subtype
}
