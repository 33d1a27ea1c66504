package filestorage

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/yigit/counselordesk/internal/pkg/apperrors"
	"github.com/yigit/counselordesk/internal/pkg/logger"
)

// InlineStorage embeds uploaded images into the owning record as data URLs
type InlineStorage struct {
	maxImageBytes int64
}

// NewInlineStorage creates an InlineStorage that accepts images up to maxImageBytes
func NewInlineStorage(maxImageBytes int64) *InlineStorage {
	return &InlineStorage{maxImageBytes: maxImageBytes}
}

// ReadFile reads the whole upload. Files larger than limit fail with apperrors.ErrFileTooLarge.
func (s *InlineStorage) ReadFile(fileHeader *multipart.FileHeader, limit int64) ([]byte, *FileInfo, error) {
	if fileHeader == nil {
		return nil, nil, apperrors.NewBadRequestError("no file uploaded")
	}
	if limit > 0 && fileHeader.Size > limit {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes, limit %d", apperrors.ErrFileTooLarge, fileHeader.Filename, fileHeader.Size, limit)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return nil, nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// The header size comes from the client; read one byte past the limit to be sure.
	reader := io.Reader(file)
	if limit > 0 {
		reader = io.LimitReader(file, limit+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, nil, fmt.Errorf("%w: %s exceeds %d bytes", apperrors.ErrFileTooLarge, fileHeader.Filename, limit)
	}

	info := &FileInfo{
		Filename: fileHeader.Filename,
		FileSize: int64(len(data)),
		MimeType: mimetype.Detect(data).String(),
	}
	return data, info, nil
}

// SaveImage reads an image upload and returns it as a data URL
func (s *InlineStorage) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil
	}
	data, _, err := s.ReadFile(fileHeader, s.maxImageBytes)
	if err != nil {
		return "", err
	}
	url, err := EncodeImage(data)
	if err != nil {
		logger.Warn().Str("filename", fileHeader.Filename).Msg("Rejected non-image upload")
		return "", err
	}
	logger.Debug().Str("filename", fileHeader.Filename).Int("bytes", len(data)).Msg("Image embedded")
	return url, nil
}

// EncodeImage wraps image bytes in a data URL. The media type is sniffed from
// the content; anything that is not an image fails with apperrors.ErrNotAnImage.
func EncodeImage(data []byte) (string, error) {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", apperrors.ErrNotAnImage, mt.String())
	}
	return "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// IsDataURL reports whether s already is an inline image
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:image/")
}
