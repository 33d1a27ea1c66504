package filestorage

import (
	"mime/multipart"
)

// FileInfo describes an upload after it has been read
type FileInfo struct {
	Filename string // Original filename
	FileSize int64  // Size in bytes
	MimeType string // Sniffed from content, not taken from the client
}

// FileStorage turns uploads into values that can live on a record.
// Nothing is written to disk; images become data URLs.
type FileStorage interface {
	// ReadFile returns the upload's content, refusing anything above limit bytes
	ReadFile(fileHeader *multipart.FileHeader, limit int64) ([]byte, *FileInfo, error)

	// SaveImage returns the upload as a data URL; nil headers yield ""
	SaveImage(fileHeader *multipart.FileHeader) (string, error)
}
