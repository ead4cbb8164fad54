package services

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/drishyamitra/server/internal/models"
)

// FileRemover removes a stored photo file by name. A missing file is
// reported via fs.ErrNotExist; callers log removal failures instead of
// propagating them.
type FileRemover interface {
	Remove(filename string) error
}

// StorageService stores uploaded photo files under a flat base directory
type StorageService struct {
	basePath          string
	allowedExtensions map[string]bool
	maxFileSizeBytes  int64
}

// NewStorageService creates a StorageService rooted at basePath
func NewStorageService(basePath string, allowedExtensions []string, maxFileSizeMB int64) (*StorageService, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return nil, err
	}

	extSet := make(map[string]bool)
	if len(allowedExtensions) == 0 {
		for _, ext := range []string{".jpg", ".jpeg", ".png", ".webp"} {
			extSet[ext] = true
		}
	} else {
		for _, ext := range allowedExtensions {
			extSet[strings.ToLower(ext)] = true
		}
	}

	return &StorageService{
		basePath:          absPath,
		allowedExtensions: extSet,
		maxFileSizeBytes:  maxFileSizeMB * 1024 * 1024,
	}, nil
}

// Allowed reports whether the filename's extension is accepted for upload
func (s *StorageService) Allowed(filename string) bool {
	return s.allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// MaxFileSizeBytes returns the upload size limit
func (s *StorageService) MaxFileSizeBytes() int64 {
	return s.maxFileSizeBytes
}

// Store writes an uploaded file under the base path. filename must already
// be sanitized (models.NewPhoto produces it).
func (s *StorageService) Store(reader io.Reader, filename string, size int64) error {
	if size > s.maxFileSizeBytes {
		return models.ErrFileTooLarge
	}
	if !s.Allowed(filename) {
		return models.ErrInvalidExtension
	}

	dst, err := os.Create(filepath.Join(s.basePath, filename))
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		os.Remove(dst.Name())
		return err
	}
	return nil
}

// Remove deletes a stored file. A missing file surfaces as fs.ErrNotExist.
func (s *StorageService) Remove(filename string) error {
	path := filepath.Join(s.basePath, filepath.Base(filename))
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", filename, fs.ErrNotExist)
	}
	return err
}

// BasePath returns the absolute storage directory
func (s *StorageService) BasePath() string {
	return s.basePath
}
