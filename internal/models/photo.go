package models

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Photo represents an uploaded photo in the library
type Photo struct {
	ID       string     `json:"id"`
	URL      string     `json:"url"`
	Filename string     `json:"filename"`
	Tags     []string   `json:"tags"`
	Date     *time.Time `json:"date,omitempty"`
}

// NewPhoto creates a new Photo with a generated ID and sanitized filename.
// The stored filename is prefixed with the ID so deletes can locate the
// backing file from the record alone.
func NewPhoto(originalFilename, urlBase string, tags []string, date *time.Time) (*Photo, error) {
	if strings.TrimSpace(originalFilename) == "" {
		return nil, ErrEmptyFilename
	}

	id := uuid.New().String()
	filename := id + "_" + sanitizeFilename(originalFilename)

	return &Photo{
		ID:       id,
		URL:      strings.TrimSuffix(urlBase, "/") + "/" + filename,
		Filename: filename,
		Tags:     NormalizeTags(tags),
		Date:     date,
	}, nil
}

// NormalizeTags lowercases a tag list and removes duplicates, preserving
// the order of first occurrence. Blank tags are dropped.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// sanitizeFilename removes path components and invalid characters
func sanitizeFilename(filename string) string {
	name := filepath.Base(filename)

	replacer := strings.NewReplacer(
		"..", "",
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)

	return replacer.Replace(name)
}

// Errors
type LibraryError struct {
	Message string
}

func (e LibraryError) Error() string {
	return e.Message
}

var (
	ErrEmptyFilename    = LibraryError{"original filename cannot be empty"}
	ErrPhotoNotFound    = LibraryError{"photo not found"}
	ErrInvalidExtension = LibraryError{"file extension not allowed"}
	ErrFileTooLarge     = LibraryError{"file size exceeds maximum allowed"}
	ErrEmptyContactName = LibraryError{"contact name cannot be empty"}
	ErrContactExists    = LibraryError{"contact already exists"}
	ErrContactNotFound  = LibraryError{"contact not found"}
	ErrEmptyProfileName = LibraryError{"profile name cannot be empty"}
)
