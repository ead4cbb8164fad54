package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/drishyamitra/server/internal/models"
)

// jsonCollection is one JSON-array document on disk. A single mutex
// serializes access; update holds it across the whole read-modify-write
// cycle, so concurrent mutations against the same store cannot lose each
// other's writes. Writes go through a temp file and rename so a crash
// never leaves a half-written collection.
type jsonCollection[T any] struct {
	path string
	mu   sync.Mutex
}

func (c *jsonCollection[T]) load() ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

func (c *jsonCollection[T]) update(fn func(items []T) ([]T, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	items, err = fn(items)
	if err != nil {
		return err
	}
	return c.write(items)
}

func (c *jsonCollection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.path, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *jsonCollection[T]) save(items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(items)
}

func (c *jsonCollection[T]) write(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, c.path)
}

// JSONPhotoStore persists photos as a flat JSON document
type JSONPhotoStore struct {
	col jsonCollection[*models.Photo]
}

// NewJSONPhotoStore creates a JSON-file photo store under dataDir
func NewJSONPhotoStore(dataDir string) *JSONPhotoStore {
	return &JSONPhotoStore{col: jsonCollection[*models.Photo]{path: filepath.Join(dataDir, "photos.json")}}
}

func (s *JSONPhotoStore) Load(ctx context.Context) ([]*models.Photo, error) {
	return s.col.load()
}

func (s *JSONPhotoStore) Save(ctx context.Context, photos []*models.Photo) error {
	return s.col.save(photos)
}

func (s *JSONPhotoStore) Update(ctx context.Context, fn func(photos []*models.Photo) ([]*models.Photo, error)) error {
	return s.col.update(fn)
}

// JSONContactStore persists contacts as a flat JSON document
type JSONContactStore struct {
	col jsonCollection[*models.Contact]
}

// NewJSONContactStore creates a JSON-file contact store under dataDir
func NewJSONContactStore(dataDir string) *JSONContactStore {
	return &JSONContactStore{col: jsonCollection[*models.Contact]{path: filepath.Join(dataDir, "contacts.json")}}
}

func (s *JSONContactStore) Load(ctx context.Context) ([]*models.Contact, error) {
	return s.col.load()
}

func (s *JSONContactStore) Save(ctx context.Context, contacts []*models.Contact) error {
	return s.col.save(contacts)
}

func (s *JSONContactStore) Update(ctx context.Context, fn func(contacts []*models.Contact) ([]*models.Contact, error)) error {
	return s.col.update(fn)
}

// JSONShareStore persists share history as a flat JSON document
type JSONShareStore struct {
	col jsonCollection[*models.ShareRecord]
}

// NewJSONShareStore creates a JSON-file share store under dataDir
func NewJSONShareStore(dataDir string) *JSONShareStore {
	return &JSONShareStore{col: jsonCollection[*models.ShareRecord]{path: filepath.Join(dataDir, "shares.json")}}
}

func (s *JSONShareStore) Load(ctx context.Context) ([]*models.ShareRecord, error) {
	return s.col.load()
}

func (s *JSONShareStore) Save(ctx context.Context, shares []*models.ShareRecord) error {
	return s.col.save(shares)
}

func (s *JSONShareStore) Update(ctx context.Context, fn func(shares []*models.ShareRecord) ([]*models.ShareRecord, error)) error {
	return s.col.update(fn)
}

// JSONProfileStore persists the owner profile as a single JSON document
type JSONProfileStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONProfileStore creates a JSON-file profile store under dataDir
func NewJSONProfileStore(dataDir string) *JSONProfileStore {
	return &JSONProfileStore{path: filepath.Join(dataDir, "user_profile.json")}
}

func (s *JSONProfileStore) Load(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.DefaultProfile(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var p models.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if p.Name == "" {
		return models.DefaultProfile(), nil
	}
	return &p, nil
}

func (s *JSONProfileStore) Save(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// NewJSONStores creates the full set of JSON-file record stores under dataDir
func NewJSONStores(dataDir string) Stores {
	return Stores{
		Photos:   NewJSONPhotoStore(dataDir),
		Contacts: NewJSONContactStore(dataDir),
		Shares:   NewJSONShareStore(dataDir),
		Profile:  NewJSONProfileStore(dataDir),
	}
}
