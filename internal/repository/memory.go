package repository

import (
	"context"
	"sync"

	"github.com/drishyamitra/server/internal/models"
)

// In-memory stores, used by tests in place of the file-backed ones.
// SaveCalls counts writes so tests can assert a mutation happened (or
// happened exactly once).

// MemoryPhotoStore holds photos in memory
type MemoryPhotoStore struct {
	mu        sync.Mutex
	Photos    []*models.Photo
	SaveCalls int
}

func (s *MemoryPhotoStore) Load(ctx context.Context) ([]*models.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Photo, len(s.Photos))
	copy(out, s.Photos)
	return out, nil
}

func (s *MemoryPhotoStore) Save(ctx context.Context, photos []*models.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Photos = photos
	s.SaveCalls++
	return nil
}

func (s *MemoryPhotoStore) Update(ctx context.Context, fn func(photos []*models.Photo) ([]*models.Photo, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	photos, err := fn(s.Photos)
	if err != nil {
		return err
	}
	s.Photos = photos
	s.SaveCalls++
	return nil
}

// MemoryContactStore holds contacts in memory
type MemoryContactStore struct {
	mu        sync.Mutex
	Contacts  []*models.Contact
	SaveCalls int
}

func (s *MemoryContactStore) Load(ctx context.Context) ([]*models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Contact, len(s.Contacts))
	copy(out, s.Contacts)
	return out, nil
}

func (s *MemoryContactStore) Save(ctx context.Context, contacts []*models.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Contacts = contacts
	s.SaveCalls++
	return nil
}

func (s *MemoryContactStore) Update(ctx context.Context, fn func(contacts []*models.Contact) ([]*models.Contact, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts, err := fn(s.Contacts)
	if err != nil {
		return err
	}
	s.Contacts = contacts
	s.SaveCalls++
	return nil
}

// MemoryShareStore holds share records in memory
type MemoryShareStore struct {
	mu        sync.Mutex
	Shares    []*models.ShareRecord
	SaveCalls int
}

func (s *MemoryShareStore) Load(ctx context.Context) ([]*models.ShareRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.ShareRecord, len(s.Shares))
	copy(out, s.Shares)
	return out, nil
}

func (s *MemoryShareStore) Save(ctx context.Context, shares []*models.ShareRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Shares = shares
	s.SaveCalls++
	return nil
}

func (s *MemoryShareStore) Update(ctx context.Context, fn func(shares []*models.ShareRecord) ([]*models.ShareRecord, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shares, err := fn(s.Shares)
	if err != nil {
		return err
	}
	s.Shares = shares
	s.SaveCalls++
	return nil
}

// MemoryProfileStore holds the owner profile in memory
type MemoryProfileStore struct {
	mu      sync.Mutex
	Profile *models.Profile
}

func (s *MemoryProfileStore) Load(ctx context.Context) (*models.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Profile == nil {
		return models.DefaultProfile(), nil
	}
	return s.Profile, nil
}

func (s *MemoryProfileStore) Save(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Profile = profile
	return nil
}

// NewMemoryStores creates a full set of in-memory record stores
func NewMemoryStores() (Stores, *MemoryPhotoStore, *MemoryContactStore, *MemoryShareStore) {
	photos := &MemoryPhotoStore{}
	contacts := &MemoryContactStore{}
	shares := &MemoryShareStore{}
	stores := Stores{
		Photos:   photos,
		Contacts: contacts,
		Shares:   shares,
		Profile:  &MemoryProfileStore{},
	}
	return stores, photos, contacts, shares
}
