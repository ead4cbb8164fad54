package repository

import (
	"context"

	"github.com/drishyamitra/server/internal/models"
)

// The record stores expose full-collection semantics: Load and Save read
// and replace the whole collection. Mutations go through Update, which
// holds the store's writer lock across the read-modify-write cycle so
// concurrent mutations cannot lose each other's writes. An error from the
// update function aborts without saving.

// PhotoStore persists the photo collection
type PhotoStore interface {
	Load(ctx context.Context) ([]*models.Photo, error)
	Save(ctx context.Context, photos []*models.Photo) error
	Update(ctx context.Context, fn func(photos []*models.Photo) ([]*models.Photo, error)) error
}

// ContactStore persists the contact collection
type ContactStore interface {
	Load(ctx context.Context) ([]*models.Contact, error)
	Save(ctx context.Context, contacts []*models.Contact) error
	Update(ctx context.Context, fn func(contacts []*models.Contact) ([]*models.Contact, error)) error
}

// ShareStore persists the share history (sent and received records)
type ShareStore interface {
	Load(ctx context.Context) ([]*models.ShareRecord, error)
	Save(ctx context.Context, shares []*models.ShareRecord) error
	Update(ctx context.Context, fn func(shares []*models.ShareRecord) ([]*models.ShareRecord, error)) error
}

// ProfileStore persists the library owner's profile
type ProfileStore interface {
	Load(ctx context.Context) (*models.Profile, error)
	Save(ctx context.Context, profile *models.Profile) error
}

// Stores bundles the record stores handed to services at call time
type Stores struct {
	Photos   PhotoStore
	Contacts ContactStore
	Shares   ShareStore
	Profile  ProfileStore
}
