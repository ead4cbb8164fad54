package models

import (
	"strings"
	"time"
)

// Contact is a person photos can be shared with. The ID is derived from
// the name, so names are unique case-insensitively across the store.
type Contact struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Phone   string    `json:"phone,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// NewContact creates a Contact with a name-derived ID
func NewContact(name, phone string) (*Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyContactName
	}

	return &Contact{
		ID:      ContactID(name),
		Name:    name,
		Phone:   strings.TrimSpace(phone),
		AddedAt: time.Now().UTC(),
	}, nil
}

// ContactID derives the store ID for a contact name: lowercased, spaces
// replaced with underscores.
func ContactID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
