package models

import (
	"fmt"
	"time"
)

// Share record types
const (
	ShareTypeSent     = "sent"
	ShareTypeReceived = "received"
)

// Share record statuses
const (
	ShareStatusDelivered = "delivered"
	ShareStatusUnread    = "unread"
)

// ShareRecord is one side of a share: the sender's "sent" record or the
// recipient's "received" record. Every share produces exactly one of each,
// both referencing the same photo IDs.
type ShareRecord struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ToPhone    string    `json:"to_phone,omitempty"`
	PhotoIDs   []string  `json:"photo_ids"`
	PhotoCount int       `json:"photo_count"`
	SharedAt   time.Time `json:"shared_at"`
	Status     string    `json:"status"`
}

// NewSharePair builds the paired sent/received records for one share
// action. seq must be unique within the share collection; the caller uses
// the collection length at append time.
func NewSharePair(from string, contact *Contact, photoIDs []string, seq int) (sent, received *ShareRecord) {
	now := time.Now().UTC()

	sent = &ShareRecord{
		ID:         fmt.Sprintf("%s_%d", contact.ID, seq),
		Type:       ShareTypeSent,
		From:       from,
		To:         contact.Name,
		ToPhone:    contact.Phone,
		PhotoIDs:   photoIDs,
		PhotoCount: len(photoIDs),
		SharedAt:   now,
		Status:     ShareStatusDelivered,
	}

	received = &ShareRecord{
		ID:         fmt.Sprintf("recv_%s_%d", contact.ID, seq),
		Type:       ShareTypeReceived,
		From:       from,
		To:         contact.Name,
		PhotoIDs:   photoIDs,
		PhotoCount: len(photoIDs),
		SharedAt:   now,
		Status:     ShareStatusUnread,
	}

	return sent, received
}

// Profile is the library owner's identity, used as the "from" side of
// share records.
type Profile struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultProfile is returned when no profile has been saved yet
func DefaultProfile() *Profile {
	return &Profile{Name: "You", CreatedAt: time.Now().UTC()}
}
