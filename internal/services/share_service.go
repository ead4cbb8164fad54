package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/observability"
	"github.com/drishyamitra/server/internal/repository"
)

// maxMessageTags caps how many tags the share notification mentions
const maxMessageTags = 3

// ShareService creates paired sent/received share records and builds the
// WhatsApp handoff for the recipient.
type ShareService struct {
	profiles    repository.ProfileStore
	shares      repository.ShareStore
	countryCode string
	logger      *observability.Logger
}

// NewShareService creates a ShareService. countryCode is prefixed to bare
// 10-digit phone numbers, e.g. "+91".
func NewShareService(profiles repository.ProfileStore, shares repository.ShareStore, countryCode string) *ShareService {
	if countryCode == "" {
		countryCode = "+91"
	}
	return &ShareService{
		profiles:    profiles,
		shares:      shares,
		countryCode: countryCode,
		logger:      observability.GetLogger().WithField("component", "share"),
	}
}

// Share records a share of the given photos with a contact. The sent and
// received records are appended in a single store update, so they land
// together or not at all and the sequence number is taken under the
// store's writer lock.
func (s *ShareService) Share(ctx context.Context, photos []*models.Photo, contact *models.Contact) (*models.ShareResponse, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	photoIDs := make([]string, len(photos))
	for i, p := range photos {
		photoIDs[i] = p.ID
	}

	var sent, received *models.ShareRecord
	err = s.shares.Update(ctx, func(shares []*models.ShareRecord) ([]*models.ShareRecord, error) {
		sent, received = models.NewSharePair(profile.Name, contact, photoIDs, len(shares))
		return append(shares, sent, received), nil
	})
	if err != nil {
		return nil, fmt.Errorf("save shares: %w", err)
	}

	notification := s.buildNotification(profile.Name, photos, sent.SharedAt)
	link := s.buildWhatsAppLink(contact.Phone, notification)

	s.logger.WithContext(ctx).Infof("shared %d photo(s): %s -> %s", len(photos), profile.Name, contact.Name)

	return &models.ShareResponse{
		Message:         fmt.Sprintf("Shared %d photo(s) with %s!", len(photos), contact.Name),
		ShareRecord:     sent,
		ReceiveRecord:   received,
		WhatsAppLink:    link,
		WhatsAppMessage: notification,
	}, nil
}

// buildNotification composes the recipient-facing message: sender, count,
// up to three distinct tags from the shared photos, and the share date.
func (s *ShareService) buildNotification(from string, photos []*models.Photo, sharedAt time.Time) string {
	msg := fmt.Sprintf("📸 %s shared %d photo(s) with you!", from, len(photos))

	tags := collectTags(photos, maxMessageTags)
	if len(tags) > 0 {
		msg += "\n🏷️ Tags: " + strings.Join(tags, ", ")
	}

	msg += "\n⏰ " + sharedAt.Format("January 2, 2006")
	return msg
}

// collectTags gathers up to max distinct tags across the photos,
// in first-occurrence order.
func collectTags(photos []*models.Photo, max int) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, p := range photos {
		for _, tag := range models.NormalizeTags(p.Tags) {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
			if len(out) >= max {
				return out
			}
		}
	}
	return out
}

// buildWhatsAppLink constructs a wa.me deep link with the notification
// pre-filled. Returns a link without a phone segment if the contact has
// no usable number.
func (s *ShareService) buildWhatsAppLink(phone, message string) string {
	normalized := s.NormalizePhone(phone)
	return "https://wa.me/" + strings.TrimPrefix(normalized, "+") + "?text=" + encodeMessage(message)
}

// NormalizePhone strips separators and applies the default country code to
// bare 10-digit numbers. Numbers already carrying "+" pass through.
func (s *ShareService) NormalizePhone(phone string) string {
	phone = strings.NewReplacer(" ", "", "-", "").Replace(phone)
	if phone == "" || strings.HasPrefix(phone, "+") {
		return phone
	}
	if len(phone) == 10 {
		return s.countryCode + phone
	}
	return "+" + phone
}

// encodeMessage percent-encodes the message for a URL query value,
// using %20 for spaces so messaging apps render them as typed.
func encodeMessage(message string) string {
	return strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
