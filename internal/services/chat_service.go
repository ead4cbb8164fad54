package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/observability"
	"github.com/drishyamitra/server/internal/repository"
)

// ChatService is the conversational command executor: it extracts
// keywords, classifies intent, ranks the library against the keywords,
// and applies the resulting search, delete, or share command.
type ChatService struct {
	keywords *KeywordService
	share    *ShareService
	stores   repository.Stores
	files    FileRemover
	events   *EventHub
	logger   *observability.Logger
}

// NewChatService creates a ChatService. events may be nil.
func NewChatService(keywords *KeywordService, share *ShareService, stores repository.Stores, files FileRemover, events *EventHub) *ChatService {
	return &ChatService{
		keywords: keywords,
		share:    share,
		stores:   stores,
		files:    files,
		events:   events,
		logger:   observability.GetLogger().WithField("component", "chat"),
	}
}

// Chat processes one query end to end. No intermediate state survives
// between calls; every request loads the stores fresh.
func (s *ChatService) Chat(ctx context.Context, query string) (*models.ChatResponse, error) {
	ctx, span := observability.StartServiceSpan(ctx, "chat", "Chat")
	defer span.End()

	keywords := s.keywords.Extract(ctx, query)
	intent := ClassifyIntent(query)

	photos, err := s.stores.Photos.Load(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, fmt.Errorf("load photos: %w", err)
	}

	matched := MatchPhotos(keywords, photos)

	s.logger.WithContext(ctx).Debugf("query %q: intent=%s keywords=%v matched=%d",
		query, intent, keywords, len(matched))

	// A command verb with nothing to act on degrades to a search report.
	if intent == IntentSearch || len(matched) == 0 {
		return searchResponse(matched), nil
	}

	switch intent {
	case IntentDelete:
		return s.executeDelete(ctx, matched)
	case IntentShare:
		return s.executeShare(ctx, query, matched)
	default:
		return searchResponse(matched), nil
	}
}

func searchResponse(matched []*models.Photo) *models.ChatResponse {
	if len(matched) == 0 {
		return &models.ChatResponse{
			Message: "No photos matched your query. Try different words.",
			Photos:  []*models.Photo{},
		}
	}
	return &models.ChatResponse{
		Message: fmt.Sprintf("Found %d photo(s) matching your query.", len(matched)),
		Photos:  matched,
	}
}

// executeDelete removes the matched records in one store update, then
// best-effort removes the backing files. A file that cannot be removed is
// logged and skipped; the record removal is authoritative and its event
// fires either way.
func (s *ChatService) executeDelete(ctx context.Context, matched []*models.Photo) (*models.ChatResponse, error) {
	span := trace.SpanFromContext(ctx)

	doomed := make(map[string]bool, len(matched))
	for _, p := range matched {
		doomed[p.ID] = true
	}

	err := s.stores.Photos.Update(ctx, func(photos []*models.Photo) ([]*models.Photo, error) {
		remaining := make([]*models.Photo, 0, len(photos))
		for _, p := range photos {
			if !doomed[p.ID] {
				remaining = append(remaining, p)
			}
		}
		return remaining, nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete photos: %w", err)
	}

	for _, p := range matched {
		if err := s.files.Remove(p.Filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.WithContext(ctx).Warnf("file already gone for photo %s", p.ID)
			} else {
				s.logger.WithContext(ctx).Errorf("failed to remove file for photo %s: %v", p.ID, err)
			}
		}
		span.AddEvent("photo deleted", trace.WithAttributes(observability.PhotoID(p.ID)))
		s.events.Broadcast(EventPhotoDeleted, p)
	}

	return &models.ChatResponse{
		Message: fmt.Sprintf("Deleted %d photo(s).", len(matched)),
		Photos:  matched,
	}, nil
}

// executeShare resolves the recipient from the query and delegates to the
// share service. An unresolved contact is a conversational branch, not an
// error: the user is asked to name someone.
func (s *ChatService) executeShare(ctx context.Context, query string, matched []*models.Photo) (*models.ChatResponse, error) {
	contacts, err := s.stores.Contacts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load contacts: %w", err)
	}

	contact := resolveContact(contacts, query)
	if contact == nil {
		return &models.ChatResponse{
			Message: "I couldn't tell who to share these with. Please tell me the contact's name.",
			Photos:  matched,
		}, nil
	}

	trace.SpanFromContext(ctx).SetAttributes(observability.ContactID(contact.ID))

	resp, err := s.share.Share(ctx, matched, contact)
	if err != nil {
		return nil, err
	}
	s.events.Broadcast(EventShareCreated, resp.ShareRecord)

	return &models.ChatResponse{
		Message: resp.Message + " " + resp.WhatsAppLink,
		Photos:  matched,
	}, nil
}

// resolveContact returns the first contact whose name appears in the
// query, case-insensitively, in store iteration order. When several
// contact names appear, the first in store order wins.
func resolveContact(contacts []*models.Contact, query string) *models.Contact {
	q := strings.ToLower(query)
	for _, c := range contacts {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name != "" && strings.Contains(q, name) {
			return c
		}
	}
	return nil
}
