package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/repository"
	"github.com/drishyamitra/server/internal/services"
)

// ShareHandler handles explicit shares and share history
type ShareHandler struct {
	shareService *services.ShareService
	stores       repository.Stores
	events       *services.EventHub
}

// NewShareHandler creates a new ShareHandler
func NewShareHandler(shareService *services.ShareService, stores repository.Stores, events *services.EventHub) *ShareHandler {
	return &ShareHandler{shareService: shareService, stores: stores, events: events}
}

// Share shares explicit photo IDs with a named contact
// @Summary Share photos with a contact
// @Description Creates paired sent/received records and a WhatsApp handoff link.
// @Tags shares
// @Accept json
// @Produce json
// @Param request body models.ShareRequest true "Photo IDs and contact name"
// @Success 201 {object} models.ShareResponse "Share created"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 404 {object} models.ErrorResponse "Contact or photos not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/share [post]
func (h *ShareHandler) Share(w http.ResponseWriter, r *http.Request) {
	var req models.ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	contactName := strings.TrimSpace(req.ContactName)
	if len(req.PhotoIDs) == 0 || contactName == "" {
		respondError(w, http.StatusBadRequest, "photo_ids and contact_name are required.")
		return
	}

	contacts, err := h.stores.Contacts.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load contacts.")
		return
	}

	var contact *models.Contact
	for _, c := range contacts {
		if strings.EqualFold(c.Name, contactName) {
			contact = c
			break
		}
	}
	if contact == nil {
		respondError(w, http.StatusNotFound, "Contact '"+contactName+"' not found.")
		return
	}

	photos, err := h.stores.Photos.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load photos.")
		return
	}

	wanted := make(map[string]bool, len(req.PhotoIDs))
	for _, id := range req.PhotoIDs {
		wanted[id] = true
	}

	shared := []*models.Photo{}
	for _, p := range photos {
		if wanted[p.ID] {
			shared = append(shared, p)
		}
	}
	if len(shared) == 0 {
		respondError(w, http.StatusNotFound, "No photos found.")
		return
	}

	resp, err := h.shareService.Share(r.Context(), shared, contact)
	if err != nil {
		log.Printf("Share error: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to share photos.")
		return
	}

	h.events.Broadcast(services.EventShareCreated, resp.ShareRecord)

	respondJSON(w, http.StatusCreated, resp)
}

// List returns the full share history, sent and received
// @Summary List all share records
// @Tags shares
// @Produce json
// @Success 200 {array} models.ShareRecord "Share records"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/shares [get]
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	shares, err := h.stores.Shares.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load shares.")
		return
	}

	respondJSON(w, http.StatusOK, shares)
}

// Sent returns shares the owner sent, hydrated with photo records
// @Summary List sent shares
// @Tags shares
// @Produce json
// @Success 200 {array} models.ShareWithPhotos "Sent shares with photos"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/shares/sent [get]
func (h *ShareHandler) Sent(w http.ResponseWriter, r *http.Request) {
	h.listByType(w, r, models.ShareTypeSent, "")
}

// Received returns shares addressed to the owner, hydrated with photos
// @Summary List received shares
// @Tags shares
// @Produce json
// @Success 200 {array} models.ShareWithPhotos "Received shares with photos"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/shares/received [get]
func (h *ShareHandler) Received(w http.ResponseWriter, r *http.Request) {
	profile, err := h.stores.Profile.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	h.listByType(w, r, models.ShareTypeReceived, profile.Name)
}

func (h *ShareHandler) listByType(w http.ResponseWriter, r *http.Request, shareType, toName string) {
	shares, err := h.stores.Shares.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load shares.")
		return
	}

	photos, err := h.stores.Photos.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load photos.")
		return
	}

	out := []*models.ShareWithPhotos{}
	for _, s := range shares {
		if s.Type != shareType {
			continue
		}
		if toName != "" && s.To != toName {
			continue
		}
		out = append(out, hydrate(s, photos))
	}

	respondJSON(w, http.StatusOK, out)
}

// ByContact returns the photos shared with one contact
// @Summary List photos shared with a contact
// @Tags shares
// @Produce json
// @Param name path string true "Contact name"
// @Success 200 {array} models.Photo "Shared photos"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/shares/contact/{name} [get]
func (h *ShareHandler) ByContact(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	shares, err := h.stores.Shares.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load shares.")
		return
	}

	sharedIDs := map[string]bool{}
	for _, s := range shares {
		if s.Type != models.ShareTypeSent || !strings.EqualFold(s.To, name) {
			continue
		}
		for _, id := range s.PhotoIDs {
			sharedIDs[id] = true
		}
	}

	photos, err := h.stores.Photos.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load photos.")
		return
	}

	out := []*models.Photo{}
	for _, p := range photos {
		if sharedIDs[p.ID] {
			out = append(out, p)
		}
	}

	respondJSON(w, http.StatusOK, out)
}

// History returns every share record hydrated with its photos
// @Summary Full bidirectional share history
// @Tags shares
// @Produce json
// @Success 200 {array} models.ShareWithPhotos "Share history"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/share/history [get]
func (h *ShareHandler) History(w http.ResponseWriter, r *http.Request) {
	shares, err := h.stores.Shares.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load shares.")
		return
	}

	photos, err := h.stores.Photos.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load photos.")
		return
	}

	out := make([]*models.ShareWithPhotos, 0, len(shares))
	for _, s := range shares {
		out = append(out, hydrate(s, photos))
	}

	respondJSON(w, http.StatusOK, out)
}

// hydrate attaches the photo records a share references
func hydrate(s *models.ShareRecord, photos []*models.Photo) *models.ShareWithPhotos {
	wanted := make(map[string]bool, len(s.PhotoIDs))
	for _, id := range s.PhotoIDs {
		wanted[id] = true
	}

	hydrated := &models.ShareWithPhotos{ShareRecord: *s, Photos: []*models.Photo{}}
	for _, p := range photos {
		if wanted[p.ID] {
			hydrated.Photos = append(hydrated.Photos, p)
		}
	}
	return hydrated
}
