package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/repository"
)

// ContactHandler handles contact CRUD and the owner profile
type ContactHandler struct {
	contacts repository.ContactStore
	profile  repository.ProfileStore
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contacts repository.ContactStore, profile repository.ProfileStore) *ContactHandler {
	return &ContactHandler{contacts: contacts, profile: profile}
}

// List returns all contacts
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Success 200 {array} models.Contact "Contact list"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/contacts [get]
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.Load(r.Context())
	if err != nil {
		log.Printf("Error loading contacts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load contacts.")
		return
	}

	respondJSON(w, http.StatusOK, contacts)
}

// Create adds a new contact
// @Summary Add a contact
// @Description Add a contact. Names are unique case-insensitively.
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body models.ContactRequest true "Contact name and phone"
// @Success 201 {object} models.Contact "Contact created"
// @Failure 400 {object} models.ErrorResponse "Invalid request or duplicate name"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/contacts [post]
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	contact, err := models.NewContact(req.Name, req.Phone)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	err = h.contacts.Update(r.Context(), func(contacts []*models.Contact) ([]*models.Contact, error) {
		for _, c := range contacts {
			if strings.EqualFold(c.Name, contact.Name) {
				return nil, models.ErrContactExists
			}
		}
		return append(contacts, contact), nil
	})
	if err != nil {
		if errors.Is(err, models.ErrContactExists) {
			respondError(w, http.StatusBadRequest, "Contact already exists.")
			return
		}
		log.Printf("Error saving contacts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save contact.")
		return
	}

	respondJSON(w, http.StatusCreated, contact)
}

// Delete removes a contact by ID
// @Summary Delete a contact
// @Tags contacts
// @Produce json
// @Param id path string true "Contact ID"
// @Success 200 {object} models.StatusResponse "Contact deleted"
// @Failure 404 {object} models.ErrorResponse "Contact not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/contacts/{id} [delete]
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.contacts.Update(r.Context(), func(contacts []*models.Contact) ([]*models.Contact, error) {
		remaining := make([]*models.Contact, 0, len(contacts))
		for _, c := range contacts {
			if c.ID != id {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == len(contacts) {
			return nil, models.ErrContactNotFound
		}
		return remaining, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrContactNotFound) {
			respondError(w, http.StatusNotFound, "Contact not found.")
			return
		}
		log.Printf("Error saving contacts: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete contact.")
		return
	}

	respondJSON(w, http.StatusOK, models.StatusResponse{Status: "deleted"})
}

// GetProfile returns the library owner's profile
// @Summary Get the owner profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.Profile "Owner profile"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/user/profile [get]
func (h *ContactHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profile.Load(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to load profile.")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// SetProfile sets the library owner's name
// @Summary Set the owner profile
// @Tags profile
// @Accept json
// @Produce json
// @Param request body models.ProfileRequest true "Owner name"
// @Success 200 {object} models.Profile "Saved profile"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/user/profile [post]
func (h *ContactHandler) SetProfile(w http.ResponseWriter, r *http.Request) {
	var req models.ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(w, http.StatusBadRequest, "Name is required.")
		return
	}

	profile := &models.Profile{Name: name, CreatedAt: time.Now().UTC()}
	if err := h.profile.Save(r.Context(), profile); err != nil {
		log.Printf("Error saving profile: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save profile.")
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
