package handlers

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/repository"
	"github.com/drishyamitra/server/internal/services"
)

// PhotoHandler handles photo upload, listing, and deletion
type PhotoHandler struct {
	photos        repository.PhotoStore
	storage       *services.StorageService
	tagging       *services.TaggingService
	exif          *services.EXIFService
	events        *services.EventHub
	publicBaseURL string
}

// NewPhotoHandler creates a new PhotoHandler
func NewPhotoHandler(
	photos repository.PhotoStore,
	storage *services.StorageService,
	tagging *services.TaggingService,
	exif *services.EXIFService,
	events *services.EventHub,
	publicBaseURL string,
) *PhotoHandler {
	return &PhotoHandler{
		photos:        photos,
		storage:       storage,
		tagging:       tagging,
		exif:          exif,
		events:        events,
		publicBaseURL: publicBaseURL,
	}
}

// List returns every photo in the library
// @Summary List all photos
// @Description Get the full photo collection
// @Tags photos
// @Produce json
// @Success 200 {array} models.Photo "Photo collection"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/photos [get]
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	photos, err := h.photos.Load(r.Context())
	if err != nil {
		log.Printf("Error loading photos: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to load photos.")
		return
	}

	respondJSON(w, http.StatusOK, photos)
}

// Upload handles a photo upload
// @Summary Upload a photo
// @Description Upload a new photo. Tags are generated automatically and the capture date is read from EXIF when present.
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Photo file to upload"
// @Success 201 {object} models.Photo "Photo created"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/upload [post]
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.storage.MaxFileSizeBytes()); err != nil {
		respondError(w, http.StatusBadRequest, "Request must be multipart/form-data.")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "No image uploaded.")
		return
	}
	defer file.Close()

	if header.Filename == "" || !h.storage.Allowed(header.Filename) {
		respondError(w, http.StatusBadRequest, "Invalid file type.")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to read file.")
		return
	}

	date := h.exif.DateTaken(content)
	if date == nil {
		now := time.Now().UTC()
		date = &now
	}

	tags := h.tagging.GenerateTags(content)
	if tags == nil {
		log.Printf("No tags generated for %s", header.Filename)
	}

	photo, err := models.NewPhoto(header.Filename, h.urlBase(r), tags, date)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.storage.Store(bytes.NewReader(content), photo.Filename, int64(len(content))); err != nil {
		log.Printf("Error storing file: %v", err)
		switch err {
		case models.ErrFileTooLarge, models.ErrInvalidExtension:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "Failed to store file.")
		}
		return
	}

	err = h.photos.Update(r.Context(), func(photos []*models.Photo) ([]*models.Photo, error) {
		return append(photos, photo), nil
	})
	if err != nil {
		h.storage.Remove(photo.Filename)
		log.Printf("Error saving photo record: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to save photo record.")
		return
	}

	h.events.Broadcast(services.EventPhotoUploaded, photo)
	log.Printf("Photo uploaded: %s (%d tags)", photo.ID, len(photo.Tags))

	respondJSON(w, http.StatusCreated, photo)
}

// Delete removes a photo record and its backing file
// @Summary Delete a photo
// @Description Delete a photo by ID. The record removal is authoritative; a missing file is tolerated.
// @Tags photos
// @Produce json
// @Param id path string true "Photo ID"
// @Success 200 {object} models.StatusResponse "Photo deleted"
// @Failure 404 {object} models.ErrorResponse "Photo not found"
// @Failure 500 {object} models.ErrorResponse "Server error"
// @Router /api/photos/{id} [delete]
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "Photo ID is required.")
		return
	}

	var deleted *models.Photo
	err := h.photos.Update(r.Context(), func(photos []*models.Photo) ([]*models.Photo, error) {
		remaining := make([]*models.Photo, 0, len(photos))
		for _, p := range photos {
			if p.ID == id {
				deleted = p
				continue
			}
			remaining = append(remaining, p)
		}
		if deleted == nil {
			return nil, models.ErrPhotoNotFound
		}
		return remaining, nil
	})
	if err != nil {
		if errors.Is(err, models.ErrPhotoNotFound) {
			respondError(w, http.StatusNotFound, "Photo not found.")
			return
		}
		log.Printf("Error saving photos: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to delete photo.")
		return
	}

	if err := h.storage.Remove(deleted.Filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: failed to remove file for photo %s: %v", id, err)
	}

	h.events.Broadcast(services.EventPhotoDeleted, deleted)

	respondJSON(w, http.StatusOK, models.StatusResponse{Status: "deleted"})
}

// urlBase returns the prefix photo URLs are built from: the configured
// public base URL when set, otherwise the request's own host.
func (h *PhotoHandler) urlBase(r *http.Request) string {
	base := h.publicBaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = scheme + "://" + r.Host
	}
	return base + "/storage/images"
}
