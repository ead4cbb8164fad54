package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/repository"
	"github.com/drishyamitra/server/internal/services"
)

type photoFixture struct {
	handler *PhotoHandler
	photos  *repository.MemoryPhotoStore
	dir     string
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()
	stores, photoStore, _, _ := repository.NewMemoryStores()

	dir := t.TempDir()
	storage, err := services.NewStorageService(dir, nil, 16)
	require.NoError(t, err)

	h := NewPhotoHandler(stores.Photos, storage,
		services.NewTaggingService(), services.NewEXIFService(), nil, "http://photos.test")
	return &photoFixture{handler: h, photos: photoStore, dir: dir}
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestPhotoHandlerList(t *testing.T) {
	f := newPhotoFixture(t)
	f.photos.Photos = []*models.Photo{{ID: "a"}, {ID: "b"}}

	w := httptest.NewRecorder()
	f.handler.List(w, httptest.NewRequest(http.MethodGet, "/api/photos", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	var out []*models.Photo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Len(t, out, 2)
}

func TestPhotoHandlerUpload(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newPhotoFixture(t)

		req := multipartUpload(t, "image", "holiday.jpg", []byte("fake image bytes"))
		w := httptest.NewRecorder()
		f.handler.Upload(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var photo models.Photo
		require.NoError(t, json.NewDecoder(w.Body).Decode(&photo))
		assert.NotEmpty(t, photo.ID)
		assert.Contains(t, photo.URL, "http://photos.test/storage/images/")
		require.NotNil(t, photo.Date, "falls back to upload time without EXIF")

		// record persisted and byte content written
		require.Len(t, f.photos.Photos, 1)
		data, err := os.ReadFile(filepath.Join(f.dir, photo.Filename))
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))
	})

	t.Run("WrongField", func(t *testing.T) {
		f := newPhotoFixture(t)

		req := multipartUpload(t, "file", "holiday.jpg", []byte("x"))
		w := httptest.NewRecorder()
		f.handler.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("DisallowedExtension", func(t *testing.T) {
		f := newPhotoFixture(t)

		req := multipartUpload(t, "image", "notes.txt", []byte("x"))
		w := httptest.NewRecorder()
		f.handler.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Invalid file type.", resp.Error)
		assert.Empty(t, f.photos.Photos)
	})

	t.Run("NotMultipart", func(t *testing.T) {
		f := newPhotoFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/upload", bytes.NewBufferString("plain"))
		w := httptest.NewRecorder()
		f.handler.Upload(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPhotoHandlerDelete(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newPhotoFixture(t)
		filename := "p1_beach.jpg"
		require.NoError(t, os.WriteFile(filepath.Join(f.dir, filename), []byte("x"), 0644))
		f.photos.Photos = []*models.Photo{{ID: "p1", Filename: filename}}

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/photos/p1", nil), "id", "p1")
		w := httptest.NewRecorder()
		f.handler.Delete(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, f.photos.Photos)

		_, err := os.Stat(filepath.Join(f.dir, filename))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("MissingFileStillDeletesRecord", func(t *testing.T) {
		f := newPhotoFixture(t)
		f.photos.Photos = []*models.Photo{{ID: "p1", Filename: "gone.jpg"}}

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/photos/p1", nil), "id", "p1")
		w := httptest.NewRecorder()
		f.handler.Delete(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, f.photos.Photos)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newPhotoFixture(t)

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/photos/ghost", nil), "id", "ghost")
		w := httptest.NewRecorder()
		f.handler.Delete(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
