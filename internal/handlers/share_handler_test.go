package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishyamitra/server/internal/models"
	"github.com/drishyamitra/server/internal/repository"
	"github.com/drishyamitra/server/internal/services"
)

type shareFixture struct {
	handler  *ShareHandler
	photos   *repository.MemoryPhotoStore
	contacts *repository.MemoryContactStore
	shares   *repository.MemoryShareStore
	stores   repository.Stores
}

func newShareFixture() *shareFixture {
	stores, photoStore, contactStore, shareStore := repository.NewMemoryStores()
	svc := services.NewShareService(stores.Profile, stores.Shares, "+91")
	return &shareFixture{
		handler:  NewShareHandler(svc, stores, nil),
		photos:   photoStore,
		contacts: contactStore,
		shares:   shareStore,
		stores:   stores,
	}
}

func (f *shareFixture) seed() {
	f.photos.Photos = []*models.Photo{
		{ID: "p1", Filename: "p1.jpg", Tags: []string{"beach"}},
		{ID: "p2", Filename: "p2.jpg", Tags: []string{"dog"}},
	}
	f.contacts.Contacts = []*models.Contact{
		{ID: "asha_rao", Name: "Asha Rao", Phone: "9876543210"},
	}
}

func TestShareHandlerShare(t *testing.T) {
	post := func(f *shareFixture, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/share", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		f.handler.Share(w, req)
		return w
	}

	t.Run("Success", func(t *testing.T) {
		f := newShareFixture()
		f.seed()

		w := post(f, `{"photo_ids":["p1"],"contact_name":"Asha Rao"}`)
		assert.Equal(t, http.StatusCreated, w.Code)

		var resp models.ShareResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Shared 1 photo(s) with Asha Rao!", resp.Message)
		assert.Contains(t, resp.WhatsAppLink, "wa.me/919876543210")
		require.NotNil(t, resp.ShareRecord)
		assert.Equal(t, []string{"p1"}, resp.ShareRecord.PhotoIDs)

		assert.Len(t, f.shares.Shares, 2)
	})

	t.Run("ContactNameCaseInsensitive", func(t *testing.T) {
		f := newShareFixture()
		f.seed()

		w := post(f, `{"photo_ids":["p1"],"contact_name":"asha rao"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		f := newShareFixture()
		f.seed()

		w := post(f, `{"photo_ids":[],"contact_name":"Asha Rao"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = post(f, `{"photo_ids":["p1"],"contact_name":""}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("UnknownContact", func(t *testing.T) {
		f := newShareFixture()
		f.seed()

		w := post(f, `{"photo_ids":["p1"],"contact_name":"Carol"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "Contact 'Carol' not found.", resp.Error)
	})

	t.Run("NoMatchingPhotos", func(t *testing.T) {
		f := newShareFixture()
		f.seed()

		w := post(f, `{"photo_ids":["ghost"],"contact_name":"Asha Rao"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestShareHandlerHistory(t *testing.T) {
	seedShares := func(f *shareFixture) {
		f.seed()
		contact := f.contacts.Contacts[0]
		sent, received := models.NewSharePair("You", contact, []string{"p1", "p2"}, 0)
		f.shares.Shares = []*models.ShareRecord{sent, received}
	}

	t.Run("ListReturnsAllRecords", func(t *testing.T) {
		f := newShareFixture()
		seedShares(f)

		w := httptest.NewRecorder()
		f.handler.List(w, httptest.NewRequest(http.MethodGet, "/api/shares", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var records []*models.ShareRecord
		require.NoError(t, json.NewDecoder(w.Body).Decode(&records))
		assert.Len(t, records, 2)
	})

	t.Run("SentHydratedWithPhotos", func(t *testing.T) {
		f := newShareFixture()
		seedShares(f)

		w := httptest.NewRecorder()
		f.handler.Sent(w, httptest.NewRequest(http.MethodGet, "/api/shares/sent", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var out []*models.ShareWithPhotos
		require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, models.ShareTypeSent, out[0].Type)
		assert.Len(t, out[0].Photos, 2)
	})

	t.Run("ReceivedFiltersByOwnerName", func(t *testing.T) {
		f := newShareFixture()
		seedShares(f)
		// received records were addressed to Asha, not the owner
		w := httptest.NewRecorder()
		f.handler.Received(w, httptest.NewRequest(http.MethodGet, "/api/shares/received", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var out []*models.ShareWithPhotos
		require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
		assert.Empty(t, out)
	})

	t.Run("ByContact", func(t *testing.T) {
		f := newShareFixture()
		seedShares(f)

		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/shares/contact/Asha%20Rao", nil), "name", "Asha Rao")
		w := httptest.NewRecorder()
		f.handler.ByContact(w, req)
		assert.Equal(t, http.StatusOK, w.Code)

		var out []*models.Photo
		require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
		assert.Len(t, out, 2)
	})

	t.Run("HistoryReturnsEverythingHydrated", func(t *testing.T) {
		f := newShareFixture()
		seedShares(f)

		w := httptest.NewRecorder()
		f.handler.History(w, httptest.NewRequest(http.MethodGet, "/api/share/history", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var out []*models.ShareWithPhotos
		require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
		assert.Len(t, out, 2)
	})
}
