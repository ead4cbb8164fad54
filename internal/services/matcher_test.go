package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drishyamitra/server/internal/models"
)

func photoWithTags(id string, tags ...string) *models.Photo {
	return &models.Photo{ID: id, Tags: tags}
}

func TestMatchPhotos(t *testing.T) {
	t.Run("EmptyKeywordsMatchNothing", func(t *testing.T) {
		photos := []*models.Photo{photoWithTags("a", "beach")}
		got := MatchPhotos([]string{}, photos)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("ExactBeatsSubstring", func(t *testing.T) {
		photos := []*models.Photo{
			photoWithTags("sub", "beachside"),
			photoWithTags("exact", "beach"),
		}
		got := MatchPhotos([]string{"beach"}, photos)
		require.Len(t, got, 2)
		assert.Equal(t, "exact", got[0].ID)
		assert.Equal(t, "sub", got[1].ID)
	})

	t.Run("SubstringWorksBothWays", func(t *testing.T) {
		photos := []*models.Photo{photoWithTags("a", "sun")}
		got := MatchPhotos([]string{"sunset"}, photos)
		assert.Len(t, got, 1)
	})

	t.Run("ZeroScoreExcluded", func(t *testing.T) {
		photos := []*models.Photo{
			photoWithTags("a", "beach"),
			photoWithTags("b", "mountain"),
		}
		got := MatchPhotos([]string{"beach"}, photos)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ID)
	})

	t.Run("MultipleKeywordsAccumulate", func(t *testing.T) {
		photos := []*models.Photo{
			photoWithTags("both", "beach", "sunset"),
			photoWithTags("one", "beach"),
		}
		got := MatchPhotos([]string{"beach", "sunset"}, photos)
		require.Len(t, got, 2)
		assert.Equal(t, "both", got[0].ID)
	})

	t.Run("StableTieOrder", func(t *testing.T) {
		photos := []*models.Photo{
			photoWithTags("first", "beach"),
			photoWithTags("second", "beach"),
			photoWithTags("third", "beach"),
		}
		got := MatchPhotos([]string{"beach"}, photos)
		require.Len(t, got, 3)
		assert.Equal(t, "first", got[0].ID)
		assert.Equal(t, "second", got[1].ID)
		assert.Equal(t, "third", got[2].ID)
	})

	t.Run("DuplicateStoredTagsCountOnce", func(t *testing.T) {
		photos := []*models.Photo{
			photoWithTags("dup", "beach", "Beach", "BEACH"),
			photoWithTags("plain", "beach"),
		}
		got := MatchPhotos([]string{"beach"}, photos)
		require.Len(t, got, 2)
		// duplicate tags normalize away, so both photos tie and keep
		// collection order
		assert.Equal(t, "dup", got[0].ID)
		assert.Equal(t, "plain", got[1].ID)
	})

	t.Run("CaseInsensitiveViaNormalization", func(t *testing.T) {
		photos := []*models.Photo{photoWithTags("a", "Beach")}
		got := MatchPhotos([]string{"beach"}, photos)
		assert.Len(t, got, 1)
	})

	t.Run("NoPhotos", func(t *testing.T) {
		got := MatchPhotos([]string{"beach"}, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
