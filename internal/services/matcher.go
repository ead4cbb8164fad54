package services

import (
	"sort"
	"strings"

	"github.com/drishyamitra/server/internal/models"
)

const (
	exactTagScore     = 3
	substringTagScore = 1
)

// MatchPhotos scores every photo against the keyword set and returns the
// matches in descending score order. Scoring per (keyword, tag) pair:
// exact match +3, one-sided substring containment +1. Photos that score
// zero are excluded. The sort is stable, so photos with equal scores keep
// their collection order and downstream delete/share act on a
// deterministic subset. An empty keyword set matches nothing.
func MatchPhotos(keywords []string, photos []*models.Photo) []*models.Photo {
	if len(keywords) == 0 {
		return []*models.Photo{}
	}

	type scoredPhoto struct {
		photo *models.Photo
		score int
	}

	matched := []scoredPhoto{}
	for _, p := range photos {
		tags := models.NormalizeTags(p.Tags)

		score := 0
		for _, kw := range keywords {
			for _, tag := range tags {
				switch {
				case kw == tag:
					score += exactTagScore
				case strings.Contains(tag, kw) || strings.Contains(kw, tag):
					score += substringTagScore
				}
			}
		}

		if score > 0 {
			matched = append(matched, scoredPhoto{photo: p, score: score})
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].score > matched[j].score
	})

	out := make([]*models.Photo, len(matched))
	for i, m := range matched {
		out[i] = m.photo
	}
	return out
}
