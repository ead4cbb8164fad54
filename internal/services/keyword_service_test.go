package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubModel returns a fixed reply or error for every Ask call
type stubModel struct {
	reply string
	err   error
	asked int
}

func (m *stubModel) Ask(ctx context.Context, prompt string) (string, error) {
	m.asked++
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func TestLocalKeywords(t *testing.T) {
	t.Run("DropsStopWordsAndShortTokens", func(t *testing.T) {
		got := LocalKeywords("show me my beach photos at sunset")
		assert.Equal(t, []string{"beach", "sunset"}, got)
	})

	t.Run("StripsPunctuation", func(t *testing.T) {
		got := LocalKeywords("don't delete the dog's birthday photos!")
		assert.Equal(t, []string{"dont", "dogs", "birthday"}, got)
	})

	t.Run("Dedupes", func(t *testing.T) {
		got := LocalKeywords("beach beach Beach BEACH")
		assert.Equal(t, []string{"beach"}, got)
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		got := LocalKeywords("")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("OnlyStopWords", func(t *testing.T) {
		got := LocalKeywords("show me all the photos please")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("NonASCIIStripped", func(t *testing.T) {
		got := LocalKeywords("café photos ☀️ sunset")
		assert.Equal(t, []string{"caf", "sunset"}, got)
	})

	t.Run("Idempotent", func(t *testing.T) {
		first := LocalKeywords("beach sunset dog")
		again := LocalKeywords("beach sunset dog")
		assert.Equal(t, first, again)
	})
}

func TestKeywordServiceExtract(t *testing.T) {
	t.Run("NilModelFallsBackToLocal", func(t *testing.T) {
		svc := NewKeywordService(nil, time.Second)
		got := svc.Extract(context.Background(), "find my beach pics")
		assert.Equal(t, []string{"beach"}, got)
	})

	t.Run("ModelReplyNormalizedNotStopFiltered", func(t *testing.T) {
		model := &stubModel{reply: "Beach, Sunset, the dog"}
		svc := NewKeywordService(model, time.Second)
		got := svc.Extract(context.Background(), "show my beach photos")
		// "the" survives because the model reply skips stop-word filtering
		assert.Equal(t, []string{"beach", "sunset", "the", "dog"}, got)
		assert.Equal(t, 1, model.asked)
	})

	t.Run("ModelKeepsFillerWords", func(t *testing.T) {
		model := &stubModel{reply: "photos sunset"}
		svc := NewKeywordService(model, time.Second)
		got := svc.Extract(context.Background(), "anything")
		assert.Equal(t, []string{"photos", "sunset"}, got)
	})

	t.Run("ModelErrorFallsBackToLocal", func(t *testing.T) {
		model := &stubModel{err: errors.New("upstream timeout")}
		svc := NewKeywordService(model, time.Second)
		got := svc.Extract(context.Background(), "show my beach photos")
		assert.Equal(t, []string{"beach"}, got)
		assert.Equal(t, 1, model.asked)
	})

	t.Run("ModelEmptyReplyFallsBackToLocal", func(t *testing.T) {
		model := &stubModel{reply: ""}
		svc := NewKeywordService(model, time.Second)
		got := svc.Extract(context.Background(), "show my beach photos")
		assert.Equal(t, []string{"beach"}, got)
	})

	t.Run("ModelUnusableReplyFallsBackToLocal", func(t *testing.T) {
		// reply tokenizes to nothing: every token is too short
		model := &stubModel{reply: "a, b & c!"}
		svc := NewKeywordService(model, time.Second)
		got := svc.Extract(context.Background(), "show my beach photos")
		assert.Equal(t, []string{"beach"}, got)
	})
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  Intent
	}{
		{"PlainSearch", "show my beach photos", IntentSearch},
		{"Delete", "delete my beach pics", IntentDelete},
		{"DeleteCaseInsensitive", "REMOVE the blurry ones", IntentDelete},
		{"DeleteSubstring", "I removed nothing yet", IntentDelete},
		{"Share", "share sunset pics with Asha", IntentShare},
		{"Send", "send these to Bob", IntentShare},
		{"DeleteBeatsShare", "delete and share my beach pics", IntentDelete},
		{"Empty", "", IntentSearch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.query))
		})
	}
}

func TestIntentString(t *testing.T) {
	assert.Equal(t, "search", IntentSearch.String())
	assert.Equal(t, "delete", IntentDelete.String())
	assert.Equal(t, "share", IntentShare.String())
}
