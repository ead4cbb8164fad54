package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/drishyamitra/server/internal/llm"
	"github.com/drishyamitra/server/internal/observability"
)

const keywordPrompt = "Extract the important visual keywords from this photo query. " +
	"Reply with only the keywords, separated by spaces, nothing else.\n\nQuery: "

// minKeywordLen is exclusive: tokens must be longer than this to survive
const minKeywordLen = 2

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]+`)

// stopWords covers articles, conjunctions, pronouns, auxiliary verbs, and
// the filler words photo queries are full of (including the command verbs
// themselves, which carry intent but no visual content).
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"and": true, "or": true, "but": true, "so": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "from": true, "by": true, "about": true,
	"is": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "being": true, "am": true,
	"do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true,
	"will": true, "would": true, "can": true, "could": true,
	"should": true, "shall": true, "may": true, "might": true, "must": true,
	"i": true, "me": true, "my": true, "mine": true,
	"we": true, "us": true, "our": true, "ours": true,
	"you": true, "your": true, "yours": true,
	"he": true, "him": true, "his": true,
	"she": true, "her": true, "hers": true,
	"it": true, "its": true,
	"they": true, "them": true, "their": true,
	"this": true, "that": true, "these": true, "those": true,
	"all": true, "some": true, "any": true, "please": true,
	"photo": true, "photos": true, "pic": true, "pics": true,
	"picture": true, "pictures": true, "image": true, "images": true,
	"show": true, "find": true, "get": true, "give": true, "want": true,
	"see": true, "search": true, "look": true,
	"delete": true, "remove": true, "erase": true, "discard": true,
	"share": true, "send": true, "forward": true,
}

// KeywordService turns a raw query into a set of content keywords. It asks
// the external model first and falls back to deterministic local
// extraction on any failure, so Extract never errors.
type KeywordService struct {
	model   llm.Model
	timeout time.Duration
	logger  *observability.Logger
}

// NewKeywordService creates a KeywordService. model may be nil, in which
// case only the local extractor is used.
func NewKeywordService(model llm.Model, timeout time.Duration) *KeywordService {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &KeywordService{
		model:   model,
		timeout: timeout,
		logger:  observability.GetLogger().WithField("component", "keywords"),
	}
}

// Extract returns the deduplicated lowercase keyword set for a query.
// The returned slice has no guaranteed ordering semantics beyond first
// occurrence and may be empty; it is never nil and Extract never fails.
func (s *KeywordService) Extract(ctx context.Context, query string) []string {
	if s.model != nil {
		if kws, ok := s.extractViaModel(ctx, query); ok {
			return kws
		}
	}
	return LocalKeywords(query)
}

func (s *KeywordService) extractViaModel(ctx context.Context, query string) ([]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.model.Ask(ctx, keywordPrompt+query)
	if err != nil {
		s.logger.WithContext(ctx).Warnf("keyword model unavailable, using local extraction: %v", err)
		return nil, false
	}

	// The model was told to return keywords only, so the reply is
	// normalized but not stop-word filtered. A reply that tokenizes to
	// nothing counts as a failure.
	kws := tokenize(raw, false)
	if len(kws) == 0 {
		s.logger.WithContext(ctx).Warnf("keyword model returned no usable keywords, using local extraction")
		return nil, false
	}
	return kws, true
}

// LocalKeywords is the deterministic fallback extractor: lowercase, strip
// non-alphanumerics, split, drop stop-words and short tokens, dedupe.
func LocalKeywords(query string) []string {
	return tokenize(query, true)
}

func tokenize(text string, filterStopWords bool) []string {
	text = strings.ToLower(text)
	text = nonAlnumRe.ReplaceAllString(text, "")

	seen := map[string]bool{}
	out := []string{}
	for _, tok := range strings.Fields(text) {
		if len(tok) <= minKeywordLen {
			continue
		}
		if filterStopWords && stopWords[tok] {
			continue
		}
		if seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
