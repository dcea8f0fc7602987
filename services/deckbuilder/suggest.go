package deckbuilder

import (
	"context"
	"log/slog"
	"sync"

	"github.com/antzucaro/matchr"
)

// similarity below this is noise, not a typo
const suggestionThreshold = 0.8

// suggester lazily pulls the remote slug index the first time a
// lookup misses, then answers "did you mean" queries against it.
type suggester struct {
	source ProblemSource

	once  sync.Once
	slugs []string
}

func (s *suggester) index(ctx context.Context) []string {
	s.once.Do(func() {
		entries, err := s.source.ProblemList(ctx, 0)
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch slug index for suggestions", "err", err)
			return
		}
		s.slugs = make([]string, len(entries))
		for i, entry := range entries {
			s.slugs[i] = entry.TitleSlug
		}
	})
	return s.slugs
}

// Closest returns the known slug most similar to the given one, or
// "" when nothing is close enough.
func (s *suggester) Closest(ctx context.Context, slug string) string {
	var best string
	var bestScore float64
	for _, candidate := range s.index(ctx) {
		score := matchr.JaroWinkler(slug, candidate, false)
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	if bestScore < suggestionThreshold {
		return ""
	}
	return best
}
