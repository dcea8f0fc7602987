package deckbuilder

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"leetdeck/lib/problemcache"
	"leetdeck/lib/scrapers/leetcode"
	"leetdeck/lib/testutil"

	"github.com/stretchr/testify/require"
)

// fakeSource serves canned records and counts network fetches.
type fakeSource struct {
	username string
	authErr  error

	mu        sync.Mutex
	questions map[string]leetcode.Question
	fetches   []string
}

func newFakeSource(questions ...leetcode.Question) *fakeSource {
	byKey := map[string]leetcode.Question{}
	for _, q := range questions {
		byKey[q.TitleSlug] = q
	}
	return &fakeSource{
		username:  "testuser",
		questions: byKey,
	}
}

func (f *fakeSource) VerifySession(ctx context.Context) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return f.username, nil
}

func (f *fakeSource) Question(ctx context.Context, slug string) (leetcode.Question, error) {
	f.mu.Lock()
	f.fetches = append(f.fetches, slug)
	f.mu.Unlock()

	q, ok := f.questions[slug]
	if !ok {
		return leetcode.Question{}, fmt.Errorf("%w: %s", leetcode.ErrNotFound, slug)
	}
	return q, nil
}

func (f *fakeSource) ProblemList(ctx context.Context, limit int) ([]leetcode.ProblemListEntry, error) {
	var entries []leetcode.ProblemListEntry
	for slug := range f.questions {
		entries = append(entries, leetcode.ProblemListEntry{TitleSlug: slug})
	}
	return entries, nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.fetches)
}

func record(id int64, title, slug string) leetcode.Question {
	return leetcode.Question{
		QuestionId:         fmt.Sprintf("%d", id),
		QuestionFrontendId: fmt.Sprintf("%d", id),
		Title:              title,
		TitleSlug:          slug,
		Content:            fmt.Sprintf("<p>Statement of %s.</p>", title),
		Difficulty:         "Easy",
	}
}

func TestBuild(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource(
		record(1, "Two Sum", "two-sum"),
		record(2, "Add Two Numbers", "add-two-numbers"),
	)
	output := filepath.Join(t.TempDir(), "deck.apkg")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	result, err := Build(ctx, source, nil, Options{
		// duplicate collapses to its first occurrence
		Slugs:  []string{"two-sum", "add-two-numbers", "two-sum"},
		Output: output,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "testuser", result.Username)
	require.Equal(t, 2, result.NoteCount)
	require.Len(t, result.Skipped, 0)
	require.Equal(t, 2, source.fetchCount())
	require.FileExists(t, output)
}

func TestBuildEmptySlugList(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource()
	output := filepath.Join(t.TempDir(), "empty.apkg")

	result, err := Build(context.Background(), source, nil, Options{
		Output: output,
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 0, result.NoteCount)
	require.FileExists(t, output)
}

func TestBuildRequiresOutput(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource(record(1, "Two Sum", "two-sum"))
	_, err := Build(context.Background(), source, nil, Options{
		Slugs: []string{"two-sum"},
	})
	require.Error(t, err)
}

func TestBuildAuthFailsBeforeFetching(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource(record(1, "Two Sum", "two-sum"))
	source.authErr = leetcode.ErrAuthentication
	output := filepath.Join(t.TempDir(), "deck.apkg")

	_, err := Build(context.Background(), source, nil, Options{
		Slugs:  []string{"two-sum"},
		Output: output,
	})
	require.ErrorIs(t, err, leetcode.ErrAuthentication)
	// a dead credential must fail before any content is fetched
	require.Equal(t, 0, source.fetchCount())
	require.NoFileExists(t, output)
}

func TestBuildUnknownSlugAborts(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource(record(1, "Two Sum", "two-sum"))
	output := filepath.Join(t.TempDir(), "deck.apkg")

	_, err := Build(context.Background(), source, nil, Options{
		Slugs:  []string{"two-sam"},
		Output: output,
	})
	require.ErrorIs(t, err, leetcode.ErrNotFound)
	require.Contains(t, err.Error(), `"two-sum"`)
	require.NoFileExists(t, output)
}

func TestBuildSkipMissing(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	source := newFakeSource(
		record(1, "Two Sum", "two-sum"),
		record(2, "Add Two Numbers", "add-two-numbers"),
	)
	output := filepath.Join(t.TempDir(), "deck.apkg")

	result, err := Build(context.Background(), source, nil, Options{
		Slugs:       []string{"two-sum", "no-such-problem", "add-two-numbers"},
		Output:      output,
		SkipMissing: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, 2, result.NoteCount)
	require.Len(t, result.Skipped, 1)
	require.Equal(t, "no-such-problem", result.Skipped[0].Slug)
	require.FileExists(t, output)
}

func TestBuildSkipMalformed(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	broken := record(2, "Broken", "broken")
	broken.Content = ""

	source := newFakeSource(record(1, "Two Sum", "two-sum"), broken)
	output := filepath.Join(t.TempDir(), "deck.apkg")

	{
		// default policy aborts the run
		_, err := Build(context.Background(), source, nil, Options{
			Slugs:  []string{"two-sum", "broken"},
			Output: output,
		})
		require.ErrorIs(t, err, ErrMalformedRecord)
	}
	{
		result, err := Build(context.Background(), source, nil, Options{
			Slugs:         []string{"two-sum", "broken"},
			Output:        output,
			SkipMalformed: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, 1, result.NoteCount)
		require.Len(t, result.Skipped, 1)
		require.Equal(t, "broken", result.Skipped[0].Slug)
	}
}

func TestBuildConcurrent(t *testing.T) {
	_, cleanup := testutil.Setup(t, testutil.SetupParams{Name: "deckbuilder"})
	defer cleanup()

	var questions []leetcode.Question
	var slugs []string
	for i := 1; i <= 20; i++ {
		q := record(int64(i), fmt.Sprintf("Problem %d", i), fmt.Sprintf("problem-%d", i))
		questions = append(questions, q)
		slugs = append(slugs, q.TitleSlug)
	}
	source := newFakeSource(questions...)
	output := filepath.Join(t.TempDir(), "deck.apkg")

	result, err := Build(context.Background(), source, nil, Options{
		Slugs:       slugs,
		Output:      output,
		Concurrency: 4,
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 20, result.NoteCount)
	require.Equal(t, 20, source.fetchCount())
}

func TestBuildUsesCache(t *testing.T) {
	setup, cleanup := testutil.Setup(t, testutil.SetupParams{
		Name:     "deckbuilder",
		DbSchema: problemcache.Schema,
	})
	defer cleanup()
	cache := problemcache.New(setup.DB, time.Hour)

	source := newFakeSource(record(1, "Two Sum", "two-sum"))
	dir := t.TempDir()

	opts := Options{
		Slugs:  []string{"two-sum"},
		Output: filepath.Join(dir, "first.apkg"),
	}
	_, err := Build(context.Background(), source, &cache, opts)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, source.fetchCount())

	// second run is served entirely from the cache
	opts.Output = filepath.Join(dir, "second.apkg")
	result, err := Build(context.Background(), source, &cache, opts)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, source.fetchCount())
	require.Equal(t, 1, result.NoteCount)
}
