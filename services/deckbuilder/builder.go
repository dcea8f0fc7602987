package deckbuilder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"leetdeck/lib/anki"
	"leetdeck/lib/problemcache"
	"leetdeck/lib/scrapers/leetcode"
	"leetdeck/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"
)

var tracer = otel.Tracer("deckbuilder")

// ProblemSource is what the pipeline needs from the remote judge
// platform. *leetcode.Client satisfies it.
type ProblemSource interface {
	VerifySession(ctx context.Context) (string, error)
	Question(ctx context.Context, slug string) (leetcode.Question, error)
	ProblemList(ctx context.Context, limit int) ([]leetcode.ProblemListEntry, error)
}

type Options struct {
	// problem slugs in the order the deck should hold them.
	// duplicates are collapsed to their first occurrence.
	Slugs    []string
	DeckName string
	// path the .apkg lands at
	Output string
	// base url problem links point at
	BaseUrl string
	// fetch workers; 1 means a plain sequential pass
	Concurrency int
	// skip slugs with no matching problem instead of aborting
	SkipMissing bool
	// skip records missing required fields instead of aborting
	SkipMalformed bool
	// pins collection timestamps for reproducible output; zero
	// means the packager's fixed default
	Created time.Time
}

type Skip struct {
	Slug   string
	Reason string
}

type Result struct {
	Username  string
	NoteCount int
	Skipped   []Skip
}

// Build runs the whole pipeline: slugs -> records -> notes -> one
// .apkg file at opts.Output. The session is verified before any
// problem content is fetched, so a dead credential fails fast.
// cache may be nil.
func Build(ctx context.Context, source ProblemSource, cache *problemcache.Cache, opts Options) (Result, error) {
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	if opts.DeckName == "" {
		opts.DeckName = "LeetCode Problems"
	}
	if opts.BaseUrl == "" {
		opts.BaseUrl = leetcode.DefaultBaseUrl
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Output == "" {
		return Result{}, fmt.Errorf("no output path given")
	}

	slugs := textutil.Dedupe(opts.Slugs)
	span.SetAttributes(attribute.KeyValue{
		Key:   "slugs",
		Value: attribute.IntValue(len(slugs)),
	})

	username, err := source.VerifySession(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session verification failed")
		return Result{}, err
	}
	slog.InfoContext(ctx, "session verified", "username", username)

	records, skipped, err := fetchRecords(ctx, source, cache, slugs, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch stage failed")
		return Result{}, err
	}

	deck := anki.NewDeck(DeckId, opts.DeckName, NewProblemModel())
	mapper := Mapper{BaseUrl: opts.BaseUrl}
	for _, record := range records {
		if record == nil {
			continue
		}
		note, err := mapper.Note(*record)
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) && opts.SkipMalformed {
				slog.WarnContext(ctx, "skipping malformed record", "slug", record.TitleSlug, "err", err)
				skipped = append(skipped, Skip{Slug: record.TitleSlug, Reason: err.Error()})
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, "mapping stage failed")
			return Result{}, err
		}
		err = deck.AddNote(note)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "deck assembly failed")
			return Result{}, err
		}
	}

	err = deck.WriteApkg(ctx, opts.Output, anki.PackageOptions{Created: opts.Created})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "packaging failed")
		return Result{}, err
	}
	slog.InfoContext(ctx, "deck written", "path", opts.Output, "notes", deck.Len(), "skipped", len(skipped))

	return Result{
		Username:  username,
		NoteCount: deck.Len(),
		Skipped:   skipped,
	}, nil
}

// fetchRecords pulls one record per slug, through the cache when
// one is present. records line up with slugs by index; a nil entry
// means the slug was skipped under SkipMissing.
func fetchRecords(
	ctx context.Context,
	source ProblemSource,
	cache *problemcache.Cache,
	slugs []string,
	opts Options,
) ([]*leetcode.Question, []Skip, error) {
	records := make([]*leetcode.Question, len(slugs))
	var mu sync.Mutex
	var skipped []Skip

	sug := &suggester{source: source}

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Concurrency)
	for i, slug := range slugs {
		i, slug := i, slug
		group.Go(func() error {
			if cache != nil {
				record, hit, err := cache.Get(gctx, slug)
				if err != nil {
					slog.WarnContext(gctx, "cache read failed, falling back to network", "slug", slug, "err", err)
				} else if hit {
					slog.DebugContext(gctx, "cache hit", "slug", slug)
					records[i] = &record
					return nil
				}
			}

			record, err := source.Question(gctx, slug)
			if errors.Is(err, leetcode.ErrNotFound) {
				suggestion := sug.Closest(gctx, slug)
				if opts.SkipMissing {
					reason := err.Error()
					if suggestion != "" {
						reason = fmt.Sprintf("%s (closest known slug: %q)", reason, suggestion)
					}
					slog.WarnContext(gctx, "skipping unknown slug", "slug", slug, "suggestion", suggestion)
					mu.Lock()
					skipped = append(skipped, Skip{Slug: slug, Reason: reason})
					mu.Unlock()
					return nil
				}
				if suggestion != "" {
					return fmt.Errorf("%w (did you mean %q?)", err, suggestion)
				}
				return err
			}
			if err != nil {
				return err
			}

			if cache != nil {
				err := cache.Put(gctx, record)
				if err != nil {
					slog.WarnContext(gctx, "cache write failed", "slug", slug, "err", err)
				}
			}
			records[i] = &record
			return nil
		})
	}

	err := group.Wait()
	if err != nil {
		return nil, nil, err
	}
	return records, skipped, nil
}
