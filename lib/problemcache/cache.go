package problemcache

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/gob"
	"errors"
	"time"

	"leetdeck/lib/problemcache/db"
	"leetdeck/lib/scrapers/leetcode"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("problemcache")

// Cache holds fetched problem records between runs so repeated
// exports don't hammer the remote service. Entries expire after a
// TTL since problem stats drift over time.
type Cache struct {
	qry *db.Queries
	ttl time.Duration
}

func New(database *sql.DB, ttl time.Duration) Cache {
	return Cache{
		qry: db.New(database),
		ttl: ttl,
	}
}

// Schema is applied by the caller when opening the database.
var Schema = db.Schema

// Get returns the cached record for slug, reporting a miss for
// unknown or expired entries. Expired entries are dropped on read.
func (c Cache) Get(ctx context.Context, slug string) (leetcode.Question, bool, error) {
	ctx, span := tracer.Start(ctx, "get")
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "slug",
		Value: attribute.StringValue(slug),
	})

	row, err := c.qry.GetProblem(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return leetcode.Question{}, false, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read cache row")
		return leetcode.Question{}, false, err
	}

	if time.Now().Unix() >= row.ExpiresAt {
		span.AddEvent("delete expired cache entry")
		err := c.qry.DeleteProblem(ctx, slug)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to delete expired entry")
			return leetcode.Question{}, false, err
		}
		return leetcode.Question{}, false, nil
	}

	var record leetcode.Question
	decoder := gob.NewDecoder(bytes.NewBuffer(row.Record))
	err = decoder.Decode(&record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to deserialize cached record")
		return leetcode.Question{}, false, err
	}

	return record, true, nil
}

func (c Cache) Put(ctx context.Context, record leetcode.Question) error {
	ctx, span := tracer.Start(ctx, "put")
	defer span.End()
	span.SetAttributes(attribute.KeyValue{
		Key:   "slug",
		Value: attribute.StringValue(record.TitleSlug),
	})

	var serialized bytes.Buffer
	encoder := gob.NewEncoder(&serialized)
	err := encoder.Encode(record)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to serialize record")
		return err
	}

	err = c.qry.PutProblem(ctx, db.PutProblemParams{
		Slug:      record.TitleSlug,
		Record:    serialized.Bytes(),
		ExpiresAt: time.Now().Add(c.ttl).Unix(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write cache row")
		return err
	}
	return nil
}

// Prune drops every expired entry.
func (c Cache) Prune(ctx context.Context) error {
	return c.qry.PruneExpired(ctx, time.Now().Unix())
}
