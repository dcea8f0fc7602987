package anki

import (
	"archive/zip"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ankidb "leetdeck/lib/anki/db"
	"leetdeck/lib/sqliteutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("anki")

// fields are joined by the unit separator inside the flds column
const fieldSeparator = "\x1f"

type PackageOptions struct {
	// Created pins every timestamp in the collection so two runs
	// over the same input produce byte-identical files. Zero means
	// a fixed default epoch.
	Created time.Time
}

var defaultCreated = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

// WriteApkg serializes the deck into one .apkg file at path: a zip
// holding the collection database plus an (empty) media manifest.
// An empty deck still produces a valid, importable file.
func (d *Deck) WriteApkg(ctx context.Context, path string, opts PackageOptions) error {
	ctx, span := tracer.Start(ctx, "WriteApkg")
	defer span.End()
	span.SetAttributes(
		attribute.KeyValue{Key: "path", Value: attribute.StringValue(path)},
		attribute.KeyValue{Key: "notes", Value: attribute.IntValue(d.Len())},
	)

	created := opts.Created
	if created.IsZero() {
		created = defaultCreated
	}

	tmpdir, err := os.MkdirTemp("", "apkg-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmpdir)

	collectionPath := filepath.Join(tmpdir, "collection.anki2")
	err = d.writeCollection(ctx, collectionPath, created)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write collection database")
		return err
	}

	err = writeZip(path, collectionPath)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to write archive")
		return err
	}
	return nil
}

func (d *Deck) writeCollection(ctx context.Context, path string, created time.Time) error {
	database, err := sqliteutil.OpenDB(ankidb.Schema, path)
	if err != nil {
		return err
	}
	defer database.Close()

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	qry := ankidb.New(tx)

	conf, models, decks, err := d.collectionBlobs(created)
	if err != nil {
		return err
	}

	// crt must be the start of a day, anki derives due dates from it
	dayStart := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, time.UTC)
	err = qry.CreateCollection(ctx, ankidb.CreateCollectionParams{
		Crt:    dayStart.Unix(),
		Mod:    created.UnixMilli(),
		Scm:    created.UnixMilli(),
		Conf:   conf,
		Models: models,
		Decks:  decks,
		Dconf:  defaultDconf,
	})
	if err != nil {
		return err
	}

	for position, note := range d.notes {
		noteId := stableId(note.Key)
		sortField := note.SortField
		if sortField == "" {
			sortField = note.Fields[0]
		}

		err = qry.CreateNote(ctx, ankidb.CreateNoteParams{
			ID:   noteId,
			Guid: note.Key,
			Mid:  d.model.ID,
			Mod:  created.Unix(),
			Tags: tagString(note.Tags),
			Flds: strings.Join(note.Fields, fieldSeparator),
			Sfld: sortField,
			Csum: fieldChecksum(note.Fields[0]),
		})
		if err != nil {
			return fmt.Errorf("%w: note %q: %s", ErrSerialize, note.Key, err)
		}

		for ord := range d.model.Templates {
			err = qry.CreateCard(ctx, ankidb.CreateCardParams{
				ID:  stableId(note.Key, "card", strconv.Itoa(ord)),
				Nid: noteId,
				Did: d.ID,
				Ord: int64(ord),
				Mod: created.Unix(),
				Due: int64(position + 1),
			})
			if err != nil {
				return fmt.Errorf("%w: card for note %q: %s", ErrSerialize, note.Key, err)
			}
		}
	}

	return tx.Commit()
}

func (d *Deck) collectionBlobs(created time.Time) (conf, models, decks string, err error) {
	model := d.model
	model.Mod = created.Unix()
	model.Did = d.ID

	modelsBlob, err := json.Marshal(map[string]Model{
		strconv.FormatInt(model.ID, 10): model,
	})
	if err != nil {
		return "", "", "", fmt.Errorf("%w: models: %s", ErrSerialize, err)
	}

	decksBlob, err := json.Marshal(map[string]deckJSON{
		"1": {
			ID:        1,
			Name:      "Default",
			Conf:      1,
			NewToday:  [2]int{0, 0},
			RevToday:  [2]int{0, 0},
			LrnToday:  [2]int{0, 0},
			TimeToday: [2]int{0, 0},
		},
		strconv.FormatInt(d.ID, 10): {
			ID:        d.ID,
			Name:      d.Name,
			Mod:       created.Unix(),
			Conf:      1,
			NewToday:  [2]int{0, 0},
			RevToday:  [2]int{0, 0},
			LrnToday:  [2]int{0, 0},
			TimeToday: [2]int{0, 0},
		},
	})
	if err != nil {
		return "", "", "", fmt.Errorf("%w: decks: %s", ErrSerialize, err)
	}

	confBlob, err := json.Marshal(confJSON{
		ActiveDecks:  []int64{d.ID},
		CurDeck:      d.ID,
		CollapseTime: 1200,
		EstTimes:     true,
		DueCounts:    true,
		CurModel:     model.ID,
		NextPos:      1,
		SortType:     "noteFld",
		AddToCur:     true,
	})
	if err != nil {
		return "", "", "", fmt.Errorf("%w: conf: %s", ErrSerialize, err)
	}

	return string(confBlob), string(modelsBlob), string(decksBlob), nil
}

func writeZip(path, collectionPath string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	archive := zip.NewWriter(out)

	// fixed headers keep the archive reproducible
	collectionEntry, err := archive.CreateHeader(&zip.FileHeader{
		Name:   "collection.anki2",
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	collection, err := os.Open(collectionPath)
	if err != nil {
		return err
	}
	defer collection.Close()
	_, err = io.Copy(collectionEntry, collection)
	if err != nil {
		return err
	}

	mediaEntry, err := archive.CreateHeader(&zip.FileHeader{
		Name:   "media",
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = mediaEntry.Write([]byte("{}"))
	if err != nil {
		return err
	}

	err = archive.Close()
	if err != nil {
		return err
	}
	return out.Close()
}

func tagString(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	return " " + strings.Join(tags, " ") + " "
}

// fieldChecksum mirrors anki's note checksum: the first 8 hex
// digits of the sha1 of the first field.
func fieldChecksum(field string) int64 {
	digest := sha1.Sum([]byte(field))
	hexDigest := fmt.Sprintf("%x", digest)
	checksum, _ := strconv.ParseInt(hexDigest[:8], 16, 64)
	return checksum
}
