package anki

import (
	"fmt"
	"hash/fnv"
	"unicode/utf8"
)

var (
	// two notes in one deck may not share a key.
	ErrDuplicateKey = fmt.Errorf("duplicate note key")
	// the deck cannot be represented in the target format.
	ErrSerialize = fmt.Errorf("deck serialization failed")
)

// Note is one flashcard's content. Key is the stable external
// identity (it becomes the note guid), fields line up with the
// model's field ordinals.
type Note struct {
	Key    string
	Fields []string
	Tags   []string
	// plain-text sort key; the first field is used when empty
	SortField string
}

// Deck is an ordered collection of notes under one model, ready to
// be packaged.
type Deck struct {
	ID   int64
	Name string

	model Model
	notes []Note
	keys  map[string]struct{}
}

func NewDeck(id int64, name string, model Model) *Deck {
	return &Deck{
		ID:    id,
		Name:  name,
		model: model,
		keys:  map[string]struct{}{},
	}
}

// AddNote appends a note, enforcing key uniqueness and the model's
// field count. Order of addition is the order notes land in the
// packaged file.
func (d *Deck) AddNote(note Note) error {
	if note.Key == "" {
		return fmt.Errorf("%w: note key is empty", ErrSerialize)
	}
	if len(note.Fields) != len(d.model.Fields) {
		return fmt.Errorf(
			"%w: note %q has %d fields, model %q wants %d",
			ErrSerialize, note.Key, len(note.Fields), d.model.Name, len(d.model.Fields),
		)
	}
	for i, field := range note.Fields {
		if !utf8.ValidString(field) {
			return fmt.Errorf("%w: note %q field %d is not valid utf-8", ErrSerialize, note.Key, i)
		}
	}
	if _, exists := d.keys[note.Key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, note.Key)
	}

	d.keys[note.Key] = struct{}{}
	d.notes = append(d.notes, note)
	return nil
}

func (d *Deck) Notes() []Note {
	return d.notes
}

func (d *Deck) Len() int {
	return len(d.notes)
}

// stableId derives a positive int64 from a key so repeated runs
// assign identical row ids.
func stableId(parts ...string) int64 {
	h := fnv.New64a()
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return int64(h.Sum64() & 0x7fffffffffffffff)
}
