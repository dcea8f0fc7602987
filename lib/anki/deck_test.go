package anki

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testModel() Model {
	return NewModel(1234, "Basic", []string{"Front", "Back"}, []Template{
		{
			Name: "Card 1",
			Ord:  0,
			Qfmt: "{{Front}}",
			Afmt: "{{FrontSide}}\n\n<hr id=\"answer\">\n\n{{Back}}",
		},
	}, "")
}

func TestAddNote(t *testing.T) {
	deck := NewDeck(1, "Test Deck", testModel())

	err := deck.AddNote(Note{
		Key:    "alpha",
		Fields: []string{"front", "back"},
	})
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, 1, deck.Len())

	{
		err := deck.AddNote(Note{Fields: []string{"front", "back"}})
		require.ErrorIs(t, err, ErrSerialize)
	}
	{
		err := deck.AddNote(Note{Key: "beta", Fields: []string{"only one"}})
		require.ErrorIs(t, err, ErrSerialize)
	}
	{
		err := deck.AddNote(Note{Key: "gamma", Fields: []string{"front", string([]byte{0xff, 0xfe})}})
		require.ErrorIs(t, err, ErrSerialize)
	}
	{
		err := deck.AddNote(Note{Key: "alpha", Fields: []string{"other", "content"}})
		require.ErrorIs(t, err, ErrDuplicateKey)
	}

	// failed adds must not land in the deck
	require.Equal(t, 1, deck.Len())
	require.Equal(t, "alpha", deck.Notes()[0].Key)
}

func TestAddNotePreservesOrder(t *testing.T) {
	deck := NewDeck(1, "Test Deck", testModel())

	keys := []string{"delta", "alpha", "charlie", "bravo"}
	for _, key := range keys {
		err := deck.AddNote(Note{Key: key, Fields: []string{key, "back"}})
		if err != nil {
			t.Fatal(err)
		}
	}

	for i, note := range deck.Notes() {
		require.Equal(t, keys[i], note.Key)
	}
}

func TestStableId(t *testing.T) {
	require.Equal(t, stableId("two-sum"), stableId("two-sum"))
	require.NotEqual(t, stableId("two-sum"), stableId("three-sum"))
	// separator keeps concatenations from colliding
	require.NotEqual(t, stableId("ab", "c"), stableId("a", "bc"))
	require.GreaterOrEqual(t, stableId("two-sum"), int64(0))
}
