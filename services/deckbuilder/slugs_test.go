package deckbuilder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestReadSlugList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problems.txt")
	err := os.WriteFile(path, []byte(`# problems to export
two-sum

Add Two Numbers
  median-of-two-sorted-arrays

# a duplicate stays in, the pipeline collapses it later
two-sum
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	slugs, err := ReadSlugList(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{
		"two-sum",
		"add-two-numbers",
		"median-of-two-sorted-arrays",
		"two-sum",
	}
	if diff := cmp.Diff(expected, slugs); diff != "" {
		t.Fatalf("slug list mismatch:\n%s", diff)
	}
}

func TestReadSlugListMissingFile(t *testing.T) {
	_, err := ReadSlugList(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
