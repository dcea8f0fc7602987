package deckbuilder

import (
	"bufio"
	"os"
	"strings"

	"leetdeck/lib/textutil"
)

// ReadSlugList parses the plain-text problem list: one slug per
// line, blank lines and #-comments ignored. Slugs come back
// normalized but not deduplicated.
func ReadSlugList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var slugs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		slugs = append(slugs, textutil.NormalizeSlug(line))
	}
	return slugs, scanner.Err()
}
