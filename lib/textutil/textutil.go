package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeSlug lowercases and trims a problem handle so that
// "Two-Sum " and "two-sum" refer to the same problem.
func NormalizeSlug(slug string) string {
	slug = strings.ToLower(slug)
	slug = strings.Trim(slug, " \n\t")
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	return slug
}

// Dedupe removes duplicates from a list while preserving the first
// occurrence's position.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
