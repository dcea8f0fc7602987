package deckbuilder

import (
	"fmt"
	"html"
	"strings"

	"leetdeck/lib/anki"
	"leetdeck/lib/htmlutil"
	"leetdeck/lib/scrapers/leetcode"
)

// the upstream record is missing fields a card cannot do without.
// whether this skips the record or aborts the run is the caller's
// policy, not the mapper's.
var ErrMalformedRecord = fmt.Errorf("malformed problem record")

// Mapper turns raw problem records into flashcard notes. Pure and
// deterministic: the same record always yields the same note.
type Mapper struct {
	// base url problem links point at, e.g. https://leetcode.com
	BaseUrl string
}

// Note maps one problem record to one note. The note's key is the
// record's slug and the front/back sides are never empty on
// success.
func (m Mapper) Note(q leetcode.Question) (anki.Note, error) {
	if q.TitleSlug == "" {
		return anki.Note{}, fmt.Errorf("%w: record has no slug", ErrMalformedRecord)
	}
	if q.Title == "" {
		return anki.Note{}, fmt.Errorf("%w: %s has no title", ErrMalformedRecord, q.TitleSlug)
	}
	if q.Content == "" {
		return anki.Note{}, fmt.Errorf("%w: %s has no content", ErrMalformedRecord, q.TitleSlug)
	}
	// markup that strips down to nothing is as useless as no content
	plain, err := htmlutil.PlainText(q.Content)
	if err != nil || plain == "" {
		return anki.Note{}, fmt.Errorf("%w: %s has no readable content", ErrMalformedRecord, q.TitleSlug)
	}

	difficulty, err := renderDifficulty(q.Difficulty)
	if err != nil {
		return anki.Note{}, err
	}

	front := m.renderFront(q)
	back := m.renderBack(q, difficulty)

	tags := make([]string, 0, len(q.TopicTags)+1)
	tags = append(tags, strings.ToLower(q.Difficulty))
	for _, tag := range q.TopicTags {
		tags = append(tags, tag.Slug)
	}

	return anki.Note{
		Key:       q.TitleSlug,
		Fields:    []string{front, back},
		Tags:      tags,
		SortField: sortField(q),
	}, nil
}

func (m Mapper) renderFront(q leetcode.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>%s. %s</h2>\n", html.EscapeString(q.QuestionFrontendId), html.EscapeString(q.Title))
	if q.CategoryTitle != "" {
		fmt.Fprintf(&b, "<p><i>%s</i></p>\n", html.EscapeString(q.CategoryTitle))
	}
	b.WriteString(q.Content)
	return b.String()
}

func (m Mapper) renderBack(q leetcode.Question, difficulty string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p class=\"difficulty\">%s</p>\n", difficulty)

	stats, err := q.ParseStats()
	if err == nil {
		fmt.Fprintf(
			&b, "<p>Accepted: %s / %s (%s)</p>\n",
			html.EscapeString(stats.TotalAccepted),
			html.EscapeString(stats.TotalSubmission),
			html.EscapeString(stats.AcRate),
		)
	}
	fmt.Fprintf(&b, "<p>&#128077; %d &nbsp; &#128078; %d</p>\n", q.Likes, q.Dislikes)

	if len(q.TopicTags) > 0 {
		names := make([]string, len(q.TopicTags))
		for i, tag := range q.TopicTags {
			names[i] = html.EscapeString(tag.Name)
		}
		fmt.Fprintf(&b, "<p>Tags: %s</p>\n", strings.Join(names, ", "))
	}

	if len(q.Hints) > 0 {
		b.WriteString("<ol>\n")
		for _, hint := range q.Hints {
			fmt.Fprintf(&b, "<li>%s</li>\n", hint)
		}
		b.WriteString("</ol>\n")
	}

	if q.IsPaidOnly {
		b.WriteString("<p><i>Subscribers only</i></p>\n")
	}

	link := strings.TrimSuffix(m.BaseUrl, "/") + "/problems/" + q.TitleSlug + "/"
	fmt.Fprintf(&b, "<p><a href=\"%s\">%s</a></p>\n", link, link)
	return b.String()
}

// renderDifficulty produces the colored difficulty marker, matching
// what the problem page itself shows.
func renderDifficulty(difficulty string) (string, error) {
	switch difficulty {
	case "Easy":
		return "<font color='green'>Easy</font>", nil
	case "Medium":
		return "<font color='orange'>Medium</font>", nil
	case "Hard":
		return "<font color='red'>Hard</font>", nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q", ErrMalformedRecord, difficulty)
}

// sortField keys the browser's sort order by numeric problem id.
func sortField(q leetcode.Question) string {
	id, err := q.FrontendId()
	if err != nil {
		return fmt.Sprintf("%s %s", q.QuestionFrontendId, q.Title)
	}
	return fmt.Sprintf("%05d %s", id, q.Title)
}
