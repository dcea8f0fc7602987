package deckbuilder

import (
	"strings"
	"testing"

	"leetdeck/lib/scrapers/leetcode"

	"github.com/stretchr/testify/require"
)

func testRecord() leetcode.Question {
	return leetcode.Question{
		QuestionId:         "1",
		QuestionFrontendId: "1",
		Title:              "Two Sum",
		TitleSlug:          "two-sum",
		CategoryTitle:      "Algorithms",
		Content:            "<p>Given an array of integers <code>nums</code>...</p>",
		Difficulty:         "Easy",
		Likes:              100,
		Dislikes:           7,
		Stats:              `{"totalAccepted": "1M", "totalSubmission": "2M", "acRate": "50.0%"}`,
		Hints:              []string{"Use a hash map."},
		TopicTags: []leetcode.TopicTag{
			{Name: "Array", Slug: "array"},
			{Name: "Hash Table", Slug: "hash-table"},
		},
	}
}

func TestMapperNote(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	note, err := mapper.Note(testRecord())
	if err != nil {
		t.Fatal(err)
	}

	require.Equal(t, "two-sum", note.Key)
	require.Len(t, note.Fields, 2)
	require.Equal(t, []string{"easy", "array", "hash-table"}, note.Tags)
	require.Equal(t, "00001 Two Sum", note.SortField)

	front := note.Fields[0]
	require.Contains(t, front, "<h2>1. Two Sum</h2>")
	require.Contains(t, front, "<i>Algorithms</i>")
	require.Contains(t, front, "<code>nums</code>")

	back := note.Fields[1]
	require.Contains(t, back, "<font color='green'>Easy</font>")
	require.Contains(t, back, "Accepted: 1M / 2M (50.0%)")
	require.Contains(t, back, "Tags: Array, Hash Table")
	require.Contains(t, back, "<li>Use a hash map.</li>")
	require.Contains(t, back, `<a href="https://leetcode.com/problems/two-sum/">`)
	require.NotContains(t, back, "Subscribers only")
}

func TestMapperSameRecordSameNote(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	first, err := mapper.Note(testRecord())
	if err != nil {
		t.Fatal(err)
	}
	second, err := mapper.Note(testRecord())
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, first, second)
}

func TestMapperEscapesTitle(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	record := testRecord()
	record.Title = "a < b & c"

	note, err := mapper.Note(record)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, note.Fields[0], "a &lt; b &amp; c")
}

func TestMapperMalformedRecords(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	testCases := []struct {
		name   string
		mutate func(q *leetcode.Question)
	}{
		{
			name:   "no slug",
			mutate: func(q *leetcode.Question) { q.TitleSlug = "" },
		},
		{
			name:   "no title",
			mutate: func(q *leetcode.Question) { q.Title = "" },
		},
		{
			name:   "no content",
			mutate: func(q *leetcode.Question) { q.Content = "" },
		},
		{
			name:   "markup only content",
			mutate: func(q *leetcode.Question) { q.Content = "<p>  </p>" },
		},
		{
			name:   "unknown difficulty",
			mutate: func(q *leetcode.Question) { q.Difficulty = "Impossible" },
		},
	}
	for _, c := range testCases {
		record := testRecord()
		c.mutate(&record)

		_, err := mapper.Note(record)
		require.ErrorIs(t, err, ErrMalformedRecord, c.name)
	}
}

func TestMapperDifficultyColors(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	testCases := []struct {
		difficulty string
		color      string
	}{
		{difficulty: "Easy", color: "green"},
		{difficulty: "Medium", color: "orange"},
		{difficulty: "Hard", color: "red"},
	}
	for _, c := range testCases {
		record := testRecord()
		record.Difficulty = c.difficulty

		note, err := mapper.Note(record)
		if err != nil {
			t.Fatal(err)
		}
		require.Contains(t, note.Fields[1], "<font color='"+c.color+"'>"+c.difficulty+"</font>")
		require.Equal(t, strings.ToLower(c.difficulty), note.Tags[0])
	}
}

func TestMapperPaidOnlyMarker(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	record := testRecord()
	record.IsPaidOnly = true

	note, err := mapper.Note(record)
	if err != nil {
		t.Fatal(err)
	}
	require.Contains(t, note.Fields[1], "Subscribers only")
}

func TestMapperBadStatsIsNotFatal(t *testing.T) {
	mapper := Mapper{BaseUrl: "https://leetcode.com"}

	record := testRecord()
	record.Stats = "not json"

	note, err := mapper.Note(record)
	if err != nil {
		t.Fatal(err)
	}
	require.NotContains(t, note.Fields[1], "Accepted:")
}
