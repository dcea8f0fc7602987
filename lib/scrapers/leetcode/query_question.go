package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

const questionDetailQuery = `
query questionData($titleSlug: String!) {
  question(titleSlug: $titleSlug) {
    questionId
    questionFrontendId
    title
    titleSlug
    categoryTitle
    content
    difficulty
    likes
    dislikes
    isPaidOnly
    freqBar
    stats
    hints
    status
    topicTags {
      name
      slug
    }
  }
}
`

type TopicTag struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Question is one problem's raw record, exactly as the remote
// service reports it. Read-only after fetch.
type Question struct {
	QuestionId         string     `json:"questionId"`
	QuestionFrontendId string     `json:"questionFrontendId"`
	Title              string     `json:"title"`
	TitleSlug          string     `json:"titleSlug"`
	CategoryTitle      string     `json:"categoryTitle"`
	Content            string     `json:"content"`
	Difficulty         string     `json:"difficulty"`
	Likes              int        `json:"likes"`
	Dislikes           int        `json:"dislikes"`
	IsPaidOnly         bool       `json:"isPaidOnly"`
	FreqBar            float64    `json:"freqBar"`
	Stats              string     `json:"stats"`
	Hints              []string   `json:"hints"`
	Status             string     `json:"status"`
	TopicTags          []TopicTag `json:"topicTags"`
}

// Stats is the parsed form of the Stats json blob.
type Stats struct {
	TotalAccepted      string `json:"totalAccepted"`
	TotalSubmission    string `json:"totalSubmission"`
	TotalAcceptedRaw   int64  `json:"totalAcceptedRaw"`
	TotalSubmissionRaw int64  `json:"totalSubmissionRaw"`
	AcRate             string `json:"acRate"`
}

func (q Question) ParseStats() (Stats, error) {
	var stats Stats
	err := json.Unmarshal([]byte(q.Stats), &stats)
	if err != nil {
		return Stats{}, fmt.Errorf("parse stats for %q: %w", q.TitleSlug, err)
	}
	return stats, nil
}

// FrontendId parses the display id, which the remote service
// reports as a string.
func (q Question) FrontendId() (int64, error) {
	return strconv.ParseInt(q.QuestionFrontendId, 10, 64)
}

func (c *Client) QuestionUrl(slug string) string {
	u := *c.BaseUrl
	u.Path = fmt.Sprintf("/problems/%s/", slug)
	return u.String()
}

// Question fetches the full record for one problem slug.
func (c *Client) Question(ctx context.Context, slug string) (Question, error) {
	var out struct {
		Question *Question `json:"question"`
	}
	err := c.graphql(ctx, "questionData", questionDetailQuery, map[string]any{
		"titleSlug": slug,
	}, &out)
	if err != nil {
		return Question{}, err
	}
	if out.Question == nil {
		return Question{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return *out.Question, nil
}
