package leetcode

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// the remote service caps list pages at 3000 entries
const maxPageSize = 3000

const problemListQuery = `
query problemsetQuestionList($categorySlug: String, $limit: Int, $skip: Int, $filters: QuestionListFilterInput) {
  problemsetQuestionList: questionList(
    categorySlug: $categorySlug
    limit: $limit
    skip: $skip
    filters: $filters
  ) {
    totalNum
    questions: data {
      questionFrontendId
      title
      titleSlug
      difficulty
      isPaidOnly
      status
    }
  }
}
`

// ProblemListEntry is the lightweight index record for one problem,
// enough for slug suggestions and listings. Full content comes from
// Question.
type ProblemListEntry struct {
	QuestionFrontendId string `json:"questionFrontendId"`
	Title              string `json:"title"`
	TitleSlug          string `json:"titleSlug"`
	Difficulty         string `json:"difficulty"`
	IsPaidOnly         bool   `json:"isPaidOnly"`
	Status             string `json:"status"`
}

type problemListPayload struct {
	ProblemsetQuestionList struct {
		TotalNum  int                `json:"totalNum"`
		Questions []ProblemListEntry `json:"questions"`
	} `json:"problemsetQuestionList"`
}

func problemListVariables(limit, skip int) map[string]any {
	return map[string]any{
		"categorySlug": "",
		"limit":        limit,
		"skip":         skip,
		"filters":      map[string]any{},
	}
}

// ProblemCount reports how many problems the remote index knows.
func (c *Client) ProblemCount(ctx context.Context) (int, error) {
	var out problemListPayload
	err := c.graphql(ctx, "problemsetQuestionList", problemListQuery, problemListVariables(1, 0), &out)
	if err != nil {
		return 0, err
	}
	return out.ProblemsetQuestionList.TotalNum, nil
}

// ProblemList pages through the remote index and returns up to
// `limit` entries (everything known when limit <= 0). Pages are
// fetched sequentially, the request gate keeps us under the rate
// limiter.
func (c *Client) ProblemList(ctx context.Context, limit int) ([]ProblemListEntry, error) {
	ctx, span := tracer.Start(ctx, "client:ProblemList")
	defer span.End()

	total, err := c.ProblemCount(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to count problems")
		return nil, err
	}
	if limit <= 0 || limit > total {
		limit = total
	}
	span.SetAttributes(attribute.KeyValue{
		Key:   "limit",
		Value: attribute.IntValue(limit),
	})

	pageSize := limit
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	var entries []ProblemListEntry
	for skip := 0; skip < limit; skip += pageSize {
		remaining := limit - skip
		if remaining < pageSize {
			pageSize = remaining
		}

		var out problemListPayload
		err := c.graphql(ctx, "problemsetQuestionList", problemListQuery, problemListVariables(pageSize, skip), &out)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch index page")
			return nil, err
		}
		page := out.ProblemsetQuestionList.Questions
		if len(page) == 0 {
			break
		}
		entries = append(entries, page...)
	}

	return entries, nil
}
