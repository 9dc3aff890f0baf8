package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/itchan-dev/forum/shared/api"
)

// ThreadQuery selects a page of a thread. Zero Limit lets the server pick
// its first page size.
type ThreadQuery struct {
	Limit int
	Top   bool // rank roots and replies by score
}

func (q ThreadQuery) encode() string {
	v := url.Values{}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Top {
		v.Set("sort", "top")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *APIClient) GetThread(ctx context.Context, threadID string, q ThreadQuery) (api.ThreadViewResponse, error) {
	var view api.ThreadViewResponse
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/threads/%s%s", url.PathEscape(threadID), q.encode()), nil, &view)
	return view, err
}

// GetWholeThread keeps asking for the suggested larger prefix until the
// server reports nothing more to load or that its page size cap was reached.
func (c *APIClient) GetWholeThread(ctx context.Context, threadID string, top bool) (api.ThreadViewResponse, error) {
	q := ThreadQuery{Top: top}
	for {
		view, err := c.GetThread(ctx, threadID, q)
		if err != nil {
			return view, err
		}
		if !view.HasMore || view.Capped || view.NextLimit <= view.Loaded {
			return view, nil
		}
		q.Limit = view.NextLimit
	}
}

func (c *APIClient) CreateThread(ctx context.Context, title, text string) (string, error) {
	var created api.CreatedResponse
	err := c.do(ctx, http.MethodPost, "/v1/threads", api.CreateThreadRequest{Title: title, Text: text}, &created)
	return created.Id, err
}

func (c *APIClient) DeleteThread(ctx context.Context, threadID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/admin/threads/"+url.PathEscape(threadID), nil, nil)
}

func (c *APIClient) SetBestAnswer(ctx context.Context, threadID, postID string) error {
	return c.do(ctx, http.MethodPut, "/v1/threads/"+url.PathEscape(threadID)+"/best_answer", api.BestAnswerRequest{PostId: postID}, nil)
}

func (c *APIClient) ClearBestAnswer(ctx context.Context, threadID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/threads/"+url.PathEscape(threadID)+"/best_answer", nil, nil)
}
