package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/itchan-dev/forum/shared/api"
)

// CreatePost adds a post to the thread. An empty parentID makes a root post.
func (c *APIClient) CreatePost(ctx context.Context, threadID, parentID, text string) (string, error) {
	body := api.CreatePostRequest{Text: text}
	if parentID != "" {
		body.ParentPostId = &parentID
	}
	var created api.CreatedResponse
	err := c.do(ctx, http.MethodPost, "/v1/threads/"+url.PathEscape(threadID)+"/posts", body, &created)
	return created.Id, err
}

func (c *APIClient) GetPost(ctx context.Context, postID string) (api.PostResponse, error) {
	var post api.PostResponse
	err := c.do(ctx, http.MethodGet, "/v1/posts/"+url.PathEscape(postID), nil, &post)
	return post, err
}

// Vote casts +1 or -1 and returns the post's new score.
func (c *APIClient) Vote(ctx context.Context, postID string, value int) (int, error) {
	var resp api.VoteResponse
	err := c.do(ctx, http.MethodPut, "/v1/posts/"+url.PathEscape(postID)+"/vote", api.VoteRequest{Value: value}, &resp)
	return resp.VoteScore, err
}

func (c *APIClient) RetractVote(ctx context.Context, postID string) (int, error) {
	var resp api.VoteResponse
	err := c.do(ctx, http.MethodDelete, "/v1/posts/"+url.PathEscape(postID)+"/vote", nil, &resp)
	return resp.VoteScore, err
}
