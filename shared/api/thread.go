package api

import (
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

type PostResponse struct {
	Id           string    `json:"id"`
	ThreadId     string    `json:"thread_id"`
	ParentPostId *string   `json:"parent_post_id"`
	AuthorId     int64     `json:"author_id"`
	Text         string    `json:"text"`
	Html         string    `json:"html"`
	CreatedAt    time.Time `json:"created_at"`
	IsBestAnswer bool      `json:"is_best_answer"`
	VoteScore    int       `json:"vote_score"`
}

// RootPostResponse is a root post of the view with its direct replies.
type RootPostResponse struct {
	PostResponse
	Replies []PostResponse `json:"replies"`
}

type ThreadMetadataResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	AuthorId  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	NumPosts  int       `json:"num_posts"`
}

// ThreadViewResponse is one page of a thread. Every root carries a replies
// array, possibly empty. Clients request NextLimit for "load more" while
// HasMore is set and Capped is not.
type ThreadViewResponse struct {
	Thread    ThreadMetadataResponse `json:"thread"`
	Posts     []RootPostResponse     `json:"posts"`
	Loaded    int                    `json:"loaded"`
	Total     int                    `json:"total"`
	HasMore   bool                   `json:"has_more"`
	NextLimit int                    `json:"next_limit"`
	Capped    bool                   `json:"capped"`
}

func NewPostResponse(p domain.Post, score int) PostResponse {
	return PostResponse{
		Id:           p.Id,
		ThreadId:     p.ThreadId,
		ParentPostId: p.ParentPostId,
		AuthorId:     p.AuthorId,
		Text:         p.Text,
		Html:         p.Html,
		CreatedAt:    p.CreatedAt,
		IsBestAnswer: p.IsBestAnswer,
		VoteScore:    score,
	}
}

func NewRootPostResponse(p domain.ScoredPost) RootPostResponse {
	resp := RootPostResponse{
		PostResponse: NewPostResponse(p.Post, p.VoteScore),
		Replies:      make([]PostResponse, 0, len(p.Replies)),
	}
	for _, r := range p.Replies {
		resp.Replies = append(resp.Replies, NewPostResponse(r.Post, r.VoteScore))
	}
	return resp
}

func NewThreadMetadataResponse(m domain.ThreadMetadata) ThreadMetadataResponse {
	return ThreadMetadataResponse{
		Id:        m.Id,
		Title:     m.Title,
		AuthorId:  m.AuthorId,
		CreatedAt: m.CreatedAt,
		NumPosts:  m.NumPosts,
	}
}

func NewThreadViewResponse(v domain.ThreadView) ThreadViewResponse {
	posts := make([]RootPostResponse, 0, len(v.Roots))
	for _, root := range v.Roots {
		posts = append(posts, NewRootPostResponse(root))
	}
	return ThreadViewResponse{
		Thread:    NewThreadMetadataResponse(v.ThreadMetadata),
		Posts:     posts,
		Loaded:    v.Loaded,
		Total:     v.Total,
		HasMore:   v.HasMore,
		NextLimit: v.NextLimit,
		Capped:    v.Capped,
	}
}
