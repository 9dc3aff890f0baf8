package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThreadViewResponse_JSON(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	parent := "t1"
	view := domain.ThreadView{
		ThreadMetadata: domain.ThreadMetadata{Id: "thread", Title: "How?", AuthorId: 1, CreatedAt: created, NumPosts: 3},
		Roots: []domain.ScoredPost{
			{
				Post:      domain.Post{Id: "t1", ThreadId: "thread", AuthorId: 1, CreatedAt: created, IsBestAnswer: true},
				VoteScore: 2,
				Replies: []domain.ScoredPost{
					{Post: domain.Post{Id: "p1", ThreadId: "thread", ParentPostId: &parent, CreatedAt: created}, VoteScore: -1},
				},
			},
			{Post: domain.Post{Id: "t2", ThreadId: "thread", CreatedAt: created}, Replies: []domain.ScoredPost{}},
		},
		Loaded:    3,
		Total:     45,
		HasMore:   true,
		NextLimit: 40,
	}

	raw, err := json.Marshal(NewThreadViewResponse(view))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, true, decoded["has_more"])
	assert.Equal(t, float64(40), decoded["next_limit"])
	assert.Equal(t, false, decoded["capped"])
	assert.Equal(t, "How?", decoded["thread"].(map[string]any)["title"])

	posts := decoded["posts"].([]any)
	require.Len(t, posts, 2)
	first := posts[0].(map[string]any)
	assert.Equal(t, "t1", first["id"])
	assert.Equal(t, float64(2), first["vote_score"])
	assert.Equal(t, true, first["is_best_answer"])
	assert.Nil(t, first["parent_post_id"])

	replies := first["replies"].([]any)
	require.Len(t, replies, 1)
	reply := replies[0].(map[string]any)
	assert.Equal(t, "t1", reply["parent_post_id"])
	assert.Equal(t, float64(-1), reply["vote_score"])
	assert.NotContains(t, reply, "replies")

	second := posts[1].(map[string]any)
	assert.Equal(t, []any{}, second["replies"], "roots without replies still carry an array")
}

func TestNewThreadViewResponse_Capped(t *testing.T) {
	raw, err := json.Marshal(NewThreadViewResponse(domain.ThreadView{Loaded: 500, Total: 900, HasMore: true, NextLimit: 500, Capped: true}))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, true, decoded["has_more"])
	assert.Equal(t, true, decoded["capped"])
	assert.Equal(t, float64(500), decoded["next_limit"])
}

func TestNewThreadViewResponse_EmptyThread(t *testing.T) {
	raw, err := json.Marshal(NewThreadViewResponse(domain.ThreadView{}))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"posts":[]`)
}
