package pg

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/itchan-dev/forum/shared/domain"
	internal_errors "github.com/itchan-dev/forum/shared/errors"
	"github.com/stretchr/testify/require"
)

func createThread(t *testing.T, author domain.UserId) (domain.ThreadMetadata, domain.Post) {
	t.Helper()
	meta, op, err := storage.CreateThread(context.Background(),
		domain.ThreadMetadata{Id: uuid.NewString(), Title: "thread " + t.Name(), AuthorId: author},
		domain.Post{Id: uuid.NewString(), AuthorId: author, Text: "op", Html: "<p>op</p>"},
	)
	require.NoError(t, err)
	return meta, op
}

func createPost(t *testing.T, thread domain.ThreadId, parent *domain.PostId, author domain.UserId) domain.Post {
	t.Helper()
	p, err := storage.CreatePost(context.Background(), domain.Post{
		Id:           uuid.NewString(),
		ThreadId:     thread,
		ParentPostId: parent,
		AuthorId:     author,
		Text:         "text",
		Html:         "<p>text</p>",
	})
	require.NoError(t, err)
	return p
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, status, internal_errors.StatusCode(err), "unexpected error: %v", err)
}
