package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
	"github.com/itchan-dev/forum/shared/logger"
	"github.com/itchan-dev/forum/shared/threadtree"
)

type PostService interface {
	Create(ctx context.Context, data domain.PostCreationData) (domain.Post, error)
	Get(ctx context.Context, id domain.PostId) (domain.ScoredPost, error)
	Delete(ctx context.Context, id domain.PostId) error
	SetBestAnswer(ctx context.Context, threadId domain.ThreadId, postId domain.PostId, user domain.User) error
	ClearBestAnswer(ctx context.Context, threadId domain.ThreadId, user domain.User) error
}

type PostStorage interface {
	CreatePost(ctx context.Context, p domain.Post) (domain.Post, error)
	GetPost(ctx context.Context, id domain.PostId) (domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostId) error
	GetThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error)
	SetBestAnswer(ctx context.Context, threadId domain.ThreadId, postId domain.PostId) error
	ClearBestAnswer(ctx context.Context, threadId domain.ThreadId) error
}

type PostValidator interface {
	Text(text string) error
}

type Post struct {
	storage   PostStorage
	validator PostValidator
	renderer  TextRenderer
}

func NewPost(storage PostStorage, validator PostValidator, renderer TextRenderer) *Post {
	return &Post{storage, validator, renderer}
}

// Create stores a post. Replies may target any post of the thread; the
// thread view shows only replies to root posts.
func (s *Post) Create(ctx context.Context, data domain.PostCreationData) (domain.Post, error) {
	if err := s.validator.Text(data.Text); err != nil {
		return domain.Post{}, err
	}
	html, err := s.renderer.Render(data.Text)
	if err != nil {
		return domain.Post{}, fmt.Errorf("render post: %w", err)
	}

	post, err := s.storage.CreatePost(ctx, domain.Post{
		Id:           uuid.NewString(),
		ThreadId:     data.ThreadId,
		ParentPostId: data.ParentPostId,
		AuthorId:     data.Author.Id,
		Text:         data.Text,
		Html:         html,
	})
	if err != nil {
		return domain.Post{}, err
	}
	logger.Log.Debug("post created", "post_id", post.Id, "thread_id", post.ThreadId, "author_id", post.AuthorId)
	return post, nil
}

func (s *Post) Get(ctx context.Context, id domain.PostId) (domain.ScoredPost, error) {
	post, err := s.storage.GetPost(ctx, id)
	if err != nil {
		return domain.ScoredPost{}, err
	}
	return threadtree.Score(post), nil
}

func (s *Post) Delete(ctx context.Context, id domain.PostId) error {
	if err := s.storage.DeletePost(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("post deleted", "post_id", id)
	return nil
}

// canModerate reports whether user may pick the best answer of the thread.
func (s *Post) canModerate(ctx context.Context, threadId domain.ThreadId, user domain.User) error {
	thread, err := s.storage.GetThreadMetadata(ctx, threadId)
	if err != nil {
		return err
	}
	if !user.Admin && thread.AuthorId != user.Id {
		return errors.Forbidden("Only the thread author can choose the best answer")
	}
	return nil
}

func (s *Post) SetBestAnswer(ctx context.Context, threadId domain.ThreadId, postId domain.PostId, user domain.User) error {
	if err := s.canModerate(ctx, threadId, user); err != nil {
		return err
	}
	if err := s.storage.SetBestAnswer(ctx, threadId, postId); err != nil {
		return err
	}
	logger.Log.Info("best answer set", "thread_id", threadId, "post_id", postId, "user_id", user.Id)
	return nil
}

func (s *Post) ClearBestAnswer(ctx context.Context, threadId domain.ThreadId, user domain.User) error {
	if err := s.canModerate(ctx, threadId, user); err != nil {
		return err
	}
	return s.storage.ClearBestAnswer(ctx, threadId)
}
