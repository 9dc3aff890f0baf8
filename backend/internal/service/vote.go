package service

import (
	"context"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

type VoteService interface {
	Cast(ctx context.Context, postId domain.PostId, user domain.User, value domain.VoteValue) (int, error)
	Retract(ctx context.Context, postId domain.PostId, user domain.User) (int, error)
}

type VoteStorage interface {
	UpsertVote(ctx context.Context, postId domain.PostId, vote domain.Vote) (int, error)
	DeleteVote(ctx context.Context, postId domain.PostId, userId domain.UserId) (int, error)
}

type Vote struct {
	storage VoteStorage
}

func NewVote(storage VoteStorage) *Vote {
	return &Vote{storage}
}

// Cast records an up (+1) or down (-1) vote and returns the post's score.
// Voting again replaces the user's previous vote.
func (s *Vote) Cast(ctx context.Context, postId domain.PostId, user domain.User, value domain.VoteValue) (int, error) {
	if value != 1 && value != -1 {
		return 0, errors.BadRequest("Vote must be 1 or -1")
	}
	return s.storage.UpsertVote(ctx, postId, domain.Vote{UserId: user.Id, Value: value})
}

// Retract removes the user's vote. Retracting without a vote is not an error.
func (s *Vote) Retract(ctx context.Context, postId domain.PostId, user domain.User) (int, error) {
	return s.storage.DeleteVote(ctx, postId, user.Id)
}
