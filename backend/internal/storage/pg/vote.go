package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/itchan-dev/forum/shared/domain"
	shared_pg "github.com/itchan-dev/forum/shared/storage/pg"
)

// UpsertVote records the user's vote on a post, replacing an earlier one,
// and returns the post's new score.
func (s *Storage) UpsertVote(ctx context.Context, postId domain.PostId, vote domain.Vote) (int, error) {
	var score int
	err := shared_pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO post_votes (post_id, user_id, value)
			VALUES ($1, $2, $3)
			ON CONFLICT (post_id, user_id) DO UPDATE SET value = EXCLUDED.value`,
			postId, vote.UserId, vote.Value)
		if err != nil {
			if shared_pg.IsCode(err, shared_pg.ForeignKeyViolation) {
				return errPostNotFound
			}
			return queryError(err, "failed to upsert vote")
		}
		score, err = postScore(ctx, tx, postId)
		return err
	})
	return score, err
}

// DeleteVote removes the user's vote if there is one and returns the post's
// score.
func (s *Storage) DeleteVote(ctx context.Context, postId domain.PostId, userId domain.UserId) (int, error) {
	var score int
	err := shared_pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postId).Scan(&exists); err != nil {
			return queryError(err, "failed to check post")
		}
		if !exists {
			return errPostNotFound
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM post_votes WHERE post_id = $1 AND user_id = $2`, postId, userId); err != nil {
			return fmt.Errorf("failed to delete vote: %w", err)
		}
		var err error
		score, err = postScore(ctx, tx, postId)
		return err
	})
	return score, err
}

func postScore(ctx context.Context, q shared_pg.Querier, postId domain.PostId) (int, error) {
	var score int
	err := q.QueryRowContext(ctx, `SELECT COALESCE(SUM(value), 0) FROM post_votes WHERE post_id = $1`, postId).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("failed to compute score: %w", err)
	}
	return score, nil
}
