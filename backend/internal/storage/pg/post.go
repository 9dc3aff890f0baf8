package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/itchan-dev/forum/shared/domain"
	internal_errors "github.com/itchan-dev/forum/shared/errors"
	shared_pg "github.com/itchan-dev/forum/shared/storage/pg"
)

const postColumns = `id, thread_id, parent_post_id, author_id, text, html, is_best_answer, created_at`

var (
	errPostNotFound   = internal_errors.NotFound("Post not found")
	errParentNotFound = internal_errors.NotFound("Parent post not found in this thread")
	errInvalidId      = internal_errors.BadRequest("Invalid id")
)

// queryError turns a malformed uuid argument into errInvalidId and wraps
// anything else with what.
func queryError(err error, what string) error {
	if shared_pg.IsCode(err, shared_pg.InvalidTextRep) {
		return errInvalidId
	}
	return fmt.Errorf("%s: %w", what, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (domain.Post, error) {
	var p domain.Post
	var parent sql.NullString
	if err := row.Scan(&p.Id, &p.ThreadId, &parent, &p.AuthorId, &p.Text, &p.Html, &p.IsBestAnswer, &p.CreatedAt); err != nil {
		return domain.Post{}, err
	}
	if parent.Valid {
		p.ParentPostId = &parent.String
	}
	return p, nil
}

func scanPosts(rows *sql.Rows) ([]domain.Post, error) {
	defer rows.Close()
	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

func insertPost(ctx context.Context, q shared_pg.Querier, p domain.Post) (domain.Post, error) {
	err := q.QueryRowContext(ctx, `
		INSERT INTO posts (id, thread_id, parent_post_id, author_id, text, html)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING is_best_answer, created_at`,
		p.Id, p.ThreadId, p.ParentPostId, p.AuthorId, p.Text, p.Html,
	).Scan(&p.IsBestAnswer, &p.CreatedAt)
	if err != nil {
		if shared_pg.IsCode(err, shared_pg.ForeignKeyViolation) {
			return domain.Post{}, errThreadNotFound
		}
		if shared_pg.IsCode(err, shared_pg.UniqueViolation) {
			return domain.Post{}, internal_errors.New(http.StatusConflict, "Post already exists")
		}
		return domain.Post{}, queryError(err, "failed to insert post")
	}
	return p, nil
}

// CreatePost stores a post. A parent, if given, must be a post of the same
// thread at insertion time.
func (s *Storage) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	err := shared_pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		if p.ParentPostId != nil {
			var parentThread domain.ThreadId
			err := tx.QueryRowContext(ctx, `SELECT thread_id FROM posts WHERE id = $1`, *p.ParentPostId).Scan(&parentThread)
			if errors.Is(err, sql.ErrNoRows) {
				return errParentNotFound
			}
			if err != nil {
				return queryError(err, "failed to fetch parent post")
			}
			if parentThread != p.ThreadId {
				return errParentNotFound
			}
		}

		var err error
		p, err = insertPost(ctx, tx, p)
		return err
	})
	if err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

func (s *Storage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, errPostNotFound
		}
		return domain.Post{}, queryError(err, "failed to fetch post")
	}

	posts := []domain.Post{p}
	if err := attachVotes(ctx, s.db, posts); err != nil {
		return domain.Post{}, err
	}
	return posts[0], nil
}

// DeletePost removes the post and its votes. Replies stay and become
// orphans.
func (s *Storage) DeletePost(ctx context.Context, id domain.PostId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return queryError(err, "failed to delete post")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errPostNotFound
	}
	return nil
}

// SetBestAnswer marks postId as the best answer of threadId, unmarking the
// previous one in the same transaction.
func (s *Storage) SetBestAnswer(ctx context.Context, threadId domain.ThreadId, postId domain.PostId) error {
	return shared_pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		// serializes concurrent best answer changes of one thread
		var locked domain.ThreadId
		err := tx.QueryRowContext(ctx, `SELECT id FROM threads WHERE id = $1 FOR UPDATE`, threadId).Scan(&locked)
		if errors.Is(err, sql.ErrNoRows) {
			return errThreadNotFound
		}
		if err != nil {
			return queryError(err, "failed to lock thread")
		}

		var exists bool
		err = tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1 AND thread_id = $2)`, postId, threadId).Scan(&exists)
		if err != nil {
			return queryError(err, "failed to check post")
		}
		if !exists {
			return internal_errors.NotFound("Post not found in this thread")
		}

		if _, err := tx.ExecContext(ctx, `UPDATE posts SET is_best_answer = false WHERE thread_id = $1 AND is_best_answer`, threadId); err != nil {
			return fmt.Errorf("failed to clear best answer: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `UPDATE posts SET is_best_answer = true WHERE id = $1`, postId); err != nil {
			return fmt.Errorf("failed to set best answer: %w", err)
		}
		return nil
	})
}

func (s *Storage) ClearBestAnswer(ctx context.Context, threadId domain.ThreadId) error {
	_, err := s.db.ExecContext(ctx, `UPDATE posts SET is_best_answer = false WHERE thread_id = $1 AND is_best_answer`, threadId)
	if err != nil {
		return queryError(err, "failed to clear best answer")
	}
	return nil
}
