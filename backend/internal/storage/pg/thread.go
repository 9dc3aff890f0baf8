package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/itchan-dev/forum/shared/domain"
	internal_errors "github.com/itchan-dev/forum/shared/errors"
	shared_pg "github.com/itchan-dev/forum/shared/storage/pg"
	"github.com/lib/pq"
)

var errThreadNotFound = internal_errors.NotFound("Thread not found")

// CreateThread stores the thread and its opening post atomically. The
// returned values carry the database timestamps.
func (s *Storage) CreateThread(ctx context.Context, thread domain.ThreadMetadata, op domain.Post) (domain.ThreadMetadata, domain.Post, error) {
	err := shared_pg.WithTx(ctx, s.db, nil, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `
			INSERT INTO threads (id, title, author_id)
			VALUES ($1, $2, $3)
			RETURNING created_at`,
			thread.Id, thread.Title, thread.AuthorId,
		).Scan(&thread.CreatedAt)
		if err != nil {
			return queryError(err, "failed to insert thread")
		}

		op.ThreadId = thread.Id
		if op, err = insertPost(ctx, tx, op); err != nil {
			return fmt.Errorf("failed to create opening post: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.ThreadMetadata{}, domain.Post{}, err
	}
	thread.NumPosts = 1
	return thread, op, nil
}

func (s *Storage) GetThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	return getThreadMetadata(ctx, s.db, id)
}

func getThreadMetadata(ctx context.Context, q shared_pg.Querier, id domain.ThreadId) (domain.ThreadMetadata, error) {
	var m domain.ThreadMetadata
	err := q.QueryRowContext(ctx, `
		SELECT t.id, t.title, t.author_id, t.created_at,
		       (SELECT count(*) FROM posts p WHERE p.thread_id = t.id)
		FROM threads t
		WHERE t.id = $1`, id,
	).Scan(&m.Id, &m.Title, &m.AuthorId, &m.CreatedAt, &m.NumPosts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ThreadMetadata{}, errThreadNotFound
		}
		return domain.ThreadMetadata{}, queryError(err, "failed to fetch thread metadata")
	}
	return m, nil
}

// GetThreadPrefix returns the limit oldest posts of the thread with their
// votes, plus the total post count. Everything is read from one snapshot so
// Total and Posts agree.
func (s *Storage) GetThreadPrefix(ctx context.Context, id domain.ThreadId, limit int) (domain.ThreadPrefix, error) {
	var prefix domain.ThreadPrefix
	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := shared_pg.WithTx(ctx, s.db, opts, func(tx *sql.Tx) error {
		meta, err := getThreadMetadata(ctx, tx, id)
		if err != nil {
			return err
		}
		prefix.ThreadMetadata = meta
		prefix.Total = meta.NumPosts

		rows, err := tx.QueryContext(ctx, `
			SELECT `+postColumns+`
			FROM posts
			WHERE thread_id = $1
			ORDER BY created_at, id
			LIMIT $2`, id, limit)
		if err != nil {
			return fmt.Errorf("failed to fetch posts: %w", err)
		}
		posts, err := scanPosts(rows)
		if err != nil {
			return err
		}

		if err := attachVotes(ctx, tx, posts); err != nil {
			return err
		}
		prefix.Posts = posts
		return nil
	})
	if err != nil {
		return domain.ThreadPrefix{}, err
	}
	return prefix, nil
}

func (s *Storage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = $1`, id)
	if err != nil {
		return queryError(err, "failed to delete thread")
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errThreadNotFound
	}
	return nil
}

// attachVotes loads votes of all posts with one query. Votes keep the order
// they were cast in.
func attachVotes(ctx context.Context, q shared_pg.Querier, posts []domain.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]string, len(posts))
	idx := make(map[domain.PostId]int, len(posts))
	for i, p := range posts {
		ids[i] = p.Id
		idx[p.Id] = i
	}

	rows, err := q.QueryContext(ctx, `
		SELECT post_id, user_id, value
		FROM post_votes
		WHERE post_id = ANY($1::uuid[])
		ORDER BY created_at, user_id`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to fetch votes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postId domain.PostId
		var v domain.Vote
		if err := rows.Scan(&postId, &v.UserId, &v.Value); err != nil {
			return fmt.Errorf("failed to scan vote: %w", err)
		}
		i := idx[postId]
		posts[i].Votes = append(posts[i].Votes, v)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows iteration error: %w", err)
	}
	return nil
}
