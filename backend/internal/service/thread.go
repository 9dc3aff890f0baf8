package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/forum/shared/config"
	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/logger"
	"github.com/itchan-dev/forum/shared/threadtree"
	"golang.org/x/sync/singleflight"
)

type ThreadService interface {
	Create(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error)
	View(ctx context.Context, id domain.ThreadId, opts ViewOptions) (domain.ThreadView, error)
	Delete(ctx context.Context, id domain.ThreadId) error
}

type ThreadStorage interface {
	CreateThread(ctx context.Context, thread domain.ThreadMetadata, op domain.Post) (domain.ThreadMetadata, domain.Post, error)
	GetThreadPrefix(ctx context.Context, id domain.ThreadId, limit int) (domain.ThreadPrefix, error)
	DeleteThread(ctx context.Context, id domain.ThreadId) error
}

type ThreadValidator interface {
	Title(title string) error
}

// TextRenderer turns post text into safe HTML.
type TextRenderer interface {
	Render(text string) (string, error)
}

// ViewOptions select one page of a thread. Zero Limit means the configured
// first page size.
type ViewOptions struct {
	Limit       int
	SortByScore bool
}

type Thread struct {
	storage       ThreadStorage
	validator     ThreadValidator
	postValidator PostValidator
	renderer      TextRenderer
	cfg           config.Public
	inflight      singleflight.Group
}

func NewThread(storage ThreadStorage, validator ThreadValidator, postValidator PostValidator, renderer TextRenderer, cfg config.Public) *Thread {
	return &Thread{
		storage:       storage,
		validator:     validator,
		postValidator: postValidator,
		renderer:      renderer,
		cfg:           cfg,
	}
}

func (s *Thread) Create(ctx context.Context, data domain.ThreadCreationData) (domain.ThreadId, error) {
	if err := s.validator.Title(data.Title); err != nil {
		return "", err
	}
	if err := s.postValidator.Text(data.OpPost.Text); err != nil {
		return "", err
	}
	html, err := s.renderer.Render(data.OpPost.Text)
	if err != nil {
		return "", fmt.Errorf("render opening post: %w", err)
	}

	thread := domain.ThreadMetadata{
		Id:       uuid.NewString(),
		Title:    data.Title,
		AuthorId: data.Author.Id,
	}
	op := domain.Post{
		Id:       uuid.NewString(),
		AuthorId: data.Author.Id,
		Text:     data.OpPost.Text,
		Html:     html,
	}
	created, _, err := s.storage.CreateThread(ctx, thread, op)
	if err != nil {
		return "", err
	}
	logger.Log.Info("thread created", "thread_id", created.Id, "author_id", created.AuthorId)
	return created.Id, nil
}

// clampLimit maps a requested prefix length into [1, MaxPageSize].
func (s *Thread) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.PageSize
	}
	return max(1, min(limit, s.cfg.MaxPageSize))
}

// View loads the oldest-first prefix of a thread and assembles its tree.
// Identical concurrent requests share one storage round trip.
func (s *Thread) View(ctx context.Context, id domain.ThreadId, opts ViewOptions) (domain.ThreadView, error) {
	limit := s.clampLimit(opts.Limit)

	key := id + ":" + strconv.Itoa(limit)
	res, err, shared := s.inflight.Do(key, func() (any, error) {
		// the fetch may outlive the request that started it
		return s.storage.GetThreadPrefix(context.WithoutCancel(ctx), id, limit)
	})
	if err != nil {
		return domain.ThreadView{}, err
	}
	if shared {
		prefixFetchShared.Inc()
	}
	prefix := res.(domain.ThreadPrefix)

	start := time.Now()
	roots := threadtree.Build(prefix.Posts)
	treeBuildDuration.Observe(time.Since(start).Seconds())

	loaded := len(prefix.Posts)
	if omitted := loaded - threadtree.Count(roots); omitted > 0 {
		postsOmitted.Add(float64(omitted))
		logger.Log.Debug("posts omitted from thread view", "thread_id", id, "omitted", omitted, "loaded", loaded)
	}

	if opts.SortByScore {
		roots = threadtree.SortByScore(roots)
	}

	window := threadtree.Window{Size: limit, Increment: s.cfg.PageIncrement}
	hasMore := threadtree.HasMore(loaded, prefix.Total)
	return domain.ThreadView{
		ThreadMetadata: prefix.ThreadMetadata,
		Roots:          roots,
		Loaded:         loaded,
		Total:          prefix.Total,
		HasMore:        hasMore,
		NextLimit:      min(window.Next().Size, s.cfg.MaxPageSize),
		Capped:         hasMore && limit >= s.cfg.MaxPageSize,
	}, nil
}

func (s *Thread) Delete(ctx context.Context, id domain.ThreadId) error {
	if err := s.storage.DeleteThread(ctx, id); err != nil {
		return err
	}
	logger.Log.Info("thread deleted", "thread_id", id)
	return nil
}
