package service

import (
	"context"
	"sync"

	"github.com/itchan-dev/forum/shared/domain"
	"github.com/itchan-dev/forum/shared/errors"
)

// --- Mocks ---

type MockThreadStorage struct {
	createThreadFunc    func(thread domain.ThreadMetadata, op domain.Post) (domain.ThreadMetadata, domain.Post, error)
	getThreadPrefixFunc func(ctx context.Context, id domain.ThreadId, limit int) (domain.ThreadPrefix, error)
	deleteThreadFunc    func(id domain.ThreadId) error

	mu           sync.Mutex
	prefixCalls  int
	prefixLimits []int
}

func (m *MockThreadStorage) CreateThread(ctx context.Context, thread domain.ThreadMetadata, op domain.Post) (domain.ThreadMetadata, domain.Post, error) {
	if m.createThreadFunc != nil {
		return m.createThreadFunc(thread, op)
	}
	return thread, op, nil
}

func (m *MockThreadStorage) GetThreadPrefix(ctx context.Context, id domain.ThreadId, limit int) (domain.ThreadPrefix, error) {
	m.mu.Lock()
	m.prefixCalls++
	m.prefixLimits = append(m.prefixLimits, limit)
	m.mu.Unlock()

	if m.getThreadPrefixFunc != nil {
		return m.getThreadPrefixFunc(ctx, id, limit)
	}
	return domain.ThreadPrefix{ThreadMetadata: domain.ThreadMetadata{Id: id}}, nil
}

func (m *MockThreadStorage) DeleteThread(ctx context.Context, id domain.ThreadId) error {
	if m.deleteThreadFunc != nil {
		return m.deleteThreadFunc(id)
	}
	return nil
}

type MockPostStorage struct {
	createPostFunc        func(p domain.Post) (domain.Post, error)
	getPostFunc           func(id domain.PostId) (domain.Post, error)
	deletePostFunc        func(id domain.PostId) error
	getThreadMetadataFunc func(id domain.ThreadId) (domain.ThreadMetadata, error)
	setBestAnswerFunc     func(threadId domain.ThreadId, postId domain.PostId) error
	clearBestAnswerFunc   func(threadId domain.ThreadId) error

	setBestAnswerCalled   bool
	clearBestAnswerCalled bool
}

func (m *MockPostStorage) CreatePost(ctx context.Context, p domain.Post) (domain.Post, error) {
	if m.createPostFunc != nil {
		return m.createPostFunc(p)
	}
	return p, nil
}

func (m *MockPostStorage) GetPost(ctx context.Context, id domain.PostId) (domain.Post, error) {
	if m.getPostFunc != nil {
		return m.getPostFunc(id)
	}
	return domain.Post{Id: id}, nil
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id domain.PostId) error {
	if m.deletePostFunc != nil {
		return m.deletePostFunc(id)
	}
	return nil
}

func (m *MockPostStorage) GetThreadMetadata(ctx context.Context, id domain.ThreadId) (domain.ThreadMetadata, error) {
	if m.getThreadMetadataFunc != nil {
		return m.getThreadMetadataFunc(id)
	}
	return domain.ThreadMetadata{Id: id}, nil
}

func (m *MockPostStorage) SetBestAnswer(ctx context.Context, threadId domain.ThreadId, postId domain.PostId) error {
	m.setBestAnswerCalled = true
	if m.setBestAnswerFunc != nil {
		return m.setBestAnswerFunc(threadId, postId)
	}
	return nil
}

func (m *MockPostStorage) ClearBestAnswer(ctx context.Context, threadId domain.ThreadId) error {
	m.clearBestAnswerCalled = true
	if m.clearBestAnswerFunc != nil {
		return m.clearBestAnswerFunc(threadId)
	}
	return nil
}

type MockVoteStorage struct {
	upsertVoteFunc func(postId domain.PostId, vote domain.Vote) (int, error)
	deleteVoteFunc func(postId domain.PostId, userId domain.UserId) (int, error)
	upsertCalled   bool
}

func (m *MockVoteStorage) UpsertVote(ctx context.Context, postId domain.PostId, vote domain.Vote) (int, error) {
	m.upsertCalled = true
	if m.upsertVoteFunc != nil {
		return m.upsertVoteFunc(postId, vote)
	}
	return vote.Value, nil
}

func (m *MockVoteStorage) DeleteVote(ctx context.Context, postId domain.PostId, userId domain.UserId) (int, error) {
	if m.deleteVoteFunc != nil {
		return m.deleteVoteFunc(postId, userId)
	}
	return 0, nil
}

type MockValidator struct {
	titleErr error
	textErr  error
}

func (m *MockValidator) Title(title string) error { return m.titleErr }
func (m *MockValidator) Text(text string) error   { return m.textErr }

type MockRenderer struct {
	err error
}

func (m *MockRenderer) Render(text string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<p>" + text + "</p>", nil
}

var errNotFound = errors.NotFound("Thread not found")
