// Package threadtree assembles the discussion view of a thread from a flat,
// oldest-first batch of posts.
//
// The view is two levels deep: root posts (no parent) in input order, each
// carrying its direct replies in input order. A reply is matched against the
// roots of the batch only, with a single lookup. Posts whose parent is not a
// root of the batch are omitted from the view. That covers replies whose
// parent lies beyond the loaded prefix or was deleted, and replies to
// replies. Callers that must never lose a post have to validate on their own.
//
// Everything here is pure: no I/O, no errors, no shared state.
package threadtree

import (
	"slices"

	"github.com/itchan-dev/forum/shared/domain"
)

// VoteScore returns the sum of vote values. Nil and empty slices score 0.
func VoteScore(votes []domain.Vote) int {
	score := 0
	for _, v := range votes {
		score += v.Value
	}
	return score
}

// Score wraps a post with its vote score. Replies are left nil.
func Score(p domain.Post) domain.ScoredPost {
	return domain.ScoredPost{Post: p, VoteScore: VoteScore(p.Votes)}
}

// Build turns a batch of posts into root posts with attached replies.
// Output order always equals input order; nothing is sorted by score.
// Every root gets a non-nil Replies slice.
func Build(posts []domain.Post) []domain.ScoredPost {
	roots := make([]domain.ScoredPost, 0, len(posts))
	// ids are not validated upstream, a duplicated root id gets every reply
	rootIdx := make(map[domain.PostId][]int)
	for _, p := range posts {
		if !p.IsRoot() {
			continue
		}
		root := Score(p)
		root.Replies = []domain.ScoredPost{}
		rootIdx[p.Id] = append(rootIdx[p.Id], len(roots))
		roots = append(roots, root)
	}

	for _, p := range posts {
		if p.IsRoot() {
			continue
		}
		idx, ok := rootIdx[*p.ParentPostId]
		if !ok {
			continue // orphan or reply to a reply
		}
		reply := Score(p)
		for _, i := range idx {
			roots[i].Replies = append(roots[i].Replies, reply)
		}
	}
	return roots
}

// Count returns how many posts a built tree shows, roots and replies.
func Count(roots []domain.ScoredPost) int {
	n := len(roots)
	for _, r := range roots {
		n += len(r.Replies)
	}
	return n
}

// SortByScore returns a copy of roots ordered by score, highest first, with
// every reply list ordered the same way. Equal scores keep chronological
// order. The input is left untouched.
func SortByScore(roots []domain.ScoredPost) []domain.ScoredPost {
	sorted := make([]domain.ScoredPost, len(roots))
	for i, r := range roots {
		r.Replies = slices.Clone(r.Replies)
		slices.SortStableFunc(r.Replies, byScoreDesc)
		sorted[i] = r
	}
	slices.SortStableFunc(sorted, byScoreDesc)
	return sorted
}

func byScoreDesc(a, b domain.ScoredPost) int {
	return b.VoteScore - a.VoteScore
}
