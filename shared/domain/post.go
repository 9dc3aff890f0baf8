package domain

import "time"

type Vote struct {
	UserId UserId
	Value  VoteValue
}

// to iterate thru layers: handler -> service -> storage
type PostCreationData struct {
	ThreadId     ThreadId
	ParentPostId *PostId
	Author       User
	Text         PostText
}

type Post struct {
	Id           PostId
	ThreadId     ThreadId
	ParentPostId *PostId // nil for root posts
	AuthorId     UserId
	Text         PostText
	Html         string // rendered and sanitized Text
	CreatedAt    time.Time
	IsBestAnswer bool
	Votes        []Vote
}

// IsRoot reports whether the post starts a branch of discussion.
func (p *Post) IsRoot() bool {
	return p.ParentPostId == nil
}

// ScoredPost is the view of a post inside a built thread tree.
// Replies is populated only for root posts.
type ScoredPost struct {
	Post
	VoteScore int
	Replies   []ScoredPost
}
