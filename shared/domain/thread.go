package domain

import (
	"time"
)

// to iterate thru layers: handler -> service -> storage
type ThreadCreationData struct {
	Title  ThreadTitle
	Author User
	OpPost PostCreationData
}

type ThreadMetadata struct {
	Id        ThreadId
	Title     ThreadTitle
	AuthorId  UserId
	CreatedAt time.Time
	NumPosts  int
}

// ThreadPrefix is the oldest-first prefix of a thread as fetched from storage.
type ThreadPrefix struct {
	ThreadMetadata
	Posts []Post
	Total int // posts in the whole thread
}

type ThreadView struct {
	ThreadMetadata
	Roots     []ScoredPost
	Loaded    int
	Total     int
	HasMore   bool
	NextLimit int
	// Capped is set when more posts exist but the prefix is already at the
	// server's maximum page size, so asking for NextLimit loads nothing new.
	Capped bool
}
