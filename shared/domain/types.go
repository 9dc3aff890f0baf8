package domain

type (
	UserId = int64

	ThreadId    = string // uuid
	ThreadTitle = string

	PostId   = string // uuid
	PostText = string

	VoteValue = int
)
