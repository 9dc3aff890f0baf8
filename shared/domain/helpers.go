package domain

import (
	"fmt"
	"time"
)

// for debug
func (p *Post) String() string {
	parent := "<root>"
	if p.ParentPostId != nil {
		parent = *p.ParentPostId
	}
	return fmt.Sprintf("[id:%s, thread:%s, parent:%s, author:%d, created:%s, best:%t, votes:%d]",
		p.Id, p.ThreadId, parent, p.AuthorId, p.CreatedAt.Format(time.StampMilli), p.IsBestAnswer, len(p.Votes))
}

func (s *ScoredPost) String() string {
	str := fmt.Sprintf("[id:%s, score:%d, replies:[", s.Id, s.VoteScore)
	for i, r := range s.Replies {
		if i > 0 {
			str += ", "
		}
		str += fmt.Sprintf("%s(%d)", r.Id, r.VoteScore)
	}
	return str + "]]"
}
