package api

// Request DTOs

type CreateThreadRequest struct {
	Title string `json:"title" validate:"required"`
	Text  string `json:"text" validate:"required"` // body of the opening post
}

type CreatePostRequest struct {
	Text         string  `json:"text" validate:"required"`
	ParentPostId *string `json:"parent_post_id,omitempty" validate:"omitempty,uuid"`
}

type VoteRequest struct {
	Value int `json:"value" validate:"required,oneof=-1 1"`
}

type BestAnswerRequest struct {
	PostId string `json:"post_id" validate:"required,uuid"`
}

// Response DTOs

type CreatedResponse struct {
	Id string `json:"id"`
}

type VoteResponse struct {
	PostId    string `json:"post_id"`
	VoteScore int    `json:"vote_score"`
}
