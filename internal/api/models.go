package api

// SubmitAnswerRequest is the body for POST /submit-answer.
type SubmitAnswerRequest struct {
	LearnerID           string  `json:"user_id"       validate:"required,min=3"`
	WordID              int64   `json:"word_id"       validate:"required,gt=0"`
	Quality             int     `json:"quality"       validate:"min=0,max=5"`
	ResponseTimeSeconds float64 `json:"response_time" validate:"gte=0"`
}

// CreateWordRequest is the body for POST /words.
type CreateWordRequest struct {
	Text            string `json:"word"             validate:"required"`
	FrequencyRank   int    `json:"frequency_rank"   validate:"required,gte=1"`
	DifficultyLevel int    `json:"difficulty_level" validate:"required,min=1,max=5"`
}
