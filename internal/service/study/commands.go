package study

// DefaultBlockSize is the number of words in a study block when the caller
// does not specify a limit.
const DefaultBlockSize = 20

// SubmitAnswerCommand records a learner's answer for one word and advances
// its retention schedule.
type SubmitAnswerCommand struct {
	LearnerID           string
	WordID              int64
	Quality             int
	ResponseTimeSeconds float64
}

// GenerateStudyBlockCommand assembles the next study block for a learner.
// A Limit of 0 is rejected; callers wanting the default should set
// DefaultBlockSize.
type GenerateStudyBlockCommand struct {
	LearnerID string
	Limit     int
}

// CreateWordCommand adds a new vocabulary word.
type CreateWordCommand struct {
	Text            string
	FrequencyRank   int
	DifficultyLevel int
}
