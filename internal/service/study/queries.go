package study

// GetLearnerProgressQuery retrieves a learner's retention state summary.
type GetLearnerProgressQuery struct {
	LearnerID string
}

// GetWordStatsQuery retrieves answer statistics for one word.
type GetWordStatsQuery struct {
	WordID int64
}

// GetGlobalStatsQuery retrieves aggregate counts across all learners.
type GetGlobalStatsQuery struct{}

// GetWordByIDQuery retrieves a single word.
type GetWordByIDQuery struct {
	WordID int64
}

// GetWordsByDifficultyQuery retrieves words at a given difficulty level.
// A Limit of 0 means no limit.
type GetWordsByDifficultyQuery struct {
	Level int
	Limit int
}
