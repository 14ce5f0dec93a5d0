package study

import (
	"context"
	"fmt"

	"github.com/phrazzld/vocab-api/internal/dispatch"
)

// Register binds every study command and query type to its handler on the
// dispatcher. Called once during application wiring.
func (s *Service) Register(d *dispatch.Dispatcher) {
	d.RegisterCommandHandler(SubmitAnswerCommand{}, dispatch.CommandHandlerFunc(
		func(ctx context.Context, cmd any) (any, error) {
			c, ok := cmd.(SubmitAnswerCommand)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, cmd)
			}
			return s.SubmitAnswer(ctx, c)
		}))

	d.RegisterCommandHandler(GenerateStudyBlockCommand{}, dispatch.CommandHandlerFunc(
		func(ctx context.Context, cmd any) (any, error) {
			c, ok := cmd.(GenerateStudyBlockCommand)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, cmd)
			}
			return s.GenerateStudyBlock(ctx, c)
		}))

	d.RegisterCommandHandler(CreateWordCommand{}, dispatch.CommandHandlerFunc(
		func(ctx context.Context, cmd any) (any, error) {
			c, ok := cmd.(CreateWordCommand)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, cmd)
			}
			return s.CreateWord(ctx, c)
		}))

	d.RegisterQueryHandler(GetLearnerProgressQuery{}, dispatch.QueryHandlerFunc(
		func(ctx context.Context, query any) (any, error) {
			q, ok := query.(GetLearnerProgressQuery)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, query)
			}
			return s.GetLearnerProgress(ctx, q)
		}))

	d.RegisterQueryHandler(GetWordStatsQuery{}, dispatch.QueryHandlerFunc(
		func(ctx context.Context, query any) (any, error) {
			q, ok := query.(GetWordStatsQuery)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, query)
			}
			return s.GetWordStats(ctx, q)
		}))

	d.RegisterQueryHandler(GetGlobalStatsQuery{}, dispatch.QueryHandlerFunc(
		func(ctx context.Context, query any) (any, error) {
			q, ok := query.(GetGlobalStatsQuery)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, query)
			}
			return s.GetGlobalStats(ctx, q)
		}))

	d.RegisterQueryHandler(GetWordByIDQuery{}, dispatch.QueryHandlerFunc(
		func(ctx context.Context, query any) (any, error) {
			q, ok := query.(GetWordByIDQuery)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, query)
			}
			return s.GetWordByID(ctx, q)
		}))

	d.RegisterQueryHandler(GetWordsByDifficultyQuery{}, dispatch.QueryHandlerFunc(
		func(ctx context.Context, query any) (any, error) {
			q, ok := query.(GetWordsByDifficultyQuery)
			if !ok {
				return nil, fmt.Errorf("%w: got %T", ErrInvalidCommand, query)
			}
			return s.GetWordsByDifficulty(ctx, q)
		}))
}
