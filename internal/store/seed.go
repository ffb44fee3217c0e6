package store

import (
	"context"
	"fmt"

	"github.com/starquake/quizcli/internal/quiz"
)

// DefaultQuizzes returns the quizzes an empty store is seeded with.
func DefaultQuizzes() []*quiz.Quiz {
	return []*quiz.Quiz{
		{Question: "Capital of Italy", Answer: "Rome"},
		{Question: "Capital of Spain", Answer: "Madrid"},
		{Question: "Capital of France", Answer: "Paris"},
		{Question: "Capital of Portugal", Answer: "Lisbon"},
	}
}

// Seed creates the given quizzes when the store is empty. It returns the number of quizzes created.
func Seed(ctx context.Context, s quiz.Store, quizzes []*quiz.Quiz) (int, error) {
	n, err := s.CountQuizzes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	for i, qz := range quizzes {
		if err = s.CreateQuiz(ctx, qz); err != nil {
			return i, fmt.Errorf("failed to seed quiz %q: %w", qz.Question, err)
		}
	}

	return len(quizzes), nil
}
