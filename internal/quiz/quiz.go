// Package quiz contains the quiz domain: the Quiz record, its validation rules and the Store it is persisted in.
package quiz

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrQuizNotFound is returned when a quiz is not found.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrStoreUnavailable is returned when the underlying storage fails.
	ErrStoreUnavailable = errors.New("quiz store unavailable")
	// ErrCannotUpdateQuizWithIDZero is returned when an update is attempted on a quiz that was never stored.
	ErrCannotUpdateQuizWithIDZero = errors.New("cannot update quiz with ID 0")
)

// Field names used in validation problems.
const (
	FieldQuestion = "question"
	FieldAnswer   = "answer"
)

// Quiz is a single question and answer pair.
type Quiz struct {
	ID        int64
	Question  string
	Answer    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Valid checks the field constraints that can be decided without the store.
// Problems are returned in field order: question first, then answer.
func (q *Quiz) Valid(_ context.Context) []Problem {
	var problems []Problem
	if strings.TrimSpace(q.Question) == "" {
		problems = append(problems, Problem{Field: FieldQuestion, Message: "question cannot be empty"})
	}
	if strings.TrimSpace(q.Answer) == "" {
		problems = append(problems, Problem{Field: FieldAnswer, Message: "answer cannot be empty"})
	}

	return problems
}

// Check reports whether reply answers the quiz. Surrounding whitespace in the reply is ignored and the comparison
// is case-insensitive. The stored answer is compared as is.
func (q *Quiz) Check(reply string) bool {
	return strings.EqualFold(strings.TrimSpace(reply), q.Answer)
}

// Store represents a store for quizzes.
// This can be implemented for different databases.
type Store interface {
	// Ping checks the connection to the store.
	Ping(ctx context.Context) error
	// CreateQuiz stores a new quiz and sets its ID and timestamps. Returns a *ValidationError when it is rejected.
	CreateQuiz(ctx context.Context, qz *Quiz) error
	// GetQuiz returns a quiz by its ID or ErrQuizNotFound.
	GetQuiz(ctx context.Context, id int64) (*Quiz, error)
	// ListQuizzes returns all quizzes ordered by ID.
	ListQuizzes(ctx context.Context) ([]*Quiz, error)
	// UpdateQuiz replaces question and answer of an existing quiz.
	// Returns a *ValidationError when it is rejected or ErrQuizNotFound.
	UpdateQuiz(ctx context.Context, qz *Quiz) error
	// DeleteQuiz removes a quiz by its ID or returns ErrQuizNotFound.
	DeleteQuiz(ctx context.Context, id int64) error
	// CountQuizzes returns the number of stored quizzes.
	CountQuizzes(ctx context.Context) (int, error)
}
