package quiz

import (
	"errors"
	"strings"
)

// Problem is a single violated field constraint.
type Problem struct {
	Field   string
	Message string
}

// ValidationError is returned when a quiz is rejected. It carries one Problem per violated constraint.
type ValidationError struct {
	Problems []Problem
}

// NewValidationError returns a *ValidationError for the given problems.
func NewValidationError(problems ...Problem) *ValidationError {
	return &ValidationError{Problems: problems}
}

// Error joins the problem messages.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid quiz"
	}

	return "invalid quiz: " + strings.Join(e.Messages(), "; ")
}

// Messages returns one message per problem.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}

	return msgs
}

// AsValidationError returns the *ValidationError wrapped in err, if any.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}

	return nil, false
}
