package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrMissingParameter is returned when a command that needs a quiz ID was given none.
	ErrMissingParameter = errors.New("missing id parameter")
	// ErrNotANumber is returned when the quiz ID is not a base-10 integer.
	ErrNotANumber = errors.New("id is not a number")
)

// ValidateID parses the raw id argument of a command. An empty or whitespace-only argument counts as missing.
func ValidateID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrMissingParameter
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, raw)
	}

	return id, nil
}
