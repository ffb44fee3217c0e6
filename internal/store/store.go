// Package store provides the application's data stores.
package store

import (
	"database/sql"

	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/quiz"
)

// Stores is a collection of stores for the application.
type Stores struct {
	Quizzes quiz.Store
}

// New initializes a new Stores instance with the provided database connection.
func New(conn *sql.DB, logger *logging.Logger) *Stores {
	return &Stores{
		Quizzes: NewQuizStore(conn, logger),
	}
}
