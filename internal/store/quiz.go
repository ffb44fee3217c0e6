package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/starquake/quizcli/internal/db"
	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/quiz"
)

const (
	getQuizSQL        = `SELECT id, question, answer, created_at, updated_at FROM quizzes WHERE id = ?`
	listQuizzesSQL    = `SELECT id, question, answer, created_at, updated_at FROM quizzes ORDER BY id`
	countQuizzesSQL   = `SELECT COUNT(*) FROM quizzes`
	findByQuestionSQL = `SELECT id FROM quizzes WHERE question = ? AND id != ?`
	createQuizSQL     = `INSERT INTO quizzes (question, answer, created_at, updated_at) VALUES (?, ?, ?, ?)`
	updateQuizSQL     = `UPDATE quizzes SET question = ?, answer = ?, updated_at = ? WHERE id = ?`
	deleteQuizSQL     = `DELETE FROM quizzes WHERE id = ?`

	duplicateQuestion = "question already exists"
)

// QuizStore is a SQLite implementation of quiz.Store.
type QuizStore struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewQuizStore initializes a new QuizStore with the provided database connection and returns it.
func NewQuizStore(conn *sql.DB, logger *logging.Logger) *QuizStore {
	return &QuizStore{db: conn, logger: logger}
}

// Ping checks the connection to the database, ensuring it's reachable and responsive.
func (s *QuizStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping", err)
	}

	return nil
}

// GetQuiz returns a quiz by its ID.
func (s *QuizStore) GetQuiz(ctx context.Context, id int64) (*quiz.Quiz, error) {
	qz, err := scanQuiz(s.db.QueryRowContext(ctx, getQuizSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", quiz.ErrQuizNotFound, id)
		}

		return nil, unavailable("get quiz", err)
	}

	return qz, nil
}

// ListQuizzes returns all quizzes ordered by ID.
func (s *QuizStore) ListQuizzes(ctx context.Context) ([]*quiz.Quiz, error) {
	rows, err := s.db.QueryContext(ctx, listQuizzesSQL)
	if err != nil {
		return nil, unavailable("list quizzes", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error(ctx, "error closing quiz rows", logging.ErrAttr(closeErr))
		}
	}()

	var quizzes []*quiz.Quiz
	for rows.Next() {
		qz, scanErr := scanQuiz(rows)
		if scanErr != nil {
			return nil, unavailable("scan quiz", scanErr)
		}
		quizzes = append(quizzes, qz)
	}
	if err = rows.Err(); err != nil {
		return nil, unavailable("iterate quizzes", err)
	}

	return quizzes, nil
}

// CountQuizzes returns the number of stored quizzes.
func (s *QuizStore) CountQuizzes(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, countQuizzesSQL).Scan(&n); err != nil {
		return 0, unavailable("count quizzes", err)
	}

	return n, nil
}

// CreateQuiz validates and stores a new quiz using a transaction. On success the quiz ID and timestamps are set.
func (s *QuizStore) CreateQuiz(ctx context.Context, qz *quiz.Quiz) error {
	qz.ID = 0
	err := db.ExecTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.validate(ctx, tx, qz); err != nil {
			return err
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		res, err := tx.ExecContext(ctx, createQuizSQL, qz.Question, qz.Answer, timestamp(now), timestamp(now))
		if err != nil {
			return classify("insert quiz", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return unavailable("get last insert ID", err)
		}

		qz.ID = id
		qz.CreatedAt = now
		qz.UpdatedAt = now

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	s.logger.Debug(ctx, "quiz created", logging.Int64("id", qz.ID))

	return nil
}

// UpdateQuiz validates and replaces question and answer of an existing quiz using a transaction.
func (s *QuizStore) UpdateQuiz(ctx context.Context, qz *quiz.Quiz) error {
	if qz.ID == 0 {
		return quiz.ErrCannotUpdateQuizWithIDZero
	}

	err := db.ExecTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.validate(ctx, tx, qz); err != nil {
			return err
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		res, err := tx.ExecContext(ctx, updateQuizSQL, qz.Question, qz.Answer, timestamp(now), qz.ID)
		if err != nil {
			return classify("update quiz", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return unavailable("get rows affected", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %d", quiz.ErrQuizNotFound, qz.ID)
		}

		qz.UpdatedAt = now

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to update quiz %d: %w", qz.ID, err)
	}

	s.logger.Debug(ctx, "quiz updated", logging.Int64("id", qz.ID))

	return nil
}

// DeleteQuiz removes a quiz by its ID. Deleting a missing quiz returns quiz.ErrQuizNotFound.
func (s *QuizStore) DeleteQuiz(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, deleteQuizSQL, id)
	if err != nil {
		return unavailable("delete quiz", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return unavailable("get rows affected", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", quiz.ErrQuizNotFound, id)
	}

	s.logger.Debug(ctx, "quiz deleted", logging.Int64("id", id))

	return nil
}

// validate collects the field problems and the duplicate question check into a single *quiz.ValidationError.
func (*QuizStore) validate(ctx context.Context, tx *sql.Tx, qz *quiz.Quiz) error {
	problems := qz.Valid(ctx)

	if qz.Question != "" {
		var otherID int64
		err := tx.QueryRowContext(ctx, findByQuestionSQL, qz.Question, qz.ID).Scan(&otherID)
		switch {
		case err == nil:
			problems = append(problems, quiz.Problem{Field: quiz.FieldQuestion, Message: duplicateQuestion})
		case errors.Is(err, sql.ErrNoRows):
			// unique
		default:
			return unavailable("check duplicate question", err)
		}
	}

	if len(problems) > 0 {
		return quiz.NewValidationError(problems...)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuiz(row rowScanner) (*quiz.Quiz, error) {
	var qz quiz.Quiz
	var createdAt, updatedAt timestamp
	if err := row.Scan(&qz.ID, &qz.Question, &qz.Answer, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	qz.CreatedAt = time.Time(createdAt)
	qz.UpdatedAt = time.Time(updatedAt)

	return &qz, nil
}

// classify turns a unique constraint violation into a validation error and everything else into ErrStoreUnavailable.
// Writes racing another process can still hit the UNIQUE index after validate passed.
func classify(op string, err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return quiz.NewValidationError(quiz.Problem{Field: quiz.FieldQuestion, Message: duplicateQuestion})
	}

	return unavailable(op, err)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", quiz.ErrStoreUnavailable, op, err)
}
