// Package session implements the quiz shell commands. Every handler runs to completion before the next command is
// read, and its prompts and store calls happen strictly one after another.
package session

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/starquake/quizcli/internal/console"
	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/quiz"
)

const (
	questionPrompt = "Question:"
	answerPrompt   = "Answer:"
)

// DefaultCredits are shown by the credits command when no other lines are configured.
var DefaultCredits = []string{
	"quizcli authors:",
	"The quizcli contributors",
}

// Prompter asks the user for a line of input. A non-empty prefill is offered as the default reply.
type Prompter interface {
	Ask(ctx context.Context, text, prefill string) (string, error)
}

// Options configure an Engine.
type Options struct {
	// Interactive enables prefilled prompts when editing.
	Interactive bool
	// Rand is the random source for play. Nil uses the global source.
	Rand *rand.Rand
	// Credits replaces DefaultCredits when set.
	Credits []string
}

// Engine runs the quiz commands against a store.
type Engine struct {
	store  quiz.Store
	prompt Prompter
	out    *console.Console
	logger *logging.Logger
	opts   Options
}

// New returns an Engine.
func New(store quiz.Store, prompter Prompter, out *console.Console, logger *logging.Logger, opts Options) *Engine {
	if opts.Credits == nil {
		opts.Credits = DefaultCredits
	}

	return &Engine{store: store, prompt: prompter, out: out, logger: logger, opts: opts}
}

// Usage describes a shell command for the help table.
type Usage struct {
	Command     string
	Description string
}

// Usages is the command table written by Help.
var Usages = []Usage{
	{"h|help", "Show this help."},
	{"list", "List the existing quizzes."},
	{"show <id>", "Show the question and answer of a quiz."},
	{"add", "Add a new quiz."},
	{"delete <id>", "Delete a quiz."},
	{"edit <id>", "Edit a quiz."},
	{"test <id>", "Answer a single quiz."},
	{"p|play", "Answer every quiz in random order until the first mistake."},
	{"credits", "Show the credits."},
	{"q|quit", "Quit the program."},
}

// Help writes the command table.
func (e *Engine) Help(_ context.Context) error {
	e.out.Log("Commands:")
	for _, u := range Usages {
		e.out.Logf(" %s - %s", u.Command, u.Description)
	}

	return nil
}

// List writes every quiz in id order.
func (e *Engine) List(ctx context.Context) error {
	quizzes, err := e.store.ListQuizzes(ctx)
	if err != nil {
		return fmt.Errorf("error listing quizzes: %w", err)
	}

	if len(quizzes) == 0 {
		e.out.Log("No quizzes.")

		return nil
	}

	for _, qz := range quizzes {
		e.out.Logf(" [%s]: %s", e.id(qz.ID), qz.Question)
	}

	return nil
}

// Show writes a single quiz with its answer.
func (e *Engine) Show(ctx context.Context, raw string) error {
	qz, err := e.get(ctx, raw)
	if err != nil {
		return err
	}

	e.out.Logf(" [%s]: %s %s %s", e.id(qz.ID), qz.Question, e.arrow(), qz.Answer)

	return nil
}

// Add asks for a question and an answer and stores them as a new quiz.
func (e *Engine) Add(ctx context.Context) error {
	question, err := e.prompt.Ask(ctx, e.out.Colorize(questionPrompt, console.Red), "")
	if err != nil {
		return err
	}
	answer, err := e.prompt.Ask(ctx, e.out.Colorize(answerPrompt, console.Red), "")
	if err != nil {
		return err
	}

	qz := &quiz.Quiz{Question: question, Answer: answer}
	if err = e.store.CreateQuiz(ctx, qz); err != nil {
		return err
	}

	e.out.Logf(" %s: %s %s %s", e.out.Colorize("Added", console.Magenta), qz.Question, e.arrow(), qz.Answer)
	e.logger.Info(ctx, "quiz added", logging.Int64("id", qz.ID))

	return nil
}

// Delete removes a quiz.
func (e *Engine) Delete(ctx context.Context, raw string) error {
	id, err := ValidateID(raw)
	if err != nil {
		return err
	}

	if err = e.store.DeleteQuiz(ctx, id); err != nil {
		return err
	}

	e.out.Logf(" %s: [%s]", e.out.Colorize("Deleted", console.Magenta), e.id(id))
	e.logger.Info(ctx, "quiz deleted", logging.Int64("id", id))

	return nil
}

// Edit asks for a new question and answer for an existing quiz. In interactive mode the current values are
// offered as defaults.
func (e *Engine) Edit(ctx context.Context, raw string) error {
	qz, err := e.get(ctx, raw)
	if err != nil {
		return err
	}

	question, err := e.prompt.Ask(ctx, e.out.Colorize(questionPrompt, console.Red), e.prefill(qz.Question))
	if err != nil {
		return err
	}
	answer, err := e.prompt.Ask(ctx, e.out.Colorize(answerPrompt, console.Red), e.prefill(qz.Answer))
	if err != nil {
		return err
	}

	qz.Question = question
	qz.Answer = answer
	if err = e.store.UpdateQuiz(ctx, qz); err != nil {
		return err
	}

	e.out.Logf(" Quiz %s changed to: %s %s %s", e.id(qz.ID), qz.Question, e.arrow(), qz.Answer)
	e.logger.Info(ctx, "quiz updated", logging.Int64("id", qz.ID))

	return nil
}

// Test asks a single quiz and reports whether the reply was correct.
func (e *Engine) Test(ctx context.Context, raw string) error {
	qz, err := e.get(ctx, raw)
	if err != nil {
		return err
	}

	reply, err := e.prompt.Ask(ctx, e.out.Colorize(qz.Question+":", console.Red), "")
	if err != nil {
		return err
	}

	if qz.Check(reply) {
		e.out.Log(" Your answer is correct.")
		e.out.Big("Correct", console.Green)
	} else {
		e.out.Log(" Your answer is incorrect.")
		e.out.Big("Incorrect", console.Red)
	}

	return nil
}

// Credits writes the author lines.
func (e *Engine) Credits(_ context.Context) error {
	for i, line := range e.opts.Credits {
		if i == 0 {
			e.out.Log(line)

			continue
		}
		e.out.Log(e.out.Colorize(line, console.Green))
	}

	return nil
}

func (e *Engine) get(ctx context.Context, raw string) (*quiz.Quiz, error) {
	id, err := ValidateID(raw)
	if err != nil {
		return nil, err
	}

	qz, err := e.store.GetQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	return qz, nil
}

func (e *Engine) prefill(value string) string {
	if !e.opts.Interactive {
		return ""
	}

	return value
}

func (e *Engine) id(id int64) string {
	return e.out.Colorize(fmt.Sprint(id), console.Magenta)
}

func (e *Engine) arrow() string {
	return e.out.Colorize("=>", console.Magenta)
}
