// Package game contains the play state machine: a randomized, no-repeat walk over a snapshot of quiz IDs that
// ends on the first wrong answer or when every quiz was answered correctly.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/rs/xid"
)

var (
	// ErrNotAwaitingAnswer is returned when an answer is resolved without a drawn quiz.
	ErrNotAwaitingAnswer = errors.New("game is not awaiting an answer")
	// ErrNotTaken is returned when an answer is resolved before its quiz was taken out of the pool.
	ErrNotTaken = errors.New("drawn quiz was not taken")
	// ErrGameFinished is returned when a finished game is asked to draw again.
	ErrGameFinished = errors.New("game is finished")
)

// State is the state of a game.
type State int

// Game states.
const (
	StateSelecting State = iota
	StateAwaitingAnswer
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateAwaitingAnswer:
		return "awaiting-answer"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is how a finished game ended.
type Outcome int

// Game outcomes. OutcomeNone is reported until the game is finished.
const (
	OutcomeNone Outcome = iota
	OutcomeExhausted
	OutcomeWrongAnswer
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeWrongAnswer:
		return "wrong-answer"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Game is a single play session. It is not safe for concurrent use; one game belongs to one play invocation.
type Game struct {
	ID string

	pool    []int64
	asked   []int64
	drawn   int
	current int64
	score   int
	state   State
	outcome Outcome
	rng     *rand.Rand
}

// New starts a game over a snapshot of quiz IDs. Later changes to ids do not affect the game.
// A nil rng uses the global source.
func New(ids []int64, rng *rand.Rand) *Game {
	return &Game{
		ID:    xid.New().String(),
		pool:  slices.Clone(ids),
		asked: make([]int64, 0, len(ids)),
		drawn: -1,
		state: StateSelecting,
		rng:   rng,
	}
}

// Draw picks the next quiz uniformly at random from the quizzes not yet asked. It returns false and finishes the
// game with OutcomeExhausted when there is nothing left to ask. Drawing again before Resolve returns the same quiz.
func (g *Game) Draw() (int64, bool, error) {
	switch g.state {
	case StateFinished:
		return 0, false, ErrGameFinished
	case StateAwaitingAnswer:
		return g.current, true, nil
	case StateSelecting:
	}

	if len(g.pool) == 0 {
		g.finish(OutcomeExhausted)

		return 0, false, nil
	}

	g.drawn = g.intN(len(g.pool))
	g.current = g.pool[g.drawn]
	g.state = StateAwaitingAnswer
	g.asked = append(g.asked, g.current)

	return g.current, true, nil
}

// Take removes the drawn quiz from the pool once its answer has arrived, so it is never drawn again in this game
// whatever the evaluation of the answer turns out to be. It must be called before Resolve.
func (g *Game) Take() (int64, error) {
	if g.state != StateAwaitingAnswer {
		return 0, ErrNotAwaitingAnswer
	}
	if g.drawn >= 0 {
		g.pool = slices.Delete(g.pool, g.drawn, g.drawn+1)
		g.drawn = -1
	}

	return g.current, nil
}

// Resolve records whether the answer to the taken quiz was correct. A wrong answer finishes the game with
// OutcomeWrongAnswer.
func (g *Game) Resolve(correct bool) error {
	if g.state != StateAwaitingAnswer {
		return ErrNotAwaitingAnswer
	}
	if g.drawn >= 0 {
		return ErrNotTaken
	}

	if !correct {
		g.finish(OutcomeWrongAnswer)

		return nil
	}

	g.score++
	g.state = StateSelecting

	return nil
}

// State returns the current state.
func (g *Game) State() State { return g.state }

// Outcome returns how the game ended, or OutcomeNone while it is running.
func (g *Game) Outcome() Outcome { return g.outcome }

// Score returns the number of correct answers so far.
func (g *Game) Score() int { return g.score }

// Remaining returns how many quizzes have not been asked yet.
func (g *Game) Remaining() int { return len(g.pool) }

// Asked returns the quiz IDs in the order they were drawn.
func (g *Game) Asked() []int64 { return slices.Clone(g.asked) }

func (g *Game) finish(o Outcome) {
	g.state = StateFinished
	g.outcome = o
}

func (g *Game) intN(n int) int {
	if g.rng == nil {
		return rand.IntN(n)
	}

	return g.rng.IntN(n)
}
