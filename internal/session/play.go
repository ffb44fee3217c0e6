package session

import (
	"context"
	"fmt"

	"github.com/starquake/quizcli/internal/console"
	"github.com/starquake/quizcli/internal/game"
	"github.com/starquake/quizcli/internal/logging"
)

// Result describes a finished or aborted play session.
type Result struct {
	GameID  string
	Outcome game.Outcome
	Score   int
	Asked   []int64
}

// Play asks every quiz once in random order until a reply is wrong or nothing is left to ask. The set of quizzes is
// taken when the game starts. A store or prompt error aborts the game and is returned with the result so far.
func (e *Engine) Play(ctx context.Context) (Result, error) {
	quizzes, err := e.store.ListQuizzes(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("error listing quizzes: %w", err)
	}

	ids := make([]int64, 0, len(quizzes))
	for _, qz := range quizzes {
		ids = append(ids, qz.ID)
	}

	g := game.New(ids, e.opts.Rand)
	e.logger.Debug(ctx, "game started", logging.String("game", g.ID), logging.Int("quizzes", len(ids)))

	if err = e.play(ctx, g); err != nil {
		e.logger.Debug(ctx, "game aborted", logging.String("game", g.ID), logging.ErrAttr(err))

		return result(g), err
	}

	if g.Outcome() == game.OutcomeExhausted {
		e.out.Log(" Nothing left to ask.")
	}
	e.out.Logf(" Final score: %d", g.Score())
	e.out.Big(fmt.Sprint(g.Score()), console.Magenta)

	e.logger.Info(ctx, "game finished",
		logging.String("game", g.ID),
		logging.String("outcome", g.Outcome().String()),
		logging.Int("score", g.Score()),
	)

	return result(g), nil
}

func (e *Engine) play(ctx context.Context, g *game.Game) error {
	for g.State() != game.StateFinished {
		id, ok, err := g.Draw()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		qz, err := e.store.GetQuiz(ctx, id)
		if err != nil {
			return err
		}

		reply, err := e.prompt.Ask(ctx, e.out.Colorize(qz.Question+":", console.Red), "")
		if err != nil {
			return err
		}

		if _, err = g.Take(); err != nil {
			return err
		}
		correct := qz.Check(reply)
		if err = g.Resolve(correct); err != nil {
			return err
		}

		if correct {
			e.out.Logf(" %s - %d correct so far", e.out.Colorize("CORRECT", console.Green), g.Score())
		} else {
			e.out.Log(" " + e.out.Colorize("INCORRECT", console.Red))
		}
	}

	return nil
}

func result(g *game.Game) Result {
	return Result{
		GameID:  g.ID,
		Outcome: g.Outcome(),
		Score:   g.Score(),
		Asked:   g.Asked(),
	}
}
