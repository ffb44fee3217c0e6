// Package shell reads commands from the user and dispatches them to the session engine.
package shell

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/starquake/quizcli/internal/console"
	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/session"
)

const promptText = "quiz >"

// Command is a shell command. Run receives the rest of the line after the command token.
type Command struct {
	Name string
	Run  func(ctx context.Context, arg string) error
	// Quit ends the session after Run returns.
	Quit bool
}

// Shell is the read-dispatch loop of the quiz session.
type Shell struct {
	prompt   session.Prompter
	out      *console.Console
	logger   *logging.Logger
	commands map[string]Command
}

// New returns a Shell dispatching to engine.
func New(engine *session.Engine, prompter session.Prompter, out *console.Console, logger *logging.Logger) *Shell {
	s := &Shell{prompt: prompter, out: out, logger: logger}
	s.commands = commands(engine, out)

	return s
}

func commands(engine *session.Engine, out *console.Console) map[string]Command {
	noArg := func(fn func(context.Context) error) func(context.Context, string) error {
		return func(ctx context.Context, _ string) error { return fn(ctx) }
	}

	help := Command{Name: "help", Run: noArg(engine.Help)}
	play := Command{Name: "play", Run: func(ctx context.Context, _ string) error {
		_, err := engine.Play(ctx)

		return err
	}}
	quit := Command{Name: "quit", Quit: true, Run: func(context.Context, string) error {
		out.Log("Bye!")

		return nil
	}}

	return map[string]Command{
		"help":    help,
		"h":       help,
		"list":    {Name: "list", Run: noArg(engine.List)},
		"show":    {Name: "show", Run: engine.Show},
		"add":     {Name: "add", Run: noArg(engine.Add)},
		"delete":  {Name: "delete", Run: engine.Delete},
		"edit":    {Name: "edit", Run: engine.Edit},
		"test":    {Name: "test", Run: engine.Test},
		"play":    play,
		"p":       play,
		"credits": {Name: "credits", Run: noArg(engine.Credits)},
		"quit":    quit,
		"q":       quit,
	}
}

// Lookup returns the command for a token. Tokens are case-insensitive.
func (s *Shell) Lookup(name string) (Command, bool) {
	cmd, ok := s.commands[strings.ToLower(name)]

	return cmd, ok
}

// Run reads and executes commands until quit or the end of input. Command errors are reported and the session
// continues. It returns the context error when ctx is canceled.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Debug(ctx, "session started")
	defer s.logger.Debug(ctx, "session ended")

	for {
		line, err := s.prompt.Ask(ctx, s.out.Colorize(promptText, console.Magenta), "")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		name, arg := split(line)
		if name == "" {
			continue
		}

		cmd, ok := s.Lookup(name)
		if !ok {
			s.out.Error(UnknownCommandError{Name: name})
			s.out.Log("Use 'help' to see the available commands.")

			continue
		}

		s.logger.Debug(ctx, "running command", logging.String("command", cmd.Name))
		err = cmd.Run(ctx, arg)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			s.out.Error(err)
			s.logger.Debug(ctx, "command failed", logging.String("command", cmd.Name), logging.ErrAttr(err))
		}

		if cmd.Quit {
			return nil
		}
	}
}

// UnknownCommandError is reported for a token that names no command.
type UnknownCommandError struct {
	Name string
}

func (e UnknownCommandError) Error() string {
	return "Unknown command: '" + e.Name + "'"
}

func split(line string) (string, string) {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")

	return name, strings.TrimSpace(arg)
}
