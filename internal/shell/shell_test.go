package shell_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/starquake/quizcli/internal/console"
	"github.com/starquake/quizcli/internal/dbtest"
	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/prompt"
	"github.com/starquake/quizcli/internal/session"
	. "github.com/starquake/quizcli/internal/shell"
	"github.com/starquake/quizcli/internal/store"
	"github.com/starquake/quizcli/internal/testutil"
)

func newShell(t *testing.T, in io.Reader) (*Shell, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	c := console.New(&out)
	p := prompt.New(in, &out, false)
	t.Cleanup(func() { _ = p.Close() })

	s := store.NewQuizStore(dbtest.Open(t), logging.Discard())
	engine := session.New(s, p, c, logging.Discard(), session.Options{})

	return New(engine, p, c, logging.Discard()), &out
}

func TestShell_Lookup(t *testing.T) {
	t.Parallel()

	sh, _ := newShell(t, strings.NewReader(""))

	tests := []struct {
		token string
		want  string
		quit  bool
	}{
		{"help", "help", false},
		{"h", "help", false},
		{"HELP", "help", false},
		{"list", "list", false},
		{"show", "show", false},
		{"add", "add", false},
		{"delete", "delete", false},
		{"edit", "edit", false},
		{"test", "test", false},
		{"play", "play", false},
		{"p", "play", false},
		{"credits", "credits", false},
		{"quit", "quit", true},
		{"q", "quit", true},
	}
	for _, tt := range tests {
		cmd, ok := sh.Lookup(tt.token)
		if !ok {
			t.Errorf("%q: command not found", tt.token)

			continue
		}
		if cmd.Name != tt.want {
			t.Errorf("%q: got %q, want %q", tt.token, cmd.Name, tt.want)
		}
		if cmd.Quit != tt.quit {
			t.Errorf("%q: got quit %v, want %v", tt.token, cmd.Quit, tt.quit)
		}
	}

	for _, token := range []string{"", "hlep", "exit", "play!"} {
		if _, ok := sh.Lookup(token); ok {
			t.Errorf("%q: got a command, want none", token)
		}
	}
}

func TestShell_Run(t *testing.T) {
	t.Parallel()

	sh, out := newShell(t, testutil.Script(
		"",
		"add",
		"Capital of Italy",
		"Rome",
		"list",
		"show 1",
		"test 1",
		" rome ",
		"bogus",
		"show",
		"show x",
		"delete 1",
		"show 1",
		"quit",
		"list",
	))

	if err := sh.Run(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Added: Capital of Italy => Rome",
		" [1]: Capital of Italy\n",
		" [1]: Capital of Italy => Rome",
		"Your answer is correct.",
		"Error: Unknown command: 'bogus'",
		"Use 'help' to see the available commands.",
		"Error: missing id parameter",
		"Error: id is not a number",
		"Deleted: [1]",
		"Error: quiz not found: 1",
		"Bye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, "Capital of Italy\n") != 1 {
		t.Errorf("list after quit was executed:\n%s", got)
	}
}

func TestShell_Run_ValidationErrors(t *testing.T) {
	t.Parallel()

	sh, out := newShell(t, testutil.Script("add", "", "", "quit"))

	if err := sh.Run(t.Context()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Error: question cannot be empty", "Error: answer cannot be empty"} {
		if !strings.Contains(got, want) {
			t.Errorf("output is missing %q:\n%s", want, got)
		}
	}
}

func TestShell_Run_EOF(t *testing.T) {
	t.Parallel()

	t.Run("between commands", func(t *testing.T) {
		t.Parallel()

		sh, _ := newShell(t, testutil.Script("list"))
		if err := sh.Run(t.Context()); err != nil {
			t.Fatalf("got error %v, want nil", err)
		}
	})

	t.Run("inside a command", func(t *testing.T) {
		t.Parallel()

		sh, out := newShell(t, testutil.Script("add", "Capital of Italy"))
		if err := sh.Run(t.Context()); err != nil {
			t.Fatalf("got error %v, want nil", err)
		}
		if strings.Contains(out.String(), "Error:") {
			t.Errorf("end of input was reported as an error:\n%s", out.String())
		}
	})
}

func TestShell_Run_ContextCanceled(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	t.Cleanup(func() {
		_ = pw.Close()
		_ = pr.Close()
	})
	sh, _ := newShell(t, pr)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	if err := sh.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got error %v, want %v", err, context.Canceled)
	}
}

func TestUnknownCommandError(t *testing.T) {
	t.Parallel()

	if got, want := (UnknownCommandError{Name: "x"}).Error(), "Unknown command: 'x'"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
