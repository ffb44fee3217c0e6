package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starquake/quizcli/cmd/quizcli/app"
	"github.com/starquake/quizcli/internal/dbtest"
	"github.com/starquake/quizcli/internal/testutil"
)

func TestRun_Session(t *testing.T) {
	t.Parallel()

	ctx, _ := testutil.SignalCtx(t)

	dsn := dbtest.FileDSN(t)
	getenv := func(key string) string {
		return map[string]string{"DB_URI": dsn, "LOG_LEVEL": "debug"}[key]
	}

	// The first session seeds the empty database and adds a quiz.
	var out bytes.Buffer
	stdin := testutil.Script("list", "add", "Capital of Germany", "Berlin", "quit")
	if err := app.Run(ctx, nil, getenv, stdin, &out, testutil.NewTestWriter(t)); err != nil {
		t.Fatalf("first session failed: %v", err)
	}
	for _, want := range []string{
		" [1]: Capital of Italy\n",
		" [4]: Capital of Portugal\n",
		"Added: Capital of Germany => Berlin",
		"Bye!",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("first session output is missing %q:\n%s", want, out.String())
		}
	}

	// The second session sees the stored quiz and does not seed again.
	out.Reset()
	stdin = testutil.Script("show 5", "test 5", " BERLIN ", "list")
	if err := app.Run(ctx, nil, getenv, stdin, &out, testutil.NewTestWriter(t)); err != nil {
		t.Fatalf("second session failed: %v", err)
	}
	for _, want := range []string{
		" [5]: Capital of Germany => Berlin",
		"Your answer is correct.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("second session output is missing %q:\n%s", want, out.String())
		}
	}
	if strings.Contains(out.String(), " [6]:") {
		t.Errorf("database was seeded twice:\n%s", out.String())
	}
}

func TestRun_Flags(t *testing.T) {
	t.Parallel()

	t.Run("no seed", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		getenv := func(string) string { return "" }
		args := []string{"--db", dbtest.FileDSN(t), "--no-seed", "--verbose"}
		if err := app.Run(t.Context(), args, getenv, testutil.Script("list"), &out, testutil.NewTestWriter(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No quizzes.") {
			t.Errorf("got %q, want an empty store", out.String())
		}
	})

	t.Run("env file", func(t *testing.T) {
		t.Parallel()

		envFile := filepath.Join(t.TempDir(), ".env")
		contents := "DB_URI=" + dbtest.FileDSN(t) + "\nSEED=false\n"
		if err := os.WriteFile(envFile, []byte(contents), 0o600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}

		var out bytes.Buffer
		getenv := func(string) string { return "" }
		args := []string{"--env-file", envFile}
		if err := app.Run(t.Context(), args, getenv, testutil.Script("list"), &out, testutil.NewTestWriter(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "No quizzes.") {
			t.Errorf("got %q, want the env file to disable seeding", out.String())
		}
	})

	t.Run("missing env file", func(t *testing.T) {
		t.Parallel()

		getenv := func(string) string { return "" }
		args := []string{"--env-file", filepath.Join(t.TempDir(), "missing.env")}
		if err := app.Run(t.Context(), args, getenv, testutil.Script(), &bytes.Buffer{}, &bytes.Buffer{}); err == nil {
			t.Fatal("expected an error")
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		getenv := func(string) string { return "" }
		if err := app.Run(t.Context(), []string{"--help"}, getenv, testutil.Script(), &out, testutil.NewTestWriter(t)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, want := range []string{"quizcli", "--config", "--env-file", "--db", "--no-seed", "--verbose"} {
			if !strings.Contains(out.String(), want) {
				t.Errorf("help is missing %q:\n%s", want, out.String())
			}
		}
	})

	t.Run("invalid usage", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			args []string
		}{
			{"unknown flag", []string{"--shout"}},
			{"positional argument", []string{"play"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				var stderr bytes.Buffer
				getenv := func(string) string { return "" }
				err := app.Run(t.Context(), tt.args, getenv, testutil.Script(), &bytes.Buffer{}, &stderr)
				if err == nil {
					t.Fatal("expected an error")
				}
				if got, want := app.ExitCode(err), 1; got != want {
					t.Errorf("got exit code %d, want %d", got, want)
				}
				if !strings.Contains(stderr.String(), "Error:") {
					t.Errorf("got stderr %q, want the error reported", stderr.String())
				}
			})
		}
	})
}

func TestRun_InvalidConfig(t *testing.T) {
	t.Parallel()

	getenv := func(key string) string {
		return map[string]string{"LOG_LEVEL": "shouty"}[key]
	}

	err := app.Run(t.Context(), nil, getenv, testutil.Script(), &bytes.Buffer{}, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "error parsing config") {
		t.Errorf("got error %v, want a config error", err)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	if got := app.ExitCode(nil); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}
