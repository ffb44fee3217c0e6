// Package app contains the main entrypoint for the quiz shell.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/starquake/quizcli/internal/config"
	"github.com/starquake/quizcli/internal/console"
	"github.com/starquake/quizcli/internal/db"
	"github.com/starquake/quizcli/internal/logging"
	"github.com/starquake/quizcli/internal/prompt"
	"github.com/starquake/quizcli/internal/session"
	"github.com/starquake/quizcli/internal/shell"
	"github.com/starquake/quizcli/internal/store"
)

type flags struct {
	configFile string
	envFile    string
	dbURI      string
	verbose    bool
	noSeed     bool
}

// Run parses the command line and runs an interactive quiz session on stdin and stdout until the user quits, the
// input ends or the process is interrupted. Logs are written to stderr.
func Run(
	ctx context.Context,
	args []string,
	getenv func(string) string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	var f flags
	cmd := &cobra.Command{
		Use:   "quizcli",
		Short: "Manage and play trivia quizzes",
		Long: `quizcli is an interactive shell to list, show, add, edit, delete,
test and play question and answer quizzes stored in a SQLite database.

Type "help" inside the shell to see the available commands.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(c *cobra.Command, _ []string) error {
			return run(c.Context(), f, getenv, stdin, stdout, stderr)
		},
	}
	cmd.Flags().StringVar(&f.configFile, "config", "", "path to a TOML config file (overrides QUIZ_CONFIG)")
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "path to a .env file with fallback environment variables")
	cmd.Flags().StringVar(&f.dbURI, "db", "", "database URI (overrides DB_URI)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	cmd.Flags().BoolVar(&f.noSeed, "no-seed", false, "do not seed an empty database with the default quizzes")

	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)

		return err
	}

	return nil
}

func run(
	ctx context.Context,
	f flags,
	getenv func(string) string,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	mainCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	cfg, err := loadConfig(f, getenv)
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	logger := logging.NewLoggerWithLevel(stderr, cfg.LogLevel)

	conn, err := db.Open(mainCtx, cfg.DBDriver, cfg.DBURI, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime)
	if err != nil {
		return fmt.Errorf("error opening database connection: %w", err)
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			logger.Error(ctx, "error closing database connection", logging.ErrAttr(closeErr))
		}
	}()

	applied, err := db.Migrate(mainCtx, conn, cfg.DBDriver)
	if err != nil {
		msg := "error migrating database"
		logger.Error(ctx, msg, logging.ErrAttr(err))

		return fmt.Errorf("%s: %w", msg, err)
	}
	for _, version := range applied {
		logger.Info(ctx, "applied migration", logging.Int64("version", version))
	}

	stores := store.New(conn, logger)

	if cfg.Seed {
		n, seedErr := store.Seed(mainCtx, stores.Quizzes, store.DefaultQuizzes())
		if seedErr != nil {
			return fmt.Errorf("error seeding quizzes: %w", seedErr)
		}
		if n > 0 {
			logger.Info(ctx, "seeded quizzes", logging.Int("count", n))
		}
	}

	interactive := isTerminal(stdin) && isTerminal(stdout)
	logger.Debug(ctx, "starting session", logging.String("db", cfg.DBURI), logging.String("tty", fmt.Sprint(interactive)))

	out := console.New(stdout)
	p := prompt.New(stdin, stdout, interactive)
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			logger.Error(ctx, "error closing prompt", logging.ErrAttr(closeErr))
		}
	}()

	engine := session.New(stores.Quizzes, p, out, logger, session.Options{Interactive: interactive})
	sh := shell.New(engine, p, out, logger)

	err = sh.Run(mainCtx)
	if err != nil && mainCtx.Err() != nil && ctx.Err() == nil {
		// Interrupted by the user.
		out.Log("")

		return nil
	}

	return err
}

// loadConfig parses the config with the --config and --db flags taking the place of their environment variables.
// Variables from --env-file are used only when the environment does not set them.
func loadConfig(f flags, getenv func(string) string) (*config.Config, error) {
	overrides := map[string]string{
		config.FileEnv: f.configFile,
		"DB_URI":       f.dbURI,
	}

	fallback := map[string]string{}
	if f.envFile != "" {
		var err error
		if fallback, err = godotenv.Read(f.envFile); err != nil {
			return nil, fmt.Errorf("error reading env file %s: %w", f.envFile, err)
		}
	}

	cfg, err := config.Parse(func(key string) string {
		if v := overrides[key]; v != "" {
			return v
		}
		if v := getenv(key); v != "" {
			return v
		}

		return fallback[key]
	})
	if err != nil {
		return nil, err
	}

	if f.verbose {
		cfg.LogLevel = logging.LevelDebug
	}
	if f.noSeed {
		cfg.Seed = false
	}

	return cfg, nil
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })

	return ok && term.IsTerminal(int(f.Fd()))
}

// ExitCode returns the process exit code for an error returned by Run.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}
