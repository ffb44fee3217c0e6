// Command quizcli is an interactive shell to manage and play trivia quizzes.
package main

import (
	"context"
	"os"

	_ "modernc.org/sqlite"

	"github.com/starquake/quizcli/cmd/quizcli/app"
)

func main() {
	err := app.Run(context.Background(), os.Args[1:], os.Getenv, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(app.ExitCode(err))
}
