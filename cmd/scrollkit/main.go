// Command scrollkit demonstrates and exercises the windowed list engine.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rshade/scrollkit/internal/cli"
	"github.com/rshade/scrollkit/pkg/version"
)

// Exit codes.
const (
	exitError       = 1
	exitNotTerminal = 2
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	return cli.NewRootCmd(version.GetVersion()).Execute()
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, cli.ErrNotTerminal) {
		return exitNotTerminal
	}
	return exitError
}
