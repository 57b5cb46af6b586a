// Command vexpr loads expression unit files, folds them, hunts
// duplicate subtrees and queries units persisted to SQLite.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jmerdich/verilator/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			// The command already reported through its formatter.
			os.Exit(exitErr.Code)
		}
		// Flag, argument and format errors come straight from cobra.
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCommandError)
	}
}
