package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/marlowe/spellsweep/internal/cmd"
)

func main() {
	rootCmd := cmd.NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Diagnostics and the summary already went to stdout; only
		// infrastructure failures need printing here.
		if !errors.Is(err, cmd.ErrMistakesFound) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(cmd.ExitCode(err))
	}
}
