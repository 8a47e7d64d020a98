package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for spellsweep
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spellsweep",
		Short: "Spell-check identifiers and text across a source tree",
		Long: `Spellsweep walks the given paths, tokenizes each file, splits compound
identifiers (camelCase, PascalCase, acronym runs) into their constituent
words, and flags anything longer than three characters that the dictionary
does not know.

Exclusion globs, extra allowed words, and the dictionary path come from the
nearest .spellsweep.yaml, spellsweep.yaml, or pyproject.toml [tool.spellsweep]
table above the working directory.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// Errors are rendered by main with exit-code mapping
		SilenceErrors: true,
	}

	// Add subcommands
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewWordsCommand())

	return cmd
}
