package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/marlowe/spellsweep/internal/config"
)

// NewWordsCommand creates and returns the words subcommand
func NewWordsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage the project's allowed-words list",
	}
	cmd.AddCommand(newWordsAddCommand())
	return cmd
}

func newWordsAddCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "add <word>...",
		Short: "Add words to the allowed-words list",
		Long: `Add words to the allowed-words list of the nearest .spellsweep.yaml or
spellsweep.yaml, creating .spellsweep.yaml in the current directory when no
config file exists yet. The rewrite is guarded by a file lock, so concurrent
invocations are safe.

Words configured through pyproject.toml cannot be edited in place; point
--config at a YAML file or add them there by hand.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWordsAdd(args, configPath, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&configPath, "config", "", "YAML config file to update")
	return cmd
}

// runWordsAdd resolves the target config file and merges the words into its
// allowed-words list.
func runWordsAdd(words []string, configPath string, stdout io.Writer) error {
	for _, word := range words {
		if strings.TrimSpace(word) == "" || strings.ContainsAny(word, " \t") {
			return fmt.Errorf("invalid word %q", word)
		}
	}

	path := configPath
	if path == "" {
		resolved, err := wordsTarget()
		if err != nil {
			return err
		}
		path = resolved
	}

	cfg, err := config.AddAllowedWords(path, words)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "%s: %d allowed words\n", path, len(cfg.AllowedWords))
	return nil
}

// wordsTarget picks the YAML config file to edit: the discovered config when
// it is YAML, otherwise a new .spellsweep.yaml in the working directory.
func wordsTarget() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to resolve working directory: %w", err)
	}

	_, source, err := config.Discover(cwd)
	if err != nil {
		return "", err
	}
	if source != "" && strings.HasSuffix(source, ".yaml") {
		return source, nil
	}
	return filepath.Join(cwd, ".spellsweep.yaml"), nil
}
