package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/marlowe/spellsweep/internal/config"
	"github.com/marlowe/spellsweep/internal/dictionary"
	"github.com/marlowe/spellsweep/internal/discovery"
	"github.com/marlowe/spellsweep/internal/engine"
	"github.com/marlowe/spellsweep/internal/logger"
	"github.com/marlowe/spellsweep/internal/report"
)

// ErrMistakesFound is returned by the check command when at least one
// spelling mistake was flagged. It distinguishes the "problems found"
// outcome (exit code 1) from infrastructure failures (exit code 2).
var ErrMistakesFound = errors.New("spelling mistakes found")

// ExitCode maps a command error to the process exit code: 0 for success,
// 1 for spelling mistakes, 2 for any infrastructure failure.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrMistakesFound):
		return 1
	default:
		return 2
	}
}

// checkOptions carries the check command's flag values.
type checkOptions struct {
	configPath string
	dictionary string
	exclude    []string
	jobs       int
	logLevel   string
	verbose    bool
	noColor    bool
}

// NewCheckCommand creates and returns the check subcommand
func NewCheckCommand() *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [path]...",
		Short: "Spell-check files under the given paths",
		Long: `Walk each path recursively, spell-check every file that no exclusion
glob matches, and print one diagnostic line per flagged word:

  <path>:<line>:<column>: SP100 spelling mistake '<word>'

Files that cannot be opened or are not valid UTF-8 are skipped with a
warning; they never fail the run. With no arguments the current directory
is checked.

Exit code: 0 if clean, 1 if mistakes were found, 2 on failure`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			return runCheck(paths, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file to use instead of discovery")
	cmd.Flags().StringVar(&opts.dictionary, "dictionary", "", "dictionary word list (overrides config)")
	cmd.Flags().StringArrayVar(&opts.exclude, "exclude", nil, "extra exclusion glob (repeatable)")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 1, "number of files checked concurrently")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log verbosity (trace, debug, info, warn, error)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "shorthand for --log-level debug")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	return cmd
}

// runCheck is the full check pipeline: resolve config, compile exclusion
// rules, discover files, load the dictionary, check every file, report.
func runCheck(paths []string, opts *checkOptions, stdout, stderr io.Writer) error {
	level := opts.logLevel
	if opts.verbose {
		level = "debug"
	}
	log := logger.NewConsoleLogger(stderr, level)

	runID := uuid.New().String()
	log.LogDebug(fmt.Sprintf("run %s: checking %d root(s)", runID, len(paths)))

	var rep *report.Reporter
	if opts.noColor {
		rep = report.NewPlainReporter(stdout)
	} else {
		rep = report.NewReporter(stdout)
	}

	cfg, err := resolveConfig(opts, log)
	if err != nil {
		return err
	}

	rules := discovery.CompileRules(cfg.Exclude, func(pattern string, err error) {
		rep.Warning(fmt.Sprintf("invalid exclusion glob %q ignored: %v", pattern, err))
	})

	start := time.Now()
	files, err := discovery.Discover(paths, rules)
	if err != nil {
		return err
	}
	log.LogDebug(fmt.Sprintf("discovered %d files", files.Len()))

	dict, err := loadDictionary(cfg, opts, log)
	if err != nil {
		return err
	}

	results := checkFiles(files.Paths(), dict, opts.jobs)

	mistakes := 0
	for _, result := range results {
		switch result.Kind {
		case engine.Misspelled:
			for _, d := range result.Diagnostics {
				rep.Diagnostic(d)
			}
			mistakes += len(result.Diagnostics)
		case engine.NotUTF8:
			rep.NotUTF8(result.Path)
		case engine.IOError:
			rep.SkippedFile(result.Path, result.Err)
		}
	}

	rep.Summary(files.Len(), mistakes, time.Since(start))
	if mistakes > 0 {
		return ErrMistakesFound
	}
	return nil
}

// checkFiles runs the per-file checks, fanning out across jobs workers when
// jobs > 1. The dictionary is shared read-only, so concurrent checks need no
// locking; results land in per-index slots to keep output in file order.
func checkFiles(paths []string, dict *dictionary.Dictionary, jobs int) []engine.Result {
	checker := engine.New(dict)
	results := make([]engine.Result, len(paths))

	if jobs <= 1 {
		for i, path := range paths {
			results[i] = checker.CheckFile(path)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			results[i] = checker.CheckFile(path)
			return nil
		})
	}
	// Workers never return errors; per-file failures are result kinds.
	_ = g.Wait()
	return results
}

// resolveConfig loads the configuration from --config when given, otherwise
// discovers it from the working directory's ancestors. CLI flags are merged
// on top.
func resolveConfig(opts *checkOptions, log logger.Logger) (*config.Config, error) {
	var (
		cfg    *config.Config
		source string
		err    error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
		source = opts.configPath
	} else {
		cwd, cwdErr := os.Getwd()
		if cwdErr != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", cwdErr)
		}
		cfg, source, err = config.Discover(cwd)
	}
	if err != nil {
		return nil, err
	}

	if source == "" {
		log.LogDebug("no config file found, using defaults")
	} else {
		log.LogDebug(fmt.Sprintf("config loaded from %s", source))
	}

	cfg.Exclude = append(cfg.Exclude, opts.exclude...)
	if opts.dictionary != "" {
		cfg.Dictionary = opts.dictionary
	}
	return cfg, nil
}

// loadDictionary loads the configured word list, or the embedded English
// dictionary when none is configured, and merges the config's allowed words.
func loadDictionary(cfg *config.Config, opts *checkOptions, log logger.Logger) (*dictionary.Dictionary, error) {
	var dict *dictionary.Dictionary
	if cfg.Dictionary != "" {
		loaded, err := dictionary.Load(cfg.Dictionary)
		if err != nil {
			return nil, err
		}
		dict = loaded
		log.LogDebug(fmt.Sprintf("dictionary loaded from %s (%d words)", cfg.Dictionary, len(dict.Words)))
	} else {
		dict = dictionary.LoadEmbedded()
		log.LogDebug(fmt.Sprintf("using embedded dictionary (%d words)", len(dict.Words)))
	}
	dict.AddWords(cfg.AllowedWords)
	return dict, nil
}
