package main

import (
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	opening    string
	noCache    bool
	workers    int
	timeout    time.Duration

	askOpening  bool
	statsQuiet  bool
	rankTop     int
	bookOut     string
	cachePrefix string

	rootCmd = &cobra.Command{
		Use:           "wordlecli",
		Short:         "Solve five-letter word puzzles by maximizing eliminated answers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Suggest guesses for a game played elsewhere, reading feedback from stdin",
		Long: `Prints a guess, then reads its feedback as five digits:
0 = letter absent, 1 = letter elsewhere in the word, 2 = letter in place.
"1 2 2 0 2" and "12202" are both accepted. Type STOP to quit.`,
		Args: cobra.NoArgs,
		RunE: runPlay,
	}

	solveCmd = &cobra.Command{
		Use:   "solve <secret>",
		Short: "Play a full game against a known secret",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}

	batchCmd = &cobra.Command{
		Use:   "batch",
		Short: "Solve every answer with the opening word and record the statistics",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}

	rankCmd = &cobra.Command{
		Use:   "rank",
		Short: "Rank opening words by how many distinct patterns they produce",
		Args:  cobra.NoArgs,
		RunE:  runRank,
	}

	bookCmd = &cobra.Command{
		Use:   "book",
		Short: "Generate the opening book for the opening word",
		Args:  cobra.NoArgs,
		RunE:  runBook,
	}

	cacheCmd = &cobra.Command{
		Use:   "cache",
		Short: "Inspect or edit the persistent history cache",
	}
	cacheInvalidateCmd = &cobra.Command{
		Use:   "invalidate <history>",
		Short: "Remove the cached guess for a history such as roate:00120,lucid:02100",
		Args:  cobra.ExactArgs(1),
		RunE:  runCacheInvalidate,
	}
	cacheListCmd = &cobra.Command{
		Use:   "list",
		Short: "List cached histories",
		Args:  cobra.NoArgs,
		RunE:  runCacheList,
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Show or write the configuration",
	}
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
	configInitCmd = &cobra.Command{
		Use:   "init <path>",
		Short: "Write the default configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  runConfigInit,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "wordlecalc.yaml", "Path to the YAML config file")
	pf.StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	pf.StringVar(&opening, "opening", "", "Opening word (overrides the config)")
	pf.BoolVar(&noCache, "no-cache", false, "Do not read or write the history cache")
	pf.IntVar(&workers, "workers", 0, "Scoring goroutines (0 = config or GOMAXPROCS)")
	pf.DurationVar(&timeout, "timeout", 0, "Give up after this long (0 = never)")

	playCmd.Flags().BoolVar(&askOpening, "ask-opening", false, "Ask for the opening word instead of using the configured one")
	batchCmd.Flags().BoolVarP(&statsQuiet, "quiet", "q", false, "Hide the progress bar")
	rankCmd.Flags().IntVar(&rankTop, "top", 20, "How many openers to print (0 = all)")
	bookCmd.Flags().StringVarP(&bookOut, "out", "o", "", "Output path (default: the configured book path)")
	cacheListCmd.Flags().StringVar(&cachePrefix, "prefix", "", "Only list keys with this prefix")

	cacheCmd.AddCommand(cacheInvalidateCmd, cacheListCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(playCmd, solveCmd, batchCmd, rankCmd, bookCmd, cacheCmd, configCmd)
}
