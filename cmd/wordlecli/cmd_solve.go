package main

import (
	"fmt"
	"os"
	"slices"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/runstats"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func runSolve(cmd *cobra.Command, args []string) error {
	secret, err := primitives.ParseWord(args[0])
	if err != nil {
		return err
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	res, err := a.Solver.Solve(ctx, secret, a.Opening)
	for _, t := range res.History {
		fmt.Println("Guess:", t.Guess, t.Pattern.Spaced())
	}
	if err != nil {
		return err
	}
	fmt.Printf("Word: %s\nGuesses: %d\n", secret, res.Turns)
	return nil
}

func runBatch(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	sinks, err := a.StatsSinks(ctx)
	if err != nil {
		return err
	}

	opts := []runstats.Option{runstats.WithWorkers(a.Config.Stats.Workers)}
	if !statsQuiet {
		bar := progressbar.Default(int64(len(a.Answers)), "solving with "+a.Opening.String())
		opts = append(opts, runstats.WithProgressBar(bar))
	}
	stats, err := runstats.NewRunner(a.Solver, opts...).Run(ctx, a.Opening)
	if err != nil {
		return err
	}

	if err := runstats.WriteSummary(os.Stdout, stats); err != nil {
		return err
	}
	turns := make([]int, 0, len(stats.Distribution))
	for n := range stats.Distribution {
		turns = append(turns, n)
	}
	slices.Sort(turns)
	for _, n := range turns {
		fmt.Printf("%2d guesses: %d\n", n, stats.Distribution[n])
	}
	fmt.Printf("Worst: %s (%d guesses)\n", stats.Worst.Secret, stats.Worst.Turns)

	for _, sink := range sinks {
		if err := sink.Record(ctx, stats); err != nil {
			return err
		}
	}
	return nil
}
