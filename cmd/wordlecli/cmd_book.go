package main

import (
	"fmt"
	"os"

	"crosswarped.com/wordlecalc/pkg/app"
	"crosswarped.com/wordlecalc/pkg/book"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func runRank(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd, app.WithoutBook())
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	ranked, err := a.Scorer.RankOpeners(ctx, a.Guesses, a.Answers)
	if err != nil {
		return err
	}
	if rankTop > 0 && rankTop < len(ranked) {
		ranked = ranked[:rankTop]
	}
	for i, r := range ranked {
		fmt.Printf("%4d. %s %d\n", i+1, r.Word, r.Patterns)
	}
	return nil
}

func runBook(cmd *cobra.Command, _ []string) error {
	// The solver generating the book must not read the book being replaced.
	a, err := openApp(cmd, app.WithoutBook())
	if err != nil {
		return err
	}
	defer a.Close()

	out := bookOut
	if out == "" {
		out = a.Config.Book.Path
	}
	if out == "" {
		return fmt.Errorf("no output path: pass --out or set book.path")
	}

	ctx, cancel := withTimeout(cmd.Context())
	defer cancel()

	bar := progressbar.Default(primitives.NumPatterns, "book for "+a.Opening.String())
	b, err := book.Generate(ctx, a.Opening, a.Answers, a.Solver, book.WithProgressBar(bar))
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	if _, err := b.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write book: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Println("Wrote", out)
	return nil
}
