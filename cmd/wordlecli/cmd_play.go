package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/prompt"
	"crosswarped.com/wordlecalc/pkg/solver"
	"github.com/spf13/cobra"
)

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	p := prompt.New(os.Stdin, os.Stdout)
	first := a.Opening
	if askOpening {
		first, err = p.ReadWord("Starting Word: ")
		if err != nil {
			return stopped(err)
		}
	}

	g := a.Solver.NewGame(first)
	for g.State() != solver.Solved {
		fmt.Println("Guess:", g.Guess())
		pat, err := p.ReadPattern()
		if err != nil {
			return stopped(err)
		}
		if err := g.Observe(ctx, pat); err != nil {
			if errors.Is(err, solver.ErrInconsistentFeedback) {
				fmt.Println("Invalid! No answer fits that result.")
				continue
			}
			return err
		}
		if g.State() != solver.Solved {
			fmt.Println("Number of possible Answers:", len(g.Candidates()))
			if n := len(g.Candidates()); n <= 10 {
				fmt.Println("Remaining:", primitives.JoinWords(g.Candidates(), " "))
			}
		}
	}
	fmt.Printf("Solved in %d guesses\n", g.Turns())
	return nil
}

// stopped turns the player quitting into a clean exit.
func stopped(err error) error {
	if errors.Is(err, prompt.ErrStop) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
