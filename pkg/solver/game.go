package solver

import (
	"context"
	"errors"
	"fmt"

	"crosswarped.com/wordlecalc/pkg/primitives"
)

// ErrInconsistentFeedback is returned by Observe when a pattern leaves no candidate.
var ErrInconsistentFeedback = errors.New("feedback is inconsistent with earlier turns")

// State is the phase of a Game.
type State int

const (
	Starting State = iota
	Guessing
	Solved
)

func (s State) String() string {
	switch s {
	case Starting:
		return "starting"
	case Guessing:
		return "guessing"
	case Solved:
		return "solved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Game tracks one puzzle from the opening guess to the solution. A Game must not be
// shared between goroutines.
type Game struct {
	solver     *Solver
	state      State
	guess      primitives.Word
	history    primitives.History
	candidates primitives.Candidates
}

// NewGame starts a game whose first guess is opening.
func (s *Solver) NewGame(opening primitives.Word) *Game {
	return &Game{
		solver:     s,
		state:      Starting,
		guess:      opening,
		candidates: s.answers,
	}
}

// Guess returns the guess to play this turn. Once solved, it is the solution.
func (g *Game) Guess() primitives.Word {
	return g.guess
}

// State returns the game's phase.
func (g *Game) State() State {
	return g.state
}

// Turns returns the number of guesses played.
func (g *Game) Turns() int {
	return len(g.history)
}

// History returns the turns played so far.
func (g *Game) History() primitives.History {
	return g.history
}

// Candidates returns the answers still consistent with the history.
func (g *Game) Candidates() primitives.Candidates {
	return g.candidates
}

// Observe records the feedback p for the current guess and chooses the next guess.
//
// If p leaves no candidate, or the next guess cannot be chosen, the game is left
// exactly as it was so the caller can supply different feedback.
func (g *Game) Observe(ctx context.Context, p primitives.Pattern) error {
	if g.state == Solved {
		return ErrSolved
	}
	h := g.history.Append(primitives.Turn{Guess: g.guess, Pattern: p})
	if p.IsSolved() {
		g.history = h
		g.candidates = primitives.Candidates{g.guess}
		g.state = Solved
		return nil
	}

	candidates := g.candidates.Filter(g.guess, p)
	if len(candidates) == 0 {
		return fmt.Errorf("%w: %s after %s", ErrInconsistentFeedback, p, g.history.Key())
	}
	next, err := g.solver.nextGuess(ctx, h, candidates)
	if err != nil {
		return err
	}
	g.history = h
	g.candidates = candidates
	g.guess = next
	g.state = Guessing
	return nil
}

// Result describes a finished game.
type Result struct {
	Secret  primitives.Word
	Turns   int
	History primitives.History
}

// Solve plays a full game against secret starting with opening. The number of turns is
// not capped; bound it with ctx, which is checked before every turn.
func (s *Solver) Solve(ctx context.Context, secret, opening primitives.Word) (Result, error) {
	g := s.NewGame(opening)
	for g.State() != Solved {
		if err := ctx.Err(); err != nil {
			return Result{Secret: secret, Turns: g.Turns(), History: g.History()}, err
		}
		if err := g.Observe(ctx, primitives.Feedback(g.Guess(), secret)); err != nil {
			return Result{Secret: secret, Turns: g.Turns(), History: g.History()}, fmt.Errorf("solve %s: %w", secret, err)
		}
	}
	return Result{Secret: secret, Turns: g.Turns(), History: g.History()}, nil
}
