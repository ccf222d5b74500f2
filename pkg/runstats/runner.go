// Package runstats plays every answer with one opening word and records how the solver did.
package runstats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/solver"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes one run over the answer set.
type Stats struct {
	RunID      uuid.UUID
	Opening    primitives.Word
	StartedAt  time.Time
	Games      int
	TotalTurns int
	Elapsed    time.Duration
	// Worst is the first game, in answer order, with the most turns.
	Worst solver.Result
	// Distribution maps a turn count to the number of games that took it.
	Distribution map[int]int
}

// AverageTurns is the mean number of guesses per game.
func (s Stats) AverageTurns() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalTurns) / float64(s.Games)
}

// AverageTime is the mean wall time per game.
func (s Stats) AverageTime() time.Duration {
	if s.Games == 0 {
		return 0
	}
	return s.Elapsed / time.Duration(s.Games)
}

// Runner plays batches of games.
type Runner struct {
	solver  *solver.Solver
	workers int
	bar     *progressbar.ProgressBar
	logger  *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers plays up to n games at once. Games share the solver and its cache.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithProgressBar advances bar once per finished game.
func WithProgressBar(bar *progressbar.ProgressBar) Option {
	return func(r *Runner) {
		r.bar = bar
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a Runner that plays one game at a time by default.
func NewRunner(s *solver.Solver, opts ...Option) *Runner {
	r := &Runner{solver: s, workers: 1, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run solves every answer starting with opening. The first failed game cancels the rest.
func (r *Runner) Run(ctx context.Context, opening primitives.Word) (Stats, error) {
	answers := r.solver.Answers()
	stats := Stats{
		RunID:        uuid.New(),
		Opening:      opening,
		StartedAt:    time.Now(),
		Distribution: make(map[int]int),
	}
	r.logger.Info("starting run",
		slog.String("run_id", stats.RunID.String()),
		slog.String("opening", opening.String()),
		slog.Int("games", len(answers)),
		slog.Int("workers", r.workers),
	)

	results := make([]solver.Result, len(answers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, secret := range answers {
		g.Go(func() error {
			res, err := r.solver.Solve(gctx, secret, opening)
			if err != nil {
				return err
			}
			r.logger.Debug("game finished",
				slog.String("secret", secret.String()),
				slog.Int("turns", res.Turns),
			)
			results[i] = res
			if r.bar != nil {
				_ = r.bar.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, fmt.Errorf("run %s: %w", stats.RunID, err)
	}
	stats.Elapsed = time.Since(stats.StartedAt)

	for _, res := range results {
		stats.Games++
		stats.TotalTurns += res.Turns
		stats.Distribution[res.Turns]++
		if res.Turns > stats.Worst.Turns {
			stats.Worst = res
		}
	}
	r.logger.Info("run finished",
		slog.String("run_id", stats.RunID.String()),
		slog.Float64("average_turns", stats.AverageTurns()),
		slog.Duration("elapsed", stats.Elapsed),
	)
	return stats, nil
}
