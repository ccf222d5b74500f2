// Package scorer ranks guesses by how well they split a candidate set.
package scorer

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"slices"
	"time"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoCandidates is returned when scoring against an empty candidate set.
	ErrNoCandidates = errors.New("no candidates to score against")

	// ErrEmptyPool is returned when there is nothing to score.
	ErrEmptyPool = errors.New("empty guess pool")
)

var (
	bestGuessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlecalc_scorer_best_guess_duration_seconds",
		Help:    "Time spent choosing the best guess for one decision",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
	})

	scoredPoolSize = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlecalc_scorer_pool_size",
		Help:    "Number of guesses scored per decision",
		Buckets: []float64{1, 3, 10, 100, 700, 2000, 5000, 15000},
	})

	scoredCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wordlecalc_scorer_candidates",
		Help:    "Number of candidates each guess is scored against",
		Buckets: []float64{1, 2, 3, 10, 50, 200, 1000, 2500},
	})
)

// chunksPerWorker controls how finely the pool is split across workers.
const chunksPerWorker = 4

// Scorer evaluates guesses against a candidate set in parallel.
type Scorer struct {
	workers int
	logger  *slog.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWorkers sets the number of goroutines scoring guesses. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(s *Scorer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scorer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Scorer using GOMAXPROCS workers by default.
func New(opts ...Option) *Scorer {
	s := &Scorer{
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Workers returns the configured parallelism.
func (s *Scorer) Workers() int {
	return s.workers
}

// Score returns the total number of candidates guess would eliminate, summed over
// every candidate taken as the answer.
//
// For each assumed answer a, the candidates eliminated are those whose pattern differs
// from Feedback(guess, a). Summed over a, that is |C|² − Σ n_k², where n_k is the size
// of the k-th pattern class, so it is computed from the partition in O(|C|).
func Score(guess primitives.Word, candidates primitives.Candidates) int64 {
	n := int64(len(candidates))
	total := n * n
	for _, k := range candidates.Partition(guess) {
		total -= int64(k) * int64(k)
	}
	return total
}

// Scores computes Score for every guess in pool, in pool order.
func (s *Scorer) Scores(ctx context.Context, pool []primitives.Word, candidates primitives.Candidates) ([]int64, error) {
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	if len(pool) == 0 {
		return nil, ErrEmptyPool
	}

	scores := make([]int64, len(pool))
	chunk := max(1, len(pool)/(s.workers*chunksPerWorker))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for start := 0; start < len(pool); start += chunk {
		end := min(start+chunk, len(pool))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gCtx.Err(); err != nil {
					return err
				}
				scores[i] = Score(pool[i], candidates)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// BestGuess returns the guess in pool with the highest Score against candidates, and
// that score. Ties go to the guess that appears first in pool.
func (s *Scorer) BestGuess(ctx context.Context, pool []primitives.Word, candidates primitives.Candidates) (primitives.Word, int64, error) {
	start := time.Now()
	scores, err := s.Scores(ctx, pool, candidates)
	if err != nil {
		return primitives.Word{}, 0, err
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}

	elapsed := time.Since(start)
	bestGuessDuration.Observe(elapsed.Seconds())
	scoredPoolSize.Observe(float64(len(pool)))
	scoredCandidates.Observe(float64(len(candidates)))
	s.logger.Debug("scored guess pool",
		slog.Int("pool", len(pool)),
		slog.Int("candidates", len(candidates)),
		slog.String("best", pool[best].String()),
		slog.Int64("score", scores[best]),
		slog.Duration("elapsed", elapsed),
	)
	return pool[best], scores[best], nil
}

// Ranked is a guess together with the number of distinct patterns it can produce.
type Ranked struct {
	Word     primitives.Word
	Patterns int
}

// RankOpeners orders guesses by how many distinct patterns each produces across
// answers, most first. Equal counts keep their input order.
func (s *Scorer) RankOpeners(ctx context.Context, guesses []primitives.Word, answers primitives.Candidates) ([]Ranked, error) {
	if len(answers) == 0 {
		return nil, ErrNoCandidates
	}
	ranked := make([]Ranked, len(guesses))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, guess := range guesses {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			distinct := 0
			for _, n := range answers.Partition(guess) {
				if n > 0 {
					distinct++
				}
			}
			ranked[i] = Ranked{Word: guess, Patterns: distinct}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Patterns - a.Patterns
	})
	return ranked, nil
}
