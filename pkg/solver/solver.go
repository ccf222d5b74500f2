// Package solver chooses guesses turn by turn until the puzzle is solved.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"crosswarped.com/wordlecalc/pkg/book"
	"crosswarped.com/wordlecalc/pkg/cache"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/pruner"
	"crosswarped.com/wordlecalc/pkg/scorer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ErrNoCandidates is returned when no answer is consistent with the history.
	ErrNoCandidates = errors.New("no answer is consistent with the history")

	// ErrEmptyHistory is returned by NextGuess before any guess has been played.
	// The opening guess is always chosen by the caller.
	ErrEmptyHistory = errors.New("history is empty")

	// ErrSolved is returned when asking for a guess after the puzzle is solved.
	ErrSolved = errors.New("puzzle already solved")
)

const (
	// DefaultSmallCandidates is the candidate count at or below which only candidates
	// are considered as guesses.
	DefaultSmallCandidates = 3

	// DefaultPruneAbove is the candidate count above which the guess pool is pruned.
	DefaultPruneAbove = 9

	// DefaultBookMinCandidates is the candidate count the opening book must exceed
	// to be consulted.
	DefaultBookMinCandidates = 10
)

var decisions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "wordlecalc_solver_decisions_total",
	Help: "Next-guess decisions by where the guess came from",
}, []string{"source"})

// Config holds the solver's tuning thresholds.
type Config struct {
	SmallCandidates   int           `yaml:"small_candidates"`
	PruneAbove        int           `yaml:"prune_above"`
	BookMinCandidates int           `yaml:"book_min_candidates"`
	Pruner            pruner.Config `yaml:"pruner"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		SmallCandidates:   DefaultSmallCandidates,
		PruneAbove:        DefaultPruneAbove,
		BookMinCandidates: DefaultBookMinCandidates,
		Pruner:            pruner.DefaultConfig(),
	}
}

// Solver picks guesses for games over a fixed answer set and guess set. It holds no
// per-game state and is safe for concurrent use.
type Solver struct {
	answers primitives.Candidates
	guesses []primitives.Word
	cfg     Config
	scorer  *scorer.Scorer
	pruner  *pruner.Pruner
	cache   *cache.HistoryCache
	book    *book.Book
	logger  *slog.Logger
}

// Option configures a Solver.
type Option func(*Solver)

// WithConfig sets the thresholds.
func WithConfig(cfg Config) Option {
	return func(s *Solver) {
		s.cfg = cfg
	}
}

// WithScorer replaces the default scorer.
func WithScorer(sc *scorer.Scorer) Option {
	return func(s *Solver) {
		s.scorer = sc
	}
}

// WithCache memoizes computed guesses in c.
func WithCache(c *cache.HistoryCache) Option {
	return func(s *Solver) {
		s.cache = c
	}
}

// WithBook consults b for second guesses after b.Opening.
func WithBook(b *book.Book) Option {
	return func(s *Solver) {
		s.book = b
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a Solver. guesses is the pool of legal guesses and should contain every
// answer.
func New(answers, guesses []primitives.Word, opts ...Option) (*Solver, error) {
	if len(answers) == 0 {
		return nil, errors.New("answer set is empty")
	}
	if len(guesses) == 0 {
		return nil, errors.New("guess set is empty")
	}
	s := &Solver{
		answers: answers,
		guesses: guesses,
		cfg:     DefaultConfig(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.scorer == nil {
		s.scorer = scorer.New(scorer.WithLogger(s.logger))
	}
	s.pruner = pruner.New(s.cfg.Pruner, s.logger)
	return s, nil
}

// Answers returns the full answer set.
func (s *Solver) Answers() primitives.Candidates {
	return s.answers
}

// Guesses returns the full guess set.
func (s *Solver) Guesses() []primitives.Word {
	return s.guesses
}

// NextGuess returns the guess to play after h.
//
// A cached decision for h wins; otherwise the opening book is used for the second
// turn of its opening while many candidates remain; otherwise the guess is computed
// by pruning and scoring, and cached.
func (s *Solver) NextGuess(ctx context.Context, h primitives.History) (primitives.Word, error) {
	if len(h) == 0 {
		return primitives.Word{}, ErrEmptyHistory
	}
	if h.Solved() {
		return primitives.Word{}, ErrSolved
	}
	return s.nextGuess(ctx, h, h.Candidates(s.answers))
}

func (s *Solver) nextGuess(ctx context.Context, h primitives.History, candidates primitives.Candidates) (primitives.Word, error) {
	if len(candidates) == 0 {
		return primitives.Word{}, ErrNoCandidates
	}
	if s.cache != nil {
		if w, ok := s.cache.Get(ctx, h); ok {
			decisions.WithLabelValues("cache").Inc()
			return w, nil
		}
	}
	if w, ok := s.fromBook(h, candidates); ok {
		decisions.WithLabelValues("book").Inc()
		return w, nil
	}

	compute := func(ctx context.Context) (primitives.Word, error) {
		return s.choose(ctx, h, candidates)
	}
	if s.cache == nil {
		w, err := compute(ctx)
		if err == nil {
			decisions.WithLabelValues("computed").Inc()
		}
		return w, err
	}
	w, hit, err := s.cache.Compute(ctx, h, compute)
	if err != nil {
		return primitives.Word{}, err
	}
	if hit {
		decisions.WithLabelValues("cache").Inc()
	} else {
		decisions.WithLabelValues("computed").Inc()
	}
	return w, nil
}

func (s *Solver) fromBook(h primitives.History, candidates primitives.Candidates) (primitives.Word, bool) {
	if s.book == nil || len(h) != 1 || h[0].Guess != s.book.Opening || len(candidates) <= s.cfg.BookMinCandidates {
		return primitives.Word{}, false
	}
	w, err := s.book.Lookup(h[0].Pattern)
	if err != nil {
		s.logger.Debug("opening book has no entry, computing", slog.String("history", h.Key()))
		return primitives.Word{}, false
	}
	return w, true
}

// choose prunes and scores to pick a guess for candidates.
func (s *Solver) choose(ctx context.Context, h primitives.History, candidates primitives.Candidates) (primitives.Word, error) {
	if len(candidates) <= s.cfg.SmallCandidates {
		w, _, err := s.scorer.BestGuess(ctx, candidates, candidates)
		return w, err
	}

	pool := s.guesses
	if len(candidates) > s.cfg.PruneAbove {
		pool = s.pruner.Prune(pool, candidates, h)
	}
	best, score, err := s.scorer.BestGuess(ctx, pool, candidates)
	if err != nil {
		return primitives.Word{}, fmt.Errorf("score %d guesses: %w", len(pool), err)
	}
	if score == 0 {
		// Nothing in the pool tells the candidates apart; guessing one of them
		// always removes at least itself.
		s.logger.Debug("pool cannot split candidates, scoring candidates",
			slog.String("history", h.Key()), slog.Int("candidates", len(candidates)))
		best, _, err = s.scorer.BestGuess(ctx, candidates, candidates)
		if err != nil {
			return primitives.Word{}, err
		}
	}
	s.logger.Debug("chose guess",
		slog.String("history", h.Key()),
		slog.Int("candidates", len(candidates)),
		slog.Int("pool", len(pool)),
		slog.String("guess", best.String()),
	)
	return best, nil
}
