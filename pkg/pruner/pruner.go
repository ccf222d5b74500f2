// Package pruner shrinks a guess pool with letter-frequency heuristics so that scoring
// stays affordable. Pruning may drop the best possible guess; that is the trade.
package pruner

import (
	"log/slog"

	"crosswarped.com/wordlecalc/pkg/primitives"
)

const (
	// DefaultMaxDeadLetters caps how many letters Widdle may exclude.
	DefaultMaxDeadLetters = 18

	// DefaultMaxPool is the pool size WiddleMore reduces towards.
	DefaultMaxPool = 700
)

// Config holds the pruning thresholds.
type Config struct {
	MaxDeadLetters int `yaml:"max_dead_letters"`
	MaxPool        int `yaml:"max_pool"`
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		MaxDeadLetters: DefaultMaxDeadLetters,
		MaxPool:        DefaultMaxPool,
	}
}

// Pruner applies the two pruning stages.
type Pruner struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pruner. Non-positive thresholds fall back to the defaults.
func New(cfg Config, logger *slog.Logger) *Pruner {
	if cfg.MaxDeadLetters <= 0 {
		cfg.MaxDeadLetters = DefaultMaxDeadLetters
	}
	if cfg.MaxPool <= 0 {
		cfg.MaxPool = DefaultMaxPool
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pruner{cfg: cfg, logger: logger}
}

// Config returns the effective thresholds.
func (p *Pruner) Config() Config {
	return p.cfg
}

// Prune runs Widdle, then WiddleMore if the pool is still larger than MaxPool.
func (p *Pruner) Prune(pool []primitives.Word, candidates primitives.Candidates, history primitives.History) []primitives.Word {
	pruned := p.Widdle(pool, candidates, history)
	if len(pruned) > p.cfg.MaxPool {
		pruned = p.WiddleMore(pruned, candidates)
	}
	return pruned
}

// DeadLetters returns the letters Widdle excludes: letters history proved absent, in the
// order first seen, followed alphabetically by letters unused by every candidate,
// truncated to MaxDeadLetters.
func (p *Pruner) DeadLetters(candidates primitives.Candidates, history primitives.History) *primitives.CharSet {
	var ordered []rune
	seen := primitives.NewCharSet()
	add := func(r rune) {
		if !seen.Contains(r) {
			_ = seen.Add(r)
			ordered = append(ordered, r)
		}
	}
	for _, r := range history.AbsentLetters() {
		add(r)
	}
	freq := candidates.LetterFrequency()
	for r := range freq.Unused().Letters() {
		add(r)
	}
	if len(ordered) > p.cfg.MaxDeadLetters {
		ordered = ordered[:p.cfg.MaxDeadLetters]
	}

	dead := primitives.NewCharSet()
	for _, r := range ordered {
		_ = dead.Add(r)
	}
	return dead
}

// Widdle removes every word containing a dead letter. If that would leave nothing, the
// pool is returned unchanged.
func (p *Pruner) Widdle(pool []primitives.Word, candidates primitives.Candidates, history primitives.History) []primitives.Word {
	dead := p.DeadLetters(candidates, history)
	kept := without(pool, dead)
	if len(kept) == 0 {
		p.logger.Debug("widdle would empty the pool, keeping it", slog.Int("pool", len(pool)))
		return pool
	}
	p.logger.Debug("widdled guess pool",
		slog.Int("from", len(pool)),
		slog.Int("to", len(kept)),
		slog.String("dead", dead.String()),
	)
	return kept
}

// WiddleMore repeatedly excludes the least frequent letter still in play among the
// candidates, dropping pool words that contain it, until the pool is at most MaxPool.
// It stops early, returning the last non-empty pool, when the next exclusion would
// empty the pool or no letter is left to exclude.
func (p *Pruner) WiddleMore(pool []primitives.Word, candidates primitives.Candidates) []primitives.Word {
	freq := candidates.LetterFrequency()
	used := primitives.NewCharSet()
	start := len(pool)
	for len(pool) > p.cfg.MaxPool {
		worst, ok := freq.LeastFrequent(used)
		if !ok {
			break
		}
		_ = used.Add(worst)

		single := primitives.NewCharSet()
		_ = single.Add(worst)
		next := without(pool, single)
		if len(next) == 0 {
			break
		}
		pool = next
	}
	p.logger.Debug("widdled guess pool more",
		slog.Int("from", start),
		slog.Int("to", len(pool)),
		slog.String("excluded", used.String()),
	)
	return pool
}

// without returns the words sharing no letter with dead, preserving order.
func without(pool []primitives.Word, dead *primitives.CharSet) []primitives.Word {
	if dead.IsEmpty() {
		return pool
	}
	kept := make([]primitives.Word, 0, len(pool))
	for _, w := range pool {
		if !w.Letters().ContainsAny(dead) {
			kept = append(kept, w)
		}
	}
	return kept
}
