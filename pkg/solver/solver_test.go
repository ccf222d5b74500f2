package solver

import (
	"context"
	"testing"

	"crosswarped.com/wordlecalc/pkg/book"
	"crosswarped.com/wordlecalc/pkg/cache"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/scorer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	answers = primitives.Candidates(primitives.MustParseWords(
		"trace", "brace", "grace", "crate", "react", "cater", "caret", "table", "cable", "fable",
		"sable", "gable", "there", "those", "hello", "lolly",
	))
	guesses = append(primitives.MustParseWords("roate", "crane", "salet", "zzzzz", "qajaq"), answers...)
)

func newSolver(t *testing.T, opts ...Option) *Solver {
	t.Helper()
	opts = append([]Option{WithScorer(scorer.New(scorer.WithWorkers(2)))}, opts...)
	s, err := New(answers, guesses, opts...)
	require.NoError(t, err)
	return s
}

func history(t *testing.T, turns ...string) primitives.History {
	t.Helper()
	var h primitives.History
	for i := 0; i < len(turns); i += 2 {
		p, err := primitives.ParsePattern(turns[i+1])
		require.NoError(t, err)
		h = h.Append(primitives.Turn{Guess: primitives.MustParseWord(turns[i]), Pattern: p})
	}
	return h
}

func TestNewRejectsEmptySets(t *testing.T) {
	_, err := New(nil, guesses)
	assert.Error(t, err)
	_, err = New(answers, nil)
	assert.Error(t, err)
}

func TestSolveEveryAnswer(t *testing.T) {
	ctx := context.Background()
	s := newSolver(t)
	opening := primitives.MustParseWord("roate")
	for _, secret := range answers {
		res, err := s.Solve(ctx, secret, opening)
		require.NoError(t, err, "%s", secret)
		assert.Equal(t, secret, res.Secret)
		assert.Equal(t, len(res.History), res.Turns)
		assert.LessOrEqual(t, res.Turns, len(answers)+1, "%s", secret)

		last, ok := res.History.Last()
		require.True(t, ok)
		assert.Equal(t, secret, last.Guess)
		assert.True(t, last.Pattern.IsSolved())
	}
}

func TestNextGuessFewCandidatesPicksACandidate(t *testing.T) {
	s := newSolver(t)
	w, err := s.NextGuess(context.Background(), history(t, "crane", "12202"))
	require.NoError(t, err)
	// trace, brace and grace split identically; the first wins.
	assert.Equal(t, "trace", w.String())
}

func TestNextGuessSingleCandidate(t *testing.T) {
	s := newSolver(t)
	h := history(t, "crane", primitives.Feedback(primitives.MustParseWord("crane"), primitives.MustParseWord("hello")).String())
	w, err := s.NextGuess(context.Background(), h)
	require.NoError(t, err)
	assert.Equal(t, "hello", w.String())
}

func TestNextGuessErrors(t *testing.T) {
	ctx := context.Background()
	s := newSolver(t)

	_, err := s.NextGuess(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyHistory)

	_, err = s.NextGuess(ctx, history(t, "crane", "22222"))
	assert.ErrorIs(t, err, ErrSolved)

	_, err = s.NextGuess(ctx, history(t, "crane", "22221"))
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestNextGuessUsesCache(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemoryStore()
	c := cache.New(store)
	s := newSolver(t, WithCache(c))
	h := history(t, "zzzzz", "00000")

	first, err := s.NextGuess(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	again, err := s.NextGuess(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	// A stored decision wins over computing.
	require.NoError(t, c.Put(ctx, h, primitives.MustParseWord("qajaq")))
	w, err := s.NextGuess(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, "qajaq", w.String())
}

// countingStore counts cache reads.
type countingStore struct {
	*cache.MemoryStore
	gets int
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.gets++
	return s.MemoryStore.Get(ctx, key)
}

func TestNextGuessColdDecisionReadsCacheTwice(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: cache.NewMemoryStore()}
	s := newSolver(t, WithCache(cache.New(store)))
	h := history(t, "zzzzz", "00000")

	_, err := s.NextGuess(ctx, h)
	require.NoError(t, err)
	// The lookup and the recheck before computing.
	assert.Equal(t, 2, store.gets)

	_, err = s.NextGuess(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, 3, store.gets)
}

type constantChooser primitives.Word

func (c constantChooser) NextGuess(context.Context, primitives.History) (primitives.Word, error) {
	return primitives.Word(c), nil
}

func TestNextGuessUsesBook(t *testing.T) {
	ctx := context.Background()
	opening := primitives.MustParseWord("zzzzz")
	b, err := book.Generate(ctx, opening, answers, constantChooser(primitives.MustParseWord("qajaq")))
	require.NoError(t, err)

	s := newSolver(t, WithBook(b))
	w, err := s.NextGuess(ctx, history(t, "zzzzz", "00000"))
	require.NoError(t, err)
	assert.Equal(t, "qajaq", w.String())

	// Past the second turn the book is ignored.
	w, err = s.NextGuess(ctx, history(t, "zzzzz", "00000", "qajaq", "00000"))
	require.NoError(t, err)
	assert.NotEqual(t, "qajaq", w.String())

	// A different opening is ignored too.
	w, err = s.NextGuess(ctx, history(t, "qajaq", "00000"))
	require.NoError(t, err)
	assert.NotEqual(t, "qajaq", w.String())
}

func TestNextGuessBookNeedsManyCandidates(t *testing.T) {
	ctx := context.Background()
	opening := primitives.MustParseWord("crane")
	b, err := book.Generate(ctx, opening, answers, constantChooser(primitives.MustParseWord("qajaq")))
	require.NoError(t, err)

	s := newSolver(t, WithBook(b))
	w, err := s.NextGuess(ctx, history(t, "crane", "12202"))
	require.NoError(t, err)
	assert.Equal(t, "trace", w.String())
}

func TestGameObserve(t *testing.T) {
	ctx := context.Background()
	s := newSolver(t)
	g := s.NewGame(primitives.MustParseWord("crane"))
	assert.Equal(t, Starting, g.State())
	assert.Equal(t, "crane", g.Guess().String())
	assert.Len(t, g.Candidates(), len(answers))

	p, err := primitives.ParsePattern("12202")
	require.NoError(t, err)
	require.NoError(t, g.Observe(ctx, p))
	assert.Equal(t, Guessing, g.State())
	assert.Equal(t, 1, g.Turns())
	assert.Equal(t, "trace", g.Guess().String())
	assert.Len(t, g.Candidates(), 3)

	require.NoError(t, g.Observe(ctx, primitives.Solved))
	assert.Equal(t, Solved, g.State())
	assert.Equal(t, 2, g.Turns())
	assert.ErrorIs(t, g.Observe(ctx, primitives.Solved), ErrSolved)
}

func TestGameObserveInconsistentLeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	s := newSolver(t)
	g := s.NewGame(primitives.MustParseWord("crane"))

	p, err := primitives.ParsePattern("22221")
	require.NoError(t, err)
	err = g.Observe(ctx, p)
	assert.ErrorIs(t, err, ErrInconsistentFeedback)
	assert.Equal(t, Starting, g.State())
	assert.Zero(t, g.Turns())
	assert.Equal(t, "crane", g.Guess().String())
	assert.Len(t, g.Candidates(), len(answers))

	// The game continues once consistent feedback arrives.
	require.NoError(t, g.Observe(ctx, primitives.Feedback(g.Guess(), primitives.MustParseWord("hello"))))
	assert.Equal(t, "hello", g.Guess().String())
}

func TestSolveErrors(t *testing.T) {
	s := newSolver(t)
	opening := primitives.MustParseWord("roate")

	_, err := s.Solve(context.Background(), primitives.MustParseWord("qajaq"), opening)
	assert.ErrorIs(t, err, ErrInconsistentFeedback)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := s.Solve(ctx, primitives.MustParseWord("trace"), opening)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Turns)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "starting", Starting.String())
	assert.Equal(t, "guessing", Guessing.String())
	assert.Equal(t, "solved", Solved.String())
	assert.Equal(t, "State(7)", State(7).String())
}
