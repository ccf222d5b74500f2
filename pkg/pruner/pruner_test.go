package pruner

import (
	"slices"
	"testing"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(ss ...string) []primitives.Word {
	return primitives.MustParseWords(ss...)
}

func TestDeadLettersOrderAndCap(t *testing.T) {
	p := New(Config{MaxDeadLetters: 5}, nil)
	candidates := primitives.Candidates(words("trace", "brace"))
	history := primitives.History{
		{Guess: primitives.MustParseWord("those"), Pattern: primitives.Feedback(primitives.MustParseWord("those"), primitives.MustParseWord("trace"))},
	}
	dead := p.DeadLetters(candidates, history)
	// h, o, s from history, then d, f alphabetically among letters unused by the candidates.
	assert.Equal(t, []rune{'d', 'f', 'h', 'o', 's'}, slices.Collect(dead.Letters()))

	full := New(DefaultConfig(), nil).DeadLetters(candidates, history)
	assert.Equal(t, DefaultMaxDeadLetters, full.Count())
	for _, r := range "tracb" {
		assert.False(t, full.Contains(r), "%c", r)
	}
}

func TestWiddleKeepsWordsWithoutDeadLetters(t *testing.T) {
	p := New(DefaultConfig(), nil)
	candidates := primitives.Candidates(words("trace", "brace", "grace"))
	pool := words("crane", "trace", "brace", "grace", "bract", "those", "zesty", "cater")
	got := p.Widdle(pool, candidates, nil)

	dead := p.DeadLetters(candidates, nil)
	for _, w := range pool {
		if !w.Letters().ContainsAny(dead) {
			assert.Contains(t, got, w, "%s has no dead letter", w)
		} else {
			assert.NotContains(t, got, w)
		}
	}
	for _, c := range candidates {
		assert.Contains(t, got, c)
	}
}

func TestWiddleNeverEmpties(t *testing.T) {
	p := New(DefaultConfig(), nil)
	candidates := primitives.Candidates(words("aaaaa"))
	pool := words("bbbbb", "ccccc")
	got := p.Widdle(pool, candidates, nil)
	if diff := cmp.Diff(pool, got); diff != "" {
		t.Errorf("Widdle mismatch (-want +got):\n%s", diff)
	}
}

func TestWiddleMore(t *testing.T) {
	p := New(Config{MaxPool: 2}, nil)
	// Frequencies: a=7 b=2 c=1 (others 0).
	candidates := primitives.Candidates(words("aabaa", "aacba"))
	pool := words("ccccc", "bbbbb", "abcde", "aaaaa", "axxxx")

	got := p.WiddleMore(pool, candidates)
	// c goes first (3 remain), then b (2 remain).
	assert.Equal(t, words("aaaaa", "axxxx"), got)
}

func TestWiddleMoreStopsBeforeEmptying(t *testing.T) {
	p := New(Config{MaxPool: 1}, nil)
	candidates := primitives.Candidates(words("aabaa", "aacba"))
	pool := words("ccccc", "bbbbb", "abcxx")

	got := p.WiddleMore(pool, candidates)
	// Excluding c leaves [bbbbb]; done.
	assert.Equal(t, words("bbbbb"), got)

	pool = words("abccc", "acbbb")
	got = p.WiddleMore(pool, candidates)
	// Every exclusion would empty the pool.
	assert.Equal(t, pool, got)
	require.NotEmpty(t, got)
}

func TestPruneOnlyRunsSecondStageWhenLarge(t *testing.T) {
	candidates := primitives.Candidates(words("aabaa", "aacba"))
	pool := words("aaaaa", "abaaa", "acaaa", "abcaa")

	small := New(Config{MaxPool: 10}, nil).Prune(pool, candidates, nil)
	assert.Equal(t, pool, small)

	large := New(Config{MaxPool: 2}, nil).Prune(pool, candidates, nil)
	assert.Equal(t, words("aaaaa", "abaaa"), large)
}

func TestWithoutAllocatesOnlyResult(t *testing.T) {
	pool := words("trace", "brace", "hello", "lolly", "sable", "those", "there", "cable")
	dead, err := primitives.CharSetOf("rt")
	require.NoError(t, err)

	var kept []primitives.Word
	allocs := testing.AllocsPerRun(100, func() {
		kept = without(pool, dead)
	})
	assert.LessOrEqual(t, allocs, 1.0)
	assert.Equal(t, words("hello", "lolly", "sable", "cable"), kept)
}
