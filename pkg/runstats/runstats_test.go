package runstats

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/solver"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var answers = primitives.MustParseWords(
	"trace", "brace", "grace", "crate", "react", "cater", "caret", "table", "cable", "fable",
	"sable", "gable", "there", "those", "hello", "lolly",
)

func newSolver(t *testing.T) *solver.Solver {
	t.Helper()
	guesses := append(primitives.MustParseWords("roate", "crane", "salet"), answers...)
	s, err := solver.New(answers, guesses)
	require.NoError(t, err)
	return s
}

func TestRunnerPlaysEveryAnswer(t *testing.T) {
	ctx := context.Background()
	s := newSolver(t)
	opening := primitives.MustParseWord("roate")

	bar := progressbar.NewOptions(len(answers), progressbar.OptionSetWriter(io.Discard))
	serial, err := NewRunner(s, WithProgressBar(bar)).Run(ctx, opening)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, serial.RunID)
	assert.Equal(t, opening, serial.Opening)
	assert.Equal(t, len(answers), serial.Games)

	games, turns := 0, 0
	for n, count := range serial.Distribution {
		games += count
		turns += n * count
		assert.LessOrEqual(t, n, serial.Worst.Turns)
	}
	assert.Equal(t, serial.Games, games)
	assert.Equal(t, serial.TotalTurns, turns)
	assert.Contains(t, answers, serial.Worst.Secret)

	parallel, err := NewRunner(s, WithWorkers(4)).Run(ctx, opening)
	require.NoError(t, err)
	assert.Equal(t, serial.TotalTurns, parallel.TotalTurns)
	assert.Equal(t, serial.Distribution, parallel.Distribution)
	assert.Equal(t, serial.Worst.Secret, parallel.Worst.Secret)
	assert.NotEqual(t, serial.RunID, parallel.RunID)
}

func TestRunnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRunner(newSolver(t)).Run(ctx, primitives.MustParseWord("roate"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatsAverages(t *testing.T) {
	s := Stats{Games: 4, TotalTurns: 14, Elapsed: 2 * time.Second}
	assert.InDelta(t, 3.5, s.AverageTurns(), 1e-9)
	assert.Equal(t, 500*time.Millisecond, s.AverageTime())

	var empty Stats
	assert.Zero(t, empty.AverageTurns())
	assert.Zero(t, empty.AverageTime())
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "starting_words.txt")
	sink := FileSink{Path: path}
	s := Stats{
		Opening:    primitives.MustParseWord("roate"),
		Games:      4,
		TotalTurns: 14,
		Elapsed:    2 * time.Second,
	}
	require.NoError(t, sink.Record(context.Background(), s))
	require.NoError(t, sink.Record(context.Background(), s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	block := "\n\nroate\n\nTotal Time: 2\nAverage Guesses: 3.5\nAverage Time: 0.5\n"
	assert.Equal(t, block+block, string(data))
}

func TestStatsRowSchema(t *testing.T) {
	schema, err := bigquery.InferSchema(statsRow{})
	require.NoError(t, err)
	names := make([]string, len(schema))
	for i, f := range schema {
		names[i] = f.Name
	}
	assert.Equal(t, []string{
		"run_id", "opening", "started_at", "games", "total_turns",
		"average_turns", "elapsed_seconds", "worst_answer", "worst_turns",
	}, names)

	id := uuid.New()
	row := newStatsRow(Stats{RunID: id, Opening: primitives.MustParseWord("roate"), Games: 2, TotalTurns: 7})
	assert.Equal(t, id.String(), row.RunID)
	assert.InDelta(t, 3.5, row.AverageTurns, 1e-9)
}
