package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "roate", cfg.Opening)
	assert.Equal(t, 3, cfg.Solver.SmallCandidates)
	assert.Equal(t, 9, cfg.Solver.PruneAbove)
	assert.Equal(t, 10, cfg.Solver.BookMinCandidates)
	assert.Equal(t, 18, cfg.Solver.Pruner.MaxDeadLetters)
	assert.Equal(t, 700, cfg.Solver.Pruner.MaxPool)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlecalc.yaml")
	data := `
opening: crane
solver:
  prune_above: 12
  pruner:
    max_pool: 500
cache:
  in_memory: true
  namespace: nyt
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	want := Default()
	want.Opening = "crane"
	want.Solver.PruneAbove = 12
	want.Solver.Pruner.MaxPool = 500
	want.Cache.InMemory = true
	want.Cache.Namespace = "nyt"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}

	w, err := cfg.OpeningWord()
	require.NoError(t, err)
	assert.Equal(t, "crane", w.String())
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "bad opening", yaml: "opening: cranes\n", want: "opening"},
		{name: "bad yaml", yaml: "solver: [\n", want: "parse config"},
		{name: "bigquery without project", yaml: "words:\n  answers_query: SELECT word FROM t\n", want: "gcp.project"},
		{name: "half gcs", yaml: "book:\n  gcs_bucket: b\n", want: "gcs_object"},
		{name: "prune below small", yaml: "solver:\n  prune_above: 2\n", want: "prune_above"},
		{name: "too many dead letters", yaml: "solver:\n  pruner:\n    max_dead_letters: 27\n", want: "max_dead_letters"},
		{name: "no stats workers", yaml: "stats:\n  workers: 0\n", want: "workers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wordlecalc.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordlecalc.yaml")
	cfg := Default()
	cfg.GCP.Project = "crosswarped"
	cfg.Stats.BigQueryDataset = "wordle"
	cfg.Stats.BigQueryTable = "runs"
	require.NoError(t, Write(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
