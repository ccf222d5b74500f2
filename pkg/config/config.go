// Package config loads wordlecalc's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/solver"
	"gopkg.in/yaml.v3"
)

// Config is the full configuration. Zero-valued sections in a file keep their zero
// values, so files normally start from Default.
type Config struct {
	Opening  string         `yaml:"opening"`
	Words    WordsConfig    `yaml:"words"`
	Book     BookConfig     `yaml:"book"`
	Cache    CacheConfig    `yaml:"cache"`
	Solver   solver.Config  `yaml:"solver"`
	Scorer   ScorerConfig   `yaml:"scorer"`
	Stats    StatsConfig    `yaml:"stats"`
	Function FunctionConfig `yaml:"function"`
	GCP      GCPConfig      `yaml:"gcp"`
}

// WordsConfig says where the answer and guess lists come from. A BigQuery query wins
// over a file path.
type WordsConfig struct {
	Answers      string `yaml:"answers"`
	Guesses      string `yaml:"guesses"`
	AnswersQuery string `yaml:"answers_query"`
	GuessesQuery string `yaml:"guesses_query"`
}

// BookConfig locates the opening book. GCS wins over a file path; neither disables it.
type BookConfig struct {
	Path      string `yaml:"path"`
	GCSBucket string `yaml:"gcs_bucket"`
	GCSObject string `yaml:"gcs_object"`
}

// CacheConfig controls the history cache.
type CacheConfig struct {
	Disabled  bool   `yaml:"disabled"`
	InMemory  bool   `yaml:"in_memory"`
	Dir       string `yaml:"dir"`
	Namespace string `yaml:"namespace"`
}

type ScorerConfig struct {
	// Workers is the scoring fan-out; zero means GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// StatsConfig controls where batch run summaries go.
type StatsConfig struct {
	LogPath         string `yaml:"log_path"`
	BigQueryDataset string `yaml:"bigquery_dataset"`
	BigQueryTable   string `yaml:"bigquery_table"`
	Workers         int    `yaml:"workers"`
}

type FunctionConfig struct {
	Name        string `yaml:"name"`
	Port        string `yaml:"port"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// GCPConfig is shared by the BigQuery and Cloud Storage clients.
type GCPConfig struct {
	Project         string `yaml:"project"`
	CredentialsFile string `yaml:"credentials_file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Opening: "roate",
		Words: WordsConfig{
			Answers: "validAnswer.txt",
			Guesses: "validGuess.txt",
		},
		Book: BookConfig{
			Path: "beginning_roate.txt",
		},
		Cache: CacheConfig{
			Dir:       ".wordlecalc/cache",
			Namespace: "",
		},
		Solver: solver.DefaultConfig(),
		Stats: StatsConfig{
			LogPath: "starting_words.txt",
			Workers: 1,
		},
		Function: FunctionConfig{
			Name:        "NextGuess",
			Port:        "8080",
			MetricsAddr: ":9090",
		},
	}
}

// Load reads path over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Write saves cfg as YAML.
func Write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// OpeningWord parses Opening.
func (c Config) OpeningWord() (primitives.Word, error) {
	w, err := primitives.ParseWord(c.Opening)
	if err != nil {
		return primitives.Word{}, fmt.Errorf("opening: %w", err)
	}
	return w, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.OpeningWord(); err != nil {
		return err
	}
	if c.Words.Answers == "" && c.Words.AnswersQuery == "" {
		return errors.New("words: an answers file or query is required")
	}
	if c.Words.Guesses == "" && c.Words.GuessesQuery == "" {
		return errors.New("words: a guesses file or query is required")
	}
	if (c.Words.AnswersQuery != "" || c.Words.GuessesQuery != "") && c.GCP.Project == "" {
		return errors.New("words: BigQuery sources need gcp.project")
	}
	if (c.Book.GCSBucket == "") != (c.Book.GCSObject == "") {
		return errors.New("book: gcs_bucket and gcs_object must be set together")
	}
	if !c.Cache.Disabled && !c.Cache.InMemory && c.Cache.Dir == "" {
		return errors.New("cache: dir is required unless the cache is disabled or in memory")
	}

	s := c.Solver
	switch {
	case s.SmallCandidates < 1:
		return fmt.Errorf("solver: small_candidates must be positive, got %d", s.SmallCandidates)
	case s.PruneAbove < s.SmallCandidates:
		return fmt.Errorf("solver: prune_above (%d) must be at least small_candidates (%d)", s.PruneAbove, s.SmallCandidates)
	case s.BookMinCandidates < 0:
		return fmt.Errorf("solver: book_min_candidates must not be negative, got %d", s.BookMinCandidates)
	case s.Pruner.MaxDeadLetters < 0 || s.Pruner.MaxDeadLetters > 26:
		return fmt.Errorf("solver: pruner.max_dead_letters must be in [0, 26], got %d", s.Pruner.MaxDeadLetters)
	case s.Pruner.MaxPool < 1:
		return fmt.Errorf("solver: pruner.max_pool must be positive, got %d", s.Pruner.MaxPool)
	}

	if c.Scorer.Workers < 0 {
		return fmt.Errorf("scorer: workers must not be negative, got %d", c.Scorer.Workers)
	}
	if c.Stats.Workers < 1 {
		return fmt.Errorf("stats: workers must be positive, got %d", c.Stats.Workers)
	}
	if (c.Stats.BigQueryDataset == "") != (c.Stats.BigQueryTable == "") {
		return errors.New("stats: bigquery_dataset and bigquery_table must be set together")
	}
	if c.Stats.BigQueryTable != "" && c.GCP.Project == "" {
		return errors.New("stats: the BigQuery sink needs gcp.project")
	}
	if c.Function.Name == "" {
		return errors.New("function: name is required")
	}
	return nil
}
