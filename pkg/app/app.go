// Package app assembles a solver and its collaborators from a Config.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"crosswarped.com/wordlecalc/pkg/book"
	"crosswarped.com/wordlecalc/pkg/cache"
	"crosswarped.com/wordlecalc/pkg/config"
	"crosswarped.com/wordlecalc/pkg/primitives"
	"crosswarped.com/wordlecalc/pkg/runstats"
	"crosswarped.com/wordlecalc/pkg/scorer"
	"crosswarped.com/wordlecalc/pkg/solver"
	"crosswarped.com/wordlecalc/pkg/storage/badger"
	"crosswarped.com/wordlecalc/pkg/wordlist"
	"google.golang.org/api/option"
)

// App holds everything a command needs. Close releases it.
type App struct {
	Config  config.Config
	Opening primitives.Word
	Answers []primitives.Word
	Guesses []primitives.Word
	Solver  *solver.Solver
	Scorer  *scorer.Scorer
	// Cache is nil when disabled.
	Cache *cache.HistoryCache
	// Store is the persistent cache store, nil unless the cache lives on disk and opened.
	Store *badger.Store
	// Book is nil when none is configured or the file is missing.
	Book *book.Book

	logger   *slog.Logger
	bigquery *bigquery.Client
	storage  *storage.Client
	closers  []func() error
}

// Option adjusts how Open builds an App.
type Option func(*openOptions)

type openOptions struct {
	skipBook bool
}

// WithoutBook builds the solver without an opening book.
func WithoutBook() Option {
	return func(o *openOptions) {
		o.skipBook = true
	}
}

// Open builds an App. On error everything opened so far is closed.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger, opts ...Option) (a *App, err error) {
	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a = &App{Config: cfg, logger: logger}
	defer func() {
		if err != nil {
			a.Close()
			a = nil
		}
	}()

	if a.Opening, err = cfg.OpeningWord(); err != nil {
		return a, err
	}
	if err = a.loadWords(ctx); err != nil {
		return a, err
	}
	a.openCache()
	if !o.skipBook {
		if err = a.loadBook(ctx); err != nil {
			return a, err
		}
	}

	a.Scorer = scorer.New(scorer.WithWorkers(cfg.Scorer.Workers), scorer.WithLogger(logger))
	solverOpts := []solver.Option{
		solver.WithConfig(cfg.Solver),
		solver.WithScorer(a.Scorer),
		solver.WithLogger(logger),
	}
	if a.Cache != nil {
		solverOpts = append(solverOpts, solver.WithCache(a.Cache))
	}
	if a.Book != nil {
		solverOpts = append(solverOpts, solver.WithBook(a.Book))
	}
	a.Solver, err = solver.New(a.Answers, a.Guesses, solverOpts...)
	return a, err
}

func (a *App) clientOptions() []option.ClientOption {
	if a.Config.GCP.CredentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(a.Config.GCP.CredentialsFile)}
}

func (a *App) bigQueryClient(ctx context.Context) (*bigquery.Client, error) {
	if a.bigquery != nil {
		return a.bigquery, nil
	}
	client, err := bigquery.NewClient(ctx, a.Config.GCP.Project, a.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create BigQuery client: %w", err)
	}
	a.bigquery = client
	a.closers = append(a.closers, client.Close)
	return client, nil
}

func (a *App) storageClient(ctx context.Context) (*storage.Client, error) {
	if a.storage != nil {
		return a.storage, nil
	}
	client, err := storage.NewClient(ctx, a.clientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	a.storage = client
	a.closers = append(a.closers, client.Close)
	return client, nil
}

func (a *App) loadList(ctx context.Context, path, query string) ([]primitives.Word, error) {
	if query == "" {
		return wordlist.LoadFile(path)
	}
	client, err := a.bigQueryClient(ctx)
	if err != nil {
		return nil, err
	}
	return wordlist.LoadBigQuery(ctx, client, query)
}

func (a *App) loadWords(ctx context.Context) error {
	w := a.Config.Words
	answers, err := a.loadList(ctx, w.Answers, w.AnswersQuery)
	if err != nil {
		return fmt.Errorf("load answers: %w", err)
	}
	guesses, err := a.loadList(ctx, w.Guesses, w.GuessesQuery)
	if err != nil {
		return fmt.Errorf("load guesses: %w", err)
	}
	a.Answers = answers
	a.Guesses = wordlist.Superset(answers, guesses)
	a.logger.Info("loaded word lists",
		slog.Int("answers", len(a.Answers)),
		slog.Int("guesses", len(a.Guesses)),
	)
	return nil
}

// openCache sets up the history cache. A disk store that cannot be opened leaves the
// app with an in-memory cache, since the cache only saves work.
func (a *App) openCache() {
	c := a.Config.Cache
	if c.Disabled {
		return
	}
	var store cache.Store
	if c.InMemory {
		store = cache.NewMemoryStore()
	} else {
		bcfg := badger.DefaultConfig(c.Dir)
		bcfg.Logger = a.logger
		s, err := badger.Open(bcfg)
		if err != nil {
			a.logger.Warn("cache store unavailable, using an in-memory cache",
				slog.String("dir", c.Dir), slog.String("error", err.Error()))
			store = cache.NewMemoryStore()
		} else {
			a.Store = s
			a.closers = append(a.closers, s.Close)
			store = s
		}
	}
	a.Cache = cache.New(store, cache.WithNamespace(c.Namespace), cache.WithLogger(a.logger))
}

func (a *App) loadBook(ctx context.Context) error {
	bc := a.Config.Book
	switch {
	case bc.GCSBucket != "":
		client, err := a.storageClient(ctx)
		if err != nil {
			return err
		}
		b, err := book.LoadGCS(ctx, client, bc.GCSBucket, bc.GCSObject, a.Opening)
		if err != nil {
			return err
		}
		a.Book = b
	case bc.Path != "":
		b, err := book.Load(bc.Path, a.Opening)
		if errors.Is(err, os.ErrNotExist) {
			a.logger.Warn("opening book not found, computing second guesses",
				slog.String("path", bc.Path))
			return nil
		}
		if err != nil {
			return err
		}
		a.Book = b
	}
	return nil
}

// StatsSinks returns the configured run-statistics sinks.
func (a *App) StatsSinks(ctx context.Context) ([]runstats.Sink, error) {
	var sinks []runstats.Sink
	if a.Config.Stats.LogPath != "" {
		sinks = append(sinks, runstats.FileSink{Path: a.Config.Stats.LogPath})
	}
	if a.Config.Stats.BigQueryTable != "" {
		client, err := a.bigQueryClient(ctx)
		if err != nil {
			return nil, err
		}
		sink, err := runstats.NewBigQuerySink(client, a.Config.Stats.BigQueryDataset, a.Config.Stats.BigQueryTable)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	return sinks, nil
}

// Close releases clients and the cache store in reverse order of opening.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
