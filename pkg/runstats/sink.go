package runstats

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
)

// Sink records the stats of a finished run.
type Sink interface {
	Record(ctx context.Context, s Stats) error
}

// FileSink appends a short text summary of each run to a log file.
type FileSink struct {
	Path string
}

// Record appends s to the file, creating it if needed.
func (f FileSink) Record(_ context.Context, s Stats) error {
	file, err := os.OpenFile(f.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open stats log: %w", err)
	}
	if err := WriteSummary(file, s); err != nil {
		file.Close()
		return fmt.Errorf("write stats log: %w", err)
	}
	return file.Close()
}

// WriteSummary writes the block FileSink appends:
//
//	<blank line>
//	<opening>
//	<blank line>
//	Total Time: <seconds>
//	Average Guesses: <turns per game>
//	Average Time: <seconds per game>
func WriteSummary(w io.Writer, s Stats) error {
	_, err := fmt.Fprintf(w, "\n\n%s\n\nTotal Time: %v\nAverage Guesses: %v\nAverage Time: %v\n",
		s.Opening, s.Elapsed.Seconds(), s.AverageTurns(), s.AverageTime().Seconds())
	return err
}

// statsRow is the BigQuery schema of a run.
type statsRow struct {
	RunID          string    `bigquery:"run_id"`
	Opening        string    `bigquery:"opening"`
	StartedAt      time.Time `bigquery:"started_at"`
	Games          int       `bigquery:"games"`
	TotalTurns     int       `bigquery:"total_turns"`
	AverageTurns   float64   `bigquery:"average_turns"`
	ElapsedSeconds float64   `bigquery:"elapsed_seconds"`
	WorstAnswer    string    `bigquery:"worst_answer"`
	WorstTurns     int       `bigquery:"worst_turns"`
}

func newStatsRow(s Stats) *statsRow {
	return &statsRow{
		RunID:          s.RunID.String(),
		Opening:        s.Opening.String(),
		StartedAt:      s.StartedAt,
		Games:          s.Games,
		TotalTurns:     s.TotalTurns,
		AverageTurns:   s.AverageTurns(),
		ElapsedSeconds: s.Elapsed.Seconds(),
		WorstAnswer:    s.Worst.Secret.String(),
		WorstTurns:     s.Worst.Turns,
	}
}

// BigQuerySink streams one row per run into a BigQuery table.
type BigQuerySink struct {
	inserter *bigquery.Inserter
	schema   bigquery.Schema
}

// NewBigQuerySink writes to dataset.table.
func NewBigQuerySink(client *bigquery.Client, dataset, table string) (*BigQuerySink, error) {
	schema, err := bigquery.InferSchema(statsRow{})
	if err != nil {
		return nil, fmt.Errorf("infer stats schema: %w", err)
	}
	return &BigQuerySink{
		inserter: client.Dataset(dataset).Table(table).Inserter(),
		schema:   schema,
	}, nil
}

// Record inserts s, using the run ID to deduplicate retries.
func (b *BigQuerySink) Record(ctx context.Context, s Stats) error {
	saver := &bigquery.StructSaver{
		Schema:   b.schema,
		Struct:   newStatsRow(s),
		InsertID: s.RunID.String(),
	}
	if err := b.inserter.Put(ctx, saver); err != nil {
		return fmt.Errorf("insert run %s: %w", s.RunID, err)
	}
	return nil
}
