// Package runner fans a batch of messages across a worker pool. Parsing
// one message is pure and independent of every other, so parallelism is
// across messages only, never within one message's rule evaluation.
package runner

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dvloznov/sms-ledger/internal/domain"
	"github.com/dvloznov/sms-ledger/internal/parser"
	"github.com/dvloznov/sms-ledger/internal/sink"
)

// Runner parses message batches and forwards the results to a sink.
type Runner struct {
	parser  *parser.Parser
	sink    sink.Sink
	workers int
	log     zerolog.Logger
}

// New creates a Runner with the given worker count; anything below one is
// clamped to one.
func New(p *parser.Parser, s sink.Sink, workers int, log zerolog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{parser: p, sink: s, workers: workers, log: log}
}

// Stats summarizes one batch run.
type Stats struct {
	RunID    string
	Messages int
	Records  int
}

// Run parses every message and records the results in input order.
// Results reach the sink only after the whole batch parsed, so a
// cancelled run records nothing partial.
func (r *Runner) Run(ctx context.Context, messages []domain.RawMessage) (Stats, error) {
	stats := Stats{RunID: uuid.NewString(), Messages: len(messages)}
	log := r.log.With().Str("run_id", stats.RunID).Logger()
	log.Info().Int("messages", len(messages)).Int("workers", r.workers).Msg("starting batch parse")

	results := make([][]domain.ParsedTransaction, len(messages))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.parser.Parse(messages[i])
			}
		}()
	}

feed:
	for i := range messages {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		log.Warn().Err(err).Msg("batch parse cancelled")
		return stats, err
	}

	for _, records := range results {
		for _, tx := range records {
			if err := r.sink.Record(ctx, tx); err != nil {
				return stats, err
			}
			stats.Records++
		}
	}

	log.Info().Int("records", stats.Records).Msg("batch parse complete")
	return stats, nil
}
