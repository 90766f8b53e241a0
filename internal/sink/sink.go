// Package sink defines where parsed transactions go. Sinks own everything
// downstream of the parser: ids, persistence, deduplication by reference,
// presentation.
package sink

import (
	"context"
	"sync"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// Sink accepts parsed transactions. The parser side hands each record
// over exactly once and never sees it again.
type Sink interface {
	Record(ctx context.Context, tx domain.ParsedTransaction) error
}

// Memory collects records in arrival order. For tests and dry runs.
type Memory struct {
	mu      sync.Mutex
	records []domain.ParsedTransaction
}

// Record implements Sink.
func (m *Memory) Record(_ context.Context, tx domain.ParsedTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, tx)
	return nil
}

// Records returns a copy of everything recorded so far.
func (m *Memory) Records() []domain.ParsedTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.ParsedTransaction, len(m.records))
	copy(out, m.records)
	return out
}
