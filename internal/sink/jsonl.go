package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// jsonlRecord is the wire shape of one output line.
type jsonlRecord struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	Direction    string          `json:"direction"`
	Counterparty string          `json:"counterparty,omitempty"`
	Reference    string          `json:"reference,omitempty"`
	OccurredAt   *time.Time      `json:"occurred_at,omitempty"`
	RawMessage   string          `json:"raw_message"`
}

// JSONL writes one JSON object per record to w. Record ids are generated
// here, not in the parser: id assignment is a consumer concern and the
// parser stays a pure function.
type JSONL struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONL creates a JSONL sink writing to w.
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{enc: json.NewEncoder(w)}
}

// Record implements Sink.
func (s *JSONL) Record(_ context.Context, tx domain.ParsedTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := jsonlRecord{
		ID:           uuid.NewString(),
		Amount:       tx.Amount,
		Direction:    string(tx.Direction),
		Counterparty: tx.Counterparty,
		Reference:    tx.Reference,
		OccurredAt:   tx.OccurredAt,
		RawMessage:   tx.RawMessage,
	}
	if err := s.enc.Encode(rec); err != nil {
		return fmt.Errorf("sink: encode record: %w", err)
	}
	return nil
}
