package parser

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

func TestParse_EndToEnd(t *testing.T) {
	p := New()

	type want struct {
		amount       string
		direction    domain.Direction
		counterparty string
		reference    string
	}

	tests := []struct {
		name string
		body string
		want *want // nil means no records
	}{
		{
			name: "incoming transfer receipt",
			body: "ABC123 confirmed. You have received Ksh 1,250.00 from John Doe Ref ABC123 on 12/09/2025",
			want: &want{
				amount:       "1250.00",
				direction:    domain.DirectionCredit,
				counterparty: "John Doe",
				reference:    "ABC123",
			},
		},
		{
			name: "overdraft message fully suppressed",
			body: "XYZ999 Confirmed. Fuliza M-PESA amount is Ksh 30.00. Access Fee charged Ksh 0.30. Total Fuliza outstanding Ksh 30.30.",
			want: nil,
		},
		{
			name: "airtime recharge",
			body: "Recharge of Ksh 50.00 successful.",
			want: &want{
				amount:       "50.00",
				direction:    domain.DirectionDebit,
				counterparty: AirtimeCounterparty,
			},
		},
		{
			name: "promotional text",
			body: "Get a free gift now! Reply WIN to 4040.",
			want: nil,
		},
		{
			name: "card purchase with glued reference label",
			body: "Your account was debited KES 3,450.25 Purchase at PHARMACY Ref NO123",
			want: &want{
				amount:       "3450.25",
				direction:    domain.DirectionDebit,
				counterparty: "PHARMACY",
				reference:    "NO123",
			},
		},
		{
			name: "amount and direction without any corroboration",
			body: "You received 6,000 bonus-free units yesterday",
			want: nil,
		},
		{
			name: "provider vocabulary substitutes for a missing reference",
			body: "You have received Ksh 700.00 from Equity Bank",
			want: &want{
				amount:       "700.00",
				direction:    domain.DirectionCredit,
				counterparty: "Equity Bank",
			},
		},
		{
			name: "empty body",
			body: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := p.Parse(domain.RawMessage{Body: tt.body})

			if tt.want == nil {
				if len(records) != 0 {
					t.Fatalf("Parse(%q) = %d records, want none", tt.body, len(records))
				}
				return
			}

			if len(records) != 1 {
				t.Fatalf("Parse(%q) = %d records, want 1", tt.body, len(records))
			}
			got := records[0]

			if !got.Amount.Equal(decimal.RequireFromString(tt.want.amount)) {
				t.Errorf("amount = %s, want %s", got.Amount, tt.want.amount)
			}
			if got.Direction != tt.want.direction {
				t.Errorf("direction = %q, want %q", got.Direction, tt.want.direction)
			}
			if got.Counterparty != tt.want.counterparty {
				t.Errorf("counterparty = %q, want %q", got.Counterparty, tt.want.counterparty)
			}
			if got.Reference != tt.want.reference {
				t.Errorf("reference = %q, want %q", got.Reference, tt.want.reference)
			}
			if got.RawMessage != tt.body {
				t.Errorf("raw message not retained: %q", got.RawMessage)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	p := New()
	receivedAt := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)
	msg := domain.RawMessage{
		Body:       "ABC123 confirmed. You have received Ksh 1,250.00 from John Doe Ref ABC123 on 12/09/2025",
		ReceivedAt: &receivedAt,
	}

	first := p.Parse(msg)
	second := p.Parse(msg)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parse is not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestParse_PropagatesTimestamp(t *testing.T) {
	p := New()
	receivedAt := time.Date(2025, 9, 12, 14, 30, 0, 0, time.UTC)

	records := p.Parse(domain.RawMessage{
		Body:       "Your account was debited KES 3,450.25 Purchase at PHARMACY Ref NO123",
		ReceivedAt: &receivedAt,
	})
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].OccurredAt == nil || !records[0].OccurredAt.Equal(receivedAt) {
		t.Errorf("OccurredAt = %v, want %v", records[0].OccurredAt, receivedAt)
	}
}

func TestParse_DebugDiagnostics(t *testing.T) {
	buf := &bytes.Buffer{}
	p := NewWithLogger(zerolog.New(buf))

	records := p.Parse(domain.RawMessage{Body: "Get a free gift now! Reply WIN to 4040."})
	if len(records) != 0 {
		t.Fatalf("got %d records, want none", len(records))
	}
	if !strings.Contains(buf.String(), "promotional") {
		t.Errorf("expected rejection diagnostics to name the filter, got: %s", buf.String())
	}
}
