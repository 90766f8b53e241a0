package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says which way money moved relative to the account holder.
// There is deliberately no third state: a message whose direction cannot
// be determined is dropped, never guessed.
type Direction string

const (
	// DirectionCredit is money received.
	DirectionCredit Direction = "CREDIT"
	// DirectionDebit is money sent or spent.
	DirectionDebit Direction = "DEBIT"
)

// RawMessage is one inbound provider SMS, exactly as the source supplied
// it. ReceivedAt is nil when the source has no usable timestamp.
type RawMessage struct {
	Body       string
	ReceivedAt *time.Time
}

// ParsedTransaction is one financial event extracted from a RawMessage.
// This is a domain struct, not an output row; sinks map it into whatever
// shape they persist or display.
// Counterparty and Reference are empty when extraction found nothing
// reliable. Amount is strictly positive on every emitted record.
type ParsedTransaction struct {
	Amount       decimal.Decimal
	Direction    Direction
	Counterparty string
	Reference    string
	RawMessage   string
	OccurredAt   *time.Time
}
