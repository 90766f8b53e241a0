// Package parser turns free-form mobile-money SMS text into structured
// transaction records. It is a best-effort heuristic classifier, not a
// strict grammar: text it does not recognize yields an empty result,
// never an error.
//
// Pipeline per message: noise filters, then special-case handlers, then
// the generic extractors plus an acceptance rule. All rule tables are
// package constants compiled at load, so a Parser is stateless and safe
// for concurrent use across messages.
package parser

import (
	"regexp"

	"github.com/rs/zerolog"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// Tokens proving the message came from a money provider rather than
// arbitrary numeric marketing text.
var providerVocabPattern = regexp.MustCompile(`(?i)\b(?:m-?pesa|bank)\b`)

// Parser extracts transactions from raw provider messages.
type Parser struct {
	log zerolog.Logger
}

// New creates a Parser that logs nothing.
func New() *Parser {
	return &Parser{log: zerolog.Nop()}
}

// NewWithLogger creates a Parser that logs rejection diagnostics at debug
// level. Diagnostics never change the result, only explain it.
func NewWithLogger(log zerolog.Logger) *Parser {
	return &Parser{log: log}
}

// Parse extracts zero or more transactions from one message. Every
// emitted record has a positive amount and a direction; messages with
// neither a reference code nor recognizable provider vocabulary emit
// nothing, however plausible their numbers look.
func (p *Parser) Parse(msg domain.RawMessage) []domain.ParsedTransaction {
	if name, rejected := rejectAsNoise(msg.Body); rejected {
		p.log.Debug().Str("filter", name).Msg("message rejected as noise")
		return nil
	}

	if records, handled := p.handleSpecial(msg); handled {
		return records
	}

	amount, haveAmount := extractAmount(msg.Body)
	direction, haveDirection := classifyDirection(msg.Body)
	reference, haveReference := extractReference(msg.Body)
	counterparty, _ := extractCounterparty(msg.Body)

	if !haveAmount || !amount.IsPositive() || !haveDirection {
		p.log.Debug().Msg("no usable amount or direction, dropping")
		return nil
	}

	// A bare "amount plus direction word" is not enough: promotional copy
	// that slipped past the noise filters matches that shape too.
	if !haveReference &&
		!providerVocabPattern.MatchString(msg.Body) &&
		!(counterparty != "" && providerVocabPattern.MatchString(counterparty)) {
		p.log.Debug().Msg("no reference or provider vocabulary, dropping")
		return nil
	}

	return []domain.ParsedTransaction{{
		Amount:       amount,
		Direction:    direction,
		Counterparty: counterparty,
		Reference:    reference,
		RawMessage:   msg.Body,
		OccurredAt:   msg.ReceivedAt,
	}}
}
