package parser

import (
	"regexp"
	"strings"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// AirtimeCounterparty is the synthetic counterparty on airtime recharge
// records; recharges name no real other party.
const AirtimeCounterparty = "Airtime Recharge"

var (
	rechargePattern        = regexp.MustCompile(`(?i)\brecharge\b`)
	rechargeSuccessPattern = regexp.MustCompile(`(?i)\bsuccess(?:ful(?:ly)?)?\b`)
)

// handleSpecial intercepts message shapes that must not go through
// generic extraction. It reports whether the message was claimed, along
// with the records to emit (possibly none).
func (p *Parser) handleSpecial(msg domain.RawMessage) ([]domain.ParsedTransaction, bool) {
	// Fuliza overdraft messages are dropped wholesale. The access fee in
	// them is a real charge, but the principal arrives in its own
	// confirmation message and recording anything here double counts.
	// Inherited policy, kept exactly.
	if strings.Contains(strings.ToLower(msg.Body), "fuliza") {
		p.log.Debug().Msg("overdraft message suppressed")
		return nil, true
	}

	// Airtime recharges are always money out, no classification needed.
	if rechargePattern.MatchString(msg.Body) && rechargeSuccessPattern.MatchString(msg.Body) {
		amount, ok := extractAmount(msg.Body)
		if !ok || !amount.IsPositive() {
			p.log.Debug().Msg("recharge message without amount, dropping")
			return nil, true
		}
		reference, _ := extractReference(msg.Body)
		return []domain.ParsedTransaction{{
			Amount:       amount,
			Direction:    domain.DirectionDebit,
			Counterparty: AirtimeCounterparty,
			Reference:    reference,
			RawMessage:   msg.Body,
			OccurredAt:   msg.ReceivedAt,
		}}, true
	}

	return nil, false
}
