package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// Extraction patterns, compiled once at package load. The parser runs at
// high call volume, so nothing compiles per message.
var (
	// Ksh2,300.00 / KES 3,450.25 / USD 12.99 — currency token, optional
	// dot and space, grouped digits, up to two decimals.
	currencyAmountPattern = regexp.MustCompile(`(?i)\b(?:ksh|kes|usd|ugx|tzs|eur|gbp)\.?\s*(\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\d+(?:\.\d{1,2})?)`)
	// Any bare numeric token, used only when no currency-prefixed amount
	// exists anywhere in the message.
	bareAmountPattern = regexp.MustCompile(`\b\d+(?:,\d{3})*(?:\.\d{1,2})?\b`)

	// "Ref ABC123", "RefNo: X99/12", "reference number 554433",
	// "Transaction ID TX-99". Longest label alternatives first so that
	// "Ref NO123" keeps its glued NO prefix in the token.
	referenceLabelPattern = regexp.MustCompile(`(?i)\b(?:reference\s+number|transaction\s+id|tran\s?id|trx\s?id|ref\s?no|ref)\.?[:#\s]+([A-Za-z0-9][A-Za-z0-9/-]*)`)
	// Provider convention: the transaction code is an 8-15 character
	// alphanumeric token opening the message, immediately before
	// "confirmed".
	leadingCodePattern = regexp.MustCompile(`(?i)^\s*([A-Z0-9]{8,15})\s+confirmed\b`)

	// "from John Doe", "to Jane Wanjiku", "at PHARMACY" — preposition
	// followed by a capitalized token run.
	counterpartyPhrasePattern = regexp.MustCompile(`\b(?:from|by|to|at)\s+([A-Z][A-Za-z0-9'&.-]*(?:\s+[A-Z][A-Za-z0-9'&.-]*)*)`)
	bankNamePattern           = regexp.MustCompile(`\b((?:[A-Z][A-Za-z&'-]*\s+)+Bank)\b`)
	brandPattern              = regexp.MustCompile(`(?i)\bm-?pesa\b`)

	// "Give Ksh 500 cash to John" — agent cash-in phrasing, money in.
	cashInPattern = regexp.MustCompile(`(?i)\bgive\b.*\bcash\s+to\b`)
)

var creditCues = []string{
	"received",
	"credited",
	"deposit",
	"payment received",
	"transfer from",
}

var debitCues = []string{
	"sent to",
	"paid",
	"withdrawn",
	"debited",
	"purchase at",
	"spent",
	"transfer to",
}

// extractAmount pulls the transaction amount out of the message body.
// A currency-prefixed amount wins; otherwise the first bare numeric token
// is used. Grouping commas are stripped before parsing, and anything that
// still fails to parse counts as no amount at all, never an error.
func extractAmount(body string) (decimal.Decimal, bool) {
	raw := ""
	if m := currencyAmountPattern.FindStringSubmatch(body); len(m) > 1 {
		raw = m[1]
	} else {
		raw = bareAmountPattern.FindString(body)
	}
	if raw == "" {
		return decimal.Decimal{}, false
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return amount, true
}

// classifyDirection decides whether the message describes money in or
// money out. Credit wins ties: messages carrying both cue kinds
// ("reversed and received ... sent to" shapes) historically classified as
// money in, and changing that changes results on live provider traffic.
func classifyDirection(body string) (domain.Direction, bool) {
	lower := strings.ToLower(body)

	credit := containsAny(lower, creditCues...) || cashInPattern.MatchString(body)
	debit := containsAny(lower, debitCues...)

	switch {
	case credit:
		return domain.DirectionCredit, true
	case debit:
		return domain.DirectionDebit, true
	}
	return "", false
}

// extractReference finds the provider transaction code: an explicit
// labelled reference first, then the leading confirmed-code convention.
func extractReference(body string) (string, bool) {
	if m := referenceLabelPattern.FindStringSubmatch(body); len(m) > 1 {
		return m[1], true
	}
	if m := leadingCodePattern.FindStringSubmatch(body); len(m) > 1 {
		return m[1], true
	}
	return "", false
}

// Tokens that end a counterparty name. Everything from the first one on
// is label or date text, not part of the name.
var counterpartyStopWords = map[string]bool{
	"ref":         true,
	"refno":       true,
	"reference":   true,
	"tranid":      true,
	"trxid":       true,
	"transaction": true,
	"on":          true,
	"new":         true,
	"via":         true,
	"account":     true,
	"balance":     true,
	"confirmed":   true,
}

// extractCounterparty identifies the other party, best effort: explicit
// prepositional phrase, then the mobile-money brand itself, then a
// "<words> Bank" name. It never guesses from arbitrary surrounding text.
func extractCounterparty(body string) (string, bool) {
	if m := counterpartyPhrasePattern.FindStringSubmatch(body); len(m) > 1 {
		if name := trimCounterparty(m[1]); name != "" {
			return name, true
		}
	}
	if brandPattern.MatchString(body) {
		return "M-PESA", true
	}
	if m := bankNamePattern.FindStringSubmatch(body); len(m) > 1 {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

func trimCounterparty(raw string) string {
	words := strings.Fields(raw)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if counterpartyStopWords[strings.ToLower(strings.Trim(w, ".,!:;"))] {
			break
		}
		kept = append(kept, w)
	}
	return strings.Trim(strings.Join(kept, " "), " .,!:;-")
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
