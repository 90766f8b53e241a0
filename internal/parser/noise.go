package parser

import (
	"regexp"
	"strings"
)

// Noise filter patterns. Each predicate catches a message family that
// looks superficially like a transaction but is not one.
var (
	dataVolumePattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*[MG]B\b`)
	smsCostPattern    = regexp.MustCompile(`(?i)\bsms\s+costs?\s+ksh`)
	bracketedPattern  = regexp.MustCompile(`\[[^\]]+\]`)
	promoWordPattern  = regexp.MustCompile(`(?i)\b(?:offer|reward|promo|bonus|gift|sale)\b`)
	expiryPattern     = regexp.MustCompile(`(?i)\b(?:expires?|expiring|expiry|renew(?:al|ed)?)\b`)
	ctaVerbPattern    = regexp.MustCompile(`(?i)\b(?:dial|reply|click|buy|get|call|visit|download|install)\b`)
	ctaUrgencyPattern = regexp.MustCompile(`(?i)\b(?:now|today|here|link|app)\b`)
	optOutPattern     = regexp.MustCompile(`(?i)\bstop\s+to\s+\w+`)
	confirmedPattern  = regexp.MustCompile(`(?i)\bconfirmed\b`)
)

var failureCues = []string{"failed", "insufficient funds", "not successful"}

// looksTransactional guards the promotional and call-to-action filters.
// Providers append marketing copy to real receipts, so a message carrying
// an amount plus transfer vocabulary (or the provider's "Confirmed"
// marker) is kept even when it contains promo words.
func looksTransactional(body string) bool {
	if _, ok := extractAmount(body); !ok {
		return false
	}
	if _, ok := classifyDirection(body); ok {
		return true
	}
	return confirmedPattern.MatchString(body)
}

type noisePredicate struct {
	name  string
	match func(body string) bool
}

// noisePredicates run in order and any single match rejects the message.
// Order only affects which name shows up in diagnostics.
var noisePredicates = []noisePredicate{
	{"failed-transaction", func(b string) bool {
		return containsAny(strings.ToLower(b), failureCues...)
	}},
	{"airtime-advance", func(b string) bool {
		// Okoa Jahazi grants are airtime credit, never account money.
		return strings.Contains(strings.ToLower(b), "okoa jahazi")
	}},
	{"data-bundle", func(b string) bool {
		lower := strings.ToLower(b)
		return dataVolumePattern.MatchString(b) &&
			(strings.Contains(lower, "valid for the next hour") || strings.Contains(lower, "airtime reward"))
	}},
	{"savings-statement", func(b string) bool {
		return strings.Contains(strings.ToLower(b), "m-shwari")
	}},
	{"sms-cost-only", smsCostPattern.MatchString},
	{"mini-statement", func(b string) bool {
		// Two or more bracketed entries plus a transaction cost line is a
		// statement summary, not a single event.
		return len(bracketedPattern.FindAllString(b, -1)) >= 2 &&
			strings.Contains(strings.ToLower(b), "transaction cost")
	}},
	{"promotional", func(b string) bool {
		return promoWordPattern.MatchString(b) && !looksTransactional(b)
	}},
	{"expiry-reminder", expiryPattern.MatchString},
	{"call-to-action", func(b string) bool {
		return ctaVerbPattern.MatchString(b) && ctaUrgencyPattern.MatchString(b) && !looksTransactional(b)
	}},
	{"opt-out", optOutPattern.MatchString},
}

// rejectAsNoise reports whether the body is non-transactional noise and
// which filter caught it.
func rejectAsNoise(body string) (string, bool) {
	for _, p := range noisePredicates {
		if p.match(body) {
			return p.name, true
		}
	}
	return "", false
}
