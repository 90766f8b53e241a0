// Package smsbackup reads Android SMS backup XML files and turns them
// into raw messages for the parser. It is a message source adapter; it
// knows nothing about transactions.
package smsbackup

import (
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

// sms is a single message element in an SMS backup document.
type sms struct {
	Address string `xml:"address,attr"`
	Body    string `xml:"body,attr"`
	Date    string `xml:"date,attr"` // epoch milliseconds
}

// backup is the root element of the backup document.
type backup struct {
	XMLName xml.Name `xml:"smses"`
	SMS     []sms    `xml:"sms"`
}

// Filter narrows which messages Read returns.
type Filter struct {
	// Sender keeps only messages from this address; empty keeps all.
	Sender string
	// From keeps only messages received at or after this time; the zero
	// value keeps all. Messages without a parseable date fail the filter.
	From time.Time
}

// Read loads an SMS backup XML file and returns its messages in stored
// order. Exact duplicates (same date, sender and body) collapse to one;
// backup files frequently contain them.
func Read(path string, filter Filter) ([]domain.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("smsbackup: read %s: %w", path, err)
	}
	messages, err := Parse(data, filter)
	if err != nil {
		return nil, fmt.Errorf("smsbackup: %s: %w", path, err)
	}
	return messages, nil
}

// Parse decodes backup XML bytes. See Read.
func Parse(data []byte, filter Filter) ([]domain.RawMessage, error) {
	var doc backup
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode backup XML: %w", err)
	}

	seen := make(map[string]bool, len(doc.SMS))
	messages := make([]domain.RawMessage, 0, len(doc.SMS))

	for _, m := range doc.SMS {
		if filter.Sender != "" && m.Address != filter.Sender {
			continue
		}

		signature := m.Date + "|" + m.Address + "|" + m.Body
		if seen[signature] {
			continue
		}
		seen[signature] = true

		// A backup with a mangled date attribute still carries a usable
		// body; the timestamp just stays unknown.
		var receivedAt *time.Time
		if ms, err := strconv.ParseInt(m.Date, 10, 64); err == nil {
			t := time.UnixMilli(ms)
			receivedAt = &t
		}

		if !filter.From.IsZero() {
			if receivedAt == nil || receivedAt.Before(filter.From) {
				continue
			}
		}

		messages = append(messages, domain.RawMessage{
			Body:       m.Body,
			ReceivedAt: receivedAt,
		})
	}

	return messages, nil
}
