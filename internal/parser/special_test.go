package parser

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/sms-ledger/internal/domain"
)

func TestHandleSpecial_Overdraft(t *testing.T) {
	p := New()

	// The fee inside a Fuliza message is real money, but the principal
	// arrives in its own confirmation; the whole message is suppressed to
	// avoid double counting.
	bodies := []string{
		"XYZ999 Confirmed. Fuliza M-PESA amount is Ksh 30.00. Access Fee charged Ksh 0.30.",
		"Your Fuliza M-PESA limit is Ksh 2,500.00.",
	}

	for _, body := range bodies {
		records, handled := p.handleSpecial(domain.RawMessage{Body: body})
		if !handled {
			t.Errorf("handleSpecial(%q) not handled, want claimed", body)
		}
		if len(records) != 0 {
			t.Errorf("handleSpecial(%q) emitted %d records, want 0", body, len(records))
		}
	}
}

func TestHandleSpecial_AirtimeRecharge(t *testing.T) {
	p := New()

	records, handled := p.handleSpecial(domain.RawMessage{Body: "Recharge of Ksh 50.00 successful."})
	if !handled {
		t.Fatal("recharge message not claimed by special handler")
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	got := records[0]
	if !got.Amount.Equal(decimal.RequireFromString("50.00")) {
		t.Errorf("amount = %s, want 50.00", got.Amount)
	}
	if got.Direction != domain.DirectionDebit {
		t.Errorf("direction = %q, want %q", got.Direction, domain.DirectionDebit)
	}
	if got.Counterparty != AirtimeCounterparty {
		t.Errorf("counterparty = %q, want %q", got.Counterparty, AirtimeCounterparty)
	}
}

func TestHandleSpecial_AirtimeRechargeWithoutAmount(t *testing.T) {
	p := New()

	records, handled := p.handleSpecial(domain.RawMessage{Body: "Recharge successful. Enjoy."})
	if !handled {
		t.Fatal("recharge message not claimed by special handler")
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0 for recharge without amount", len(records))
	}
}

func TestHandleSpecial_DeclinesOrdinaryReceipts(t *testing.T) {
	p := New()

	body := "ABC123 confirmed. You have received Ksh 1,250.00 from John Doe Ref ABC123 on 12/09/2025"
	if _, handled := p.handleSpecial(domain.RawMessage{Body: body}); handled {
		t.Errorf("handleSpecial(%q) claimed an ordinary receipt", body)
	}
}
