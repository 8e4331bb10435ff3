package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

func TestRBCCardParse(t *testing.T) {
	text := strings.Join([]string{
		"RBC Royal Bank Visa Statement",
		"JAN 3 JAN 5 NETFLIX.COM 866-716-0414 ON $16.49",
		"JAN 10 JAN 10 PAYMENT - THANK YOU / PAIEMENT - MERCI $842.15 CR",
		"JAN 15 JAN 16 SHELL C00441 MISSISSAUGA ON $64.02",
	}, "\n")

	p := &RBCCardParser{cfg: Config{Year: 2024}}
	out, err := p.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(out.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d: %+v", len(out.Transactions), out.Transactions)
	}

	payment := out.Transactions[1]
	if payment.Type != models.Credit {
		t.Errorf("CR-suffixed amount should be credit, got %s", payment.Type)
	}
	if payment.Amount != 842.15 {
		t.Errorf("amount: got %f, want 842.15", payment.Amount)
	}

	if out.Transactions[0].Type != models.Debit {
		t.Errorf("plain purchase should be debit, got %s", out.Transactions[0].Type)
	}
	if out.Transactions[0].Date != "2024-01-03" {
		t.Errorf("date: got %q, want 2024-01-03", out.Transactions[0].Date)
	}
}

func TestRBCFooterLinesSkipped(t *testing.T) {
	text := strings.Join([]string{
		"OPENING BALANCE 100.00",
		"4 Jun Cheque #88 40.00 60.00",
		"Please check this statement and report any errors 1.00 2.00",
	}, "\n")

	out := parseRBCChequing(t, text)

	if len(out.Transactions) != 1 {
		t.Fatalf("expected footer line to be skipped, got %d transactions", len(out.Transactions))
	}
}
