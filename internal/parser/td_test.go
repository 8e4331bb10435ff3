package parser

import (
	"strings"
	"testing"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

func TestTDCardParse(t *testing.T) {
	text := strings.Join([]string{
		"TD Canada Trust",
		"PREVIOUS STATEMENT BALANCE $1,240.55",
		"NOV 5 NOV 7 TIM HORTONS #4431 TORONTO $6.48",
		"NOV 9 NOV 10 METRO ONT 77 TORONTO $54.12",
		"DEC 28 DEC 29 PAYMENT - THANK YOU -$500.00",
		"JAN 3 JAN 5 NETFLIX.COM 866-716-0414 ON $16.49",
		"FEB 1 FEB 2 ANNUAL FEE $120.00",
		"NEW BALANCE $937.64",
	}, "\n")

	p := &TDCardParser{cfg: Config{Year: 2024}}
	out, err := p.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(out.Transactions) != 5 {
		t.Fatalf("expected 5 transactions, got %d: %+v", len(out.Transactions), out.Transactions)
	}

	wantDates := []string{"2024-11-05", "2024-11-09", "2024-12-28", "2025-01-03", "2025-02-01"}
	for i, want := range wantDates {
		if out.Transactions[i].Date != want {
			t.Errorf("transaction %d date: got %q, want %q", i, out.Transactions[i].Date, want)
		}
	}

	payment := out.Transactions[2]
	if payment.Type != models.Credit {
		t.Errorf("negative amount should be credit, got %s", payment.Type)
	}
	if payment.Amount != 500.00 {
		t.Errorf("payment amount: got %f, want 500.00 (magnitude only)", payment.Amount)
	}

	if out.Transactions[0].Type != models.Debit {
		t.Errorf("purchase should be debit, got %s", out.Transactions[0].Type)
	}

	if out.OpeningBalance == nil || *out.OpeningBalance != 1240.55 {
		t.Errorf("opening balance: got %v, want 1240.55", out.OpeningBalance)
	}
	if out.ClosingBalance == nil || *out.ClosingBalance != 937.64 {
		t.Errorf("closing balance: got %v, want 937.64", out.ClosingBalance)
	}
}

func TestTDChequingCSV(t *testing.T) {
	text := strings.Join([]string{
		"08/01/2024,PAYROLL DEPOSIT ACME LTD,,2150.00,3150.00",
		"08/03/2024,HYDRO PRE-AUTH PAYMENT,92.40,,3057.60",
		"08/05/2024,ATM WITHDRAWAL,100.00,,2957.60",
	}, "\n")

	p := &TDChequingParser{cfg: Config{Year: 2024}}
	out, err := p.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(out.Transactions) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(out.Transactions))
	}

	first := out.Transactions[0]
	if first.Date != "2024-08-01" {
		t.Errorf("date: got %q, want 2024-08-01", first.Date)
	}
	if first.Type != models.Credit {
		t.Errorf("credit column row: got %s, want credit", first.Type)
	}
	if first.Amount != 2150.00 {
		t.Errorf("amount: got %f", first.Amount)
	}

	second := out.Transactions[1]
	if second.Type != models.Debit {
		t.Errorf("debit column row: got %s, want debit", second.Type)
	}
	if second.BalanceAfter == nil || *second.BalanceAfter != 3057.60 {
		t.Errorf("balance: got %v, want 3057.60", second.BalanceAfter)
	}
	if second.ParseMethod != "td-csv" {
		t.Errorf("parse method: got %q", second.ParseMethod)
	}
}

func TestTDChequingCSVBalanceMathOverridesColumns(t *testing.T) {
	// Second row claims a credit column but the balance goes down; the
	// delta check flips it to a debit.
	text := strings.Join([]string{
		"08/01/2024,OPENING DEPOSIT,,1000.00,1000.00",
		"08/02/2024,MISLABELED ROW,,50.00,950.00",
	}, "\n")

	p := &TDChequingParser{cfg: Config{Year: 2024}}
	out, err := p.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(out.Transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(out.Transactions))
	}
	if out.Transactions[1].Type != models.Debit {
		t.Errorf("got %s, want debit from balance math", out.Transactions[1].Type)
	}
}

func TestTDChequingCSVSkipsHeaderRow(t *testing.T) {
	text := strings.Join([]string{
		"Date,Description,Debit,Credit,Balance",
		"08/01/2024,PAYROLL DEPOSIT,,2150.00,3150.00",
	}, "\n")

	p := &TDChequingParser{cfg: Config{Year: 2024}}
	out, err := p.Parse(text)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(out.Transactions) != 1 {
		t.Fatalf("expected header row to be skipped, got %d transactions", len(out.Transactions))
	}
}
