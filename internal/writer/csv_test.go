package writer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

func sampleResult() *models.ParseResult {
	return &models.ParseResult{
		BankDisplayName: "TD Canada Trust",
		Transactions: []models.Transaction{
			{
				Date:         "2024-03-05",
				DateValid:    true,
				Description:  "GROCERY STORE TORONTO",
				Amount:       54.20,
				Type:         models.Debit,
				BalanceAfter: models.Float64(945.80),
			},
			{
				Date:        "2024-03-08",
				DateValid:   true,
				Description: "PAYROLL DEPOSIT",
				Amount:      2150.00,
				Type:        models.Credit,
			},
		},
		Metadata: models.StatementMetadata{
			AccountHolder: "JANE DOE",
			AccountNumber: "****8901",
			Currency:      "CAD",
		},
		Confidence: 0.8,
	}
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}

	if lines[0] != "Date,Description,Type,Amount,Balance" {
		t.Errorf("header: got %q", lines[0])
	}
	if lines[1] != "2024-03-05,GROCERY STORE TORONTO,debit,54.20,945.80" {
		t.Errorf("row 1: got %q", lines[1])
	}
	if lines[2] != "2024-03-08,PAYROLL DEPOSIT,credit,2150.00," {
		t.Errorf("row 2: got %q", lines[2])
	}
}

func TestWriteWithMetadataHeader(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true}
	if err := w.Write(&buf, sampleResult()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Bank,TD Canada Trust",
		"# Account Holder,JANE DOE",
		"# Account Number,****8901",
		"# Currency,CAD",
		"# Confidence,0.80",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteEscapesCommas(t *testing.T) {
	result := sampleResult()
	result.Transactions[0].Description = "RESTAURANT, DOWNTOWN"

	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, result); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if !strings.Contains(buf.String(), `"RESTAURANT, DOWNTOWN"`) {
		t.Errorf("comma field not quoted:\n%s", buf.String())
	}
}

func TestWriteEmptyResult(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, &models.ParseResult{}); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if strings.TrimSpace(buf.String()) != "Date,Description,Type,Amount,Balance" {
		t.Errorf("empty result should emit header only:\n%s", buf.String())
	}
}
