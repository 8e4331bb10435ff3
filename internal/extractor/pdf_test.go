package extractor

import (
	"strings"
	"testing"
)

func TestLoadPassesThroughNonPDF(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     string
	}{
		{"csv export", "statement.csv", "Date,Description,Debit,Credit,Balance\n03/05/2024,GROCERY,54.20,,945.80"},
		{"plain text", "statement.txt", "Opening Balance 1,000.00"},
		{"no extension", "statement", "5 Jan Deposit 100.00 1,100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.filename, []byte(tt.data))
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if got != tt.data {
				t.Errorf("content altered:\ngot  %q\nwant %q", got, tt.data)
			}
		})
	}
}

func TestLoadRoutesPDFByMagicBytes(t *testing.T) {
	// Content sniffing wins over the extension: a PDF uploaded as .txt
	// still goes through PDF extraction, which fails on this stub.
	data := []byte("%PDF-1.7\nnot actually a valid pdf body")
	if _, err := Load("statement.txt", data); err == nil {
		t.Fatal("expected an error for a malformed PDF buffer")
	}
}

func TestExtractPDFMalformedBuffer(t *testing.T) {
	_, err := ExtractPDF([]byte("garbage that is not a pdf"))
	if err == nil {
		t.Fatal("expected an error for a non-PDF buffer")
	}
	if !strings.Contains(err.Error(), "pdf") {
		t.Errorf("error should mention pdf: %v", err)
	}
}
