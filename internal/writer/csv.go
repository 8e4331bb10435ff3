package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// CSVWriter renders a parse result as CSV for download/debugging.
type CSVWriter struct {
	IncludeHeader bool
}

// WriteToFile writes the result to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, result *models.ParseResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, result)
}

// Write renders the result in CSV form to the given writer.
func (w *CSVWriter) Write(out io.Writer, result *models.ParseResult) error {
	writer := csv.NewWriter(out)
	defer writer.Flush()

	if w.IncludeHeader {
		md := result.Metadata
		if result.BankDisplayName != "" {
			writer.Write([]string{"# Bank", result.BankDisplayName})
		}
		if md.AccountHolder != "" {
			writer.Write([]string{"# Account Holder", md.AccountHolder})
		}
		if md.AccountNumber != "" {
			writer.Write([]string{"# Account Number", md.AccountNumber})
		}
		if md.StatementPeriod != "" {
			writer.Write([]string{"# Statement Period", md.StatementPeriod})
		}
		writer.Write([]string{"# Currency", md.Currency})
		writer.Write([]string{"# Confidence", strconv.FormatFloat(result.Confidence, 'f', 2, 64)})
	}

	header := []string{"Date", "Description", "Type", "Amount", "Balance"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, txn := range result.Transactions {
		balance := ""
		if txn.BalanceAfter != nil {
			balance = strconv.FormatFloat(*txn.BalanceAfter, 'f', 2, 64)
		}
		row := []string{
			txn.Date,
			txn.Description,
			string(txn.Type),
			strconv.FormatFloat(txn.Amount, 'f', 2, 64),
			balance,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	return writer.Error()
}
