package models

// StatementType classifies what kind of account a statement belongs to.
type StatementType string

const (
	StatementCreditCard  StatementType = "CREDIT_CARD"
	StatementBankAccount StatementType = "BANK_ACCOUNT"
	StatementUnknown     StatementType = "UNKNOWN"
)

// BankID identifies a supported institution.
type BankID string

const (
	BankTD      BankID = "td"
	BankRBC     BankID = "rbc"
	BankCIBC    BankID = "cibc"
	BankBMO     BankID = "bmo"
	BankScotia  BankID = "scotiabank"
	BankGeneric BankID = "generic"
	BankUnknown BankID = "UNKNOWN"
)

// TransactionType carries the sign of a transaction. Amounts are always
// non-negative magnitudes; debit vs credit lives here.
type TransactionType string

const (
	Debit  TransactionType = "debit"
	Credit TransactionType = "credit"
)

// Transaction is a single normalized statement line.
type Transaction struct {
	// Date is ISO YYYY-MM-DD once normalization succeeds. If the date
	// fragment could not be interpreted, Date holds the raw fragment and
	// DateValid is false; the rest of the transaction is still usable.
	Date        string          `json:"date"`
	DateValid   bool            `json:"dateValid"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	// OriginalDateText preserves the fragment as it appeared in the source.
	OriginalDateText string `json:"originalDateText,omitempty"`
	// BalanceAfter is the running balance printed on the line, when the
	// statement carries one.
	BalanceAfter *float64 `json:"balanceAfter,omitempty"`
	// ParseMethod records which grammar matched, for diagnostics.
	ParseMethod string `json:"parseMethod,omitempty"`
}

// Classification is the result of statement-type and bank detection.
type Classification struct {
	StatementType StatementType `json:"statementType"`
	BankID        BankID        `json:"bankId"`
}

// StatementMetadata holds best-effort header fields pulled from the full
// statement text. Absence of any field is normal, not an error.
type StatementMetadata struct {
	AccountHolder   string   `json:"accountHolder,omitempty"`
	AccountNumber   string   `json:"accountNumber,omitempty"`
	StatementPeriod string   `json:"statementPeriod,omitempty"`
	PreviousBalance *float64 `json:"previousBalance,omitempty"`
	NewBalance      *float64 `json:"newBalance,omitempty"`
	Currency        string   `json:"currency"` // "CAD" or "USD"
}

// ParseResult is the sole contract returned to callers of the pipeline.
type ParseResult struct {
	BankDisplayName string            `json:"bankDisplayName"`
	Transactions    []Transaction     `json:"transactions"`
	Metadata        StatementMetadata `json:"metadata"`
	Confidence      float64           `json:"confidence"` // 0..1, advisory
	RawText         string            `json:"rawText,omitempty"`
}

// Float64 returns a pointer to v. Convenience for the optional balance and
// metadata fields.
func Float64(v float64) *float64 {
	return &v
}
