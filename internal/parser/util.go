package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// Boilerplate phrases that disqualify a line from transaction candidacy.
// Balance-bearing entries in this table are scanned for their amount
// before being discarded (see scanBalanceLine).
var skipPhrases = []string{
	"opening balance",
	"closing balance",
	"previous statement balance",
	"balance forward",
	"statement period",
	"account summary",
	"minimum payment",
	"payment due date",
	"continued on next page",
}

var (
	// Anchored so descriptions containing the word (e.g. "WEBPAGE DESIGN")
	// are not discarded.
	pageNumberPattern  = regexp.MustCompile(`(?i)^page\s+\d+\b`)
	totalPrefixPattern = regexp.MustCompile(`(?i)^total\b`)
	columnHeaderHints  = []string{"description", "withdrawals", "deposits", "balance", "date", "amount", "debit", "credit", "details"}
)

// isBoilerplateLine reports whether a line is a header, footer, summary or
// other non-transaction line.
func isBoilerplateLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)

	if pageNumberPattern.MatchString(lower) || totalPrefixPattern.MatchString(lower) {
		return true
	}
	for _, phrase := range skipPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	// Column-header echoes: two or more header words and no money.
	if len(findMoney(trimmed)) == 0 {
		hits := 0
		for _, h := range columnHeaderHints {
			if strings.Contains(lower, h) {
				hits++
			}
		}
		if hits >= 2 {
			return true
		}
	}
	return false
}

// balanceLineKind distinguishes which summary line carried a balance.
type balanceLineKind int

const (
	balanceNone balanceLineKind = iota
	balanceOpening
	balanceClosing
	// balanceSummary marks total-deposits/total-withdrawals lines that
	// carry no balance worth keeping but must stay out of the
	// transaction stream.
	balanceSummary
)

var (
	openingBalancePhrases = []string{"opening balance", "previous statement balance", "previous balance", "balance forward", "balance brought forward"}
	closingBalancePhrases = []string{"closing balance", "new balance", "closing totals", "balance carried forward"}
	totalCreditsPattern   = regexp.MustCompile(`(?i)total\s+deposits?\b.*credits?`)
	totalDebitsPattern    = regexp.MustCompile(`(?i)total\s+cheques?\b.*debits?`)
)

// scanBalanceLine inspects a summary line for a balance value worth
// keeping (opening/closing balances seed the running-balance state and
// statement metadata). The line is still discarded from transaction
// candidacy afterwards.
func scanBalanceLine(line string) (float64, balanceLineKind) {
	lower := strings.ToLower(line)

	kind := balanceNone
	switch {
	case containsAny(lower, openingBalancePhrases):
		kind = balanceOpening
	case containsAny(lower, closingBalancePhrases):
		kind = balanceClosing
	case totalCreditsPattern.MatchString(line), totalDebitsPattern.MatchString(line):
		return 0, balanceSummary
	default:
		return 0, balanceNone
	}

	amounts := findMoney(line)
	if len(amounts) == 0 {
		return 0, balanceNone
	}
	return amounts[len(amounts)-1], kind
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

var multiSpacePattern = regexp.MustCompile(`\s+`)

// cleanDescription trims, collapses whitespace, and strips stray column
// separators left over from PDF extraction.
func cleanDescription(s string) string {
	s = strings.Trim(s, " \t-–|")
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

var digitsOnlyPattern = regexp.MustCompile(`^[\d\s.,#-]*$`)

// isMeaningfulDescription rejects descriptions that are empty or purely
// numeric once monetary tokens are stripped.
func isMeaningfulDescription(s string) bool {
	s = cleanDescription(stripMoney(s))
	if s == "" {
		return false
	}
	return !digitsOnlyPattern.MatchString(s)
}

// Keyword hints for debit/credit. Fallback only; balance-delta math
// always takes priority when conclusive.
var (
	creditHintWords = []string{"deposit", "credit", "refund", "interest", "received"}
	debitHintWords  = []string{"purchase", "payment", "withdrawal", "fee", "charge"}
)

// TypeHint inspects a description for debit/credit keywords. The second
// return is false when no keyword matches either way.
func TypeHint(desc string) (models.TransactionType, bool) {
	lower := strings.ToLower(desc)
	for _, w := range creditHintWords {
		if strings.Contains(lower, w) {
			return models.Credit, true
		}
	}
	for _, w := range debitHintWords {
		if strings.Contains(lower, w) {
			return models.Debit, true
		}
	}
	return "", false
}
