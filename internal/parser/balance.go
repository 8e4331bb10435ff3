package parser

import (
	"time"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// DefaultEpsilon is the absolute tolerance for balance-delta residuals.
const DefaultEpsilon = 0.05

// RunningBalance threads per-line parsing state through one statement:
// the last trusted balance, plus month/year tracking for statements whose
// lines carry no year. Constructed fresh per parse; never shared.
type RunningBalance struct {
	Current   *float64
	PrevMonth time.Month
	Year      int
}

// NewRunningBalance seeds the state with a statement year. The balance
// starts unseeded; the first opening-balance line or confident resolution
// sets it.
func NewRunningBalance(year int) *RunningBalance {
	return &RunningBalance{Year: year}
}

// Seed sets the running balance, typically from an opening-balance line.
func (rb *RunningBalance) Seed(balance float64) {
	b := balance
	rb.Current = &b
}

// ResolveYear returns the calendar year for a transaction month,
// incrementing the tracked year when the month sequence decreases
// (Dec → Jan rollover). Source order is assumed chronological.
func (rb *RunningBalance) ResolveYear(m time.Month) int {
	if rb.PrevMonth != 0 && m < rb.PrevMonth {
		rb.Year++
	}
	rb.PrevMonth = m
	return rb.Year
}

// Resolution is the outcome of a balance-delta check.
type Resolution struct {
	Type       models.TransactionType
	Ambiguous  bool
	NewBalance float64
}

// ResolveType decides debit vs credit by testing which hypothesis's
// implied balance matches the observed trailing balance within epsilon.
// prev == nil (no seed yet) or both residuals out of tolerance yields an
// ambiguous result and the caller falls back to keyword hints. Math wins
// over keywords whenever it is conclusive.
func ResolveType(prev *float64, amount, observed, epsilon float64) Resolution {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if prev == nil {
		return Resolution{Ambiguous: true}
	}

	debitResidual := abs(*prev - amount - observed)
	creditResidual := abs(*prev + amount - observed)

	switch {
	case debitResidual < epsilon && creditResidual < epsilon:
		// Only possible for near-zero amounts; take the closer fit.
		if debitResidual <= creditResidual {
			return Resolution{Type: models.Debit, NewBalance: observed}
		}
		return Resolution{Type: models.Credit, NewBalance: observed}
	case debitResidual < epsilon:
		return Resolution{Type: models.Debit, NewBalance: observed}
	case creditResidual < epsilon:
		return Resolution{Type: models.Credit, NewBalance: observed}
	default:
		return Resolution{Ambiguous: true}
	}
}

// resolveLineType runs the balance-delta check against the running state
// and applies the keyword fallback when the math is inconclusive. The
// state's balance advances only on a confident resolution or when the
// line's observed balance is taken at face value after a fallback.
func resolveLineType(rb *RunningBalance, amount, observed float64, desc string, epsilon float64) models.TransactionType {
	res := ResolveType(rb.Current, amount, observed, epsilon)
	if !res.Ambiguous {
		rb.Seed(res.NewBalance)
		return res.Type
	}
	// Math inconclusive; trust the printed balance going forward so one
	// unreadable line does not poison the rest of the statement.
	rb.Seed(observed)
	if hint, ok := TypeHint(desc); ok {
		return hint
	}
	return models.Debit
}
