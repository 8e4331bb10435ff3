package parser

import (
	"fmt"
	"math"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// minTransactionCount is the minimum batch size below which the count
// check fails.
const minTransactionCount = 5

// ConfidenceScore runs five equal-weight checks over a transaction batch
// and returns the fraction that passed. Advisory only: the pipeline never
// rejects output based on it. An empty batch scores zero.
//
// The duplicate check also penalizes legitimately repeated same-day
// same-amount transactions.
func ConfidenceScore(txns []models.Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}

	checks := []bool{
		allDatesValid(txns),
		allAmountsValid(txns),
		allDescriptionsPresent(txns),
		len(txns) >= minTransactionCount,
		noDuplicatePairs(txns),
	}

	passed := 0
	for _, ok := range checks {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(checks))
}

func allDatesValid(txns []models.Transaction) bool {
	for _, t := range txns {
		if !t.DateValid || !IsISODate(t.Date) {
			return false
		}
	}
	return true
}

func allAmountsValid(txns []models.Transaction) bool {
	for _, t := range txns {
		if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
			return false
		}
	}
	return true
}

func allDescriptionsPresent(txns []models.Transaction) bool {
	for _, t := range txns {
		if t.Description == "" {
			return false
		}
	}
	return true
}

func noDuplicatePairs(txns []models.Transaction) bool {
	seen := make(map[string]bool, len(txns))
	for _, t := range txns {
		key := fmt.Sprintf("%s|%.2f", t.Date, t.Amount)
		if seen[key] {
			return false
		}
		seen[key] = true
	}
	return true
}
