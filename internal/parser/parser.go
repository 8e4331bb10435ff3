package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// Output is what a bank strategy produces: the transaction list plus any
// balances scraped from summary lines on the way through.
type Output struct {
	Transactions   []models.Transaction
	OpeningBalance *float64
	ClosingBalance *float64
}

// Strategy converts full statement text into transactions. One strategy
// per bank × statement-type combination.
type Strategy interface {
	Parse(text string) (*Output, error)
	BankName() string
}

// Config carries the knobs every strategy shares. Year is the detected
// statement year used to resolve yearless date fragments; Epsilon is the
// balance-delta tolerance.
type Config struct {
	Year    int
	Epsilon float64
}

// BankProfile is the static registry entry for a supported institution.
type BankProfile struct {
	ID          models.BankID
	DisplayName string
	Identifiers []string
}

// Registry lists supported banks in match-priority order: the first
// profile with an identifier hit wins.
var Registry = []BankProfile{
	{ID: models.BankTD, DisplayName: "TD Canada Trust", Identifiers: []string{
		"TD Canada Trust", "TD CANADA TRUST", "TD Bank", "TD Cash Back", "TD Rewards", "td.com", "TD Aeroplan",
	}},
	{ID: models.BankRBC, DisplayName: "RBC Royal Bank", Identifiers: []string{
		"Royal Bank of Canada", "RBC Royal Bank", "RBC Rewards", "RBC Avion", "rbcroyalbank.com", "rbc.com",
	}},
	{ID: models.BankCIBC, DisplayName: "CIBC", Identifiers: []string{
		"CIBC", "Canadian Imperial Bank", "Dividend Visa", "cibc.com", "Aventura",
	}},
	{ID: models.BankBMO, DisplayName: "BMO Bank of Montreal", Identifiers: []string{
		"Bank of Montreal", "BMO", "bmo.com", "AIR MILES Mastercard",
	}},
	{ID: models.BankScotia, DisplayName: "Scotiabank", Identifiers: []string{
		"Scotiabank", "Bank of Nova Scotia", "Scene+", "scotiabank.com", "ScotiaLine",
	}},
}

// Indicator lists for statement-type voting. Keyword-density voting beats
// a single exact pattern here: extraction noise (collapsed columns, stray
// whitespace) routinely mangles any one phrase.
var creditCardIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)previous\s+statement\s+balance`),
	regexp.MustCompile(`(?i)minimum\s+payment`),
	regexp.MustCompile(`(?i)payment\s+due\s+date`),
	regexp.MustCompile(`(?i)credit\s+limit`),
	regexp.MustCompile(`(?i)cash\s+advance`),
	regexp.MustCompile(`(?i)annual\s+interest\s+rate`),
	regexp.MustCompile(`(?i)new\s+balance`),
}

var bankAccountIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwithdrawals?\b`),
	regexp.MustCompile(`(?i)opening\s+balance`),
	regexp.MustCompile(`(?i)closing\s+balance`),
	regexp.MustCompile(`(?i)\bdeposits?\b`),
	regexp.MustCompile(`(?i)\bcheques?\b`),
	regexp.MustCompile(`(?i)chequing\s+account`),
	regexp.MustCompile(`(?i)savings\s+account`),
}

// Classify determines statement type and issuing bank from the full
// extracted text. The type vote requires a strict majority; a tie is
// UNKNOWN. Bank identity is first-match in Registry order.
func Classify(text string) models.Classification {
	c := models.Classification{
		StatementType: models.StatementUnknown,
		BankID:        models.BankUnknown,
	}

	ccHits := countIndicators(text, creditCardIndicators)
	baHits := countIndicators(text, bankAccountIndicators)
	if ccHits > baHits {
		c.StatementType = models.StatementCreditCard
	} else if baHits > ccHits {
		c.StatementType = models.StatementBankAccount
	}

	for _, profile := range Registry {
		for _, id := range profile.Identifiers {
			if strings.Contains(text, id) {
				c.BankID = profile.ID
				return c
			}
		}
	}
	return c
}

func countIndicators(text string, indicators []*regexp.Regexp) int {
	n := 0
	for _, re := range indicators {
		if re.MatchString(text) {
			n++
		}
	}
	return n
}

// ProfileFor returns the registry profile for a bank id, or nil.
func ProfileFor(id models.BankID) *BankProfile {
	for i := range Registry {
		if Registry[i].ID == id {
			return &Registry[i]
		}
	}
	return nil
}

// rbcCardSignals marks RBC statements that are actually credit-card
// sub-products; RBC issues both account types under the same letterhead.
var rbcCardSignals = []string{
	"RBC Rewards", "RBC Avion", "Visa", "Mastercard", "WestJet RBC",
	"CASH BACK CREDITS", "MINIMUM PAYMENT",
}

// ForClassification selects the strategy for a classified document. RBC
// needs a secondary sniff on the text to split card from chequing; an
// unidentified bank falls through to the generic strategy.
func ForClassification(c models.Classification, text string, cfg Config) Strategy {
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = DefaultEpsilon
	}

	switch c.BankID {
	case models.BankTD:
		if c.StatementType == models.StatementCreditCard {
			return &TDCardParser{cfg: cfg}
		}
		return &TDChequingParser{cfg: cfg}
	case models.BankRBC:
		isCard := c.StatementType == models.StatementCreditCard
		if !isCard && c.StatementType == models.StatementUnknown {
			for _, sig := range rbcCardSignals {
				if strings.Contains(text, sig) {
					isCard = true
					break
				}
			}
		}
		if isCard {
			return &RBCCardParser{cfg: cfg}
		}
		return &RBCChequingParser{cfg: cfg}
	case models.BankCIBC:
		if c.StatementType == models.StatementBankAccount {
			return newChequingStrategy(models.BankCIBC, "CIBC", cfg)
		}
		return &CIBCCardParser{cfg: cfg}
	case models.BankBMO:
		return &BMOChequingParser{cfg: cfg}
	case models.BankScotia:
		return &ScotiaChequingParser{cfg: cfg}
	default:
		return &GenericParser{cfg: cfg}
	}
}
