package parser

import (
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// ScotiaChequingParser handles Scotiabank account statements.
//
// Layout: "DD Mon  Description  Amount  Balance" with one amount column, no
// debit/credit separation at all, so every line's direction rides on the
// balance delta. Wrapped descriptions are common in these exports.
type ScotiaChequingParser struct {
	cfg Config
}

var scotiaFooterPhrases = []string{
	"registered trademark of the bank of nova scotia",
	"scotiabank is a member",
	"notify us of any errors",
}

func scotiaSkipLine(line string) bool {
	return containsAny(strings.ToLower(line), scotiaFooterPhrases)
}

func (p *ScotiaChequingParser) BankName() string { return "Scotiabank" }

func (p *ScotiaChequingParser) Parse(text string) (*Output, error) {
	g := chequingGrammar{
		bank:        models.BankScotia,
		displayName: p.BankName(),
		parseMethod: "scotia-chequing",
		matchDate:   matchDayMonthPrefix,
		skipLine:    scotiaSkipLine,
	}
	out := parseChequingText(text, g, p.cfg)
	if len(out.Transactions) == 0 {
		fb := twoNumberFallback(text, models.BankScotia, p.BankName(), p.cfg)
		fb.OpeningBalance = out.OpeningBalance
		fb.ClosingBalance = out.ClosingBalance
		return fb, nil
	}
	return out, nil
}
