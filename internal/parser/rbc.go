package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// RBCCardParser handles RBC credit-card statements (Visa sub-products).
//
//	"JAN 3  JAN 5  NETFLIX.COM 866-716-0414 ON  $16.49"
//	"JAN 10 JAN 10 PAYMENT - THANK YOU / PAIEMENT - MERCI  -$842.15"
type RBCCardParser struct {
	cfg Config
}

var rbcCardPattern = regexp.MustCompile(
	`(?i)\b(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+` +
		`([\s\S]{2,100}?)\s+` +
		`(-?\(?\$?\s?-?[\d,]+\.\d{2}\)?-?(?:\s?CR)?)`,
)

var rbcCreditMarker = regexp.MustCompile(`(?i)\bCR\s*$`)

func (p *RBCCardParser) BankName() string { return "RBC Royal Bank" }

func (p *RBCCardParser) Parse(text string) (*Output, error) {
	g := cardGrammar{
		bank:         models.BankRBC,
		displayName:  p.BankName(),
		parseMethod:  "rbc-card",
		pattern:      rbcCardPattern,
		creditMarker: rbcCreditMarker,
	}
	return parseCardText(text, g, p.cfg), nil
}

// RBCChequingParser handles RBC personal account statements.
//
// Layout: "DD Mon  Description  Amount  Balance", where the balance may
// go negative ("-58.86") and long descriptions wrap onto the next line
// before the amounts appear:
//
//	"23 Jan e-Transfer received"
//	"from John Smith 500.00 1,500.00"
//	"29 Feb Loan interest NO.78783249 001 221.33 -58.86"
type RBCChequingParser struct {
	cfg Config
}

// rbcFooterPhrases are statement furniture specific to RBC exports.
var rbcFooterPhrases = []string{
	"royal bank of canada website",
	"registered trade-mark",
	"please check this statement",
	"rbc royal bank branch",
}

func rbcSkipLine(line string) bool {
	return containsAny(strings.ToLower(line), rbcFooterPhrases)
}

func (p *RBCChequingParser) BankName() string { return "RBC Royal Bank" }

func (p *RBCChequingParser) Parse(text string) (*Output, error) {
	g := chequingGrammar{
		bank:        models.BankRBC,
		displayName: p.BankName(),
		parseMethod: "rbc-chequing",
		matchDate:   matchDayMonthPrefix,
		skipLine:    rbcSkipLine,
	}
	out := parseChequingText(text, g, p.cfg)
	if len(out.Transactions) == 0 {
		fb := twoNumberFallback(text, models.BankRBC, p.BankName(), p.cfg)
		fb.OpeningBalance = out.OpeningBalance
		fb.ClosingBalance = out.ClosingBalance
		return fb, nil
	}
	return out, nil
}
