package parser

import (
	"regexp"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// CIBCCardParser handles CIBC credit-card statements.
//
// Same two-date shape as the other card issuers, but credits are marked
// with a trailing "CR" (or the Ͼ glyph some extractions produce) instead
// of a minus sign:
//
//	"Feb 02  Feb 03  AMZN Mktp CA TORONTO ON  54.99"
//	"Feb 10  Feb 11  PAYMENT THANK YOU  250.00 CR"
type CIBCCardParser struct {
	cfg Config
}

var cibcCardPattern = regexp.MustCompile(
	`(?i)\b(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+` +
		`([\s\S]{2,100}?)\s+` +
		`(-?\(?\$?\s?-?[\d,]+\.\d{2}\)?-?(?:\s?(?:CR|Ͼ))?)`,
)

var cibcCreditMarker = regexp.MustCompile(`(?i)(?:CR|Ͼ)\s*$`)

func (p *CIBCCardParser) BankName() string { return "CIBC" }

func (p *CIBCCardParser) Parse(text string) (*Output, error) {
	g := cardGrammar{
		bank:         models.BankCIBC,
		displayName:  p.BankName(),
		parseMethod:  "cibc-card",
		pattern:      cibcCardPattern,
		creditMarker: cibcCreditMarker,
	}
	return parseCardText(text, g, p.cfg), nil
}
