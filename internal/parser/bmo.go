package parser

import (
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// BMOChequingParser handles BMO account statements.
//
// Layout: "Mon DD  Description  Amount  Balance" with separate
// withdrawals/deposits columns in the printed statement. Column alignment
// does not survive text extraction, so the trailing number is taken as
// the balance and the direction comes from delta resolution, not from
// which column the amount sat in.
//
//	"Jan 15  INTERAC e-Transfer Sent  200.00  1,834.12"
//	"Jan 17  Payroll Deposit ACME LTD  2,150.00  3,984.12"
type BMOChequingParser struct {
	cfg Config
}

var bmoFooterPhrases = []string{
	"bmo bank of montreal is a member",
	"trade-marks of bank of montreal",
	"please report any errors",
}

func bmoSkipLine(line string) bool {
	return containsAny(strings.ToLower(line), bmoFooterPhrases)
}

func (p *BMOChequingParser) BankName() string { return "BMO Bank of Montreal" }

func (p *BMOChequingParser) Parse(text string) (*Output, error) {
	g := chequingGrammar{
		bank:        models.BankBMO,
		displayName: p.BankName(),
		parseMethod: "bmo-chequing",
		matchDate:   matchMonthDayPrefix,
		skipLine:    bmoSkipLine,
	}
	out := parseChequingText(text, g, p.cfg)
	if len(out.Transactions) == 0 {
		fb := twoNumberFallback(text, models.BankBMO, p.BankName(), p.cfg)
		fb.OpeningBalance = out.OpeningBalance
		fb.ClosingBalance = out.ClosingBalance
		return fb, nil
	}
	return out, nil
}
