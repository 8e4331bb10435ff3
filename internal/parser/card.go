package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// cardGrammar parameterizes the two-date credit-card engine. Card
// statements print a transaction date and a posting date per line,
// neither with a year; a single signed amount carries the direction.
//
// The pattern must expose six groups: txn month, txn day, posting month,
// posting day, description, amount.
type cardGrammar struct {
	bank        models.BankID
	displayName string
	parseMethod string
	pattern     *regexp.Regexp
	// creditMarker matches an explicit credit suffix on the amount or
	// description ("CR", "Ͼ"); nil when the bank only uses signed amounts.
	creditMarker *regexp.Regexp
}

// parseCardText extracts two-date transactions across the whole text in
// one pass. PDF extraction frequently collapses line breaks mid-entry,
// which breaks line-by-line matching; a global scan with a bounded
// description group survives that.
func parseCardText(text string, g cardGrammar, cfg Config) *Output {
	out := &Output{}
	rb := NewRunningBalance(cfg.Year)

	// Summary balances still come from line-level scanning.
	for _, line := range strings.Split(text, "\n") {
		if bal, kind := scanBalanceLine(line); kind != balanceNone {
			switch kind {
			case balanceOpening:
				if out.OpeningBalance == nil {
					out.OpeningBalance = models.Float64(bal)
				}
			case balanceClosing:
				if out.ClosingBalance == nil {
					out.ClosingBalance = models.Float64(bal)
				}
			}
		}
	}

	for _, m := range g.pattern.FindAllStringSubmatch(text, -1) {
		txnMonth, ok := monthIndex(m[1])
		if !ok {
			continue
		}
		txnDay, _ := strconv.Atoi(m[2])
		desc := cleanDescription(m[5])
		if !isMeaningfulDescription(desc) {
			continue
		}

		rawAmount := strings.TrimSpace(m[6])
		markerCredit := false
		if g.creditMarker != nil && g.creditMarker.MatchString(rawAmount) {
			markerCredit = true
			rawAmount = strings.TrimSpace(g.creditMarker.ReplaceAllString(rawAmount, ""))
		}
		amount, err := ParseMoney(rawAmount)
		if err != nil {
			continue
		}
		credit := markerCredit || amount < 0

		year := rb.ResolveYear(txnMonth)
		fragment := strings.TrimSpace(m[1] + " " + m[2])
		txn := models.Transaction{
			Date:             isoDate(year, txnMonth, txnDay),
			DateValid:        true,
			OriginalDateText: fragment,
			Description:      desc,
			Amount:           abs(amount),
			ParseMethod:      g.parseMethod,
		}
		if !validYMD(year, int(txnMonth), txnDay) {
			txn.Date = fragment
			txn.DateValid = false
		}
		if credit {
			txn.Type = models.Credit
		} else {
			txn.Type = models.Debit
		}
		out.Transactions = append(out.Transactions, txn)
	}

	if len(out.Transactions) == 0 {
		fb := twoNumberFallback(text, g.bank, g.displayName, cfg)
		fb.OpeningBalance = out.OpeningBalance
		fb.ClosingBalance = out.ClosingBalance
		return fb
	}
	return out
}
