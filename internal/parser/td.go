package parser

import (
	"encoding/csv"
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// TDCardParser handles TD credit-card statements.
//
// Layout: transaction date, posting date, description, signed amount.
//
//	"NOV 5  NOV 7  TIM HORTONS #4431 TORONTO  $6.48"
//	"DEC 28 DEC 29 PAYMENT - THANK YOU  -$500.00"
//
// No year on the line; the statement year plus month rollover supplies it.
type TDCardParser struct {
	cfg Config
}

var tdCardPattern = regexp.MustCompile(
	`(?i)\b(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+(` + monthAlt + `)[a-z]*\.?\s+(\d{1,2})\s+` +
		`([\s\S]{2,100}?)\s+` +
		`(-?\(?\$?\s?-?[\d,]+\.\d{2}\)?-?)`,
)

func (p *TDCardParser) BankName() string { return "TD Canada Trust" }

func (p *TDCardParser) Parse(text string) (*Output, error) {
	g := cardGrammar{
		bank:        models.BankTD,
		displayName: p.BankName(),
		parseMethod: "td-card",
		pattern:     tdCardPattern,
	}
	return parseCardText(text, g, p.cfg), nil
}

// TDChequingParser handles TD account exports. The common case is the
// five-column CSV download (date, description, debit, credit, balance);
// PDF chequing statements fall through to the month-day line grammar and
// then the two-number fallback.
type TDChequingParser struct {
	cfg Config
}

func (p *TDChequingParser) BankName() string { return "TD Canada Trust" }

func (p *TDChequingParser) Parse(text string) (*Output, error) {
	if out := p.parseCSV(text); len(out.Transactions) > 0 {
		return out, nil
	}

	g := chequingGrammar{
		bank:        models.BankTD,
		displayName: p.BankName(),
		parseMethod: "td-chequing",
		matchDate:   matchMonthDayPrefix,
	}
	out := parseChequingText(text, g, p.cfg)
	if len(out.Transactions) == 0 {
		fb := twoNumberFallback(text, models.BankTD, p.BankName(), p.cfg)
		fb.OpeningBalance = out.OpeningBalance
		fb.ClosingBalance = out.ClosingBalance
		return fb, nil
	}
	return out, nil
}

// parseCSV reads TD's CSV export: MM/DD/YYYY, description, debit, credit,
// balance. The debit/credit columns are taken as a starting hypothesis
// and the balance column gets the final say through delta resolution.
func (p *TDChequingParser) parseCSV(text string) *Output {
	out := &Output{}
	if !strings.Contains(text, ",") {
		return out
	}

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return &Output{}
	}

	rb := NewRunningBalance(p.cfg.Year)
	for _, row := range rows {
		if len(row) < 4 {
			continue
		}
		date, err := NormalizeDate(strings.TrimSpace(row[0]), FormatMDY)
		if err != nil {
			continue // header row or garbage
		}
		desc := cleanDescription(row[1])
		if !isMeaningfulDescription(desc) {
			continue
		}

		debitStr := strings.TrimSpace(row[2])
		creditStr := strings.TrimSpace(row[3])
		var amount float64
		var colType models.TransactionType
		switch {
		case debitStr != "":
			v, err := ParseMoney(debitStr)
			if err != nil {
				continue
			}
			amount, colType = abs(v), models.Debit
		case creditStr != "":
			v, err := ParseMoney(creditStr)
			if err != nil {
				continue
			}
			amount, colType = abs(v), models.Credit
		default:
			continue
		}

		txn := models.Transaction{
			Date:             date,
			DateValid:        true,
			OriginalDateText: strings.TrimSpace(row[0]),
			Description:      desc,
			Amount:           amount,
			Type:             colType,
			ParseMethod:      "td-csv",
		}

		if len(row) >= 5 {
			if bal, err := ParseMoney(row[4]); err == nil {
				txn.BalanceAfter = models.Float64(bal)
				if res := ResolveType(rb.Current, amount, bal, p.cfg.Epsilon); !res.Ambiguous {
					txn.Type = res.Type
				}
				rb.Seed(bal)
			}
		}
		out.Transactions = append(out.Transactions, txn)
	}
	return out
}
