package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// dateMatch is a date fragment found at the head of a chequing line.
type dateMatch struct {
	month    time.Month
	day      int
	year     int // 0 when the fragment carries no year
	fragment string
	rest     string
}

// chequingGrammar parameterizes the shared line engine. Banks differ in
// where the date sits and what it looks like; the rest of the walk
// (skip tables, balance seeding, orphan stitching, delta resolution) is
// identical across institutions.
type chequingGrammar struct {
	bank        models.BankID
	displayName string
	parseMethod string
	matchDate   func(line string) (dateMatch, bool)
	skipLine    func(line string) bool // bank-specific additions, may be nil
}

type chequingStrategy struct {
	g   chequingGrammar
	cfg Config
}

func newChequingStrategy(bank models.BankID, displayName string, cfg Config) *chequingStrategy {
	return &chequingStrategy{
		g: chequingGrammar{
			bank:        bank,
			displayName: displayName,
			parseMethod: "chequing-month-day",
			matchDate:   matchMonthDayPrefix,
		},
		cfg: cfg,
	}
}

func (s *chequingStrategy) BankName() string { return s.g.displayName }

func (s *chequingStrategy) Parse(text string) (*Output, error) {
	return parseChequingText(text, s.g, s.cfg), nil
}

var (
	dayMonthPrefixPattern = regexp.MustCompile(`(?i)^[-\s]?(\d{1,2})\s+((?:` + monthAlt + `)[a-z]*\.?)\b`)
	monthDayPrefixPattern = regexp.MustCompile(`(?i)^[-\s]?((?:` + monthAlt + `)[a-z]*\.?)\s+(\d{1,2})\b`)
)

// matchDayMonthPrefix matches "23 Jan …" line heads (RBC, Scotiabank).
func matchDayMonthPrefix(line string) (dateMatch, bool) {
	m := dayMonthPrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return dateMatch{}, false
	}
	month, ok := monthIndex(m[2])
	if !ok {
		return dateMatch{}, false
	}
	day, _ := strconv.Atoi(m[1])
	full := m[0]
	return dateMatch{
		month:    month,
		day:      day,
		fragment: strings.TrimSpace(full),
		rest:     strings.TrimSpace(line[len(full):]),
	}, true
}

// matchMonthDayPrefix matches "Jan 23 …" line heads (BMO, TD account).
func matchMonthDayPrefix(line string) (dateMatch, bool) {
	m := monthDayPrefixPattern.FindStringSubmatch(line)
	if m == nil {
		return dateMatch{}, false
	}
	month, ok := monthIndex(m[1])
	if !ok {
		return dateMatch{}, false
	}
	day, _ := strconv.Atoi(m[2])
	full := m[0]
	return dateMatch{
		month:    month,
		day:      day,
		fragment: strings.TrimSpace(full),
		rest:     strings.TrimSpace(line[len(full):]),
	}, true
}

// pendingLine buffers an orphan continuation: a line with a date and
// partial description but no amount. PDF extraction wraps long
// descriptions onto the next physical line; the buffered text is prefixed
// onto the next amount-bearing line.
type pendingLine struct {
	match dateMatch
	desc  string
	live  bool
}

// parseChequingText walks statement lines for single-date grammars with a
// trailing running-balance column. Debit/credit comes from balance-delta
// resolution, never from column position: extracted text does not
// preserve column alignment reliably.
func parseChequingText(text string, g chequingGrammar, cfg Config) *Output {
	out := &Output{}
	rb := NewRunningBalance(cfg.Year)
	var pending pendingLine
	var lastDate dateMatch
	haveDate := false

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if g.skipLine != nil && g.skipLine(line) {
			continue
		}

		// Summary lines give up their balance before being discarded.
		if bal, kind := scanBalanceLine(line); kind != balanceNone {
			switch kind {
			case balanceOpening:
				if out.OpeningBalance == nil {
					out.OpeningBalance = models.Float64(bal)
				}
				if rb.Current == nil {
					rb.Seed(bal)
				}
			case balanceClosing:
				if out.ClosingBalance == nil {
					out.ClosingBalance = models.Float64(bal)
				}
			}
			continue
		}
		if isBoilerplateLine(line) {
			continue
		}

		dm, hasDate := g.matchDate(line)
		amounts := findMoney(line)

		switch {
		case hasDate && len(amounts) == 0:
			// Orphan: date and partial description, amount on a later line.
			pending = pendingLine{match: dm, desc: cleanDescription(stripMoney(dm.rest)), live: true}

		case len(amounts) > 0:
			var when dateMatch
			var desc string
			switch {
			case hasDate:
				when = dm
				desc = cleanDescription(stripMoney(dm.rest))
				// A dated amount line supersedes any buffered orphan.
				pending = pendingLine{}
			case pending.live:
				when = pending.match
				desc = cleanDescription(pending.desc + " " + cleanDescription(stripMoney(line)))
				pending = pendingLine{}
			case haveDate:
				// Dateless transaction line inherits the last seen date.
				when = lastDate
				desc = cleanDescription(stripMoney(line))
			default:
				continue
			}

			if !isMeaningfulDescription(desc) {
				continue
			}

			txn, ok := buildChequingTransaction(when, desc, amounts, rb, cfg.Epsilon)
			if !ok {
				continue
			}
			txn.ParseMethod = g.parseMethod
			out.Transactions = append(out.Transactions, txn)
			lastDate = when
			haveDate = true

		default:
			// No date, no amounts: description wrap.
			if pending.live {
				pending.desc = cleanDescription(pending.desc + " " + line)
			} else if n := len(out.Transactions); n > 0 {
				last := &out.Transactions[n-1]
				last.Description = cleanDescription(last.Description + " " + line)
			}
		}
	}

	return out
}

// buildChequingTransaction assigns amount/balance from the numeric tokens
// (trailing token is the running balance when two or more are present)
// and resolves the type.
func buildChequingTransaction(when dateMatch, desc string, amounts []float64, rb *RunningBalance, epsilon float64) (models.Transaction, bool) {
	year := when.year
	if year == 0 {
		year = rb.ResolveYear(when.month)
	}
	txn := models.Transaction{
		Date:             isoDate(year, when.month, when.day),
		DateValid:        true,
		OriginalDateText: when.fragment,
		Description:      desc,
	}
	if !validYMD(year, int(when.month), when.day) {
		txn.Date = when.fragment
		txn.DateValid = false
	}

	if len(amounts) >= 2 {
		amount := abs(amounts[len(amounts)-2])
		observed := amounts[len(amounts)-1]
		txn.Amount = amount
		txn.BalanceAfter = models.Float64(observed)
		txn.Type = resolveLineType(rb, amount, observed, desc, epsilon)
		return txn, true
	}

	// Single number: no balance column on this line. Sign and keywords are
	// all there is.
	amount := amounts[0]
	txn.Amount = abs(amount)
	if amount < 0 {
		txn.Type = models.Credit
	} else if hint, ok := TypeHint(desc); ok {
		txn.Type = hint
	} else {
		txn.Type = models.Debit
	}
	return txn, true
}

var slashDatePrefixPattern = regexp.MustCompile(`^[-\s]?(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)

// matchAnyDatePrefix accepts any of the supported line-head date shapes.
// Used by the in-bank two-number fallback when a specific grammar yields
// nothing.
func matchAnyDatePrefix(line string) (dateMatch, bool) {
	if dm, ok := matchDayMonthPrefix(line); ok {
		return dm, true
	}
	if dm, ok := matchMonthDayPrefix(line); ok {
		return dm, true
	}
	if m := slashDatePrefixPattern.FindStringSubmatch(line); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		if month >= 1 && month <= 12 {
			full := m[0]
			return dateMatch{
				month:    time.Month(month),
				day:      day,
				year:     year,
				fragment: strings.TrimSpace(full),
				rest:     strings.TrimSpace(line[len(full):]),
			}, true
		}
	}
	return dateMatch{}, false
}

// twoNumberFallback re-walks the text with the loosest chequing grammar.
// Every bank strategy falls back to this before giving up entirely, so a
// recognized bank with an unrecognized layout still yields some rows.
func twoNumberFallback(text string, bank models.BankID, displayName string, cfg Config) *Output {
	g := chequingGrammar{
		bank:        bank,
		displayName: displayName,
		parseMethod: "two-number-fallback",
		matchDate:   matchAnyDatePrefix,
	}
	return parseChequingText(text, g, cfg)
}
