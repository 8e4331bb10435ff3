package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// GenericParser is the last-resort strategy for statements from
// unidentified banks. It anchors on a date at the start of each line and
// an amount anywhere after it. Lines that lead with a reference number
// before the date are not extracted.
type GenericParser struct {
	cfg Config
}

var (
	genericISOPrefix   = regexp.MustCompile(`^[-\s]?(\d{4}-\d{2}-\d{2})\b`)
	genericSlashPrefix = regexp.MustCompile(`^[-\s]?(\d{1,2}/\d{1,2}/\d{2,4})\b`)
	genericTextPrefix  = regexp.MustCompile(`(?i)^[-\s]?((?:` + monthAlt + `)[a-z]*\.?\s+\d{1,2})\b`)

	genericAmountPattern = regexp.MustCompile(`(-?\(?\$?\s?-?[\d,]+\.\d{2}\)?-?)(\s?(?:CR|DR))?`)
	genericCreditLine    = regexp.MustCompile(`(?i)\b(?:CR|Credit)\b`)
)

func (p *GenericParser) BankName() string { return "Unknown Bank" }

func (p *GenericParser) Parse(text string) (*Output, error) {
	out := &Output{}
	rb := NewRunningBalance(p.cfg.Year)

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || isBoilerplateLine(line) {
			continue
		}

		dateFrag, rest, ok := p.matchLineDate(line)
		if !ok {
			continue
		}

		am := genericAmountPattern.FindStringSubmatchIndex(rest)
		if am == nil {
			continue
		}
		amountText := rest[am[2]:am[3]]
		amount, err := ParseMoney(amountText)
		if err != nil {
			continue
		}

		// Description: the remainder once the matched amount (and its
		// CR/DR suffix) is cut out.
		desc := cleanDescription(rest[:am[0]] + " " + rest[am[1]:])
		if !isMeaningfulDescription(desc) {
			continue
		}

		txn := models.Transaction{
			Description:      desc,
			Amount:           abs(amount),
			OriginalDateText: dateFrag,
			Type:             models.Debit,
			ParseMethod:      "generic",
		}
		if amount < 0 || genericCreditLine.MatchString(line) {
			txn.Type = models.Credit
		}

		if iso, err := p.normalizeLineDate(dateFrag, rb); err == nil {
			txn.Date = iso
			txn.DateValid = true
		} else {
			txn.Date = dateFrag
		}

		out.Transactions = append(out.Transactions, txn)
	}

	return out, nil
}

// matchLineDate requires the date to anchor the line, tolerating a
// single leading dash. Amount-first lines do not match.
func (p *GenericParser) matchLineDate(line string) (fragment, rest string, ok bool) {
	for _, re := range []*regexp.Regexp{genericISOPrefix, genericSlashPrefix, genericTextPrefix} {
		if m := re.FindStringSubmatch(line); m != nil {
			full := m[0]
			return strings.TrimSpace(m[1]), strings.TrimSpace(line[len(full):]), true
		}
	}
	return "", "", false
}

func (p *GenericParser) normalizeLineDate(fragment string, rb *RunningBalance) (string, error) {
	if iso, err := NormalizeDate(fragment, FormatAuto); err == nil {
		return iso, nil
	}
	// "Mon DD" with no year: borrow the statement year, rollover-tracked.
	m := genericTextPrefix.FindStringSubmatch(fragment)
	if m == nil {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	fields := strings.Fields(m[1])
	if len(fields) != 2 {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	month, ok := monthIndex(fields[0])
	if !ok {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	day, _ := strconv.Atoi(fields[1])
	year := rb.ResolveYear(month)
	if !validYMD(year, int(month), day) {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	return isoDate(year, month, day), nil
}
