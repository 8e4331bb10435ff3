package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/statement-ingest/internal/models"
)

// Ordered candidate patterns per metadata field. First match wins; no
// match leaves the field absent. Metadata extraction never fails.
var (
	accountHolderPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)^(?:prepared for|account holder|customer name|name)\s*:?\s+(.{3,60})$`),
		regexp.MustCompile(`(?m)^((?:MR|MRS|MS|MISS|DR)\.?\s+[A-Z][A-Z .'-]{2,50})$`),
	}
	accountNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:account|card)\s*(?:number|no\.?|#)\s*:?\s*([\dXx*]{4}[\dXx*\- ]{0,20})`),
		regexp.MustCompile(`\b(\d{4}\s?[\dX*]{4}\s?[\dX*]{4}\s?\d{4})\b`),
		regexp.MustCompile(`\b(\d{5}-\d{7})\b`),
	}
	statementPeriodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)statement\s+(?:period|from)\s*:?\s*(.{5,60}?\d{4})`),
		regexp.MustCompile(`(?i)((?:` + monthAlt + `)[a-z]*\.?\s+\d{1,2},?\s+\d{4}\s+(?:to|-|–)\s+(?:` + monthAlt + `)[a-z]*\.?\s+\d{1,2},?\s+\d{4})`),
	}
	previousBalancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)previous\s+(?:statement\s+)?balance\s*:?\s*\$?\s*(-?\(?[\d,]+\.\d{2}\)?)`),
		regexp.MustCompile(`(?i)opening\s+balance\s*:?\s*\$?\s*(-?\(?[\d,]+\.\d{2}\)?)`),
		regexp.MustCompile(`(?i)balance\s+forward\s*:?\s*\$?\s*(-?\(?[\d,]+\.\d{2}\)?)`),
	}
	newBalancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)new\s+balance\s*:?\s*\$?\s*(-?\(?[\d,]+\.\d{2}\)?)`),
		regexp.MustCompile(`(?i)closing\s+balance\s*:?\s*\$?\s*(-?\(?[\d,]+\.\d{2}\)?)`),
	}
	usdMarkers = []string{"USD", "U.S. DOLLAR", "US DOLLAR", "U.S. FUNDS"}
)

// ExtractMetadata pulls best-effort header fields from the full text.
// Currency defaults to CAD and flips to USD only on an explicit marker.
func ExtractMetadata(text string, bankID models.BankID, stmtType models.StatementType) models.StatementMetadata {
	md := models.StatementMetadata{Currency: "CAD"}

	if m := firstMatch(text, accountHolderPatterns); m != "" {
		md.AccountHolder = cleanDescription(m)
	}
	if m := firstMatch(text, accountNumberPatterns); m != "" {
		md.AccountNumber = maskAccountNumber(m)
	}
	if m := firstMatch(text, statementPeriodPatterns); m != "" {
		md.StatementPeriod = cleanDescription(m)
	}
	if m := firstMatch(text, previousBalancePatterns); m != "" {
		if v, err := ParseMoney(m); err == nil {
			md.PreviousBalance = models.Float64(v)
		}
	}
	if m := firstMatch(text, newBalancePatterns); m != "" {
		if v, err := ParseMoney(m); err == nil {
			md.NewBalance = models.Float64(v)
		}
	}

	upper := strings.ToUpper(text)
	for _, marker := range usdMarkers {
		if strings.Contains(upper, marker) {
			md.Currency = "USD"
			break
		}
	}

	return md
}

func firstMatch(text string, patterns []*regexp.Regexp) string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// maskAccountNumber keeps only the last four digits visible.
func maskAccountNumber(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) <= 4 {
		return digits
	}
	return "****" + digits[len(digits)-4:]
}
