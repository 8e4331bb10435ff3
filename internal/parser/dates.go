package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is a hint for NormalizeDate.
type DateFormat string

const (
	FormatISO      DateFormat = "YYYY-MM-DD"
	FormatMDY      DateFormat = "MM/DD/YYYY"
	FormatMDYShort DateFormat = "MM/DD/YY"
	FormatMonthDay DateFormat = "Mon DD"
	FormatAuto     DateFormat = "AUTO"
)

// UnparseableDateError reports a date fragment that matched no supported
// format. Recoverable: callers keep the raw fragment instead of aborting
// the statement.
type UnparseableDateError struct {
	Fragment string
}

func (e *UnparseableDateError) Error() string {
	return fmt.Sprintf("unparseable date fragment %q", e.Fragment)
}

var monthNames = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// monthIndex resolves a month name, case-insensitively, tolerating a
// trailing period and full names ("Mar.", "MARCH", "Sept").
func monthIndex(name string) (time.Month, bool) {
	n := strings.ToLower(strings.TrimSuffix(strings.TrimSpace(name), "."))
	if len(n) < 3 {
		return 0, false
	}
	m, ok := monthNames[n[:3]]
	return m, ok
}

const monthAlt = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

var (
	isoDatePattern   = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
	textDatePattern  = regexp.MustCompile(`(?i)^((?:` + monthAlt + `)[a-z]*\.?)\s+(\d{1,2})(?:,?\s+(\d{4}))?$`)
	dayFirstPattern  = regexp.MustCompile(`(?i)^(\d{1,2})\s+((?:` + monthAlt + `)[a-z]*\.?)(?:,?\s+(\d{4}))?$`)
)

func isoDate(y int, m time.Month, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// NormalizeDate resolves a date fragment to ISO YYYY-MM-DD. Two-digit
// years expand to 20YY. Fragments carrying a month name but no year
// cannot be normalized here; the bank grammars resolve those through
// RunningBalance year tracking instead.
func NormalizeDate(fragment string, hint DateFormat) (string, error) {
	f := strings.TrimSpace(fragment)
	if f == "" {
		return "", &UnparseableDateError{Fragment: fragment}
	}

	if hint == FormatISO || hint == FormatAuto {
		if m := isoDatePattern.FindStringSubmatch(f); m != nil {
			if _, err := time.Parse("2006-01-02", f); err != nil {
				return "", &UnparseableDateError{Fragment: fragment}
			}
			return f, nil
		}
		if hint == FormatISO {
			return "", &UnparseableDateError{Fragment: fragment}
		}
	}

	if hint == FormatMDY || hint == FormatMDYShort || hint == FormatAuto {
		if m := slashDatePattern.FindStringSubmatch(f); m != nil {
			month, _ := strconv.Atoi(m[1])
			day, _ := strconv.Atoi(m[2])
			year, _ := strconv.Atoi(m[3])
			if len(m[3]) == 2 {
				year += 2000
			}
			if !validYMD(year, month, day) {
				return "", &UnparseableDateError{Fragment: fragment}
			}
			return isoDate(year, time.Month(month), day), nil
		}
		if hint != FormatAuto {
			return "", &UnparseableDateError{Fragment: fragment}
		}
	}

	// Free-form "Mon DD[, YYYY]" or "DD Mon[ YYYY]".
	var monthStr, dayStr, yearStr string
	if m := textDatePattern.FindStringSubmatch(f); m != nil {
		monthStr, dayStr, yearStr = m[1], m[2], m[3]
	} else if m := dayFirstPattern.FindStringSubmatch(f); m != nil {
		dayStr, monthStr, yearStr = m[1], m[2], m[3]
	} else {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	if yearStr == "" {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	month, ok := monthIndex(monthStr)
	if !ok {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	day, _ := strconv.Atoi(dayStr)
	year, _ := strconv.Atoi(yearStr)
	if !validYMD(year, int(month), day) {
		return "", &UnparseableDateError{Fragment: fragment}
	}
	return isoDate(year, month, day), nil
}

func validYMD(y, m, d int) bool {
	if y < 1900 || y > 2200 || m < 1 || m > 12 || d < 1 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d && int(t.Month()) == m
}

// IsISODate reports whether s is a valid YYYY-MM-DD date.
func IsISODate(s string) bool {
	if !isoDatePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

var yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

// DetectYear finds the statement year in the full text (period lines,
// printed dates). Falls back to the supplied year when the text carries
// no four-digit year.
func DetectYear(text string, fallback int) int {
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return fallback
}
