package extraction

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"matterdesk/internal/domain"
)

const fieldDelimiter = "|"

// lines splits a response into trimmed, non-blank lines that are not one of
// the sentinels.
func lines(response string, isSentinel func(string) bool) []string {
	var out []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isSentinel(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// parseList returns the response lines in order.
func parseList(response string, isSentinel func(string) bool) []string {
	out := lines(response, isSentinel)
	if out == nil {
		return []string{}
	}
	return out
}

// parseDates reads "date|description|original text" lines. Lines with fewer
// than three parts or an unparsable date are dropped.
func parseDates(response string, isSentinel func(string) bool) []domain.ContractDate {
	dates := []domain.ContractDate{}
	for _, line := range lines(response, isSentinel) {
		parts := strings.Split(line, fieldDelimiter)
		if len(parts) < 3 {
			continue
		}
		date, ok := parseDate(parts[0])
		if !ok {
			continue
		}
		dates = append(dates, domain.ContractDate{
			Date:         date,
			Description:  strings.TrimSpace(parts[1]),
			OriginalText: strings.TrimSpace(parts[2]),
		})
	}
	return dates
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(raw, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseFinancialTerms reads
// "amount|currency|description|original text[|recurring[|frequency]]" lines.
// Lines with fewer than four parts or an unparsable amount are dropped.
func parseFinancialTerms(response string, isSentinel func(string) bool) []domain.FinancialTerm {
	terms := []domain.FinancialTerm{}
	for _, line := range lines(response, isSentinel) {
		parts := strings.Split(line, fieldDelimiter)
		if len(parts) < 4 {
			continue
		}
		amount, ok := parseAmount(parts[0])
		if !ok {
			continue
		}
		term := domain.FinancialTerm{
			Amount:       amount,
			Currency:     resolveCurrency(parts[1], parts[0]),
			Description:  strings.TrimSpace(parts[2]),
			OriginalText: strings.TrimSpace(parts[3]),
		}
		if len(parts) > 4 {
			term.IsRecurring = parseBool(parts[4])
		}
		if len(parts) > 5 {
			term.PaymentFrequency = strings.TrimSpace(parts[5])
		}
		terms = append(terms, term)
	}
	return terms
}

// parseAmount strips currency symbols, a leading or trailing ISO currency
// code, whitespace and thousands separators, then parses a decimal. Any other
// text left in the token rejects it.
func parseAmount(raw string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(raw)
	for _, cs := range currencySymbols {
		s = strings.ReplaceAll(s, cs.symbol, "")
	}
	s = trimCurrencyCode(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-'
	}) >= 0 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// trimCurrencyCode removes an ISO 4217 code written before or after the
// number, as in "USD 1,000" or "1,000EUR".
func trimCurrencyCode(s string) string {
	if len(s) > 3 && isCurrencyCode(s[:3]) && !isASCIILetter(s[3]) {
		s = strings.TrimSpace(s[3:])
	}
	if n := len(s); n > 3 && isCurrencyCode(s[n-3:]) && !isASCIILetter(s[n-4]) {
		s = strings.TrimSpace(s[:n-3])
	}
	return s
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 || !isASCIILetter(s[0]) || !isASCIILetter(s[1]) || !isASCIILetter(s[2]) {
		return false
	}
	_, err := currency.ParseISO(strings.ToUpper(s))
	return err == nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func parseBool(raw string) bool {
	b, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	return err == nil && b
}

// parseScalar trims the response and falls back to def when nothing is left.
func parseScalar(response, def string) string {
	out := strings.TrimSpace(response)
	if out == "" {
		return def
	}
	return out
}
