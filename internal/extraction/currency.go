package extraction

import (
	"strings"

	"golang.org/x/text/currency"

	"matterdesk/internal/domain"
)

var currencySymbols = []struct {
	symbol string
	code   string
}{
	{"US$", "USD"},
	{"A$", "AUD"},
	{"C$", "CAD"},
	{"$", "USD"},
	{"€", "EUR"},
	{"£", "GBP"},
	{"¥", "JPY"},
	{"₹", "INR"},
}

// resolveCurrency returns an ISO 4217 code for a parsed financial line. The
// currency token wins when it is a known code or symbol; otherwise a symbol
// in the amount token is used; otherwise the default currency.
func resolveCurrency(token, amount string) string {
	token = strings.TrimSpace(token)
	if unit, err := currency.ParseISO(strings.ToUpper(token)); err == nil {
		return unit.String()
	}
	if code, ok := symbolCode(token); ok {
		return code
	}
	if code, ok := symbolCode(amount); ok {
		return code
	}
	return domain.DefaultCurrency
}

func symbolCode(s string) (string, bool) {
	for _, cs := range currencySymbols {
		if strings.Contains(s, cs.symbol) {
			return cs.code, true
		}
	}
	return "", false
}
