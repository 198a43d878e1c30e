// Package report renders the one-line price summary.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Format builds the summary line for a release. Artists are joined with ", "
// in the order given.
func Format(gradeLabel, title string, artists []string, amount decimal.Decimal, currencyCode string) string {
	return fmt.Sprintf("Suggested price for %s copy of %s — %s: %s",
		gradeLabel, title, strings.Join(artists, ", "), Price(amount, currencyCode))
}

// Price renders amount with thousands separators and two decimals. US dollars
// get a "$" prefix; any other code is appended after the amount unchanged
// apart from case. A negative amount carries its sign in front of the "$".
func Price(amount decimal.Decimal, currencyCode string) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	value := groupThousands(rounded.Abs().StringFixed(2))

	code := strings.TrimSpace(currencyCode)
	if code == "" {
		return sign + value
	}
	unit, err := currency.ParseISO(strings.ToUpper(code))
	if err != nil {
		return sign + value + " " + code
	}
	if unit == currency.USD {
		return sign + "$" + value
	}
	return sign + value + " " + unit.String()
}

// groupThousands inserts "," every three digits of the integer part of an
// unsigned fixed-point string.
func groupThousands(fixed string) string {
	intPart, frac, _ := strings.Cut(fixed, ".")
	if len(intPart) <= 3 {
		return fixed
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
