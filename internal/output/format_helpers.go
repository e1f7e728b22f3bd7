package output

import (
	"strings"

	"github.com/rgehrsitz/bdtax/internal/calculation"
	"github.com/shopspring/decimal"
)

// FormatTaka rounds to whole Taka and groups digits the South Asian way:
// 1234567 -> "Tk 12,34,567".
func FormatTaka(amount decimal.Decimal) string {
	rounded := calculation.RoundTaka(amount)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "Tk " + groupLakh(rounded.String())
}

// FormatSignedTaka is FormatTaka with an explicit "+" on positive amounts
func FormatSignedTaka(amount decimal.Decimal) string {
	if calculation.RoundTaka(amount).IsPositive() {
		return "+" + FormatTaka(amount)
	}
	return FormatTaka(amount)
}

// groupLakh inserts separators after the last three digits, then every two
func groupLakh(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var b strings.Builder
	lead := len(head) % 2
	if lead > 0 {
		b.WriteString(head[:lead])
	}
	for i := lead; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// FormatLakh renders an amount in lakh, e.g. "3.8 lakh"
func FormatLakh(amount decimal.Decimal) string {
	return calculation.LakhString(amount) + " lakh"
}

// FormatPercentage formats a rate such as 12.5 as "12.5%".
func FormatPercentage(rate decimal.Decimal) string { return rate.String() + "%" }
