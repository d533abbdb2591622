// Package display renders comparison results for people: rupee amounts with
// Indian digit grouping, direction labels and a printable PDF table.
package display

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/windeesel365/slab-tax/taxcal"
)

const RupeeSign = "₹"

// GroupLakh groups a run of digits the Indian way: the last three together,
// then pairs (12,34,567).
func GroupLakh(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]

	var b strings.Builder
	first := len(head) % 2
	if first > 0 {
		b.WriteString(head[:first])
	}
	for i := first; i < len(head); i += 2 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(head[i : i+2])
	}
	b.WriteByte(',')
	b.WriteString(tail)
	return b.String()
}

// Amount formats v rounded to paise with lakh grouping. Whole amounts drop
// the ".00".
func Amount(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}

	s := v.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	out := sign + GroupLakh(intPart)
	if frac != "00" {
		out += "." + frac
	}
	return out
}

// Rupees is Amount with the rupee sign in front.
func Rupees(v decimal.Decimal) string {
	if v.IsNegative() {
		return "-" + RupeeSign + Amount(v.Neg())
	}
	return RupeeSign + Amount(v)
}

// Percent renders a fractional rate such as 0.15 as "15%".
func Percent(rate decimal.Decimal) string {
	return rate.Shift(2).String() + "%"
}

// DirectionLabel says which year is lighter on tax.
func DirectionLabel(c taxcal.Comparison) string {
	switch c.Result.Direction {
	case taxcal.BCheaper:
		return "Less tax in " + c.B.ScheduleLabel
	case taxcal.ACheaper:
		return "Less tax in " + c.A.ScheduleLabel
	default:
		return "No difference"
	}
}
