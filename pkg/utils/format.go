// Package utils provides shared utility functions.
package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a decimal amount as US currency with thousands
// separators and two decimal places, e.g. "$1,234.50" / "-$50.00".
func FormatUSD(amount decimal.Decimal) string {
	negative := amount.Sign() < 0
	str := amount.Abs().StringFixed(2)

	parts := strings.SplitN(str, ".", 2)
	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// FormatSignedUSD is FormatUSD with an explicit plus sign on gains.
func FormatSignedUSD(amount decimal.Decimal) string {
	formatted := FormatUSD(amount)
	if amount.Sign() > 0 {
		return "+" + formatted
	}
	return formatted
}

// groupThousands inserts commas into an unsigned integer string.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	lead := n % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateString truncates a string to maxLen runes, appending "..." when
// anything was cut.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
