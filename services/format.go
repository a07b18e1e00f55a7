package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats an amount for display in the given currency using the
// thousands grouping both target locales (es-MX and en-US) share.
// The result always carries exactly 2 decimal places, e.g. "$1,234.56".
func FormatMoney(amount float64, _ Currency) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(raw, ".", 2)

	result := "$" + groupThousands(parts[0]) + "." + parts[1]
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatRate renders an exchange rate with the 4 decimal places the rate
// endpoint and the quote sheet use.
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 4, 64)
}

// FormatQty renders a quantity without trailing decimal noise.
func FormatQty(qty float64) string {
	s := strconv.FormatFloat(qty, 'f', -1, 64)
	return s
}

// FormatPercent renders a percentage column value, e.g. "10%".
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// FormatDate converts an ISO date (2006-01-02) to the dd/mm/yyyy form used
// on printed quotes. Unparseable input is returned unchanged.
func FormatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("02/01/2006")
}
