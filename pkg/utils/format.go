// Package utils provides common formatting, time, and validation helpers.
package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatSGD formats an amount as Singapore dollars rounded to the nearest
// dollar, e.g. 1234567.8 → "$1,234,568".
func FormatSGD(amount float64) string {
	negative := amount < 0
	n := int64(math.Round(math.Abs(amount)))

	formatted := groupThousands(n)
	if negative {
		return "-$" + formatted
	}
	return "$" + formatted
}

// FormatSGDCompact formats an amount in compact notation,
// e.g. 1250000 → "$1.25M", 880000 → "$880K".
func FormatSGDCompact(amount float64) string {
	prefix := "$"
	if amount < 0 {
		prefix = "-$"
		amount = -amount
	}

	switch {
	case amount >= 1e6:
		return fmt.Sprintf("%s%sM", prefix, trimZeros(amount/1e6))
	case amount >= 1e3:
		return fmt.Sprintf("%s%sK", prefix, trimZeros(amount/1e3))
	default:
		return fmt.Sprintf("%s%.0f", prefix, amount)
	}
}

// FormatPct formats a percentage with one decimal and an explicit sign,
// e.g. -7.26 → "-7.3%", 4 → "+4.0%".
func FormatPct(pct float64) string {
	return fmt.Sprintf("%+.1f%%", pct)
}

// ParseAmount parses a dollar amount as typed on the command line:
// "1250000", "1,250,000", "$1.25m" and "550k" are all accepted.
func ParseAmount(s string) (float64, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	raw = strings.TrimPrefix(raw, "s$")
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(raw, "m"):
		multiplier = 1e6
		raw = strings.TrimSuffix(raw, "m")
	case strings.HasSuffix(raw, "k"):
		multiplier = 1e3
		raw = strings.TrimSuffix(raw, "k")
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v * multiplier, nil
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var sb strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		sb.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}

func trimZeros(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
