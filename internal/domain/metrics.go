package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationPlaceholder is rendered when a brew time was not recorded.
const DurationPlaceholder = "–"

// BrewRatio derives the yield-to-dose ratio as "1:R" with R rounded to
// one decimal place. Returns "" when either amount is missing or the
// dose is not positive; the division is guarded here regardless of any
// upstream validation.
func BrewRatio(doseGrams, yieldGrams *float64) string {
	if doseGrams == nil || yieldGrams == nil {
		return ""
	}
	if *doseGrams <= 0 {
		return ""
	}
	return fmt.Sprintf("1:%.1f", *yieldGrams / *doseGrams)
}

// FormatBrewDuration renders seconds as "M:SS". Nil and zero both render
// the placeholder; a zero-second brew time means "not specified".
func FormatBrewDuration(seconds *int) string {
	if seconds == nil || *seconds <= 0 {
		return DurationPlaceholder
	}
	return fmt.Sprintf("%d:%02d", *seconds/60, *seconds%60)
}

// ParseBrewAmount converts a form value to an optional amount in grams.
// Empty, unparseable, and non-positive inputs all count as "not recorded".
func ParseBrewAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return nil
	}
	return &v
}
