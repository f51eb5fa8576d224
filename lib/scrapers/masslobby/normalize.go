package masslobby

import (
	"strconv"
	"strings"
	"time"
)

// CleanCurrency strips the dollar sign and thousands separators from a
// scraped amount. Empty or unparsable input yields 0.0, never an error.
func CleanCurrency(text string) float64 {
	text = strings.ReplaceAll(text, "$", "")
	text = strings.ReplaceAll(text, ",", "")
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v != v {
		return 0
	}
	return v
}

var dateLayouts = []string{
	"1/2/2006",
	"2006-01-02",
}

// ParseDate parses a US-format date off a table cell. Empty or unparsable
// input yields nil, never an error.
func ParseDate(text string) *time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err == nil {
			return &t
		}
	}
	return nil
}

// ParseDateRange splits a "MM/DD/YYYY - MM/DD/YYYY" reporting period into
// its two ends. Anything other than a cleanly parsed two-sided range
// yields (nil, nil); partial results are not allowed.
func ParseDateRange(text string) (*time.Time, *time.Time) {
	parts := strings.Split(text, "-")
	if len(parts) != 2 {
		return nil, nil
	}
	start := ParseDate(parts[0])
	end := ParseDate(parts[1])
	if start == nil || end == nil {
		return nil, nil
	}
	return start, end
}
