package format

import (
	"strings"
	"time"
)

// dateLayouts covers the date renderings seen across the dialects:
// plain ISO dates (UBL), UN/CEFACT qualified date strings in format 102
// (CII/CID), and full timestamps.
var dateLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
}

// normalizeDate canonicalizes a source date to ISO-8601 (YYYY-MM-DD).
// Unparseable values pass through trimmed, so the canonical key stays
// populated with whatever the document carried.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// firstNonEmpty returns the first non-empty value, or ""
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
